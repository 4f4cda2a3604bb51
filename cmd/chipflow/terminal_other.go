//go:build !unix

package main

import "golang.org/x/term"

// terminalWidth returns the column count of the terminal on fd.
func terminalWidth(fd int) (int, error) {
	w, _, err := term.GetSize(fd)
	return w, err
}
