//go:build unix

package main

import "golang.org/x/sys/unix"

// terminalWidth returns the column count of the terminal on fd.
func terminalWidth(fd int) (int, error) {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return 0, err
	}
	return int(ws.Col), nil
}
