// chipflow lays out a set of chips across the terminal and lets you pick some.
//
// Usage:
//
//	chipflow [-config chipflow.toml] [-width n] [-print] [-debug file]
//
// With a terminal on stdin and stdout it runs an interactive picker and
// prints the selected chip names on exit. Otherwise, or with -print, it
// renders the chips once and exits.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/kungfusheep/chipflow/internal/debug"
)

const fallbackWidth = 80

func main() {
	log.SetFlags(0)
	log.SetPrefix("chipflow: ")

	configPath := flag.String("config", "", "path to a TOML config (default chipflow.toml if present)")
	width := flag.Int("width", 0, "container width in cells (default: terminal width)")
	printOnly := flag.Bool("print", false, "render once to stdout and exit")
	debugPath := flag.String("debug", "", "append debug logs to this file")
	flag.Parse()

	if *debugPath != "" {
		if err := debug.Init(*debugPath); err != nil {
			log.Fatal(err)
		}
	} else if err := debug.InitFromEnv(); err != nil {
		log.Fatal(err)
	}
	defer debug.Close()

	cfg, err := LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *width < 0 {
		log.Fatalf("-width must not be negative, got %d", *width)
	}
	if *width == 0 {
		*width = cfg.Layout.Width
	}

	interactive := !*printOnly &&
		term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))
	debug.Log("starting: chips=%d width=%d interactive=%v", len(cfg.Chips), *width, interactive)

	if !interactive {
		if err := printChips(cfg, *width); err != nil {
			log.Fatal(err)
		}
		return
	}

	m, err := newModel(cfg, lipgloss.DefaultRenderer(), *width)
	if err != nil {
		log.Fatal(err)
	}
	m.showFocus = true

	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		log.Fatal(err)
	}
	if names := final.(*model).selection.Names(); len(names) > 0 {
		fmt.Println(strings.Join(names, "\n"))
	}
}

// printChips renders the configured chips once to stdout.
func printChips(cfg Config, width int) error {
	if width == 0 {
		width = fallbackWidth
		if w, err := terminalWidth(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = w
		}
	}

	m, err := newModel(cfg, lipgloss.NewRenderer(os.Stdout), width)
	if err != nil {
		return err
	}
	if m.err != nil {
		return m.err
	}

	fmt.Println(m.chips())
	fmt.Println(m.selectedLine())
	return nil
}
