// Package console puts rendered frames on a terminal, either as raw ANSI
// text on a writer or through a tcell screen.
package console

import (
	"os"

	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// FitCells returns the largest grid that fits the terminal on f, keeping
// reserve rows free for status output. ok is false when f is not a terminal.
func FitCells(f *os.File, reserve int) (w, h int, ok bool) {
	cols, rows, err := term.GetSize(int(f.Fd()))
	if err != nil || cols <= 0 || rows <= reserve {
		return 0, 0, false
	}
	return cols, rows - reserve, true
}
