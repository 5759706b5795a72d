// Package terminal reports the size of the controlling terminal.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth  = 80
	DefaultHeight = 24
)

// GetSize returns the current terminal width and height.
// Falls back to defaults if stdout is not a terminal.
func GetSize() (width, height int) {
	return SizeOf(os.Stdout)
}

// SizeOf returns the size of the terminal behind f, or the defaults
func SizeOf(f *os.File) (width, height int) {
	if f == nil {
		return DefaultWidth, DefaultHeight
	}
	width, height, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return DefaultWidth, DefaultHeight
	}
	return width, height
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// Viewport returns how many map rows and columns fit in a width×height
// terminal when reservedLines are taken by text and each cell is cellWidth
// characters wide. Both results are at least 1.
func Viewport(width, height, reservedLines, cellWidth int) (rows, cols int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	rows = height - reservedLines
	cols = width / cellWidth
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}
