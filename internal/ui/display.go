package ui

import (
	"os"

	"github.com/charmbracelet/x/term"
)

// DefaultTermWidth is the fallback terminal width when detection fails.
const DefaultTermWidth = 120

// DisplayContext holds display parameters for rendering results.
type DisplayContext struct {
	TermWidth int  // detected or fallback terminal width
	IsTTY     bool // whether stdout is a terminal
}

// NewDisplayContext creates a DisplayContext for stdout.
func NewDisplayContext() *DisplayContext {
	return displayContextFor(os.Stdout.Fd())
}

func displayContextFor(fd uintptr) *DisplayContext {
	d := &DisplayContext{TermWidth: DefaultTermWidth, IsTTY: term.IsTerminal(fd)}
	if d.IsTTY {
		if w, _, err := term.GetSize(fd); err == nil && w > 0 {
			d.TermWidth = w
		}
	}
	return d
}

// NewDisplayContextWithWidth creates a DisplayContext with a fixed width.
func NewDisplayContextWithWidth(width int) *DisplayContext {
	return &DisplayContext{TermWidth: width, IsTTY: true}
}
