// Package terminal probes the controlling terminal so the renderer can fit
// its output.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// DefaultWidth is used when the terminal size cannot be determined, e.g.
// when output is piped.
const DefaultWidth = 80

// GetWidth returns the current terminal width, falling back to DefaultWidth.
func GetWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return DefaultWidth
	}
	return width
}
