// Package clipboard provides cross-platform clipboard support.
package clipboard

import (
	"fmt"
	"io"
	"os"

	sysclip "github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
)

// Writer copies text to a clipboard.
type Writer interface {
	Write(text string) error
}

// System writes through the platform clipboard and falls back to an OSC 52
// escape sequence on Fallback when no clipboard utility is installed, as on
// a remote shell.
type System struct {
	Fallback io.Writer
}

// Default writes OSC 52 fallbacks to stderr, which the TUI does not render to.
var Default = System{Fallback: os.Stderr}

// Write copies text to the clipboard.
func (s System) Write(text string) error {
	if !sysclip.Unsupported {
		if err := sysclip.WriteAll(text); err == nil {
			return nil
		}
	}
	if s.Fallback == nil {
		return fmt.Errorf("no clipboard available")
	}
	if _, err := osc52.New(text).WriteTo(s.Fallback); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}

// Write copies text to the system clipboard.
func Write(text string) error {
	return Default.Write(text)
}

// Available reports whether a platform clipboard utility was found.
func Available() bool {
	return !sysclip.Unsupported
}
