package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders tooltip markdown using
// glamour. It auto-detects the terminal background for styling.
func NewRenderer(width int) func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)

	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}
