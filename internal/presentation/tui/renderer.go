// Package tui formats evaluation results for terminal display.
package tui

import (
	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown using glamour,
// auto-detecting light/dark backgrounds. Falls back to raw markdown if
// the renderer cannot be constructed (e.g. no usable terminal).
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	if err != nil {
		return func(markdown string) string { return markdown }
	}
	return func(markdown string) string {
		out, err := r.Render(markdown)
		if err != nil {
			return markdown
		}
		return out
	}
}
