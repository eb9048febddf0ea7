package components

import (
	"strings"

	"github.com/pablasso/plankit/internal/tui/styles"
)

// StatusBar renders a help line showing the keys a prompt accepts.
type StatusBar struct{}

// NewStatusBar creates a new StatusBar instance.
func NewStatusBar() StatusBar {
	return StatusBar{}
}

// Render returns the help line for the given items, joined with " • ".
// A zero width leaves the line unpadded.
func (s StatusBar) Render(width int, items []string) string {
	style := styles.StatusBarStyle
	if width > 0 {
		style = style.Width(width)
	}
	return style.Render(strings.Join(items, " • "))
}
