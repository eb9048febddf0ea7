package components

import (
	"fmt"
	"math"
	"strings"
)

const (
	filledChar = "█"
	emptyChar  = "░"
)

// DefaultBarWidth is the bar width used by reports.
const DefaultBarWidth = 30

// Bar renders a percentage bar like: ███░░░ 50.0%
type Bar struct {
	Width int // character width of the bar portion
}

// NewBar creates a Bar of the given width.
func NewBar(width int) Bar {
	return Bar{Width: width}
}

// Render returns the bar for a percentage in [0, 100].
func (b Bar) Render(percentage float64) string {
	if b.Width <= 0 {
		return ""
	}

	// Clamp to valid range
	if percentage < 0 || math.IsNaN(percentage) {
		percentage = 0
	}
	if percentage > 100 {
		percentage = 100
	}

	filled := int(math.Round(percentage * float64(b.Width) / 100))
	bar := strings.Repeat(filledChar, filled) + strings.Repeat(emptyChar, b.Width-filled)

	return fmt.Sprintf("%s %.1f%%", bar, percentage)
}
