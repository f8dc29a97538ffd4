// Package components holds small reusable terminal widgets.
package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/logiclue/logiclue/internal/ui/theme"
)

// Meter is a horizontal bar for a percentage such as accuracy.
type Meter struct {
	Label   string
	Percent float64 // 0..100
	Width   int
}

// View renders the label, the bar and the percentage with one decimal.
func (m Meter) View() string {
	var b strings.Builder
	if m.Label != "" {
		b.WriteString(theme.Label.Render(m.Label))
		b.WriteString("  ")
	}

	barWidth := m.Width - lipgloss.Width(b.String()) - 8
	if barWidth < 4 {
		barWidth = 4
	}

	pct := min(max(m.Percent, 0), 100)
	filled := int(float64(barWidth) * pct / 100)

	b.WriteString(theme.MeterFilled.Render(strings.Repeat(" ", filled)))
	b.WriteString(theme.MeterEmpty.Render(strings.Repeat(" ", barWidth-filled)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("  %.1f%%", m.Percent)))
	return b.String()
}
