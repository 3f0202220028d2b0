package report

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
)

const percentWidth = 7 // " 100.0%"

// Bar renders a labelled horizontal bar for a 0-100 percentage.
func Bar(label string, pct float64, width int) string {
	var out string
	if label != "" {
		out = bodyStyle.Render(label) + "  "
	}

	barWidth := max(width-lipgloss.Width(out)-percentWidth, 4)
	filled := min(max(int(float64(barWidth)*pct/100), 0), barWidth)

	out += lipgloss.NewStyle().Background(scoreColor(pct)).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(Border).Render(strings.Repeat(" ", barWidth-filled))
	out += dimStyle.Render(fmt.Sprintf(" %5.1f%%", pct))
	return out
}

// scoreColor uses the same tiers as the skill feedback labels.
func scoreColor(pct float64) color.Color {
	switch {
	case pct >= 80:
		return Success
	case pct >= 60:
		return Warning
	default:
		return Error
	}
}
