package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algebriz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar with an optional
// threshold marker.
type ProgressBar struct {
	Label       string
	LabelWidth  int
	Percent     float64
	Marker      float64 // 0 hides the marker
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		label := p.Label
		if pad := p.LabelWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(label) + "  "
	}

	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}
	barWidth := max(p.Width-lipgloss.Width(result)-percentWidth, 4)

	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)
	marker := -1
	if p.Marker > 0 {
		marker = min(int(float64(barWidth)*p.Marker), barWidth-1)
	}

	fill := lipgloss.NewStyle().Background(theme.Secondary)
	empty := lipgloss.NewStyle().Background(theme.Border)
	tick := lipgloss.NewStyle().Foreground(theme.Accent)

	var bar strings.Builder
	for i := 0; i < barWidth; {
		style := fill
		if i >= filled {
			style = empty
		}
		if i == marker {
			bar.WriteString(tick.Inherit(style).Render("│"))
			i++
			continue
		}
		j := i
		for j < barWidth && j != marker && (j < filled) == (i < filled) {
			j++
		}
		bar.WriteString(style.Render(strings.Repeat(" ", j-i)))
		i = j
	}
	result += bar.String()

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %3d%%", int(p.Percent*100)))
	}
	return result
}
