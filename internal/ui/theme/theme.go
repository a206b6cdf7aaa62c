package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/algebriz/internal/mastery"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	// Equation renders the balance-scale equation line.
	Equation = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Background(BgCard).
			Padding(0, 3)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)

	// HelpCard frames remediation after a wrong step.
	HelpCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// StageColor maps a learning stage to its accent colour.
func StageColor(s mastery.Stage) color.Color {
	switch s {
	case mastery.StageGuided:
		return Accent
	case mastery.StageCollaborative:
		return Secondary
	case mastery.StageIndependent:
		return Primary
	}
	return TextDim
}

// Stage renders a stage name in its colour.
func Stage(s mastery.Stage) string {
	return lipgloss.NewStyle().Foreground(StageColor(s)).Bold(true).Render(string(s))
}
