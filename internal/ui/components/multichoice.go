package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algebriz/internal/ui/theme"
)

// Choice is one selectable line: a short label and a dimmed detail.
type Choice struct {
	Label  string
	Detail string
}

// MultiChoice is a numbered option selector.
type MultiChoice struct {
	Question    string
	Choices     []Choice
	Selected    int
	Submitted   bool
	ChosenIndex int

	// Set by Mark once the choice has been graded.
	graded  bool
	correct bool
}

// NewMultiChoice creates a selector with the cursor on the first choice.
func NewMultiChoice(question string, choices []Choice) MultiChoice {
	return MultiChoice{
		Question:    question,
		Choices:     choices,
		ChosenIndex: -1,
	}
}

// Update handles arrow navigation, Enter, and number keys 1-9, which
// select and submit in one press.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Choices)-1 {
			m.Selected++
		}
	case "enter":
		if len(m.Choices) > 0 {
			m.submit(m.Selected)
		}
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Choices) {
			m.submit(n - 1)
		}
	}
	return m, nil
}

func (m *MultiChoice) submit(i int) {
	m.Selected = i
	m.ChosenIndex = i
	m.Submitted = true
}

// Mark records whether the submitted choice was right, for colouring.
func (m *MultiChoice) Mark(correct bool) {
	m.graded = true
	m.correct = correct
}

// Reset reopens the selector for another try, keeping the cursor.
func (m *MultiChoice) Reset() {
	m.Submitted = false
	m.ChosenIndex = -1
	m.graded = false
}

// View renders the question and the numbered choices.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Question != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
		b.WriteString("\n\n")
	}

	labelWidth := 0
	for _, c := range m.Choices {
		labelWidth = max(labelWidth, lipgloss.Width(c.Label))
	}

	detail := lipgloss.NewStyle().Foreground(theme.TextDim)
	for i, c := range m.Choices {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		label := fmt.Sprintf("%s%d)  %-*s", prefix, i+1, labelWidth, c.Label)

		style := theme.Unselected
		switch {
		case m.Submitted && i == m.ChosenIndex && m.graded && m.correct:
			style = theme.Correct
		case m.Submitted && i == m.ChosenIndex && m.graded:
			style = theme.Incorrect
		case m.Submitted:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Selected:
			style = theme.Selected
		}

		b.WriteString(style.Render(label))
		if c.Detail != "" {
			b.WriteString("   " + detail.Render(c.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
