package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/algebriz/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with Algebriz styling.
type TextInput struct {
	Model textinput.Model

	// Allow filters typed runes. Nil accepts everything.
	Allow func(r rune) bool

	submitted bool
	valid     bool
}

// NewTextInput creates a focused text input limited to limit characters.
func NewTextInput(placeholder string, limit int, allow func(rune) bool) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if limit > 0 {
		ti.CharLimit = limit
	}
	ti.Focus()

	return TextInput{Model: ti, Allow: allow}
}

// Init returns the cursor blink command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update drops filtered keystrokes and forwards the rest.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if t.Allow != nil {
		if kmsg, ok := msg.(tea.KeyMsg); ok {
			if r := []rune(kmsg.String()); len(r) == 1 && !t.Allow(r[0]) {
				return t, nil
			}
		}
	}

	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input and, once submitted, a validity mark.
func (t TextInput) View() string {
	view := t.Model.View()
	if t.submitted {
		if t.valid {
			view += " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
		} else {
			view += " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
		}
	}
	return view
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// Submit marks the input as submitted with a validation result.
func (t *TextInput) Submit(valid bool) {
	t.submitted = true
	t.valid = valid
}

// Clear empties the input for another try.
func (t *TextInput) Clear() {
	t.Model.SetValue("")
	t.submitted = false
}
