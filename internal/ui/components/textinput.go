package components

import (
	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with a label and the lab's styling.
type TextInput struct {
	Label string
	Model textinput.Model
}

// NewTextInput creates an unfocused input. limit caps the number of
// characters; zero means no cap.
func NewTextInput(label, placeholder string, limit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	if limit > 0 {
		ti.CharLimit = limit
	}
	return TextInput{Label: label, Model: ti}
}

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

func (t *TextInput) Blur() {
	t.Model.Blur()
}

func (t TextInput) Focused() bool {
	return t.Model.Focused()
}

func (t TextInput) Value() string {
	return t.Model.Value()
}

func (t *TextInput) SetValue(v string) {
	t.Model.SetValue(v)
}

// View renders "Label: value", highlighting the label when focused.
func (t TextInput) View() string {
	label := lipgloss.NewStyle().Foreground(theme.TextDim)
	if t.Focused() {
		label = theme.Selected
	}
	if t.Label == "" {
		return t.Model.View()
	}
	return label.Render(t.Label+":") + " " + t.Model.View()
}
