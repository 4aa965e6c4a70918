// Package architect is the Level 2 screen: build a test set of values
// and label each one.
package architect

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/coach"
	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/testset"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/layout"
	"github.com/abhisek/testlab/internal/ui/theme"
)

const fieldName = "Jobs per month"

type explainMsg struct {
	row      int
	feedback coach.Feedback
}

type row struct {
	input components.TextInput
	kind  classify.Kind
}

// Screen edits the test set. Focus moves over each row's value then its
// type, and finally the Check button.
type Screen struct {
	lab *lab.Lab

	rows   []row
	focus  int
	button components.Button

	report      *testset.Report
	explained   int
	explanation *coach.Feedback
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

func New(l *lab.Lab) *Screen {
	s := &Screen{lab: l, rows: make([]row, l.TestSetRows())}
	for i := range s.rows {
		s.rows[i].input = components.NewTextInput(fmt.Sprintf("Value %d", i+1), "e.g. 10", 16)
	}
	s.button = components.NewButton("Check Test Set", func() tea.Cmd { return s.check() })
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *Screen) Title() string {
	return "Level 2 · Test Set Architect"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next"},
		{Key: "←→", Description: "Change type"},
		{Key: "Ctrl+S", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

// CapturingInput is true while a value field has focus.
func (s *Screen) CapturingInput() bool {
	return s.focus < 2*len(s.rows) && s.focus%2 == 0
}

// Rows returns the test set as currently entered.
func (s *Screen) Rows() []testset.Row {
	out := make([]testset.Row, len(s.rows))
	for i, r := range s.rows {
		out[i] = testset.Row{Value: r.input.Value(), Chosen: r.kind}
	}
	return out
}

func (s *Screen) buttonFocus() int {
	return 2 * len(s.rows)
}

func (s *Screen) setFocus(f int) tea.Cmd {
	n := s.buttonFocus() + 1
	s.focus = (f%n + n) % n
	var cmd tea.Cmd
	for i := range s.rows {
		if s.focus == 2*i {
			cmd = s.rows[i].input.Focus()
		} else {
			s.rows[i].input.Blur()
		}
	}
	s.button.Active = s.focus == s.buttonFocus()
	return cmd
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case explainMsg:
		fb := msg.feedback
		s.explained = msg.row
		s.explanation = &fb
		return s, nil
	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s.forward(msg)
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "tab":
		return s, s.setFocus(s.focus + 1)
	case "shift+tab":
		return s, s.setFocus(s.focus - 1)
	case "down":
		return s, s.setFocus(s.focus + 2)
	case "up":
		return s, s.setFocus(s.focus - 2)
	case "ctrl+s":
		return s, s.check()
	case "enter":
		if s.focus == s.buttonFocus() {
			var cmd tea.Cmd
			s.button, cmd = s.button.Update(msg)
			return s, cmd
		}
		return s, s.setFocus(s.focus + 1)
	}

	if s.focus < s.buttonFocus() && s.focus%2 == 1 {
		r := &s.rows[s.focus/2]
		switch key := msg.String(); key {
		case "left", "h":
			r.kind = components.CycleKind(r.kind, -1)
		case "right", "l", "space":
			r.kind = components.CycleKind(r.kind, 1)
		case "1", "2", "3", "4":
			r.kind = classify.AllKinds[key[0]-'1']
		case "backspace", "delete":
			r.kind = ""
		}
		return s, nil
	}
	return s.forward(msg)
}

func (s *Screen) forward(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if !s.CapturingInput() {
		return s, nil
	}
	i := s.focus / 2
	var cmd tea.Cmd
	s.rows[i].input, cmd = s.rows[i].input.Update(msg)
	return s, cmd
}

// check grades the set and asks the coach about the first mislabelled row.
func (s *Screen) check() tea.Cmd {
	rows := s.Rows()
	rep := s.lab.CheckTestSet(rows)
	s.report = &rep
	s.explanation = nil

	l, rule := s.lab, s.lab.TestSetRule()
	for i, r := range rows {
		if !r.Chosen.Known() || strings.TrimSpace(r.Value) == "" {
			continue
		}
		actual := rule.Classify(r.Value)
		if testset.Agrees(actual, r.Chosen) {
			continue
		}
		in := coach.Input{
			Field:   fieldName,
			Rule:    rule,
			Value:   r.Value,
			Chosen:  r.Chosen,
			Correct: actual,
		}
		return func() tea.Msg {
			return explainMsg{row: i, feedback: l.Explain(context.Background(), in)}
		}
	}
	return nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.Heading("Build a test set for: " + fieldName))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Rule: " + s.lab.TestSetRule().Describe()))
	b.WriteString("\n\n")

	for i, r := range s.rows {
		b.WriteString(r.input.View())
		b.WriteString("   ")
		b.WriteString(s.kindCell(i, r.kind))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.button.View())

	if s.report != nil {
		b.WriteString("\n\n")
		b.WriteString(s.renderReport(cw))
	}
	return components.Center(components.Panel(b.String(), cw), width, height)
}

func (s *Screen) kindCell(i int, k classify.Kind) string {
	label := "‹ choose type ›"
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	if k != "" {
		label = "‹ " + k.DisplayName() + " ›"
		style = theme.KindColor(k)
	}
	if s.focus == 2*i+1 {
		style = style.Bold(true).Underline(true)
	}
	return style.Render(label)
}

func (s *Screen) renderReport(cw int) string {
	rep := s.report
	if rep.Empty() {
		return theme.Caution.Render(rep.Feedback())
	}

	var b strings.Builder
	b.WriteString(theme.Body.Bold(true).Render(rep.Feedback()))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Render(fmt.Sprintf("Accuracy: %d%% (%d of %d correct)", rep.Accuracy, rep.Correct, rep.Filled)))
	b.WriteString("\n")
	for _, item := range rep.Checklist() {
		b.WriteString(item.Text)
		b.WriteString("\n")
	}
	if s.explanation != nil {
		b.WriteString(lipgloss.NewStyle().Width(components.InnerWidth(cw)).Foreground(theme.Secondary).Render(
			fmt.Sprintf("💡 Row %d: %s %s", s.explained+1, s.explanation.Explanation, s.explanation.Tip)))
	}
	return b.String()
}
