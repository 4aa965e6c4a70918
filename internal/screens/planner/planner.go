// Package planner is the Level 3 screen: write one test plan entry.
package planner

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/testplan"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/layout"
	"github.com/abhisek/testlab/internal/ui/theme"
)

var placeholders = []string{
	"TC-JOBS-01",
	"Check the upper boundary is accepted",
	"jobs=20",
	"Value is accepted and the job is scheduled",
	"Not run yet",
}

// Screen edits a single test plan entry.
type Screen struct {
	lab *lab.Lab

	fields []components.TextInput
	focus  int
	button components.Button
	report *testplan.Report
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)
var _ screen.InputCapturer = (*Screen)(nil)

func New(l *lab.Lab) *Screen {
	s := &Screen{lab: l}
	for i, name := range testplan.Fields {
		s.fields = append(s.fields, components.NewTextInput(name, placeholders[i], 120))
	}
	s.button = components.NewButton("Check Test Plan", func() tea.Cmd {
		s.check()
		return nil
	})
	return s
}

func (s *Screen) Init() tea.Cmd {
	return s.setFocus(0)
}

func (s *Screen) Title() string {
	return "Level 3 · Test Planner"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab/↑↓", Description: "Move"},
		{Key: "Ctrl+S", Description: "Check"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) CapturingInput() bool {
	return s.focus < len(s.fields)
}

// Entry returns the plan as typed.
func (s *Screen) Entry() testplan.Entry {
	v := make([]string, len(s.fields))
	for i, f := range s.fields {
		v[i] = f.Value()
	}
	return testplan.Entry{ID: v[0], Purpose: v[1], Data: v[2], Expected: v[3], Actual: v[4]}
}

func (s *Screen) setFocus(f int) tea.Cmd {
	n := len(s.fields) + 1
	s.focus = (f%n + n) % n
	var cmd tea.Cmd
	for i := range s.fields {
		if i == s.focus {
			cmd = s.fields[i].Focus()
		} else {
			s.fields[i].Blur()
		}
	}
	s.button.Active = s.focus == len(s.fields)
	return cmd
}

func (s *Screen) check() {
	rep := s.lab.CheckTestPlan(s.Entry())
	s.report = &rep
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "tab", "down":
			return s, s.setFocus(s.focus + 1)
		case "shift+tab", "up":
			return s, s.setFocus(s.focus - 1)
		case "ctrl+s":
			s.check()
			return s, nil
		case "enter":
			if !s.CapturingInput() {
				var cmd tea.Cmd
				s.button, cmd = s.button.Update(kmsg)
				return s, cmd
			}
			return s, s.setFocus(s.focus + 1)
		}
	}

	if !s.CapturingInput() {
		return s, nil
	}
	var cmd tea.Cmd
	s.fields[s.focus], cmd = s.fields[s.focus].Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.Heading("Write a test plan entry for jobs per month"))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("Fill in every field. Specific purposes and results score higher."))
	b.WriteString("\n\n")
	for _, f := range s.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(s.button.View())

	if s.report != nil {
		b.WriteString("\n\n")
		style := theme.Correct
		if !s.report.Tier.Complete() {
			style = theme.Caution
		}
		b.WriteString(style.Width(components.InnerWidth(cw)).Render(s.report.Feedback()))
	}
	return components.Center(components.Panel(b.String(), cw), width, height)
}
