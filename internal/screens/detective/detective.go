// Package detective is the Level 1 screen: classify one value at a time.
package detective

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/coach"
	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/quiz"
	"github.com/abhisek/testlab/internal/router"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/layout"
	"github.com/abhisek/testlab/internal/ui/theme"
)

// advanceMsg fires once the feedback delay for ticket has elapsed.
type advanceMsg struct {
	ticket quiz.Ticket
}

// explainMsg carries the coach's take on a wrong answer.
type explainMsg struct {
	feedback coach.Feedback
}

// Screen runs the Level 1 quiz.
type Screen struct {
	lab   *lab.Lab
	delay time.Duration

	picker  components.KindPicker
	result  *quiz.AnswerResult
	summary *quiz.Summary

	explaining  bool
	explanation *coach.Feedback
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen. delay is how long answer feedback stays up
// before the next question.
func New(l *lab.Lab, delay time.Duration) *Screen {
	s := &Screen{lab: l, delay: delay}
	if l.Quiz().Complete() {
		sum := l.Quiz().Summary()
		s.summary = &sum
	}
	return s
}

// Init resumes an answer left waiting when the screen was last closed.
func (s *Screen) Init() tea.Cmd {
	if s.summary != nil {
		return nil
	}
	if t, ok := s.lab.Quiz().Pending(); ok {
		return advanceAfter(s.delay, t)
	}
	return nil
}

func (s *Screen) Title() string {
	return "Level 1 · Data Detective"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.summary != nil {
		return []layout.KeyHint{
			{Key: "R", Description: "Play again"},
			{Key: "Enter", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: "1-4", Description: "Answer"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		moved, sum := s.lab.Advance(msg.ticket)
		if moved {
			s.result = nil
			s.picker = components.KindPicker{}
			s.summary = sum
		}
		return s, nil

	case explainMsg:
		s.explaining = false
		fb := msg.feedback
		s.explanation = &fb
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.summary != nil {
		switch msg.String() {
		case "r", "R":
			s.lab.RestartLevel1()
			s.summary = nil
			s.explanation = nil
			s.picker = components.KindPicker{}
			return s, nil
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	// Answers are locked while feedback is showing.
	if s.result != nil {
		return s, nil
	}

	picker, kind := s.picker.Update(msg)
	s.picker = picker
	if kind == "" {
		return s, nil
	}

	res := s.lab.Answer(kind)
	if res == nil {
		return s, nil
	}
	s.result = res
	s.explanation = nil

	cmds := []tea.Cmd{advanceAfter(s.delay, res.Ticket)}
	if !res.Correct {
		s.explaining = true
		cmds = append(cmds, s.explain(res))
	}
	return s, tea.Batch(cmds...)
}

func advanceAfter(d time.Duration, t quiz.Ticket) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return advanceMsg{ticket: t}
	})
}

func (s *Screen) explain(res *quiz.AnswerResult) tea.Cmd {
	l := s.lab
	in := coach.Input{
		Field:   res.Question.Field,
		Rule:    res.Question.Check,
		Value:   res.Question.Value,
		Chosen:  res.Chosen,
		Correct: res.Question.Type,
	}
	return func() tea.Msg {
		return explainMsg{feedback: l.Explain(context.Background(), in)}
	}
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	if s.summary != nil {
		return components.Center(s.renderSummary(cw), width, height)
	}

	var b strings.Builder
	q, ok := s.lab.Quiz().Current()
	if !ok {
		return ""
	}

	b.WriteString(theme.Subtitle.Render(s.lab.Quiz().ProgressText()))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Bold(true).Render(q.Field))
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render(q.Rule))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().
		Width(components.InnerWidth(cw)).
		Align(lipgloss.Center).
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("Test value: %q", q.Value)))
	b.WriteString("\n\n")
	b.WriteString(s.picker.View())

	if s.result != nil {
		b.WriteString("\n\n")
		style := theme.Incorrect
		if s.result.Correct {
			style = theme.Correct
		}
		b.WriteString(style.Render(s.result.Feedback))
	}
	if line := s.coachLine(cw); line != "" {
		b.WriteString("\n\n")
		b.WriteString(line)
	}

	return components.Center(components.Panel(b.String(), cw), width, height)
}

func (s *Screen) coachLine(cw int) string {
	switch {
	case s.explaining:
		return theme.Hint.Render("Coach is thinking...")
	case s.explanation == nil:
		return ""
	}
	text := "💡 " + s.explanation.Explanation
	if s.explanation.Tip != "" {
		text += "\n   " + s.explanation.Tip
	}
	return lipgloss.NewStyle().Width(components.InnerWidth(cw)).Foreground(theme.Secondary).Render(text)
}

func (s *Screen) renderSummary(cw int) string {
	var b strings.Builder
	b.WriteString(components.Heading(s.summary.Message()))
	if c := s.summary.Celebration(); c != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Correct.Render(c))
	}
	b.WriteString("\n\n")
	b.WriteString(theme.Hint.Render("Press R to play again or Enter to go back."))
	return components.Panel(b.String(), cw)
}
