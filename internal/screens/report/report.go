// Package report shows the overall star rating and per-level status.
package report

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/theme"
)

type Screen struct {
	lab *lab.Lab
}

var _ screen.Screen = (*Screen)(nil)

func New(l *lab.Lab) *Screen {
	return &Screen{lab: l}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Progress Report"
}

func (s *Screen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	r := s.lab.Rating()
	p := s.lab.Progress()

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(r.StarText()))
	b.WriteString("  ")
	b.WriteString(components.Heading(r.Headline()))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Width(components.InnerWidth(cw)).Render(r.Message()))
	b.WriteString("\n\n")

	q := s.lab.Quiz()
	b.WriteString(levelLine("Level 1", fmt.Sprintf("%d of %d correct (%.0f%%)", q.Score(), q.Total(), q.Percent()), q.Complete()))
	b.WriteString(levelLine("Level 2", s.lab.Level2Tier().String(), s.lab.Level2Tier().Complete()))
	b.WriteString(levelLine("Level 3", s.lab.Level3Tier().String(), s.lab.Level3Tier().Complete()))
	b.WriteString("\n")

	into, span := p.XPIntoLevel()
	bar := components.NewProgressBar(fmt.Sprintf("Level %d", p.Level()), float64(into)/float64(span), components.InnerWidth(cw))
	bar.Caption = fmt.Sprintf("%d/%d XP", into, span)
	b.WriteString(bar.View())

	return components.Center(components.Panel(b.String(), cw), width, height)
}

func levelLine(name, status string, done bool) string {
	mark := lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
	if done {
		mark = theme.Correct.Render("✓")
	}
	return fmt.Sprintf("%s %s  %s\n", mark, theme.Body.Bold(true).Render(name), status)
}
