// Package trophies shows the achievement catalog with what is unlocked.
package trophies

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/store"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/theme"
)

// Unlocked is the part of the progress state the screen reads.
type Unlocked interface {
	Has(id string) bool
}

type unlockTimesMsg struct {
	times map[string]time.Time
	err   error
}

type Screen struct {
	progress Unlocked
	events   store.EventRepo
	times    map[string]time.Time
}

var _ screen.Screen = (*Screen)(nil)

// New creates the screen. events may be nil, in which case unlock dates
// are not shown.
func New(progress Unlocked, events store.EventRepo) *Screen {
	return &Screen{progress: progress, events: events}
}

func (s *Screen) Init() tea.Cmd {
	if s.events == nil {
		return nil
	}
	repo := s.events
	return func() tea.Msg {
		times, err := repo.AchievementUnlockTimes(context.Background())
		return unlockTimesMsg{times: times, err: err}
	}
}

func (s *Screen) Title() string {
	return "Trophies"
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if m, ok := msg.(unlockTimesMsg); ok && m.err == nil {
		s.times = m.times
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	all := catalog.Achievements()

	var b strings.Builder
	count := 0
	for _, a := range all {
		if s.progress.Has(a.ID) {
			count++
		}
	}
	b.WriteString(components.Heading(fmt.Sprintf("🏆 %d of %d unlocked", count, len(all))))
	b.WriteString("\n\n")

	dim := lipgloss.NewStyle().Foreground(theme.TextDim)
	for _, a := range all {
		if !s.progress.Has(a.ID) {
			b.WriteString(dim.Render(fmt.Sprintf("🔒 %s  %s", a.Title, a.Description)))
			b.WriteString("\n")
			continue
		}
		line := theme.Correct.Render(fmt.Sprintf("%s %s", a.Icon, a.Title)) + "  " + theme.Body.Render(a.Description)
		if t, ok := s.times[a.ID]; ok {
			line += dim.Render("  " + t.Local().Format("Jan 02"))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return components.Center(components.Panel(b.String(), cw), width, height)
}
