package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/store"
	"github.com/abhisek/testlab/internal/ui/layout"
	"github.com/abhisek/testlab/internal/ui/theme"
)

// Limit is how many attempts the screen loads.
const Limit = 50

type historyLoadedMsg struct {
	Attempts []store.AttemptEventRecord
	Err      error
}

// HistoryScreen lists recent level attempts across sessions. Enter
// expands an attempt's detail.
type HistoryScreen struct {
	eventRepo store.EventRepo
	attempts  []store.AttemptEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

func New(eventRepo store.EventRepo) *HistoryScreen {
	return &HistoryScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		attempts, err := repo.QueryAttempts(context.Background(), store.QueryOpts{Limit: Limit})
		return historyLoadedMsg{Attempts: attempts, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.attempts = msg.Attempts
		}
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.attempts)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.attempts) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No attempts yet. Pick a level to get started!")
	}

	var b strings.Builder
	b.WriteString("\n")

	// Keep the selection on screen.
	visible := max(height-4, 3)
	start := max(s.selected-visible+1, 0)

	for i := start; i < len(s.attempts) && i < start+visible; i++ {
		a := s.attempts[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  Level %d  %-12s %d/%d", prefix,
			a.Timestamp.Local().Format("Jan 02 15:04"), a.Level, a.Outcome, a.Score, a.Total)
		if a.Level == 2 {
			line += fmt.Sprintf("  %d%% accuracy", a.Accuracy)
		}

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			detail := a.Detail
			if detail == "" {
				detail = "No details recorded"
			}
			for _, d := range strings.Split(detail, "\n") {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).Render("    "+d)))
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}
