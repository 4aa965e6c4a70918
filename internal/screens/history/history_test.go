package history

import (
	"context"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/testlab/internal/store"
)

func openRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func load(t *testing.T, s *HistoryScreen) {
	t.Helper()
	cmd := s.Init()
	require.NotNil(t, cmd)
	s.Update(cmd())
}

func TestEmptyHistory(t *testing.T) {
	s := New(openRepo(t))
	assert.Contains(t, s.View(100, 30), "Loading history")
	load(t, s)
	assert.Contains(t, s.View(100, 30), "No attempts yet")
}

func TestListsAttemptsAndExpands(t *testing.T) {
	repo := openRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.AppendAttempt(ctx, store.AttemptEventData{
		SessionID: "s", Level: 1, Outcome: "perfect", Score: 15, Total: 15, Accuracy: 100,
	}))
	require.NoError(t, repo.AppendAttempt(ctx, store.AttemptEventData{
		SessionID: "s", Level: 3, Outcome: "incomplete", Total: 5, Detail: "missing: Purpose",
	}))

	s := New(repo)
	load(t, s)
	require.Len(t, s.attempts, 2)

	view := s.View(100, 30)
	assert.Contains(t, view, "Level 3")
	assert.Contains(t, view, "Level 1")
	assert.NotContains(t, view, "missing: Purpose")

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Contains(t, s.View(100, 30), "missing: Purpose")

	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 1, s.selected)
}

func TestKeyHints(t *testing.T) {
	s := New(nil)
	assert.Len(t, s.KeyHints(), 3)
	assert.Equal(t, "History", s.Title())
}
