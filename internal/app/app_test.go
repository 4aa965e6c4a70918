package app

import (
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/progress"
	"github.com/abhisek/testlab/internal/screens/detective"
	"github.com/abhisek/testlab/internal/screens/home"
	"github.com/abhisek/testlab/internal/screens/welcome"
	"github.com/abhisek/testlab/internal/ui/components"
)

func newModel(t *testing.T, opts Options) *AppModel {
	t.Helper()
	notices := NewNotices()
	opts.Lab = lab.New(lab.Options{Seed: 1, Notifier: notices})
	opts.Notices = notices
	opts.AdvanceDelay = time.Millisecond
	opts.NoticeDuration = time.Second
	m := newAppModel(opts)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func digitFor(k classify.Kind) rune {
	for i, kk := range classify.AllKinds {
		if kk == k {
			return rune('1' + i)
		}
	}
	return '1'
}

func TestStartsOnHome(t *testing.T) {
	m := newModel(t, Options{})
	assert.IsType(t, &home.HomeScreen{}, m.router.Active())
	assert.Nil(t, m.start)

	view := m.render()
	assert.Contains(t, view, "Test Lab")
	assert.Contains(t, view, "Level 1 · Data Detective")
}

func TestIntroFirst(t *testing.T) {
	m := newModel(t, Options{Intro: true})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())
}

func TestStartLevelPushesScreen(t *testing.T) {
	m := newModel(t, Options{StartLevel: 1})
	require.NotNil(t, m.start)
	m.Update(m.start())
	assert.IsType(t, &detective.Screen{}, m.router.Active())
	assert.Equal(t, 2, m.router.Depth())

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	m.Update(cmd())
	assert.Equal(t, 1, m.router.Depth())
}

func TestAnswerRaisesToasts(t *testing.T) {
	m := newModel(t, Options{StartLevel: 1})
	m.Update(m.start())

	q, ok := m.lab.Quiz().Current()
	require.True(t, ok)
	m.Update(tea.KeyPressMsg{Code: digitFor(q.Type), Text: string(digitFor(q.Type))})

	texts := m.toasts.Texts()
	require.Len(t, texts, 2)
	assert.Equal(t, "+10 XP · Correct!", texts[0])
	assert.Contains(t, texts[1], "First Success")

	view := m.render()
	assert.Contains(t, view, "XP 10")
	assert.Contains(t, view, "+10 XP")

	m.Update(components.ToastExpiredMsg{ID: 1})
	assert.Len(t, m.toasts.Texts(), 1)
}

func TestQuitKeys(t *testing.T) {
	m := newModel(t, Options{})

	_, cmd := m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	assert.True(t, ok)

	_, cmd = m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, ok = cmd().(tea.QuitMsg)
	assert.True(t, ok)
}

func TestQTypedIntoInput(t *testing.T) {
	m := newModel(t, Options{StartLevel: 3})
	m.Update(m.start())
	m.Update(tea.KeyPressMsg{Code: 'q', Text: "q"})
	assert.Equal(t, 2, m.router.Depth(), "q goes to the focused field")
}

func TestTooSmall(t *testing.T) {
	m := newModel(t, Options{})
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	assert.Contains(t, m.render(), "Terminal too small!")
}

func TestNoticesTexts(t *testing.T) {
	n := NewNotices()
	n.XPGained(5, "Streak Bonus!")
	n.StreakEffect(3)
	n.LevelChanged(1, 2)
	n.AchievementUnlocked(progress.Notice{Icon: "🎯", Title: "Level 2 Reached!", Description: "You've reached level 2!"})

	assert.Equal(t, []string{
		"+5 XP · Streak Bonus!",
		"🔥 3 in a row!",
		"🎯 Level 2 Reached!\nYou've reached level 2!",
	}, n.Drain())
	assert.Empty(t, n.Drain())
}
