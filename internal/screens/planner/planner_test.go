package planner

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/testplan"
)

var ctrlS = tea.KeyPressMsg{Code: 's', Mod: tea.ModCtrl}

func typeText(s *Screen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func newScreen() (*Screen, *lab.Lab) {
	l := lab.New(lab.Options{Seed: 1})
	s := New(l)
	s.Init()
	return s, l
}

func TestIncompletePlanListsMissing(t *testing.T) {
	s, l := newScreen()
	typeText(s, "TC-1")
	s.Update(ctrlS)

	require.NotNil(t, s.report)
	assert.Equal(t, testplan.TierIncomplete, s.report.Tier)
	assert.Contains(t, s.report.Feedback(), "Please add details for: Purpose, Test data, Expected result, Actual result.")
	assert.Contains(t, s.View(100, 40), "Test plan incomplete")
	assert.Equal(t, 0, l.Progress().XP())
}

func TestOutstandingPlanViaButton(t *testing.T) {
	s, l := newScreen()
	values := []string{
		"TC-JOBS-02",
		"Check the upper boundary of jobs per month",
		"jobs=20",
		"Value is accepted without error",
		"Not run yet",
	}
	for _, v := range values {
		typeText(s, v)
		s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	}
	require.True(t, s.button.Active, "enter on the last field moves to the button")
	assert.Equal(t, "jobs=20", s.Entry().Data)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, s.report)
	assert.Equal(t, testplan.TierOutstanding, s.report.Tier)
	assert.Equal(t, 75, l.Progress().XP())
	assert.True(t, l.Progress().Has(catalog.Level3Complete))
	assert.Contains(t, s.View(100, 40), "OUTSTANDING")
}

func TestFocusWraps(t *testing.T) {
	s, _ := newScreen()
	s.Update(tea.KeyPressMsg{Code: tea.KeyUp})
	assert.False(t, s.CapturingInput())
	s.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	assert.Equal(t, 0, s.focus)
}
