package lab

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/coach"
	"github.com/abhisek/testlab/internal/progress"
	"github.com/abhisek/testlab/internal/quiz"
	"github.com/abhisek/testlab/internal/rating"
	"github.com/abhisek/testlab/internal/store"
	"github.com/abhisek/testlab/internal/testplan"
	"github.com/abhisek/testlab/internal/testset"
)

func openEvents(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "lab.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

// playLevel1 answers every question, correctly while correct is true.
func playLevel1(t *testing.T, l *Lab, correct bool) *quiz.Summary {
	t.Helper()
	for {
		q, ok := l.Quiz().Current()
		require.True(t, ok)

		chosen := q.Type
		if !correct {
			chosen = classify.Erroneous
			if q.Type == classify.Erroneous {
				chosen = classify.Valid
			}
		}
		res := l.Answer(chosen)
		require.NotNil(t, res)

		moved, sum := l.Advance(res.Ticket)
		require.True(t, moved)
		if sum != nil {
			return sum
		}
	}
}

func perfectRows() []testset.Row {
	return []testset.Row{
		{Value: "10", Chosen: classify.Valid},
		{Value: "25", Chosen: classify.Invalid},
		{Value: "0", Chosen: classify.Boundary},
		{Value: "abc", Chosen: classify.Erroneous},
	}
}

func outstandingPlan() testplan.Entry {
	return testplan.Entry{
		ID:       "TC-JOBS-01",
		Purpose:  "Check the upper boundary of jobs per month",
		Data:     "jobs=20",
		Expected: "Value is accepted without error",
		Actual:   "Not run yet",
	}
}

func TestFullRunEarnsCertification(t *testing.T) {
	mem := &progress.MemoryStore{}
	l := New(Options{Store: mem, Seed: 7})

	sum := playLevel1(t, l, true)
	assert.True(t, sum.Perfect)
	assert.Equal(t, 200, l.Progress().XP())
	assert.Equal(t, 1, l.Rating().Stars)

	rep := l.CheckTestSet(perfectRows())
	assert.Equal(t, testset.TierPerfect, rep.Tier)
	assert.Equal(t, 2, l.Rating().Stars)

	plan := l.CheckTestPlan(outstandingPlan())
	assert.Equal(t, testplan.TierOutstanding, plan.Tier)

	r := l.Rating()
	assert.Equal(t, 3, r.Stars)
	assert.True(t, r.Certified)
	assert.True(t, r.NewlyCertified)
	assert.Equal(t, rating.TierCertified, r.Tier)

	// 200 + 50 + 75 + 100 certification.
	assert.Equal(t, 425, l.Progress().XP())
	assert.True(t, l.Progress().Has(catalog.CertifiedEngineer))
	require.NotNil(t, mem.Snap)
	assert.Equal(t, 425, mem.Snap.XP)

	// Checking again does not grant the bonus twice.
	l.CheckTestPlan(outstandingPlan())
	assert.Equal(t, 500, l.Progress().XP())
	assert.False(t, l.Rating().NewlyCertified)
}

func TestLowLevel1ScoreBlocksCertification(t *testing.T) {
	l := New(Options{Seed: 1})
	sum := playLevel1(t, l, false)
	assert.Equal(t, 0, sum.Score)

	l.CheckTestSet(perfectRows())
	l.CheckTestPlan(outstandingPlan())

	r := l.Rating()
	assert.Equal(t, 2, r.Stars)
	assert.False(t, r.Certified)
	assert.False(t, l.Progress().Has(catalog.CertifiedEngineer))
}

func TestEmptyTestSetClearsLevel2(t *testing.T) {
	l := New(Options{Seed: 1})

	l.CheckTestSet(perfectRows())
	assert.True(t, l.Level2Tier().Complete())
	xp := l.Progress().XP()

	rep := l.CheckTestSet(make([]testset.Row, 6))
	assert.True(t, rep.Empty())
	assert.Equal(t, testset.EmptyWarning, rep.Feedback())
	assert.Equal(t, testset.TierNone, l.Level2Tier())
	assert.Equal(t, xp, l.Progress().XP(), "empty check awards nothing")
}

func TestIncompletePlanClearsLevel3(t *testing.T) {
	l := New(Options{Seed: 1})

	l.CheckTestPlan(outstandingPlan())
	assert.True(t, l.Level3Tier().Complete())
	assert.Equal(t, 1, l.Rating().Stars)

	rep := l.CheckTestPlan(testplan.Entry{ID: "TC-1"})
	assert.Equal(t, testplan.TierIncomplete, rep.Tier)
	assert.Equal(t, 0, l.Rating().Stars)
}

func TestSeedFixesQuestionOrder(t *testing.T) {
	a := New(Options{Seed: 42})
	b := New(Options{Seed: 42})

	qa, _ := a.Quiz().Current()
	qb, _ := b.Quiz().Current()
	assert.Equal(t, qa, qb)
	assert.Equal(t, len(catalog.Questions()), a.Quiz().Total())
}

func TestRestartLevel1KeepsProgress(t *testing.T) {
	l := New(Options{Seed: 3})
	playLevel1(t, l, true)
	xp := l.Progress().XP()

	l.RestartLevel1()
	assert.False(t, l.Quiz().Complete())
	assert.Equal(t, 0, l.Quiz().Score())
	assert.Equal(t, xp, l.Progress().XP())
}

func TestRestartLevel1KeepsBestScoreForRating(t *testing.T) {
	l := New(Options{Seed: 3})
	playLevel1(t, l, true)
	assert.Equal(t, 1, l.Rating().Stars)

	l.RestartLevel1()
	l.CheckTestSet(perfectRows())
	l.CheckTestPlan(outstandingPlan())

	r := l.Rating()
	assert.Equal(t, 3, r.Stars)
	assert.True(t, r.Certified)
}

func TestStaleTicketIgnored(t *testing.T) {
	l := New(Options{Seed: 5})

	q, _ := l.Quiz().Current()
	res := l.Answer(q.Type)
	require.NotNil(t, res)
	assert.Nil(t, l.Answer(q.Type), "answer while advance pending is ignored")

	moved, _ := l.Advance(res.Ticket)
	assert.True(t, moved)
	moved, _ = l.Advance(res.Ticket)
	assert.False(t, moved, "duplicate ticket is ignored")
}

func TestJournalRecordsEvents(t *testing.T) {
	events := openEvents(t)
	l := New(Options{Seed: 9, Events: events, SessionID: "s-1"})
	ctx := context.Background()

	q, _ := l.Quiz().Current()
	res := l.Answer(q.Type)
	l.Advance(res.Ticket)

	xp, err := events.QueryXP(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, xp, 1)
	assert.Equal(t, 10, xp[0].Amount)
	assert.Equal(t, 10, xp[0].TotalXP)
	assert.Equal(t, "s-1", xp[0].SessionID)

	ach, err := events.QueryAchievements(ctx, store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, ach, 1)
	assert.Equal(t, catalog.FirstCorrect, ach[0].AchievementID)

	l.CheckTestSet(perfectRows())
	l.CheckTestPlan(testplan.Entry{ID: "TC-1"})

	attempts, err := events.QueryAttempts(ctx, store.QueryOpts{SessionID: "s-1"})
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, 3, attempts[0].Level)
	assert.Equal(t, "incomplete", attempts[0].Outcome)
	assert.Contains(t, attempts[0].Detail, "Purpose")
	assert.Equal(t, 2, attempts[1].Level)
	assert.Equal(t, 100, attempts[1].Accuracy)
}

type notices struct{ got []progress.Notice }

func (n *notices) XPGained(int, string)                  {}
func (n *notices) AchievementUnlocked(no progress.Notice) { n.got = append(n.got, no) }
func (n *notices) StreakEffect(int)                      {}
func (n *notices) LevelChanged(int, int)                 {}

func TestNotifierAndJournalBothReceive(t *testing.T) {
	events := openEvents(t)
	rec := &notices{}
	l := New(Options{Seed: 9, Events: events, Notifier: rec})

	q, _ := l.Quiz().Current()
	l.Answer(q.Type)

	require.Len(t, rec.got, 1)
	assert.Equal(t, catalog.FirstCorrect, rec.got[0].ID)

	ach, _ := events.QueryAchievements(context.Background(), store.QueryOpts{})
	assert.Len(t, ach, 1)
}

func TestExplainWithoutCoach(t *testing.T) {
	l := New(Options{Seed: 1})
	assert.False(t, l.CoachEnabled())

	fb := l.Explain(context.Background(), coach.Input{
		Rule:    l.TestSetRule(),
		Value:   "25",
		Chosen:  classify.Valid,
		Correct: classify.Invalid,
	})
	assert.Equal(t, coach.SourceRules, fb.Source)
	assert.Contains(t, fb.Explanation, "invalid data")
	assert.Equal(t, testset.DefaultRows, l.TestSetRows())
}
