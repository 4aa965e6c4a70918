package testset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/progress"
)

func newTestChecker(t *testing.T) (*Checker, *progress.Tracker) {
	t.Helper()
	tr := progress.NewTracker(&progress.MemoryStore{}, nil, nil)
	return NewChecker(tr), tr
}

func TestPerfectSet(t *testing.T) {
	c, tr := newTestChecker(t)
	rep := c.Check([]Row{
		{Value: "10", Chosen: classify.Valid},
		{Value: "25", Chosen: classify.Invalid},
		{Value: "0", Chosen: classify.Boundary},
		{Value: "fifteen", Chosen: classify.Erroneous},
		{},
		{},
	})

	assert.Equal(t, 4, rep.Filled)
	assert.Equal(t, 100, rep.Accuracy)
	assert.True(t, rep.FullCoverage)
	assert.Equal(t, TierPerfect, rep.Tier)
	assert.Empty(t, rep.Mismatches)
	assert.Equal(t, 50, tr.XP())
	assert.True(t, tr.Has(catalog.ComprehensiveTest))
	assert.True(t, tr.Has(catalog.Level2Complete))
	assert.Equal(t, "🌟 EXCELLENT! Perfect accuracy and complete coverage of all four test data types.", rep.Feedback())
}

func TestBoundaryLabelledValidAccepted(t *testing.T) {
	rep := Evaluate([]Row{{Value: "20", Chosen: classify.Valid}}, classify.JobsPerMonth)
	assert.Equal(t, 1, rep.Correct)
	assert.Empty(t, rep.Mismatches)
	assert.True(t, rep.Coverage[classify.Valid])
	assert.False(t, rep.Coverage[classify.Boundary], "coverage follows the chosen label")
}

func TestValidLabelledBoundaryRejected(t *testing.T) {
	rep := Evaluate([]Row{{Value: "10", Chosen: classify.Boundary}}, classify.JobsPerMonth)
	assert.Equal(t, 0, rep.Correct)
	require.Len(t, rep.Mismatches, 1)
	assert.Equal(t, `Row 1: you chose "boundary" but this behaves like "valid".`, rep.Mismatches[0])
}

func TestMissingTypeCountsTowardTotal(t *testing.T) {
	rep := Evaluate([]Row{
		{Value: "10", Chosen: classify.Valid},
		{},
		{Value: "5"},
	}, classify.JobsPerMonth)

	assert.Equal(t, 2, rep.Filled)
	assert.Equal(t, 1, rep.Correct)
	assert.Equal(t, 50, rep.Accuracy)
	assert.Equal(t, []string{"Row 3: choose a type for the test data."}, rep.Mismatches)
	assert.Equal(t, TierNeedsWork, rep.Tier)
}

func TestTypeWithoutValueIsFilled(t *testing.T) {
	rep := Evaluate([]Row{{Value: "  ", Chosen: classify.Erroneous}}, classify.JobsPerMonth)
	assert.Equal(t, 1, rep.Filled)
	assert.Equal(t, 1, rep.Correct, "blank value behaves like erroneous data")
}

func TestEmptySetAwardsNothing(t *testing.T) {
	c, tr := newTestChecker(t)
	rep := c.Check(make([]Row, DefaultRows))

	assert.True(t, rep.Empty())
	assert.Equal(t, EmptyWarning, rep.Feedback())
	assert.Equal(t, TierNone, rep.Tier)
	assert.Nil(t, rep.Checklist())
	assert.Equal(t, 0, tr.XP())
	assert.Empty(t, tr.Achievements())
}

func TestTiers(t *testing.T) {
	full := []Row{
		{Value: "10", Chosen: classify.Valid},
		{Value: "25", Chosen: classify.Invalid},
		{Value: "0", Chosen: classify.Boundary},
		{Value: "abc", Chosen: classify.Erroneous},
	}
	wrong := Row{Value: "5", Chosen: classify.Invalid}

	for _, tt := range []struct {
		name      string
		rows      []Row
		wantTier  Tier
		wantXP    int
		wantComp  bool
		wantLevel bool
	}{
		// 5 of 6 correct = 83%, all kinds chosen.
		{"great", append(append([]Row{}, full...), Row{Value: "3", Chosen: classify.Valid}, wrong), TierGreat, 35, true, true},
		// 3 of 4 correct = 75%, erroneous never chosen.
		{"good without coverage", []Row{full[0], full[1], full[2], wrong}, TierGood, 25, false, false},
		// 4 of 6 correct = 67%, all kinds chosen.
		{"good with coverage", []Row{full[0], full[1], full[2], full[3], wrong, wrong}, TierGood, 25, true, false},
		// 1 of 3 correct = 33%.
		{"needs work", []Row{wrong, wrong, full[0]}, TierNeedsWork, 10, false, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			c, tr := newTestChecker(t)
			rep := c.Check(tt.rows)
			assert.Equal(t, tt.wantTier, rep.Tier)
			assert.Equal(t, tt.wantXP, tr.XP())
			assert.Equal(t, tt.wantComp, tr.Has(catalog.ComprehensiveTest))
			assert.Equal(t, tt.wantLevel, tr.Has(catalog.Level2Complete))
			assert.Equal(t, tt.wantLevel, rep.Tier.Complete())
		})
	}
}

func TestChecklist(t *testing.T) {
	rep := Evaluate([]Row{
		{Value: "10", Chosen: classify.Valid},
		{Value: "21", Chosen: classify.Boundary},
	}, classify.JobsPerMonth)

	items := rep.Checklist()
	require.Len(t, items, 5)
	assert.Equal(t, ChecklistItem{Text: "✅ You included at least one valid test.", OK: true}, items[0])
	assert.Equal(t, ChecklistItem{Text: "❌ You did not include any invalid test."}, items[1])
	assert.Equal(t, ChecklistItem{Text: "✅ You included at least one boundary test.", OK: true}, items[2])
	assert.Equal(t, ChecklistItem{Text: "❌ You did not include any erroneous test."}, items[3])
	assert.Equal(t, ChecklistItem{Text: `⚠️ Row 2: you chose "boundary" but this behaves like "invalid".`}, items[4])
}

func TestRepeatedChecksAwardEachTime(t *testing.T) {
	c, tr := newTestChecker(t)
	rows := []Row{{Value: "fifteen", Chosen: classify.Valid}}
	c.Check(rows)
	c.Check(rows)
	assert.Equal(t, 20, tr.XP())
}
