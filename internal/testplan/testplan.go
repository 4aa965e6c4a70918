// Package testplan implements Level 3: a written test plan entry checked
// for completeness and a rough measure of quality.
package testplan

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/abhisek/testlab/internal/catalog"
)

// Progress is the slice of the progress state the checker drives.
type Progress interface {
	AwardXP(amount int, reason string)
	Unlock(id string) bool
}

// Entry is one test plan row as typed by the learner.
type Entry struct {
	ID       string
	Purpose  string
	Data     string
	Expected string
	Actual   string
}

// Field names in form order, as reported when missing.
const (
	FieldID       = "Test ID"
	FieldPurpose  = "Purpose"
	FieldData     = "Test data"
	FieldExpected = "Expected result"
	FieldActual   = "Actual result"
)

// Fields lists the required fields in form order.
var Fields = []string{FieldID, FieldPurpose, FieldData, FieldExpected, FieldActual}

// Trimmed returns the entry with surrounding whitespace removed.
func (e Entry) Trimmed() Entry {
	return Entry{
		ID:       strings.TrimSpace(e.ID),
		Purpose:  strings.TrimSpace(e.Purpose),
		Data:     strings.TrimSpace(e.Data),
		Expected: strings.TrimSpace(e.Expected),
		Actual:   strings.TrimSpace(e.Actual),
	}
}

// Missing returns the names of blank fields in form order.
func (e Entry) Missing() []string {
	t := e.Trimmed()
	var missing []string
	for i, v := range []string{t.ID, t.Purpose, t.Data, t.Expected, t.Actual} {
		if v == "" {
			missing = append(missing, Fields[i])
		}
	}
	return missing
}

// Quality scores a complete entry from 0 to 4, one point each for a
// descriptive purpose, data written as name=value or name: value, a
// specific expected result, and an actual result that is recorded or
// marked as not run.
func (e Entry) Quality() int {
	t := e.Trimmed()
	score := 0
	if utf8.RuneCountInString(t.Purpose) > 20 {
		score++
	}
	if strings.ContainsAny(t.Data, "=:") {
		score++
	}
	if utf8.RuneCountInString(t.Expected) > 15 {
		score++
	}
	if strings.Contains(strings.ToLower(t.Actual), "not run") || utf8.RuneCountInString(t.Actual) > 10 {
		score++
	}
	return score
}

// Tier is the outcome band of a check.
type Tier int

const (
	// TierNone means no check has produced a result yet.
	TierNone Tier = iota
	TierIncomplete
	TierGood
	TierOutstanding
)

// Complete reports whether the tier marks Level 3 as done.
func (t Tier) Complete() bool {
	return t == TierGood || t == TierOutstanding
}

func (t Tier) String() string {
	switch t {
	case TierOutstanding:
		return "outstanding"
	case TierGood:
		return "good"
	case TierIncomplete:
		return "incomplete"
	default:
		return "none"
	}
}

// Report is the result of checking an entry.
type Report struct {
	Missing []string
	Quality int
	Tier    Tier
}

// Feedback returns the text shown after a check.
func (r Report) Feedback() string {
	switch r.Tier {
	case TierOutstanding:
		return "🌟 OUTSTANDING! Professional-quality test plan with comprehensive details."
	case TierGood:
		return "✅ Good test plan! All sections completed with adequate detail."
	case TierIncomplete:
		return fmt.Sprintf("📝 Test plan incomplete. Please add details for: %s.", strings.Join(r.Missing, ", "))
	default:
		return ""
	}
}

// Evaluate checks an entry without touching any progress state.
func Evaluate(e Entry) Report {
	if missing := e.Missing(); len(missing) > 0 {
		return Report{Missing: missing, Tier: TierIncomplete}
	}
	q := e.Quality()
	if q >= 3 {
		return Report{Quality: q, Tier: TierOutstanding}
	}
	return Report{Quality: q, Tier: TierGood}
}

// Checker evaluates entries and applies the rewards.
type Checker struct {
	progress Progress
}

// NewChecker creates a Checker.
func NewChecker(progress Progress) *Checker {
	return &Checker{progress: progress}
}

// Check evaluates e. A complete entry earns 75 XP when its quality score
// is at least 3 and 50 XP otherwise, and unlocks level_3_complete either
// way. An incomplete entry earns nothing.
func (c *Checker) Check(e Entry) Report {
	rep := Evaluate(e)
	switch rep.Tier {
	case TierOutstanding:
		c.progress.AwardXP(75, "Excellent Test Plan!")
	case TierGood:
		c.progress.AwardXP(50, "Good Test Plan!")
	default:
		return rep
	}
	c.progress.Unlock(catalog.Level3Complete)
	return rep
}
