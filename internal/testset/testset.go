// Package testset implements Level 2: the learner builds a set of test
// values for the jobs-per-month rule and labels each one. The set is
// scored for labelling accuracy and for coverage of all four kinds.
package testset

import (
	"fmt"
	"math"
	"strings"

	"github.com/abhisek/testlab/internal/catalog"
	"github.com/abhisek/testlab/internal/classify"
)

// DefaultRows is the number of rows offered to the learner.
const DefaultRows = 6

// EmptyWarning is shown when a check is requested with no rows filled in.
const EmptyWarning = "⚠️ Add at least one test value first."

// Progress is the slice of the progress state the checker drives.
type Progress interface {
	AwardXP(amount int, reason string)
	Unlock(id string) bool
}

// Row is one learner-entered test value and its chosen label. An empty
// Chosen means no label was picked.
type Row struct {
	Value  string
	Chosen classify.Kind
}

func (r Row) blank() bool {
	return strings.TrimSpace(r.Value) == "" && r.Chosen == ""
}

// Tier is the outcome band of a check.
type Tier int

const (
	// TierNone means no check has produced a result yet.
	TierNone Tier = iota
	TierNeedsWork
	TierGood
	TierGreat
	TierPerfect
)

// Complete reports whether the tier marks Level 2 as done. Only the two
// full-coverage tiers do.
func (t Tier) Complete() bool {
	return t == TierPerfect || t == TierGreat
}

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierGreat:
		return "great"
	case TierGood:
		return "good"
	case TierNeedsWork:
		return "needs-work"
	default:
		return "none"
	}
}

// XP returns the award and its reason for the tier.
func (t Tier) XP() (int, string) {
	switch t {
	case TierPerfect:
		return 50, "Perfect Test Set!"
	case TierGreat:
		return 35, "Great Test Set!"
	case TierGood:
		return 25, "Good Progress!"
	case TierNeedsWork:
		return 10, "Keep Trying!"
	default:
		return 0, ""
	}
}

// Feedback returns the summary sentence for the tier.
func (t Tier) Feedback() string {
	switch t {
	case TierPerfect:
		return "🌟 EXCELLENT! Perfect accuracy and complete coverage of all four test data types."
	case TierGreat:
		return "🎉 Great work! You covered all categories with good accuracy."
	case TierGood:
		return "👍 Good start! Some improvements needed for accuracy or coverage."
	case TierNeedsWork:
		return "📚 Your test set needs work. Focus on covering all types and matching the validation rules for jobs per month."
	default:
		return ""
	}
}

// ChecklistItem is one line of the coverage and mismatch checklist.
type ChecklistItem struct {
	Text string
	OK   bool
}

// Report is the evaluation of a test set.
type Report struct {
	Filled       int
	Correct      int
	Accuracy     int
	Coverage     map[classify.Kind]bool
	FullCoverage bool
	Mismatches   []string
	Tier         Tier

	// Warning is set instead of a tier when no rows were filled in.
	Warning string
}

// Empty reports whether the check was short-circuited for lack of rows.
func (r Report) Empty() bool {
	return r.Filled == 0
}

// Feedback returns the headline text for the report.
func (r Report) Feedback() string {
	if r.Empty() {
		return r.Warning
	}
	return r.Tier.Feedback()
}

// Checklist returns one coverage line per kind followed by the mismatches.
func (r Report) Checklist() []ChecklistItem {
	if r.Empty() {
		return nil
	}
	items := make([]ChecklistItem, 0, len(classify.AllKinds)+len(r.Mismatches))
	for _, k := range classify.AllKinds {
		if r.Coverage[k] {
			items = append(items, ChecklistItem{Text: fmt.Sprintf("✅ You included at least one %s test.", k), OK: true})
		} else {
			items = append(items, ChecklistItem{Text: fmt.Sprintf("❌ You did not include any %s test.", k)})
		}
	}
	for _, m := range r.Mismatches {
		items = append(items, ChecklistItem{Text: "⚠️ " + m})
	}
	return items
}

// Agrees reports whether chosen is an acceptable label for a value that
// behaves like actual.
func Agrees(actual, chosen classify.Kind) bool {
	return actual == chosen || (actual == classify.Boundary && chosen == classify.Valid)
}

// Evaluate scores rows against rule without touching any progress state.
// Blank rows are skipped. A filled row without a label counts toward the
// total but can never be correct. A boundary value labelled valid is
// accepted.
func Evaluate(rows []Row, rule classify.Rule) Report {
	rep := Report{Coverage: make(map[classify.Kind]bool, len(classify.AllKinds))}

	for i, row := range rows {
		if row.blank() {
			continue
		}
		rep.Filled++

		if !row.Chosen.Known() {
			rep.Mismatches = append(rep.Mismatches, fmt.Sprintf("Row %d: choose a type for the test data.", i+1))
			continue
		}

		actual := rule.Classify(row.Value)
		rep.Coverage[row.Chosen] = true
		if Agrees(actual, row.Chosen) {
			rep.Correct++
		} else {
			rep.Mismatches = append(rep.Mismatches,
				fmt.Sprintf("Row %d: you chose %q but this behaves like %q.", i+1, string(row.Chosen), string(actual)))
		}
	}

	if rep.Filled == 0 {
		rep.Warning = EmptyWarning
		return rep
	}

	rep.Accuracy = int(math.Round(float64(rep.Correct) / float64(max(rep.Filled, 1)) * 100))
	rep.FullCoverage = true
	for _, k := range classify.AllKinds {
		if !rep.Coverage[k] {
			rep.FullCoverage = false
		}
	}

	switch {
	case rep.Accuracy == 100 && rep.FullCoverage:
		rep.Tier = TierPerfect
	case rep.Accuracy >= 80 && rep.FullCoverage:
		rep.Tier = TierGreat
	case rep.Accuracy >= 60:
		rep.Tier = TierGood
	default:
		rep.Tier = TierNeedsWork
	}
	return rep
}

// Checker evaluates test sets and applies the rewards.
type Checker struct {
	rule     classify.Rule
	progress Progress
}

// NewChecker creates a checker for the jobs-per-month rule.
func NewChecker(progress Progress) *Checker {
	return &Checker{rule: classify.JobsPerMonth, progress: progress}
}

// Rule returns the rule rows are checked against.
func (c *Checker) Rule() classify.Rule {
	return c.rule
}

// Check evaluates rows and awards the tier's XP and achievements. An empty
// set awards nothing.
func (c *Checker) Check(rows []Row) Report {
	rep := Evaluate(rows, c.rule)
	if rep.Empty() {
		return rep
	}

	amount, reason := rep.Tier.XP()
	c.progress.AwardXP(amount, reason)
	if rep.FullCoverage && rep.Tier >= TierGood {
		c.progress.Unlock(catalog.ComprehensiveTest)
	}
	if rep.Tier.Complete() {
		c.progress.Unlock(catalog.Level2Complete)
	}
	return rep
}
