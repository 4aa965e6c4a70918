// Package rating combines the three levels into an overall star rating
// and decides certification.
package rating

import (
	"strings"

	"github.com/abhisek/testlab/internal/catalog"
)

const (
	// PassPercent is the Level 1 score that earns its star.
	PassPercent = 60.0

	// CertifyPercent is the Level 1 score required, with all three stars,
	// for certification.
	CertifyPercent = 80.0

	// CertificationXP is awarded once, when certification is first earned.
	CertificationXP = 100
)

// Progress is the slice of the progress state the aggregator drives.
type Progress interface {
	AwardXP(amount int, reason string)
	Unlock(id string) bool
	Has(id string) bool
}

// Inputs are the per-level completion facts a rating is computed from.
type Inputs struct {
	Level1Percent  float64
	Level2Complete bool
	Level3Complete bool
}

// Tier is the overall standing.
type Tier int

const (
	TierGetStarted Tier = iota
	TierLearning
	TierProficient
	TierExpert
	TierCertified
)

func (t Tier) String() string {
	switch t {
	case TierCertified:
		return "certified"
	case TierExpert:
		return "expert"
	case TierProficient:
		return "proficient"
	case TierLearning:
		return "learning"
	default:
		return "get-started"
	}
}

// Rating is a computed overall result.
type Rating struct {
	Stars     int
	Tier      Tier
	Certified bool

	// NewlyCertified is set on the recompute that first granted the
	// certification bonus.
	NewlyCertified bool
}

// Compute derives the rating for in without side effects.
func Compute(in Inputs) Rating {
	stars := 0
	if in.Level1Percent >= PassPercent {
		stars++
	}
	if in.Level2Complete {
		stars++
	}
	if in.Level3Complete {
		stars++
	}

	r := Rating{Stars: stars}
	switch {
	case stars == 3 && in.Level1Percent >= CertifyPercent:
		r.Tier = TierCertified
		r.Certified = true
	case stars == 3:
		r.Tier = TierExpert
	case stars == 2:
		r.Tier = TierProficient
	case stars == 1:
		r.Tier = TierLearning
	default:
		r.Tier = TierGetStarted
	}
	return r
}

// StarText renders the stars, or hollow stars when none are earned.
func (r Rating) StarText() string {
	if r.Stars == 0 {
		return "☆☆☆"
	}
	return strings.Repeat("⭐", r.Stars)
}

// Headline is the bold title line for the rating.
func (r Rating) Headline() string {
	switch r.Tier {
	case TierCertified:
		return "🎓 CERTIFICATION EARNED!"
	case TierExpert:
		return "🏆 EXPERT LEVEL!"
	case TierProficient:
		return "🎯 PROFICIENT!"
	case TierLearning:
		return "📚 LEARNING!"
	default:
		return "🚀 GET STARTED!"
	}
}

// Message is the encouragement paragraph for the rating.
func (r Rating) Message() string {
	switch r.Tier {
	case TierCertified:
		return "Outstanding performance across all levels. You've mastered test data classification, " +
			"comprehensive test set design, and professional test planning. You're ready for " +
			"real-world software testing!"
	case TierExpert:
		return "Excellent work! You've completed all levels successfully. You have a solid " +
			"understanding of test data types and test planning principles."
	case TierProficient:
		return "Good progress! You're developing strong testing skills. Complete the remaining " +
			"level(s) to achieve expert status."
	case TierLearning:
		return "You're on the right track! Keep practicing with test data types and " +
			"work on building comprehensive test sets."
	default:
		return "Begin your testing journey! Work through each level to build your " +
			"understanding of test data and test planning."
	}
}

// Aggregator recomputes the rating and grants certification.
type Aggregator struct {
	progress Progress
}

// NewAggregator creates an Aggregator.
func NewAggregator(progress Progress) *Aggregator {
	return &Aggregator{progress: progress}
}

// Recompute derives the rating for in. The certification bonus is granted
// only on the recompute that first unlocks certified_engineer, so calling
// Recompute again with the same inputs changes nothing.
func (a *Aggregator) Recompute(in Inputs) Rating {
	r := Compute(in)
	if r.Certified && !a.progress.Has(catalog.CertifiedEngineer) {
		a.progress.AwardXP(CertificationXP, "Certification Earned!")
		r.NewlyCertified = a.progress.Unlock(catalog.CertifiedEngineer)
	}
	return r
}
