// Package catalog holds the fixed tutorial content: the Level 1 question
// bank, the achievement list and the reference test cases. The content is
// embedded YAML parsed once at startup.
package catalog

import (
	"embed"
	"fmt"
	"math/rand/v2"
	"slices"

	"github.com/abhisek/testlab/internal/classify"
)

// Achievement ids referenced by the progress state.
const (
	FirstCorrect      = "first_correct"
	Streak3           = "streak_3"
	Level1Complete    = "level_1_complete"
	PerfectLevel1     = "perfect_level_1"
	Level2Complete    = "level_2_complete"
	ComprehensiveTest = "comprehensive_test"
	Level3Complete    = "level_3_complete"
	LevelUp           = "level_up"
	CertifiedEngineer = "certified_engineer"
)

// Question is one Level 1 prompt: a literal value and its true
// classification under the stated rule.
type Question struct {
	Field string
	Rule  string
	Value string
	Type  classify.Kind

	// Check is the machine form of Rule.
	Check classify.Rule
}

// Achievement is an entry in the achievement catalog.
type Achievement struct {
	ID          string
	Icon        string
	Title       string
	Description string

	// Notice is the text shown when the achievement unlocks.
	Notice string
}

// ReferenceCase is a named test case for the jobs-per-month validator.
type ReferenceCase struct {
	ID    string
	Input string
	Type  classify.Kind
}

//go:embed data/*.yaml
var dataFS embed.FS

// content is the package-level catalog, set by init() from the embedded data.
var content *catalog

type catalog struct {
	questions    []Question
	achievements []Achievement
	byID         map[string]*Achievement
	cases        []ReferenceCase
}

func init() {
	c, err := loadEmbedded()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	content = c
}

func loadEmbedded() (*catalog, error) {
	q, err := dataFS.ReadFile("data/questions.yaml")
	if err != nil {
		return nil, err
	}
	a, err := dataFS.ReadFile("data/achievements.yaml")
	if err != nil {
		return nil, err
	}
	r, err := dataFS.ReadFile("data/reference.yaml")
	if err != nil {
		return nil, err
	}
	return parse(q, a, r)
}

// Questions returns the question bank in catalog order.
func Questions() []Question {
	return slices.Clone(content.questions)
}

// Achievements returns the achievement catalog in display order.
func Achievements() []Achievement {
	return slices.Clone(content.achievements)
}

// GetAchievement returns the catalog entry for id.
func GetAchievement(id string) (Achievement, bool) {
	a, ok := content.byID[id]
	if !ok {
		return Achievement{}, false
	}
	return *a, true
}

// ReferenceCases returns the reference test cases in order.
func ReferenceCases() []ReferenceCase {
	return slices.Clone(content.cases)
}

// Shuffle returns a uniformly random permutation of questions using the
// Fisher–Yates algorithm. The input slice is not modified.
func Shuffle(questions []Question, rng *rand.Rand) []Question {
	out := slices.Clone(questions)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Validate re-checks the loaded catalog.
func Validate() error {
	return validate(content)
}
