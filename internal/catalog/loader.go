package catalog

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/testlab/internal/classify"
)

type ruleFile struct {
	Field  string `yaml:"field"`
	Text   string `yaml:"text"`
	Kind   string `yaml:"kind"`
	Min    int    `yaml:"min"`
	Max    int    `yaml:"max"`
	Digits int    `yaml:"digits"`
}

type questionsFile struct {
	Rules     map[string]ruleFile `yaml:"rules"`
	Questions []struct {
		Rule  string `yaml:"rule"`
		Value string `yaml:"value"`
		Type  string `yaml:"type"`
	} `yaml:"questions"`
}

type achievementsFile struct {
	Achievements []struct {
		ID          string `yaml:"id"`
		Icon        string `yaml:"icon"`
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		Notice      string `yaml:"notice"`
	} `yaml:"achievements"`
}

type referenceFile struct {
	Cases []struct {
		ID    string `yaml:"id"`
		Input string `yaml:"input"`
		Type  string `yaml:"type"`
	} `yaml:"cases"`
}

// parse builds a catalog from the three YAML documents and validates it.
func parse(questionsYAML, achievementsYAML, referenceYAML []byte) (*catalog, error) {
	var qf questionsFile
	if err := yaml.Unmarshal(questionsYAML, &qf); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	var af achievementsFile
	if err := yaml.Unmarshal(achievementsYAML, &af); err != nil {
		return nil, fmt.Errorf("parse achievements: %w", err)
	}
	var rf referenceFile
	if err := yaml.Unmarshal(referenceYAML, &rf); err != nil {
		return nil, fmt.Errorf("parse reference cases: %w", err)
	}

	c := &catalog{byID: make(map[string]*Achievement)}

	for i, q := range qf.Questions {
		rule, ok := qf.Rules[q.Rule]
		if !ok {
			return nil, fmt.Errorf("question %d: unknown rule %q", i+1, q.Rule)
		}
		check, err := buildRule(rule)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", q.Rule, err)
		}
		kind, err := classify.ParseKind(q.Type)
		if err != nil {
			return nil, fmt.Errorf("question %d: %w", i+1, err)
		}
		c.questions = append(c.questions, Question{
			Field: rule.Field,
			Rule:  rule.Text,
			Value: q.Value,
			Type:  kind,
			Check: check,
		})
	}

	for _, a := range af.Achievements {
		c.achievements = append(c.achievements, Achievement{
			ID:          a.ID,
			Icon:        a.Icon,
			Title:       a.Title,
			Description: a.Description,
			Notice:      a.Notice,
		})
	}
	for i := range c.achievements {
		c.byID[c.achievements[i].ID] = &c.achievements[i]
	}

	for i, rc := range rf.Cases {
		kind, err := classify.ParseKind(rc.Type)
		if err != nil {
			return nil, fmt.Errorf("reference case %d: %w", i+1, err)
		}
		c.cases = append(c.cases, ReferenceCase{ID: rc.ID, Input: rc.Input, Type: kind})
	}

	if err := validate(c); err != nil {
		return nil, err
	}
	return c, nil
}

func buildRule(r ruleFile) (classify.Rule, error) {
	switch r.Kind {
	case "range":
		if r.Min > r.Max {
			return nil, fmt.Errorf("min %d greater than max %d", r.Min, r.Max)
		}
		return classify.RangeRule{Min: r.Min, Max: r.Max}, nil
	case "digits":
		if r.Digits <= 0 {
			return nil, fmt.Errorf("digits must be > 0, got %d", r.Digits)
		}
		return classify.DigitsRule{Count: r.Digits}, nil
	default:
		return nil, fmt.Errorf("unknown rule kind %q", r.Kind)
	}
}

// validate performs the structural checks on a catalog and returns a
// combined error describing every problem found.
func validate(c *catalog) error {
	var errs []string

	if len(c.questions) == 0 {
		errs = append(errs, "question bank is empty")
	}
	for i, q := range c.questions {
		if q.Field == "" || q.Rule == "" {
			errs = append(errs, fmt.Sprintf("question %d: field and rule text are required", i+1))
		}
		if got := q.Check.Classify(q.Value); got != q.Type {
			errs = append(errs, fmt.Sprintf("question %d: %q is %s under %q, catalog says %s",
				i+1, q.Value, got, q.Check.Describe(), q.Type))
		}
	}

	seen := make(map[string]bool, len(c.achievements))
	for _, a := range c.achievements {
		if a.ID == "" || a.Title == "" {
			errs = append(errs, "achievement id and title are required")
			continue
		}
		if seen[a.ID] {
			errs = append(errs, fmt.Sprintf("duplicate achievement ID: %q", a.ID))
		}
		seen[a.ID] = true
	}
	for _, id := range []string{
		FirstCorrect, Streak3, Level1Complete, PerfectLevel1, Level2Complete,
		ComprehensiveTest, Level3Complete, LevelUp, CertifiedEngineer,
	} {
		if !seen[id] {
			errs = append(errs, fmt.Sprintf("achievement %q missing from catalog", id))
		}
	}

	for _, rc := range c.cases {
		if got := classify.JobsPerMonth.Classify(rc.Input); got != rc.Type {
			errs = append(errs, fmt.Sprintf("reference case %s: %q is %s, catalog says %s",
				rc.ID, rc.Input, got, rc.Type))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
