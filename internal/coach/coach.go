// Package coach explains why a piece of test data has the type it has.
// A rule-based explanation is always available; an LLM provider, when
// configured, can give a friendlier one.
package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"go.uber.org/zap"

	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/llm"
)

// Purpose labels coach requests in the LLM event log.
const Purpose = "coach"

const (
	SourceRules = "rules"
	SourceLLM   = "llm"
)

// Input describes one misclassified value.
type Input struct {
	Field   string
	Rule    classify.Rule
	Value   string
	Chosen  classify.Kind
	Correct classify.Kind
}

// Feedback is what the learner sees.
type Feedback struct {
	Explanation string
	Tip         string
	Source      string
}

// Config holds LLM request settings.
type Config struct {
	MaxTokens   int
	Temperature float64
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   256,
		Temperature: 0.3,
	}
}

// Coach produces feedback, preferring the LLM when one is configured.
type Coach struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// New creates a Coach. provider may be nil for rule-based feedback only.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *Coach {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coach{provider: provider, cfg: cfg, logger: logger.Named("coach")}
}

// Enabled reports whether an LLM provider is configured.
func (c *Coach) Enabled() bool {
	return c != nil && c.provider != nil
}

type coachOutput struct {
	Explanation string `json:"explanation"`
	Tip         string `json:"tip"`
}

// Explain returns feedback for in. Any LLM failure falls back to the
// rule-based explanation.
func (c *Coach) Explain(ctx context.Context, in Input) Feedback {
	fallback := Explain(in)
	if !c.Enabled() {
		return fallback
	}

	fb, err := c.generate(ctx, in)
	if err != nil {
		c.logger.Warn("llm coach failed, using rule-based feedback",
			zap.String("value", in.Value), zap.Error(err))
		return fallback
	}
	return fb
}

func (c *Coach) generate(ctx context.Context, in Input) (Feedback, error) {
	ctx = llm.WithPurpose(ctx, Purpose)

	userMsg, err := buildCoachMessage(in)
	if err != nil {
		return Feedback{}, fmt.Errorf("build coach prompt: %w", err)
	}

	resp, err := c.provider.Generate(ctx, llm.Request{
		System: coachSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      FeedbackSchema,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return Feedback{}, fmt.Errorf("llm coach: %w", err)
	}

	var out coachOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return Feedback{}, fmt.Errorf("parse coach response: %w", err)
	}
	out.Explanation = strings.TrimSpace(out.Explanation)
	if out.Explanation == "" {
		return Feedback{}, fmt.Errorf("empty explanation")
	}

	return Feedback{
		Explanation: out.Explanation,
		Tip:         strings.TrimSpace(out.Tip),
		Source:      SourceLLM,
	}, nil
}

// FeedbackSchema is the structured response the coach asks for.
var FeedbackSchema = &llm.Schema{
	Name:        "coach-feedback",
	Description: "Short explanation of why a test value has its test data type, plus one tip",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining the correct test data type for this value",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One sentence the learner can apply to the next value",
			},
		},
		"required":             []any{"explanation", "tip"},
		"additionalProperties": false,
	},
}

const coachSystemPrompt = `You coach beginners learning software testing. A learner classified a piece of test data as valid, invalid, boundary or erroneous and got it wrong.

Definitions:
- Valid: accepted input strictly inside the allowed range.
- Boundary: accepted input exactly on a limit of the range.
- Invalid: the right kind of value (for example a whole number) outside the range.
- Erroneous: the wrong kind of value entirely (text, blank, decimals where whole numbers are required).

Instructions:
- Explain in plain language why the value has the correct type.
- Refer to the learner's choice without scolding.
- Keep the explanation to two sentences and the tip to one.`

var coachUserTemplate = template.Must(template.New("coach").Parse(`Field: {{.Field}}
Rule: {{.Rule}}
Test value: {{printf "%q" .Value}}
Learner chose: {{.Chosen}}
Correct type: {{.Correct}}`))

func buildCoachMessage(in Input) (string, error) {
	data := struct {
		Field, Rule, Value, Chosen, Correct string
	}{
		Field:   in.Field,
		Rule:    describe(in.Rule),
		Value:   in.Value,
		Chosen:  in.Chosen.DisplayName(),
		Correct: in.Correct.DisplayName(),
	}
	if in.Chosen == "" {
		data.Chosen = "(nothing)"
	}

	var buf bytes.Buffer
	if err := coachUserTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
