package coach

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/llm"
)

func jobsInput(value string, chosen classify.Kind) Input {
	return Input{
		Field:   "Jobs per month",
		Rule:    classify.JobsPerMonth,
		Value:   value,
		Chosen:  chosen,
		Correct: classify.JobsPerMonth.Classify(value),
	}
}

func TestExplainRuleBased(t *testing.T) {
	tests := []struct {
		name string
		in   Input
		want string
	}{
		{"invalid", jobsInput("25", classify.Valid), "25 is a whole number outside 0 to 20, so it is invalid data."},
		{"boundary", jobsInput("20", classify.Valid), "20 sits exactly on the edge of 0 to 20, so it is boundary data."},
		{"valid", jobsInput("10", classify.Boundary), "10 is a whole number inside 0 to 20, so it is valid data."},
		{"erroneous", jobsInput("ten", classify.Invalid), `"ten" is not a whole number at all, so it is erroneous data.`},
		{"blank", jobsInput("  ", classify.Invalid), "An empty entry is erroneous data: the field needs a value before any rule can accept it."},
		{
			"digits too short",
			Input{Rule: classify.DigitsRule{Count: 6}, Value: "12345", Chosen: classify.Valid, Correct: classify.Invalid},
			`"12345" has only digits but 5 of them instead of 6, so it is invalid data.`,
		},
		{
			"digits with letters",
			Input{Rule: classify.DigitsRule{Count: 6}, Value: "ABC123", Chosen: classify.Invalid, Correct: classify.Erroneous},
			`"ABC123" contains characters that are not digits, so it is erroneous data.`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := Explain(tt.in)
			assert.Equal(t, tt.want, fb.Explanation)
			assert.NotEmpty(t, fb.Tip)
			assert.Equal(t, SourceRules, fb.Source)
		})
	}
}

func TestTipTargetsConfusion(t *testing.T) {
	fb := Explain(jobsInput("20", classify.Valid))
	assert.Contains(t, fb.Tip, "boundary data")

	fb = Explain(jobsInput("21", classify.Boundary))
	assert.Contains(t, fb.Tip, "just past a limit")
}

func TestCoachWithoutProviderUsesRules(t *testing.T) {
	c := New(nil, DefaultConfig(), nil)
	assert.False(t, c.Enabled())

	fb := c.Explain(context.Background(), jobsInput("21", classify.Boundary))
	assert.Equal(t, SourceRules, fb.Source)
}

func TestCoachUsesLLM(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"explanation":" 21 is one past the maximum of 20. ","tip":"Test just past each limit."}`),
	})
	c := New(mock, DefaultConfig(), nil)

	fb := c.Explain(context.Background(), jobsInput("21", classify.Boundary))
	assert.Equal(t, SourceLLM, fb.Source)
	assert.Equal(t, "21 is one past the maximum of 20.", fb.Explanation)
	assert.Equal(t, "Test just past each limit.", fb.Tip)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	require.NotNil(t, req.Schema)
	assert.Equal(t, "coach-feedback", req.Schema.Name)
	assert.Contains(t, req.Messages[0].Content, `Test value: "21"`)
	assert.Contains(t, req.Messages[0].Content, "Learner chose: Boundary")
	assert.Contains(t, req.Messages[0].Content, "Correct type: Invalid")
	assert.Contains(t, req.Messages[0].Content, "whole number from 0 to 20 inclusive")
}

func TestCoachFallsBackOnLLMFailure(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}}},
		{"unparseable", llm.MockResponse{Content: json.RawMessage(`"just text"`)}},
		{"empty explanation", llm.MockResponse{Content: json.RawMessage(`{"explanation":"  ","tip":"x"}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zap.WarnLevel)
			c := New(llm.NewMockProvider(tt.resp), DefaultConfig(), zap.New(core))

			in := jobsInput("25", classify.Valid)
			fb := c.Explain(context.Background(), in)

			assert.Equal(t, Explain(in), fb)
			assert.Equal(t, 1, logs.Len())
		})
	}
}

func TestCoachMessageWithoutChoice(t *testing.T) {
	msg, err := buildCoachMessage(Input{Rule: classify.JobsPerMonth, Value: "7", Correct: classify.Valid})
	require.NoError(t, err)
	assert.Contains(t, msg, "Learner chose: (nothing)")
}
