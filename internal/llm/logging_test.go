package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/abhisek/testlab/internal/store"
)

func openEventRepo(t *testing.T) store.EventRepo {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "llm.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s.EventRepo()
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	repo := openEventRepo(t)
	mock := NewMockProvider(
		MockResponse{
			Content: json.RawMessage(`{"explanation":"x","tip":"y"}`),
			Usage:   Usage{InputTokens: 12, OutputTokens: 7, TotalTokens: 19},
		},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithSession(WithPurpose(context.Background(), "coach"), "session-1")
	req := Request{
		System:   "You coach software testers.",
		Messages: []Message{{Role: RoleUser, Content: "Why is 21 invalid?"}},
		Schema:   testSchema(),
	}

	_, err := p.Generate(ctx, req)
	require.NoError(t, err)
	_, err = p.Generate(ctx, req)
	require.Error(t, err)

	events, err := repo.QueryLLMRequests(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	failed, ok := events[0], events[1]
	assert.True(t, ok.Success)
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, "coach", ok.Purpose)
	assert.Equal(t, "session-1", ok.SessionID)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[schema: test-case-review]")
	assert.Contains(t, ok.RequestBody, "Why is 21 invalid?")

	assert.False(t, failed.Success)
	assert.Contains(t, failed.ErrorMessage, "rate limited")
}

type failingRepo struct{ store.EventRepo }

func (failingRepo) AppendLLMRequest(context.Context, store.LLMRequestEventData) error {
	return errors.New("disk full")
}

func TestLoggingProvider_RecordFailureDoesNotFailRequest(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"hi"`)})
	p := WithLogging(mock, "mock", failingRepo{}, zap.New(core))

	resp, err := p.Generate(context.Background(), Request{})
	require.NoError(t, err)
	assert.Equal(t, `"hi"`, string(resp.Content))
	assert.Equal(t, 1, logs.FilterMessage("record llm request event failed").Len())
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	_, wrapped := WithTimeout(slowProvider{}, 0).(*TimeoutProvider)
	assert.False(t, wrapped)
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock"}, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "mock", p.ModelID())

	_, err = NewProvider(context.Background(), Config{Provider: "nope"}, nil, nil)
	assert.Error(t, err)

	_, err = NewProvider(context.Background(), Config{Provider: "anthropic"}, nil, nil)
	assert.Error(t, err, "missing key")
}
