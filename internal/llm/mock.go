package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one canned reply.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider replays canned responses in order and records every
// request with the purpose it was tagged with. Once the queue is empty it
// answers with Fallback, or ErrProviderUnavailable when Fallback is nil.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse

	Fallback *MockResponse
	Calls    []Request
	Purposes []string
}

func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// demoCoachReply lets `llm.provider: mock` exercise the coach offline.
var demoCoachReply = json.RawMessage(`{"explanation":"Compare the value with the rule: first check it is the right kind of value, then check where it sits against the limits.","tip":"Values exactly on a limit are boundary data."}`)

func newDemoProvider() *MockProvider {
	return &MockProvider{Fallback: &MockResponse{Content: demoCoachReply}}
}

func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	m.Purposes = append(m.Purposes, PurposeFrom(ctx))

	var next MockResponse
	switch {
	case len(m.responses) > 0:
		next = m.responses[0]
		m.responses = m.responses[1:]
	case m.Fallback != nil:
		next = *m.Fallback
	default:
		return nil, &ErrProviderUnavailable{}
	}
	if next.Err != nil {
		return nil, next.Err
	}
	return &Response{
		Content:    next.Content,
		Usage:      next.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

func (m *MockProvider) ModelID() string {
	return "mock"
}

func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
