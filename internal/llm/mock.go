package llm

import (
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"
)

// MockResponse is one scripted answer of a MockProvider.
type MockResponse struct {
	Content    json.RawMessage
	Usage      Usage
	StopReason string // defaults to StopEnd
	Err        error

	// Delay holds the answer back. Cancelling the context ends the wait
	// with ErrProviderUnavailable wrapping the context error.
	Delay time.Duration
}

// MockProvider replays scripted responses in order. Once the script runs
// out it asks Respond, and without Respond it reports itself unavailable,
// which is what MINDSCOPE_LLM_PROVIDER=mock gives: every report resolves
// through the local fallback.
type MockProvider struct {
	// Respond answers requests after the script is exhausted.
	Respond func(Request) MockResponse

	mu       sync.Mutex
	script   []MockResponse
	requests []Request
}

// NewMockProvider creates a MockProvider that replays responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{script: responses}
}

// Generate records req and plays the next response.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	resp, ok := m.next(req)
	if !ok {
		return nil, &ErrProviderUnavailable{Err: nil}
	}

	if resp.Delay > 0 {
		t := time.NewTimer(resp.Delay)
		defer t.Stop()
		select {
		case <-t.C:
		case <-ctx.Done():
			return nil, &ErrProviderUnavailable{Err: ctx.Err()}
		}
	}
	if resp.Err != nil {
		return nil, resp.Err
	}

	// Content is returned as scripted and never checked against req.Schema.
	stop := resp.StopReason
	switch stop {
	case "":
		stop = StopEnd
	case StopMaxTokens:
		return nil, &ErrMaxTokensExceeded{Content: resp.Content}
	}
	return &Response{Content: resp.Content, Usage: resp.Usage, Model: "mock", StopReason: stop}, nil
}

func (m *MockProvider) next(req Request) (MockResponse, bool) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	if len(m.script) > 0 {
		resp := m.script[0]
		m.script = m.script[1:]
		m.mu.Unlock()
		return resp, true
	}
	respond := m.Respond
	m.mu.Unlock()

	if respond == nil {
		return MockResponse{}, false
	}
	return respond(req), true
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// Enqueue appends responses to the script.
func (m *MockProvider) Enqueue(responses ...MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, responses...)
}

// Requests returns a copy of every request received so far.
func (m *MockProvider) Requests() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.requests)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}
