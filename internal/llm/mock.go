package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted answer of a MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockJSON scripts a successful answer with the given raw content.
func MockJSON(content string) MockResponse {
	return MockResponse{Content: json.RawMessage(content)}
}

// MockProvider replays scripted answers in order and records every
// request. Content skips schema validation so tests can feed malformed
// payloads straight to the generator.
//
// Once the script runs out, Generate calls Refill if set and fails with
// ErrProviderUnavailable otherwise.
type MockProvider struct {
	Refill func(n int) MockResponse

	mu     sync.Mutex
	script []MockResponse
	calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// NewDemoProvider returns a mock that cycles through a few built-in
// question pairs, for running without an API key.
func NewDemoProvider() *MockProvider {
	m := NewMockProvider()
	m.Refill = func(n int) MockResponse {
		return MockJSON(demoPairs[n%len(demoPairs)])
	}
	return m
}

var demoPairs = []string{
	`{"optionA":"Have a pet T-rex the size of a cat","optionB":"Have a cat the size of a T-rex"}`,
	`{"optionA":"Always know when someone is lying","optionB":"Always get away with lying"}`,
	`{"optionA":"Talk to dolphins","optionB":"Fly with eagles"}`,
	`{"optionA":"Eat a spoonful of mayonnaise","optionB":"Sniff a wet dog for a minute"}`,
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.calls)
	m.calls = append(m.calls, req)

	var next MockResponse
	switch {
	case len(m.script) > 0:
		next, m.script = m.script[0], m.script[1:]
	case m.Refill != nil:
		next = m.Refill(n)
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
		StopReason: StopEnd,
	}, nil
}

func (m *MockProvider) ModelID() string { return "mock" }

// AddResponse appends to the script.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.script = append(m.script, resp)
}

// Calls returns a copy of the recorded requests, oldest first.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Request(nil), m.calls...)
}

// LastRequest returns the most recent request, or false if none was made.
func (m *MockProvider) LastRequest() (Request, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.calls) == 0 {
		return Request{}, false
	}
	return m.calls[len(m.calls)-1], true
}

func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}
