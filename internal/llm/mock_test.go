package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockProvider_ReplaysScriptInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: []byte(`{"a":1}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockJSON(`{"b":2}`),
	)
	ctx := context.Background()

	first, err := mock.Generate(ctx, Request{System: "one"})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(first.Content))
	assert.Equal(t, 10, first.Usage.InputTokens)
	assert.Equal(t, StopEnd, first.StopReason)

	second, err := mock.Generate(ctx, Request{System: "two"})
	require.NoError(t, err)
	assert.Equal(t, `{"b":2}`, string(second.Content))

	calls := mock.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "one", calls[0].System)
	last, ok := mock.LastRequest()
	assert.True(t, ok)
	assert.Equal(t, "two", last.System)
}

func TestMockProvider_ExhaustedScript(t *testing.T) {
	mock := NewMockProvider()
	_, ok := mock.LastRequest()
	assert.False(t, ok)

	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %T", err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestMockProvider_ScriptedError(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{}})
	_, err := mock.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	assert.True(t, errors.As(err, &rl), "got %T", err)
}

func TestMockProvider_RefillAfterScript(t *testing.T) {
	mock := NewMockProvider(MockJSON(`{"scripted":true}`))
	mock.Refill = func(n int) MockResponse { return MockJSON(`{"refill":true}`) }

	ctx := context.Background()
	resp, err := mock.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, `{"scripted":true}`, string(resp.Content))

	resp, err = mock.Generate(ctx, Request{})
	require.NoError(t, err)
	assert.Equal(t, `{"refill":true}`, string(resp.Content))
}

func TestDemoProvider_CyclesValidPairs(t *testing.T) {
	demo := NewDemoProvider()
	assert.Equal(t, "mock", demo.ModelID())

	seen := map[string]bool{}
	for i := 0; i < len(demoPairs)+1; i++ {
		resp, err := demo.Generate(context.Background(), Request{})
		require.NoError(t, err)
		content, err := validateResponse(optionsSchema(), resp.Content)
		require.NoError(t, err, "demo pair %d must satisfy the options schema", i)
		seen[string(content)] = true
	}
	assert.Len(t, seen, len(demoPairs))
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "unknown", PurposeFrom(ctx))
	assert.Equal(t, "question-gen", PurposeFrom(WithPurpose(ctx, "question-gen")))
}

func TestRequestIDContext(t *testing.T) {
	ctx := context.Background()
	assert.Zero(t, RequestIDFrom(ctx))
	assert.Equal(t, uint64(7), RequestIDFrom(WithRequestID(ctx, 7)))
}
