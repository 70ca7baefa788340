package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOpenAIProvider(t *testing.T, handler http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: server.URL + "/v1"})
	require.NoError(t, err)
	return p
}

// chatCompletion answers with a single choice.
func chatCompletion(content, finish string, extra map[string]any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		msg := map[string]any{"role": "assistant", "content": content}
		for k, v := range extra {
			msg[k] = v
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{"index": 0, "message": msg, "finish_reason": finish}},
			"usage":   map[string]any{"prompt_tokens": 40, "completion_tokens": 25, "total_tokens": 65},
		})
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var sent struct {
		Messages []struct {
			Role string `json:"role"`
		} `json:"messages"`
		MaxCompletionTokens int `json:"max_completion_tokens"`
	}
	reply := chatCompletion(`{"optionA":"Have a pet dragon","optionB":"Be a dragon"}`, "stop", nil)
	p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&sent)
		reply(w, r)
	})

	resp, err := p.Generate(context.Background(), Request{
		System:   "You are a creative middle school teacher.",
		Messages: []Message{{Role: RoleUser, Content: "Generate a funny would you rather question."}},
	})
	require.NoError(t, err)

	assert.Equal(t, 40, resp.Usage.InputTokens)
	assert.Equal(t, 25, resp.Usage.OutputTokens)
	assert.Equal(t, StopEnd, resp.StopReason)
	require.Len(t, sent.Messages, 2)
	assert.Equal(t, "system", sent.Messages[0].Role)
	assert.Equal(t, DefaultMaxTokens, sent.MaxCompletionTokens)
}

func TestOpenAIProvider_UnwrapsFencedJSON(t *testing.T) {
	p := newTestOpenAIProvider(t, chatCompletion(
		"```json\n{\"optionA\":\"Smell like cheese\",\"optionB\":\"Sound like a goose\"}\n```", "stop", nil))

	resp, err := p.Generate(context.Background(), Request{
		Messages: []Message{{Role: RoleUser, Content: "Generate a gross question."}},
		Schema:   optionsSchema(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"optionA":"Smell like cheese","optionB":"Sound like a goose"}`, string(resp.Content))
}

func TestOpenAIProvider_Filtered(t *testing.T) {
	cases := map[string]http.HandlerFunc{
		"content filter": chatCompletion("", "content_filter", nil),
		"refusal":        chatCompletion("", "stop", map[string]any{"refusal": "I can't help with that."}),
	}
	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			p := newTestOpenAIProvider(t, handler)
			_, err := p.Generate(context.Background(), Request{
				Messages: []Message{{Role: RoleUser, Content: "test"}},
				Schema:   optionsSchema(),
			})
			var inv *ErrInvalidResponse
			require.True(t, errors.As(err, &inv), "got %T (%v)", err, err)
			assert.ErrorIs(t, err, ErrContentFiltered)
		})
	}
}

func TestOpenAIProvider_Errors(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{http.StatusTooManyRequests, KindRateLimit},
		{http.StatusInternalServerError, KindUnavailable},
		{http.StatusUnauthorized, KindUnauthorized},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			p := newTestOpenAIProvider(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]any{"type": "error", "message": "nope"},
				})
			})
			_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "test"}}})
			require.Error(t, err)
			assert.Equal(t, tt.want, ErrorKind(err))
		})
	}
}

func TestNewOpenAIProvider(t *testing.T) {
	_, err := NewOpenAIProvider(OpenAIConfig{Model: "gpt-4o"})
	assert.Error(t, err, "empty key")

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini"})
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-mini", p.ModelID())
}

func TestOpenAIRequest_StrictOnlyWhenCompatible(t *testing.T) {
	strict := &Schema{Name: "pair", Definition: map[string]any{
		"type":                 "object",
		"properties":           map[string]any{"optionA": map[string]any{"type": "string"}},
		"required":             []any{"optionA"},
		"additionalProperties": false,
	}}
	req, err := openAIRequest("gpt-4o-mini", Request{Schema: strict})
	require.NoError(t, err)
	require.NotNil(t, req.ResponseFormat)
	assert.True(t, req.ResponseFormat.JSONSchema.Strict)

	// optionsSchema has an optional category and allows extra fields.
	req, err = openAIRequest("gpt-4o-mini", Request{Schema: optionsSchema()})
	require.NoError(t, err)
	assert.False(t, req.ResponseFormat.JSONSchema.Strict)

	req, err = openAIRequest("gpt-4o-mini", Request{})
	require.NoError(t, err)
	assert.Nil(t, req.ResponseFormat)
}
