package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one completion per call. Implementations make a single
// attempt; retries, if any, belong to the caller.
type Provider interface {
	// Generate runs req and returns the model output. When req.Schema is
	// set the output is normalized JSON that passed validation, and output
	// that did not is reported as *ErrInvalidResponse.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// DefaultMaxTokens caps output when a Request leaves MaxTokens at zero.
// A pair of options fits comfortably.
const DefaultMaxTokens = 512

// Normalized values of Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
	StopFiltered  = "filtered"
)

type Request struct {
	// System sets the persona, e.g. the middle school teacher instruction.
	System string

	// Messages holds the conversation. Question generation sends a single
	// user turn with the category prompt.
	Messages []Message

	// Schema, when set, switches the provider to its structured output
	// mode and enables validation.
	Schema *Schema

	MaxTokens int

	// Temperature in 0.0-1.0. Zero keeps the provider default.
	Temperature float64
}

func (r Request) maxTokens() int {
	if r.MaxTokens > 0 {
		return r.MaxTokens
	}
	return DefaultMaxTokens
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a JSON Schema document plus the name providers want for it.
type Schema struct {
	// Name is kebab-case ("would-you-rather"). It doubles as the key of
	// the compiled-schema cache.
	Name        string
	Description string
	Definition  map[string]any
}

type Response struct {
	Content json.RawMessage
	Usage   Usage

	// Model is the model that actually served the call, which can differ
	// from the configured alias.
	Model string

	// StopReason is one of StopEnd, StopMaxTokens or StopFiltered.
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
