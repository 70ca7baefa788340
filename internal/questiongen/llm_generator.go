package questiongen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/fridayfun/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
	logger   *zap.Logger
}

// New creates a new LLMGenerator. logger may be nil.
func New(provider llm.Provider, cfg Config, logger *zap.Logger) *LLMGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMGenerator{provider: provider, config: cfg, logger: logger}
}

// Generate issues a single request for the input's category.
func (g *LLMGenerator) Generate(ctx context.Context, input GenerateInput) (Options, error) {
	ctx = llm.WithPurpose(ctx, "question-gen")
	if input.RequestID != 0 {
		ctx = llm.WithRequestID(ctx, input.RequestID)
	}

	req := llm.Request{
		System: buildSystemPrompt(input.History, g.config.MaxHistory),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: categoryPrompt(input.Category)},
		},
		Schema:      OptionsSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		var invalid *llm.ErrInvalidResponse
		if errors.As(err, &invalid) {
			return g.fallback(input, "response failed schema validation", err), nil
		}
		return Options{}, fmt.Errorf("LLM generation failed: %w", err)
	}

	opts, err := parseOptions(resp.Content)
	if err != nil {
		return g.fallback(input, "failed to parse LLM response", err), nil
	}
	return opts, nil
}

func (g *LLMGenerator) fallback(input GenerateInput, reason string, cause error) Options {
	g.logger.Warn("using fallback options",
		zap.String("reason", reason),
		zap.String("category", string(input.Category)),
		zap.Uint64("request_id", input.RequestID),
		zap.Error(cause),
	)
	return FallbackOptions
}

// parseOptions decodes the two-field payload. Missing or blank options
// count as a parse failure.
func parseOptions(raw json.RawMessage) (Options, error) {
	var out Options
	if err := json.Unmarshal(raw, &out); err != nil {
		return Options{}, fmt.Errorf("decode options: %w", err)
	}
	out.OptionA = strings.TrimSpace(out.OptionA)
	out.OptionB = strings.TrimSpace(out.OptionB)
	switch {
	case out.OptionA == "":
		return Options{}, errors.New("optionA is missing or empty")
	case out.OptionB == "":
		return Options{}, errors.New("optionB is missing or empty")
	}
	return out, nil
}
