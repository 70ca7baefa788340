package llm

import (
	"fmt"
	"os"
	"strings"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use.
	// Values: "gemini", "openai", "openrouter", "anthropic", "mock"
	Provider string `mapstructure:"provider"`

	Gemini     GeminiConfig     `mapstructure:"gemini"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	OpenRouter OpenRouterConfig `mapstructure:"openrouter"`
	Anthropic  AnthropicConfig  `mapstructure:"anthropic"`
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "gemini-3-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "gpt-4o-mini"
	BaseURL string `mapstructure:"base_url"` // Optional. Override for compatible APIs.
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`    // Default: "google/gemini-2.5-flash"
	BaseURL string `mapstructure:"base_url"` // Default: "https://openrouter.ai/api/v1"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"` // Default: "claude-haiku"
}

// DefaultConfig returns a Config with sensible defaults. Gemini is the
// default provider; the prompts were tuned against its flash models.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderGemini,
		Gemini: GeminiConfig{
			Model: "gemini-3-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		OpenRouter: OpenRouterConfig{
			Model: "google/gemini-2.5-flash",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
	}
}

// Provider names accepted in Config.Provider.
const (
	ProviderGemini     = "gemini"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
	ProviderAnthropic  = "anthropic"
	ProviderMock       = "mock"
)

// keyed lists the providers that need an API key, in discovery order,
// with the conventional env var each vendor documents.
var keyed = []struct {
	name string
	env  string
}{
	{ProviderGemini, "GEMINI_API_KEY"},
	{ProviderOpenAI, "OPENAI_API_KEY"},
	{ProviderAnthropic, "ANTHROPIC_API_KEY"},
	{ProviderOpenRouter, "OPENROUTER_API_KEY"},
}

// apiKey points at the key field of the named provider, or nil for
// providers without one.
func (c *Config) apiKey(name string) *string {
	switch name {
	case ProviderGemini:
		return &c.Gemini.APIKey
	case ProviderOpenAI:
		return &c.OpenAI.APIKey
	case ProviderOpenRouter:
		return &c.OpenRouter.APIKey
	case ProviderAnthropic:
		return &c.Anthropic.APIKey
	}
	return nil
}

// HasKey reports whether the selected provider can run. The mock never
// needs a key; unknown providers never can.
func (c Config) HasKey() bool {
	if c.Provider == ProviderMock {
		return true
	}
	k := c.apiKey(c.Provider)
	return k != nil && *k != ""
}

// DiscoverConfig selects the first provider whose vendor env var is set
// (Gemini, OpenAI, Anthropic, then OpenRouter). It returns base unchanged
// and false when none is.
func DiscoverConfig(base Config) (Config, bool) {
	for _, p := range keyed {
		if v := os.Getenv(p.env); v != "" {
			cfg := base
			cfg.Provider = p.name
			*cfg.apiKey(p.name) = v
			return cfg, true
		}
	}
	return base, false
}

// Validate checks that the selected provider exists and has its key.
func (c Config) Validate() error {
	if c.Provider == ProviderMock {
		return nil
	}
	if c.apiKey(c.Provider) == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if !c.HasKey() {
		return fmt.Errorf("FRIDAYFUN_LLM_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
