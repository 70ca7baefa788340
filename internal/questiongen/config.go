package questiongen

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// MaxTokens is the token budget for the LLM response.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxHistory caps how many prior questions are embedded in the
	// system instruction. 0 means all of them.
	MaxHistory int
}

// DefaultConfig returns the recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 1.0,
		MaxHistory:  10,
	}
}
