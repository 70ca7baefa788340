package questiongen

import "context"

// Generator produces "Would You Rather" option pairs.
type Generator interface {
	// Generate returns an option pair for the given input. Transport and
	// service failures are returned as errors; malformed payloads are not,
	// they yield the fallback pair instead.
	Generate(ctx context.Context, input GenerateInput) (Options, error)
}

// FallbackOptions is returned when a response can't be parsed.
var FallbackOptions = Options{
	OptionA:  "Stay in a room full of puppies",
	OptionB:  "Stay in a room full of kittens",
	Fallback: true,
}
