package questiongen

import "github.com/abhisek/fridayfun/internal/llm"

// OptionsSchema defines the JSON schema for the two-option response.
var OptionsSchema = &llm.Schema{
	Name:        "would-you-rather",
	Description: "A 'Would You Rather' question with exactly two options",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"optionA": map[string]any{
				"type":        "string",
				"description": "The first scenario/choice",
			},
			"optionB": map[string]any{
				"type":        "string",
				"description": "The second scenario/choice",
			},
		},
		"required":             []any{"optionA", "optionB"},
		"additionalProperties": false,
	},
}
