package diagnosis

import "github.com/abhisek/algebriz/internal/llm"

// ReviewSchema defines the JSON schema for LLM misconception reviews.
var ReviewSchema = &llm.Schema{
	Name:        "misconception-review",
	Description: "Mapping of a wrong algebra step onto a known misconception taxonomy",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"misconception": map[string]any{
				"type":        []any{"string", "null"},
				"description": "Identifier of the matching misconception from the list, or null if none fits",
			},
			"confidence": map[string]any{
				"type":        "number",
				"minimum":     0.0,
				"maximum":     1.0,
				"description": "Confidence score (0.0–1.0)",
			},
			"reasoning": map[string]any{
				"type":        "string",
				"description": "One-sentence explanation for the learner",
			},
		},
		"required":             []any{"misconception", "confidence", "reasoning"},
		"additionalProperties": false,
	},
}
