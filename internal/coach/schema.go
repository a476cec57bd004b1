package coach

import "github.com/abhisek/numcraft/internal/llm"

// NoteSchema is the structured output requested from the LLM.
var NoteSchema = &llm.Schema{
	Name:        "coach-note",
	Description: "A short encouraging note for a child after a subtraction battle",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"minLength":   1,
				"maxLength":   60,
				"description": "One upbeat line about the battle, at most eight words",
			},
			"tip": map[string]any{
				"type":        "string",
				"maxLength":   200,
				"description": "One concrete subtraction tip aimed at the most common mistake",
			},
		},
		"required":             []any{"headline", "tip"},
		"additionalProperties": false,
	},
}
