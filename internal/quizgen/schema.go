package quizgen

import "github.com/arga1212/smartnote/internal/llm"

// QuizSchema defines the JSON schema for quiz generation responses.
// Providers with structured output enforce it at generation time; the
// validator re-checks everything regardless, including the cross-field
// consistency a JSON schema cannot express.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "A multiple-choice quiz derived from lesson material",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"quiz": map[string]any{
				"type":        "array",
				"description": "The generated questions, in presentation order",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{
							"type":        "string",
							"description": "The question prompt",
						},
						"options": map[string]any{
							"type":        "object",
							"description": "Exactly four answer options keyed a-d",
							"properties": map[string]any{
								"a": map[string]any{"type": "string"},
								"b": map[string]any{"type": "string"},
								"c": map[string]any{"type": "string"},
								"d": map[string]any{"type": "string"},
							},
							"required":             []any{"a", "b", "c", "d"},
							"additionalProperties": false,
						},
						"correct_answer": map[string]any{
							"type":        "string",
							"enum":        []any{"a", "b", "c", "d"},
							"description": "Lower-case key of the correct option",
						},
						"correct_text": map[string]any{
							"type":        "string",
							"description": "Text of the correct option, verbatim",
						},
						"explanation": map[string]any{
							"type":        "string",
							"description": "Brief rationale for the correct answer",
						},
					},
					"required":             []any{"question", "options", "correct_answer", "correct_text", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"quiz"},
		"additionalProperties": false,
	},
}
