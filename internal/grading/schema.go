package grading

import "github.com/abhisek/lexis/internal/llm"

// ResultSchema is the payload the remote grader asks the model for.
var ResultSchema = &llm.Schema{
	Name:        "graded-result",
	Description: "Per-question grading of a learner's exercise attempt",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"questionId": map[string]any{
							"type":        "string",
							"description": "The id of the graded question, copied from the exercise",
						},
						"isCorrect": map[string]any{
							"type":        "boolean",
							"description": "Whether the answer is acceptable",
						},
						"score": map[string]any{
							"type":        "integer",
							"minimum":     0,
							"description": "Points awarded, between 0 and the question's points",
						},
						"feedback": map[string]any{
							"type":        "string",
							"description": "One or two sentences addressed to the learner",
						},
					},
					"required":             []any{"questionId", "isCorrect", "score", "feedback"},
					"additionalProperties": false,
				},
			},
			"summary": map[string]any{
				"type":        "string",
				"description": "Short overall feedback on the attempt",
			},
		},
		"required":             []any{"questions", "summary"},
		"additionalProperties": false,
	},
}
