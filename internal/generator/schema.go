package generator

import (
	"github.com/abhisek/lexis/internal/exercise"
	"github.com/abhisek/lexis/internal/llm"
)

func enum[T ~string](items []T) []any {
	out := make([]any, len(items))
	for i, it := range items {
		out[i] = string(it)
	}
	return out
}

func stringArray(desc string) map[string]any {
	return map[string]any{
		"type":        "array",
		"items":       map[string]any{"type": "string"},
		"description": desc,
	}
}

var questionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"id":   map[string]any{"type": "string", "description": "Unique question id, e.g. q1"},
		"type": map[string]any{"type": "string", "enum": enum(exercise.AllQuestionTypes())},
		"prompt": map[string]any{
			"type":        "string",
			"description": "The question shown to the learner",
		},
		"options": stringArray("Choices for multiple_choice and true_false; empty otherwise"),
		"points": map[string]any{
			"type":    "integer",
			"minimum": 1,
		},
		"correctAnswer":   map[string]any{"type": "string"},
		"acceptedAnswers": stringArray("Other answers that count as correct"),
		"targetWords":     stringArray("Vocabulary items the question tests"),
		"hints":           stringArray("Progressive hints, weakest first"),
		"explanation":     map[string]any{"type": "string"},
	},
	"required": []any{
		"id", "type", "prompt", "options", "points", "correctAnswer",
		"acceptedAnswers", "targetWords", "hints", "explanation",
	},
	"additionalProperties": false,
}

var sectionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":          map[string]any{"type": "string"},
		"skill":          map[string]any{"type": "string", "enum": enum(exercise.AllSkills())},
		"cognitiveLevel": map[string]any{"type": "string", "enum": enum(exercise.AllCognitiveLevels())},
		"instructions":   map[string]any{"type": "string"},
		"content": map[string]any{
			"type":        "string",
			"description": "Reading passage; empty for non-reading sections",
		},
		"questions": map[string]any{
			"type":     "array",
			"minItems": 1,
			"items":    questionSchema,
		},
	},
	"required":             []any{"title", "skill", "cognitiveLevel", "instructions", "content", "questions"},
	"additionalProperties": false,
}

// ExerciseSchema is the response shape requested from the model.
var ExerciseSchema = &llm.Schema{
	Name:        "exercise",
	Description: "A sectioned English practice exercise with reference answers",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title":       map[string]any{"type": "string"},
			"description": map[string]any{"type": "string"},
			"level":       map[string]any{"type": "string", "description": "CEFR level, e.g. B2"},
			"sections": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items":    sectionSchema,
			},
		},
		"required":             []any{"title", "description", "level", "sections"},
		"additionalProperties": false,
	},
}
