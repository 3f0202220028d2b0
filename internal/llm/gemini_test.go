package llm

import "testing"

func TestGeminiModelAliases(t *testing.T) {
	tests := map[string]string{
		"gemini-flash":     "gemini-2.5-flash",
		"gemini-pro":       "gemini-2.5-pro",
		"gemini-2.0-flash": "gemini-2.0-flash",
	}
	for in, want := range tests {
		if got := resolveModel(in, geminiModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questionId": map[string]any{"type": "string"},
			"score":      map[string]any{"type": "number"},
			"isCorrect":  map[string]any{"type": "boolean"},
			"mastery":    map[string]any{"type": "string", "enum": []any{"mastered", "learning", "needs_review"}},
			"words": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []string{"questionId", "score"},
	})

	if s.Type != "OBJECT" {
		t.Fatalf("Type = %s, want OBJECT", s.Type)
	}
	if len(s.Properties) != 5 {
		t.Fatalf("len(Properties) = %d, want 5", len(s.Properties))
	}
	if s.Properties["score"].Type != "NUMBER" || s.Properties["isCorrect"].Type != "BOOLEAN" {
		t.Errorf("scalar types = %s, %s", s.Properties["score"].Type, s.Properties["isCorrect"].Type)
	}
	if len(s.Properties["mastery"].Enum) != 3 {
		t.Errorf("enum = %v", s.Properties["mastery"].Enum)
	}
	if s.Properties["words"].Items.Type != "STRING" {
		t.Errorf("items type = %s", s.Properties["words"].Items.Type)
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}
