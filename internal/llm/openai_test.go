package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

func openaiServer(t *testing.T, status int, body map[string]any, seen *openai.ChatCompletionRequest) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if seen != nil {
			json.NewDecoder(r.Body).Decode(seen)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	cfg := openai.DefaultConfig("test-key")
	cfg.BaseURL = srv.URL + "/v1"
	return &OpenAIProvider{client: openai.NewClientWithConfig(cfg), model: "gpt-4o-mini"}
}

func chatCompletion(content, finish string) map[string]any {
	return map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o-mini",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": content},
			"finish_reason": finish,
		}},
		"usage": map[string]any{"prompt_tokens": 80, "completion_tokens": 20, "total_tokens": 100},
	}
}

func TestOpenAIProvider_GenerateWithSchema(t *testing.T) {
	var seen openai.ChatCompletionRequest
	p := openaiServer(t, http.StatusOK, chatCompletion(`{"word":"voyage","definition":"a long journey"}`, "stop"), &seen)

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write vocabulary exercises.",
		Messages:  UserMessage("Define voyage."),
		MaxTokens: 256,
		Schema:    wordSchema(),
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Usage.TotalTokens != 100 {
		t.Errorf("TotalTokens = %d, want 100", resp.Usage.TotalTokens)
	}
	if len(seen.Messages) != 2 || seen.Messages[0].Role != openai.ChatMessageRoleSystem {
		t.Errorf("messages sent = %+v", seen.Messages)
	}
	if seen.ResponseFormat == nil || seen.ResponseFormat.JSONSchema == nil || seen.ResponseFormat.JSONSchema.Name != "word-entry" {
		t.Errorf("response format not set: %+v", seen.ResponseFormat)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	body := chatCompletion("", "stop")
	body["choices"] = []map[string]any{}
	p := openaiServer(t, http.StatusOK, body, nil)

	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 10})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestOpenAIProvider_StatusMapping(t *testing.T) {
	errBody := map[string]any{"error": map[string]any{"type": "x", "message": "x"}}

	p := openaiServer(t, http.StatusTooManyRequests, errBody, nil)
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 10})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("429: err = %T, want ErrRateLimit", err)
	}

	p = openaiServer(t, http.StatusBadGateway, errBody, nil)
	_, err = p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 10})
	var un *ErrProviderUnavailable
	if !errors.As(err, &un) {
		t.Errorf("502: err = %T, want ErrProviderUnavailable", err)
	}
}

func TestNewOpenAIProvider_OpenRouterBaseURL(t *testing.T) {
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-mini", BaseURL: defaultOpenRouterBaseURL})
	if err != nil {
		t.Fatalf("NewOpenAIProvider: %v", err)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID = %q, want gpt-4o-mini", p.ModelID())
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("expected error without API key")
	}
}
