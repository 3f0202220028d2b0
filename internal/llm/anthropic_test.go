package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

func anthropicServer(t *testing.T, status int, body map[string]any) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)

	client := anthropic.NewClient(option.WithAPIKey("test-key"), option.WithBaseURL(srv.URL), option.WithMaxRetries(0))
	return &AnthropicProvider{client: &client, model: "claude-haiku-4-5-20251001"}
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_1",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 120, "output_tokens": 40},
	}
}

func TestAnthropicProvider_Generate(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, anthropicMessage(`{"word":"voyage","definition":"a long journey"}`, "end_turn"))

	resp, err := p.Generate(context.Background(), Request{
		System:    "You write vocabulary exercises.",
		Messages:  UserMessage("Define voyage."),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if resp.Usage.InputTokens != 120 || resp.Usage.TotalTokens != 160 {
		t.Errorf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != "end" {
		t.Errorf("StopReason = %q, want end", resp.StopReason)
	}
}

func TestAnthropicProvider_SchemaMismatch(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, anthropicMessage(`{"word":"voyage"}`, "end_turn"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  UserMessage("Define voyage."),
		MaxTokens: 256,
		Schema:    wordSchema(),
	})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("err = %v, want ErrInvalidResponse", err)
	}
}

func TestAnthropicProvider_TruncatedStructuredOutput(t *testing.T) {
	p := anthropicServer(t, http.StatusOK, anthropicMessage(`{"word":"voy`, "max_tokens"))

	_, err := p.Generate(context.Background(), Request{
		Messages:  UserMessage("Define voyage."),
		MaxTokens: 8,
		Schema:    wordSchema(),
	})
	var mt *ErrMaxTokensExceeded
	if !errors.As(err, &mt) {
		t.Fatalf("err = %v, want ErrMaxTokensExceeded", err)
	}
}

func TestAnthropicProvider_StatusMapping(t *testing.T) {
	errBody := func(kind string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": kind, "message": kind}}
	}

	p := anthropicServer(t, http.StatusTooManyRequests, errBody("rate_limit_error"))
	_, err := p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 10})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Errorf("429: err = %T, want ErrRateLimit", err)
	}

	p = anthropicServer(t, http.StatusInternalServerError, errBody("api_error"))
	_, err = p.Generate(context.Background(), Request{Messages: UserMessage("x"), MaxTokens: 10})
	var un *ErrProviderUnavailable
	if !errors.As(err, &un) {
		t.Errorf("500: err = %T, want ErrProviderUnavailable", err)
	}
}

func TestAnthropicModelAliases(t *testing.T) {
	tests := map[string]string{
		"claude-haiku":             "claude-haiku-4-5-20251001",
		"claude-sonnet":            "claude-sonnet-4-5-20250929",
		"claude-opus-4-1-20250805": "claude-opus-4-1-20250805",
	}
	for in, want := range tests {
		if got := resolveModel(in, anthropicModels); got != want {
			t.Errorf("resolveModel(%q) = %q, want %q", in, got, want)
		}
	}
}
