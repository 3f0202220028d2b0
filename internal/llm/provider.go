// Package llm is the language-model boundary used for remote grading and
// exercise generation. Every vendor SDK is hidden behind Provider so the
// rest of the module only deals in prompts and JSON.
package llm

import (
	"context"
	"encoding/json"
)

// Provider generates a single completion.
type Provider interface {
	// Generate sends req and returns the completion. When req.Schema is
	// set the returned Content is JSON already validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the model the provider sends requests to.
	ModelID() string
}

// Purposes label requests in the event log.
const (
	PurposeRemoteGrading = "remote-grading"
	PurposeExerciseGen   = "exercise-gen"
)

// Request is a provider-neutral completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema switches the provider to its native structured-output mode.
	// Without it Content is the raw model text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message is one conversation turn.
type Message struct {
	Role    Role
	Content string
}

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single user turn.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is a named JSON Schema the completion must satisfy.
type Schema struct {
	// Name is kebab-case, e.g. "graded-result". It doubles as the
	// structured-output name on vendors that require one.
	Name        string
	Description string
	Definition  map[string]any
}

// Response is a provider-neutral completion.
type Response struct {
	Content json.RawMessage
	Usage   Usage
	Model   string

	// StopReason is one of "end", "max_tokens", "error".
	StopReason string
}

// Usage is the token accounting for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
