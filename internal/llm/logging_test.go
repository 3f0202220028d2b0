package llm

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/abhisek/lexis/internal/store"
)

type memEvents struct {
	mu     sync.Mutex
	events []store.LLMRequestEventData
	fail   error
}

func (m *memEvents) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, data)
	return m.fail
}

func (m *memEvents) QueryLLMEvents(context.Context, store.QueryOpts) ([]store.LLMRequestEvent, error) {
	return nil, nil
}

func (m *memEvents) GetLLMEvent(context.Context, int64) (*store.LLMRequestEvent, error) {
	return nil, nil
}

func (m *memEvents) LLMUsageByPurpose(context.Context) ([]store.LLMUsage, error) { return nil, nil }

func (m *memEvents) LLMUsageByModel(context.Context) ([]store.LLMUsage, error) { return nil, nil }

func TestRecordingProvider(t *testing.T) {
	events := &memEvents{}
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"ok":true}`), Usage: Usage{InputTokens: 11, OutputTokens: 3}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithRecording(mock, "mock", events, nil)
	ctx := WithPurpose(context.Background(), PurposeExerciseGen)

	if _, err := p.Generate(ctx, Request{System: "sys", Messages: UserMessage("hello")}); err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := p.Generate(ctx, Request{}); err == nil {
		t.Fatal("expected error from second call")
	}

	if len(events.events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(events.events))
	}
	first, second := events.events[0], events.events[1]
	if !first.Success || first.Purpose != PurposeExerciseGen || first.InputTokens != 11 {
		t.Errorf("first = %+v", first)
	}
	if first.RequestBody != "[system]\nsys\n\n[user]\nhello\n\n" {
		t.Errorf("RequestBody = %q", first.RequestBody)
	}
	if second.Success || second.ErrorMessage == "" {
		t.Errorf("second = %+v", second)
	}
}

func TestRecordingProvider_RecordFailureIgnored(t *testing.T) {
	events := &memEvents{fail: errors.New("disk full")}
	p := WithRecording(NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)}), "mock", events, nil)

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("recording failure leaked into Generate: %v", err)
	}
}
