package store

import (
	"context"
	"time"
)

// QueryOpts configures listing queries with filtering and pagination.
type QueryOpts struct {
	Limit int       // max results (0 = unlimited)
	From  time.Time // created_at >= From
	To    time.Time // created_at <= To
}

// KV is a synchronous key/value store. Get reports ok=false for absent keys.
type KV interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// HistoryEntry is one graded attempt as recorded in history.
type HistoryEntry struct {
	ID         int64     `db:"id" json:"id"`
	Sequence   int64     `db:"sequence" json:"sequence"`
	AttemptID  string    `db:"attempt_id" json:"attemptId"`
	ExerciseID string    `db:"exercise_id" json:"exerciseId"`
	Title      string    `db:"title" json:"title"`
	Percentage float64   `db:"percentage" json:"percentage"`
	Band       string    `db:"band" json:"band"`
	Source     string    `db:"source" json:"source"`
	Daily      bool      `db:"daily" json:"daily"`
	Result     string    `db:"result" json:"-"` // GradedResult JSON
	CreatedAt  time.Time `db:"-" json:"createdAt"`
}

// HistoryRepo records graded attempts.
type HistoryRepo interface {
	Append(ctx context.Context, entry HistoryEntry) error

	// List returns entries newest first.
	List(ctx context.Context, opts QueryOpts) ([]HistoryEntry, error)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEvent is a persisted LLM request event.
type LLMRequestEvent struct {
	ID           int64     `db:"id"`
	Sequence     int64     `db:"sequence"`
	Provider     string    `db:"provider"`
	Model        string    `db:"model"`
	Purpose      string    `db:"purpose"`
	InputTokens  int       `db:"input_tokens"`
	OutputTokens int       `db:"output_tokens"`
	LatencyMs    int64     `db:"latency_ms"`
	Success      bool      `db:"success"`
	ErrorMessage string    `db:"error_message"`
	RequestBody  string    `db:"request_body"`
	ResponseBody string    `db:"response_body"`
	Timestamp    time.Time `db:"-"`
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// GetLLMEvent returns a single event by id.
	GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error)

	// LLMUsageByPurpose aggregates token usage per request purpose.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// LLMUsageByModel aggregates token usage per model.
	LLMUsageByModel(ctx context.Context) ([]LLMUsage, error)
}

// LLMUsage is aggregated usage for one purpose or model.
type LLMUsage struct {
	Name         string `db:"name"`
	Calls        int    `db:"calls"`
	InputTokens  int    `db:"input_tokens"`
	OutputTokens int    `db:"output_tokens"`
	AvgLatencyMs int64  `db:"avg_latency_ms"`
}
