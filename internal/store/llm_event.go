package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// eventRepo implements EventRepo backed by the llm_requests table and the
// global sequence counter.
type eventRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type llmEventRow struct {
	LLMRequestEvent
	CreatedAtMs int64 `db:"created_at"`
}

const llmEventColumns = `id, sequence, provider, model, purpose, input_tokens, output_tokens,
	latency_ms, success, error_message, request_body, response_body, created_at`

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO llm_requests
		(sequence, provider, model, purpose, input_tokens, output_tokens, latency_ms,
		 success, error_message, request_body, response_body, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		seqNum, data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
		data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		time.Now().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save LLM request event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error) {
	query, args := buildListQuery(`SELECT `+llmEventColumns+` FROM llm_requests`, opts)

	var rows []llmEventRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query LLM events: %w", err)
	}
	out := make([]LLMRequestEvent, len(rows))
	for i, row := range rows {
		out[i] = row.toEvent()
	}
	return out, nil
}

func (r *eventRepo) GetLLMEvent(ctx context.Context, id int64) (*LLMRequestEvent, error) {
	var row llmEventRow
	err := r.db.GetContext(ctx, &row, r.db.Rebind(`SELECT `+llmEventColumns+` FROM llm_requests WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("LLM event %d not found", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get LLM event: %w", err)
	}
	e := row.toEvent()
	return &e, nil
}

func (row llmEventRow) toEvent() LLMRequestEvent {
	e := row.LLMRequestEvent
	e.Timestamp = time.UnixMilli(row.CreatedAtMs)
	return e
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]LLMUsage, error) {
	return r.usage(ctx, "model")
}

// usage groups llm_requests by column, which is always a fixed identifier.
func (r *eventRepo) usage(ctx context.Context, column string) ([]LLMUsage, error) {
	query := `SELECT ` + column + ` AS name,
		COUNT(*) AS calls,
		COALESCE(SUM(input_tokens), 0) AS input_tokens,
		COALESCE(SUM(output_tokens), 0) AS output_tokens,
		CAST(COALESCE(AVG(latency_ms), 0) AS BIGINT) AS avg_latency_ms
		FROM llm_requests GROUP BY ` + column + ` ORDER BY calls DESC, name`

	var out []LLMUsage
	if err := r.db.SelectContext(ctx, &out, query); err != nil {
		return nil, fmt.Errorf("query LLM usage by %s: %w", column, err)
	}
	return out, nil
}
