package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type historyRepo struct {
	db  *sqlx.DB
	seq *sequenceCounter
}

type historyRow struct {
	HistoryEntry
	CreatedAtMs int64 `db:"created_at"`
}

func (r *historyRepo) Append(ctx context.Context, entry HistoryEntry) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err = r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO history
		(sequence, attempt_id, exercise_id, title, percentage, band, source, daily, result, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		seqNum, entry.AttemptID, entry.ExerciseID, entry.Title, entry.Percentage,
		entry.Band, entry.Source, entry.Daily, entry.Result, entry.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("save history entry: %w", err)
	}
	return nil
}

func (r *historyRepo) List(ctx context.Context, opts QueryOpts) ([]HistoryEntry, error) {
	query, args := buildListQuery(`SELECT id, sequence, attempt_id, exercise_id, title, percentage, band, source, daily, result, created_at FROM history`, opts)

	var rows []historyRow
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	out := make([]HistoryEntry, len(rows))
	for i, row := range rows {
		e := row.HistoryEntry
		e.CreatedAt = time.UnixMilli(row.CreatedAtMs)
		out[i] = e
	}
	return out, nil
}

// buildListQuery appends the time window, newest-first ordering and limit.
func buildListQuery(base string, opts QueryOpts) (string, []any) {
	query := base
	var args []any
	var where []string
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}
	query += " ORDER BY sequence DESC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	return query, args
}
