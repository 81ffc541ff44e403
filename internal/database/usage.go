package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/01moynul/taptosell-creatives/internal/ai"
)

const createUsageTable = `
	CREATE TABLE IF NOT EXISTS ai_generation_log (
		operation  VARCHAR(32) NOT NULL,
		model      VARCHAR(64) NOT NULL,
		mock       BOOLEAN     NOT NULL,
		outcome    VARCHAR(32) NOT NULL,
		latency_ms BIGINT      NOT NULL,
		created_at TIMESTAMP   NOT NULL
	)`

// UsageLog records every generation call for cost and error tracking. It
// holds no workflow state.
type UsageLog struct {
	DB *sql.DB
}

// NewUsageLog makes sure the log table exists.
func NewUsageLog(ctx context.Context, db *sql.DB) (*UsageLog, error) {
	if _, err := db.ExecContext(ctx, createUsageTable); err != nil {
		return nil, fmt.Errorf("failed to create ai_generation_log: %w", err)
	}
	return &UsageLog{DB: db}, nil
}

func (u *UsageLog) RecordGeneration(ctx context.Context, ev ai.UsageEvent) error {
	query := `
		INSERT INTO ai_generation_log (operation, model, mock, outcome, latency_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	_, err := u.DB.ExecContext(ctx, query,
		string(ev.Operation), ev.Model, ev.Mock, ev.Outcome, ev.Latency.Milliseconds(), ev.At)
	if err != nil {
		return fmt.Errorf("failed to record generation: %w", err)
	}
	return nil
}

// UsageSummary aggregates the log per operation.
type UsageSummary struct {
	Operation string  `json:"operation"`
	Calls     int64   `json:"calls"`
	Failures  int64   `json:"failures"`
	MockCalls int64   `json:"mockCalls"`
	AvgMillis float64 `json:"avgMillis"`
}

// Summary returns per-operation totals for calls made since since.
func (u *UsageLog) Summary(ctx context.Context, since time.Time) ([]UsageSummary, error) {
	query := `
		SELECT operation,
		       COUNT(*),
		       SUM(CASE WHEN outcome <> 'ok' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN mock THEN 1 ELSE 0 END),
		       AVG(latency_ms)
		FROM ai_generation_log
		WHERE created_at >= ?
		GROUP BY operation
		ORDER BY operation`
	rows, err := u.DB.QueryContext(ctx, query, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query usage: %w", err)
	}
	defer rows.Close()

	var out []UsageSummary
	for rows.Next() {
		var s UsageSummary
		if err := rows.Scan(&s.Operation, &s.Calls, &s.Failures, &s.MockCalls, &s.AvgMillis); err != nil {
			return nil, fmt.Errorf("failed to scan usage row: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

var _ ai.UsageRecorder = (*UsageLog)(nil)
