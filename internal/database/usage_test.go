package database

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/01moynul/taptosell-creatives/internal/ai"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDriver("sqlite", ":memory:")
	require.NoError(t, err)
	// A second connection would see a different in-memory database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestUsageLog_RecordAndSummarize(t *testing.T) {
	ctx := context.Background()
	log, err := NewUsageLog(ctx, openTestDB(t))
	require.NoError(t, err)

	now := time.Now().UTC()
	events := []ai.UsageEvent{
		{Operation: ai.OpImage, Model: ai.DefaultImageModel, Outcome: "ok", Latency: 100 * time.Millisecond, At: now},
		{Operation: ai.OpImage, Model: ai.DefaultImageModel, Outcome: "no_image_generated", Latency: 300 * time.Millisecond, At: now},
		{Operation: ai.OpImport, Model: ai.DefaultTextModel, Mock: true, Outcome: "ok", Latency: time.Second, At: now},
	}
	for _, ev := range events {
		require.NoError(t, log.RecordGeneration(ctx, ev))
	}

	summary, err := log.Summary(ctx, now.Add(-time.Minute))
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, "image", summary[0].Operation)
	assert.EqualValues(t, 2, summary[0].Calls)
	assert.EqualValues(t, 1, summary[0].Failures)
	assert.EqualValues(t, 0, summary[0].MockCalls)
	assert.InDelta(t, 200, summary[0].AvgMillis, 0.001)

	assert.Equal(t, "import", summary[1].Operation)
	assert.EqualValues(t, 1, summary[1].MockCalls)
}

func TestNewUsageLog_IsIdempotent(t *testing.T) {
	db := openTestDB(t)
	_, err := NewUsageLog(context.Background(), db)
	require.NoError(t, err)
	_, err = NewUsageLog(context.Background(), db)
	assert.NoError(t, err)
}
