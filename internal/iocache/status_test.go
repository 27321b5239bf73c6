package iocache

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/rtps/schema"
	"github.com/stretchr/testify/assert"
)

func TestPrintCacheStatus(t *testing.T) {
	t.Run("disconnected", func(t *testing.T) {
		var buf bytes.Buffer
		PrintCacheStatus(&buf, schema.CacheStatus{Backend: "none"})
		assert.Equal(t, "Cache Backend: none\nConnected: false\n", buf.String())
	})

	t.Run("connected", func(t *testing.T) {
		var buf bytes.Buffer
		PrintCacheStatus(&buf, schema.CacheStatus{
			Backend:         "sqlite",
			Connected:       true,
			TotalEntries:    2,
			LastEntryTime:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.Local),
			OldestEntryTime: time.Date(2026, 1, 1, 9, 30, 0, 0, time.Local),
			TableSizeBytes:  8192,
		})
		out := buf.String()
		assert.Contains(t, out, "Total Entries: 2")
		assert.Contains(t, out, "Newest Table: 2026-02-01 10:00:00")
		assert.Contains(t, out, "Oldest Table: 2026-01-01 09:30:00")
		assert.Contains(t, out, "Table Size: 8192 bytes")
	})
}

func TestPrintRunStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintRunStatus(&buf, schema.RunStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalRuns:     3,
		LastRunID:     "abc",
		LastRunTime:   time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC),
		OldestRunTime: time.Date(2026, 1, 1, 9, 30, 0, 0, time.UTC),
		TotalPoints:   1234,
		TableSizes: map[string]int64{
			renderRunsTable:  3,
			classCountsTable: 48,
		},
	})
	out := buf.String()
	assert.Contains(t, out, "Total Runs: 3")
	assert.Contains(t, out, "Last Run ID: abc")
	assert.Contains(t, out, "Total Points Rendered: 1234")

	// Table sizes are listed in name order
	countsAt := strings.Index(out, classCountsTable)
	runsAt := strings.Index(out, renderRunsTable)
	assert.Greater(t, countsAt, 0)
	assert.Greater(t, runsAt, countsAt)
}
