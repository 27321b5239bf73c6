package schema

import "time"

// CacheStatus represents the status of the table cache store.
type CacheStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalEntries    int       `json:"total_entries"`
	LastEntryTime   time.Time `json:"last_entry_time"`
	OldestEntryTime time.Time `json:"oldest_entry_time"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
}

// RunStatus represents the status of the render run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     string           `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalPoints   int64            `json:"total_points"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RenderRunRecord represents a row from the rtps_render_runs table.
type RenderRunRecord struct {
	RunID        string
	StartTime    time.Time
	EndTime      *time.Time
	DurationMs   *int64
	TotalPoints  *int64
	OutputFiles  *string
	ConfigParams *string
}

// ClassCountRecord represents a row from the rtps_class_counts table.
type ClassCountRecord struct {
	RunID   string
	Class   string
	Points  int64
	Skipped int64
	MinVW   float64
	MaxVW   float64
	MinL    float64
	MaxL    float64
}

// MigrationResult reports the schema versions before and after a migration.
type MigrationResult struct {
	FromVersion uint
	ToVersion   uint
	Changed     bool
}
