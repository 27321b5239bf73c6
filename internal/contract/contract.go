// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/rtps/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetTableStore() CacheStore
	GetRunStore() RunStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// RunStore defines the interface for tracking render runs and per-class counts.
type RunStore interface {
	// BeginRun creates a new render run and returns its unique ID
	BeginRun(startTime time.Time, configParams map[string]any) (string, error)

	// EndRun updates the render run with completion data
	EndRun(runID string, endTime time.Time, totalPoints int, outputFiles []string) error

	// RecordClassCount stores the loaded summary of one source class
	RecordClassCount(runID string, summary schema.ClassSummary) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRenderRuns returns every recorded render run, oldest first
	GetAllRenderRuns() ([]schema.RenderRunRecord, error)

	// GetAllClassCounts returns every recorded per-class count
	GetAllClassCounts() ([]schema.ClassCountRecord, error)

	// Close closes the underlying connection
	Close() error
}
