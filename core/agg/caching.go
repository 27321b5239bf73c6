package agg

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/table"
	"github.com/huangsam/rtps/schema"
)

// currentCacheVersion defines the version of the cached table encoding
const currentCacheVersion = 1

// CachedReadTable reads a table through the cache store when one is configured.
// The file is always stat'ed first, so a missing input fails even when a
// cached copy exists. Entries are valid while the file modification time
// matches the one they were stored with.
func CachedReadTable(store contract.CacheStore, path string) (schema.MeasurementTable, error) {
	info, err := table.Stat(path)
	if err != nil {
		return schema.MeasurementTable{}, err
	}
	if store == nil {
		// Fallback to direct read
		return table.Read(path)
	}

	key := generateCacheKey(path)
	mtime := info.ModTime().UnixNano()

	// Check for cache hit
	if result, ok := checkCacheHit(store, key, mtime); ok {
		result.Path = path
		return result, nil
	}

	// Cache miss: read and store
	return computeAndStore(store, path, key, mtime)
}

// checkCacheHit attempts to retrieve and validate a cached table
func checkCacheHit(store contract.CacheStore, key string, mtime int64) (schema.MeasurementTable, bool) {
	data, version, ts, err := store.Get(key)
	if err != nil {
		return schema.MeasurementTable{}, false // Cache miss
	}

	// Validate version and staleness
	if version != currentCacheVersion || ts != mtime {
		return schema.MeasurementTable{}, false
	}

	var result schema.MeasurementTable
	if err := json.Unmarshal(data, &result); err != nil {
		return schema.MeasurementTable{}, false
	}
	if result.Rows == nil {
		result.Rows = []schema.Measurement{}
	}
	return result, true
}

// computeAndStore reads the table and stores it in the cache
func computeAndStore(store contract.CacheStore, path, key string, mtime int64) (schema.MeasurementTable, error) {
	result, err := table.Read(path)
	if err != nil {
		return schema.MeasurementTable{}, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := store.Set(key, data, currentCacheVersion, mtime); err != nil {
			contract.LogWarn("Table cache write failed", err)
		}
	}

	return result, nil
}

// generateCacheKey creates a unique key from the absolute table path
func generateCacheKey(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte("table:"+abs)))
}
