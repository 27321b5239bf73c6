package core

import (
	"context"

	"github.com/huangsam/rtps/internal/contract"
)

// Context keys for render options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	cacheManagerKey   contextKey = "cacheManager"
	runIDKey          contextKey = "runID"
)

// withSuppressHeader sets whether headers should be suppressed in the context
func withSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// shouldSuppressHeader returns whether headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// contextWithCacheManager stores the cache manager for callers that only carry a context
func contextWithCacheManager(ctx context.Context, mgr contract.CacheManager) context.Context {
	return context.WithValue(ctx, cacheManagerKey, mgr)
}

// cacheManagerFromContext returns the cache manager stored in the context, if any
func cacheManagerFromContext(ctx context.Context) contract.CacheManager {
	mgr, _ := ctx.Value(cacheManagerKey).(contract.CacheManager)
	return mgr
}

// withRunID sets the render run ID in the context
func withRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the render run ID from the context
func getRunID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(runIDKey).(string)
	return id, ok && id != ""
}
