package core

import (
	"context"
	"sync"
	"testing"

	"github.com/huangsam/rtps/internal/iocache"
	"github.com/stretchr/testify/assert"
)

// TestContextConcurrentAccess tests that context values can be safely accessed concurrently.
func TestContextConcurrentAccess(t *testing.T) {
	ctx := context.Background()

	const numGoroutines = 50
	done := make(chan bool, numGoroutines)

	mgr := &iocache.MockCacheManager{}
	ctx = withSuppressHeader(ctx)
	ctx = withRunID(ctx, "run-12345")
	ctx = contextWithCacheManager(ctx, mgr)

	for i := range numGoroutines {
		go func(id int) {
			defer func() { done <- true }()

			suppress := shouldSuppressHeader(ctx)
			runID, ok := getRunID(ctx)

			assert.True(t, suppress, "Goroutine %d: shouldSuppressHeader should be true", id)
			assert.True(t, ok, "Goroutine %d: getRunID should return true", id)
			assert.Equal(t, "run-12345", runID, "Goroutine %d: runID should be run-12345", id)
			assert.Same(t, mgr, cacheManagerFromContext(ctx), "Goroutine %d: manager should be stored", id)
		}(i)
	}

	for range numGoroutines {
		<-done
	}
}

// TestContextIsolation tests that different contexts maintain isolation.
func TestContextIsolation(t *testing.T) {
	baseCtx := context.Background()

	ctx1 := withRunID(baseCtx, "a")
	ctx2 := withRunID(baseCtx, "b")
	ctx3 := withSuppressHeader(baseCtx)

	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		id1, ok1 := getRunID(ctx1)
		assert.True(t, ok1)
		assert.Equal(t, "a", id1)
		assert.False(t, shouldSuppressHeader(ctx1))
	}()

	go func() {
		defer wg.Done()
		id2, ok2 := getRunID(ctx2)
		assert.True(t, ok2)
		assert.Equal(t, "b", id2)
	}()

	go func() {
		defer wg.Done()
		id3, ok3 := getRunID(ctx3)
		assert.False(t, ok3)
		assert.Empty(t, id3)
		assert.True(t, shouldSuppressHeader(ctx3))
		assert.Nil(t, cacheManagerFromContext(ctx3))
	}()

	wg.Wait()
}

// TestGetRunIDEmpty tests that a tracking backend without IDs is treated as untracked.
func TestGetRunIDEmpty(t *testing.T) {
	_, ok := getRunID(withRunID(context.Background(), ""))
	assert.False(t, ok)
}
