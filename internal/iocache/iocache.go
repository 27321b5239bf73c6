package iocache

import (
	"sync"

	"github.com/huangsam/rtps/internal/contract"
)

// CacheStoreManager manages the table cache and the run store.
type CacheStoreManager struct {
	sync.RWMutex // Protects the store pointers during initialization
	tables       contract.CacheStore
	runs         contract.RunStore
}

var _ contract.CacheManager = &CacheStoreManager{} // Compile-time check

// GetTableStore returns the table CacheStore.
func (mgr *CacheStoreManager) GetTableStore() contract.CacheStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.tables
}

// GetRunStore returns the render RunStore.
func (mgr *CacheStoreManager) GetRunStore() contract.RunStore {
	mgr.RLock()
	defer mgr.RUnlock()
	return mgr.runs
}
