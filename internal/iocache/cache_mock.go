package iocache

import (
	"time"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
	"github.com/stretchr/testify/mock"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// GetTableStore implements the CacheManager interface.
func (m *MockCacheManager) GetTableStore() contract.CacheStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.CacheStore)
	return store
}

// GetRunStore implements the CacheManager interface.
func (m *MockCacheManager) GetRunStore() contract.RunStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.RunStore)
	return store
}

// MockCacheStore is a mock implementation of CacheStore for testing.
type MockCacheStore struct {
	mock.Mock
}

var _ contract.CacheStore = &MockCacheStore{} // Compile-time check

// Get implements the CacheStore interface.
func (m *MockCacheStore) Get(key string) ([]byte, int, int64, error) {
	args := m.Called(key)
	data, _ := args.Get(0).([]byte)
	return data, args.Int(1), args.Get(2).(int64), args.Error(3)
}

// Set implements the CacheStore interface.
func (m *MockCacheStore) Set(key string, data []byte, version int, ts int64) error {
	args := m.Called(key, data, version, ts)
	return args.Error(0)
}

// Close implements the CacheStore interface.
func (m *MockCacheStore) Close() error {
	args := m.Called()
	return args.Error(0)
}

// GetStatus implements the CacheStore interface.
func (m *MockCacheStore) GetStatus() (schema.CacheStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.CacheStatus), args.Error(1)
}

// MockRunStore is a mock implementation of RunStore for testing.
type MockRunStore struct {
	mock.Mock
}

var _ contract.RunStore = &MockRunStore{} // Compile-time check

// BeginRun implements the RunStore interface.
func (m *MockRunStore) BeginRun(startTime time.Time, configParams map[string]any) (string, error) {
	args := m.Called(startTime, configParams)
	return args.String(0), args.Error(1)
}

// EndRun implements the RunStore interface.
func (m *MockRunStore) EndRun(runID string, endTime time.Time, totalPoints int, outputFiles []string) error {
	args := m.Called(runID, endTime, totalPoints, outputFiles)
	return args.Error(0)
}

// RecordClassCount implements the RunStore interface.
func (m *MockRunStore) RecordClassCount(runID string, summary schema.ClassSummary) error {
	args := m.Called(runID, summary)
	return args.Error(0)
}

// GetStatus implements the RunStore interface.
func (m *MockRunStore) GetStatus() (schema.RunStatus, error) {
	args := m.Called()
	return args.Get(0).(schema.RunStatus), args.Error(1)
}

// GetAllRenderRuns implements the RunStore interface.
func (m *MockRunStore) GetAllRenderRuns() ([]schema.RenderRunRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.RenderRunRecord)
	return records, args.Error(1)
}

// GetAllClassCounts implements the RunStore interface.
func (m *MockRunStore) GetAllClassCounts() ([]schema.ClassCountRecord, error) {
	args := m.Called()
	records, _ := args.Get(0).([]schema.ClassCountRecord)
	return records, args.Error(1)
}

// Close implements the RunStore interface.
func (m *MockRunStore) Close() error {
	args := m.Called()
	return args.Error(0)
}
