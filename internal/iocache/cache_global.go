package iocache

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
)

// tableCacheTable is the name of the table for parsed table caching.
const tableCacheTable = "rtps_table_cache"

// Global Manager instance for main logic.
var (
	Manager   = &CacheStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// GetCacheDBFilePath returns the path to the SQLite DB file for the table cache.
func GetCacheDBFilePath() string {
	return contract.GetCacheDBFilePath()
}

// GetRunsDBFilePath returns the path to the SQLite DB file for run tracking.
func GetRunsDBFilePath() string {
	return contract.GetRunsDBFilePath()
}

// InitCaching initializes the global cache manager with separate cache and run stores.
// A NoneBackend store is a no-op, so callers never see nil stores.
func InitCaching(cacheBackend schema.DatabaseBackend, cacheConnStr string, runsBackend schema.DatabaseBackend, runsConnStr string) error {
	var initErr error

	initOnce.Do(func() {
		tableStore, err := NewCacheStore(tableCacheTable, cacheBackend, cacheConnStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize table caching: %w", err)
			return
		}

		runStore, err := NewRunStore(runsBackend, runsConnStr)
		if err != nil {
			_ = tableStore.Close()
			initErr = fmt.Errorf("failed to initialize run store: %w", err)
			return
		}

		Manager.Lock()
		defer Manager.Unlock()
		Manager.tables = tableStore
		Manager.runs = runStore
	})

	return initErr
}

// CloseCaching should be called on application shutdown.
func CloseCaching() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.tables != nil {
			_ = Manager.tables.Close()
		}
		if Manager.runs != nil {
			_ = Manager.runs.Close()
		}
	})
}

// ClearCache clears the table cache for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the table.
// For NoneBackend, it does nothing.
func ClearCache(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, tableCacheTable)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported cache backend for clearing: %s", backend)
	}
}

// ClearRuns clears the run tracking data for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the run tables and the migration history.
// For NoneBackend, it does nothing.
func ClearRuns(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		return removeSQLiteFile(dbFilePath)
	case schema.MySQLBackend, schema.PostgreSQLBackend:
		return clearSQLTables(backend, connStr, classCountsTable, renderRunsTable, migrationsTable)
	case schema.NoneBackend:
		return nil
	default:
		return fmt.Errorf("unsupported runs backend for clearing: %s", backend)
	}
}

// removeSQLiteFile removes a SQLite database file, ignoring a missing one.
func removeSQLiteFile(dbFilePath string) error {
	if dbFilePath == "" {
		return fmt.Errorf("dbFilePath cannot be empty for SQLite backend")
	}
	if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
	}
	return nil
}

// clearSQLTables connects to the SQL database and drops the tables if they exist.
func clearSQLTables(backend schema.DatabaseBackend, connStr string, tables ...string) error {
	db, err := openDB(backend, connStr, "")
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	return dropTables(db, backend, tables...)
}

// dropTables drops each table in order.
func dropTables(db *sql.DB, backend schema.DatabaseBackend, tables ...string) error {
	for _, table := range tables {
		query := fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteTableName(table, backend))
		if _, err := db.Exec(query); err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}
	return nil
}
