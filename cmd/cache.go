package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/iocache"
	"github.com/huangsam/rtps/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeConfig reads and validates one backend and its connection string from Viper.
func storeConfig(backendKey, connKey string) (schema.DatabaseBackend, string, error) {
	raw := strings.ToLower(strings.TrimSpace(viper.GetString(backendKey)))
	backend := schema.DatabaseBackend(raw)
	if raw == "" {
		backend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[backend]; !ok {
		return "", "", fmt.Errorf("%w: invalid %s '%s'. must be sqlite, mysql, postgresql, none", contract.ErrInvalidConfig, backendKey, raw)
	}

	connStr := viper.GetString(connKey)
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", fmt.Errorf("%w: %s: %w", contract.ErrInvalidConfig, connKey, err)
	}
	return backend, connStr, nil
}

// sqliteFilePath returns the SQLite file of a store: the connection string when
// one is given, otherwise the default path.
func sqliteFilePath(connStr, defaultPath string) string {
	if connStr != "" {
		return connStr
	}
	return defaultPath
}

// cacheSetup loads minimal configuration needed for cache operations.
// This is used by commands that need cache access without full shared setup.
func cacheSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := storeConfig("cache-backend", "cache-db-connect")
	if err != nil {
		return err
	}

	// Initialize caching with the loaded config (no run tracking for cache commands)
	if err := iocache.InitCaching(backend, connStr, schema.NoneBackend, ""); err != nil {
		return fmt.Errorf("failed to initialize cache: %w", err)
	}

	cfg.CacheBackend = backend
	cfg.CacheDBConnect = connStr

	return nil
}

// cacheSetupWrapper wraps cacheSetup to provide PreRunE for cache commands.
func cacheSetupWrapper(_ *cobra.Command, _ []string) error {
	return cacheSetup()
}

// cacheCmd focused on cache management.
//
// Note: Cache subcommands use minimal initialization (cacheSetup) instead of
// the full sharedSetup used by the render commands.
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the parsed table cache",
	Long: `Manage the cache of parsed source-class tables.

rtps caches parsed tables keyed by their absolute path. An entry is reused
only while the file modification time is unchanged.

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status - Show cache statistics and connection info
  clear  - Remove all cached data

Examples:
  # Check cache status
  rtps cache status --cache-backend sqlite

  # Clear cache
  rtps cache clear --cache-backend sqlite`,
}

// cacheClearCmd clears the cache.
var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cached tables",
	Long: `Delete all cached tables from the configured backend.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the cache table

Examples:
  # Clear MySQL cache (set connection string via env variable)
  RTPS_CACHE_BACKEND=mysql RTPS_CACHE_DB_CONNECT="..." rtps cache clear`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseCaching()
		dbFile := sqliteFilePath(cfg.CacheDBConnect, contract.GetCacheDBFilePath())
		if err := iocache.ClearCache(cfg.CacheBackend, dbFile, cfg.CacheDBConnect); err != nil {
			contract.LogFatal("Failed to clear cache", err)
		}
		fmt.Println("Cache cleared successfully.")
	},
}

// cacheStatusCmd shows cache status.
var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display cache statistics and connection details",
	Long: `Show detailed information about the table cache.

Displays:
- Backend type and connection status
- Total number of cached tables
- Newest and oldest entry timestamps
- Cache table size`,
	PreRunE: cacheSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetTableStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get cache status", err)
		}
		iocache.PrintCacheStatus(os.Stdout, status)
	},
}
