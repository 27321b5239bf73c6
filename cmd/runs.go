package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/internal/iocache"
	"github.com/huangsam/rtps/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// runsSetup loads minimal configuration needed for run store operations.
func runsSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := storeConfig("runs-backend", "runs-db-connect")
	if err != nil {
		return err
	}

	// Initialize stores with the loaded config (no table cache for runs commands)
	if err := iocache.InitCaching(schema.NoneBackend, "", backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize run store: %w", err)
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// runsSetupWrapper wraps runsSetup to provide PreRunE for runs commands.
func runsSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsSetup()
}

// runsMigrateSetup loads minimal configuration needed for migrate operations.
// It does NOT initialize stores or create tables, so migrations can run on a
// fresh database.
func runsMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend, connStr, err := storeConfig("runs-backend", "runs-db-connect")
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend {
		connStr = sqliteFilePath(connStr, contract.GetRunsDBFilePath())
	}

	cfg.RunsBackend = backend
	cfg.RunsDBConnect = connStr

	return nil
}

// runsMigrateSetupWrapper wraps runsMigrateSetup to provide PreRunE for the migrate command.
func runsMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return runsMigrateSetup()
}

// runsCmd focused on render run tracking.
var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Manage render run tracking and exports",
	Long: `Manage the history of render runs.

When enabled, rtps records every render, storing:
- Run metadata (timestamps, configuration, output files)
- Point counts and ranges of every source class

Supported backends: SQLite, MySQL, PostgreSQL, or None (default, disabled)

Subcommands:
  status  - Show run tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # Track runs in the default SQLite file
  RTPS_RUNS_BACKEND=sqlite rtps plot
  RTPS_RUNS_BACKEND=sqlite rtps runs status`,
}

// runsClearCmd clears the run data.
var runsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all render run history",
	Long: `Delete all stored render runs and class counts.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  rtps runs export --runs-backend sqlite --output-file backup
  rtps runs clear --runs-backend sqlite`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		iocache.CloseCaching()
		dbFile := sqliteFilePath(cfg.RunsDBConnect, contract.GetRunsDBFilePath())
		if err := iocache.ClearRuns(cfg.RunsBackend, dbFile, cfg.RunsDBConnect); err != nil {
			contract.LogFatal("Failed to clear run data", err)
		}
		fmt.Println("Run data cleared successfully.")
	},
}

// runsStatusCmd shows run store status.
var runsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display run tracking statistics and connection details",
	Long: `Show detailed information about render run tracking.

Displays:
- Backend type and connection status
- Total number of runs and points rendered
- Last and oldest run timestamps
- Database table sizes`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := iocache.Manager.GetRunStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get run status", err)
		}
		iocache.PrintRunStatus(os.Stdout, status)
	},
}

// runsExportCmd exports run data to Parquet files.
var runsExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export render run history to Parquet",
	Long: `Export all stored runs to Parquet for use with analytics tools.

Writes two files:
- <output-file>.render_runs.parquet
- <output-file>.class_counts.parquet

Requires: --output-file parameter

Examples:
  rtps runs export --runs-backend sqlite --output-file rtps-history
  duckdb -c "SELECT * FROM read_parquet('rtps-history.class_counts.parquet') LIMIT 10"`,
	PreRunE: runsSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := iocache.ExecuteRunsExport(os.Stdout, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export run data", err)
		}
	},
}

// runsMigrateCmd runs database migrations for the run store.
var runsMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the run store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  rtps runs migrate --runs-backend sqlite

  # Rollback to initial state
  rtps runs migrate --runs-backend sqlite --target-version 0`,
	PreRunE: runsMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		result, err := iocache.MigrateRuns(cfg.RunsBackend, cfg.RunsDBConnect, targetVersion)
		if err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		if !result.Changed {
			fmt.Printf("Run store already at version %d.\n", result.ToVersion)
			return
		}
		fmt.Printf("Migrated run store from version %d to %d.\n", result.FromVersion, result.ToVersion)
	},
}
