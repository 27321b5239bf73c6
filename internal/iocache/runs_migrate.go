package iocache

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/huangsam/rtps/schema"
)

//go:embed migrations
var migrationsFS embed.FS

// migrationsTable records the applied schema version of the run store.
const migrationsTable = "rtps_schema_migrations"

// MigrateRuns runs database migrations for the run store.
// - If targetVersion < 0, it migrates to the latest version.
// - If targetVersion == 0, it rolls back all migrations (to initial state).
// - If targetVersion > 0, it migrates to the specified version.
func MigrateRuns(backend schema.DatabaseBackend, connStr string, targetVersion int) (schema.MigrationResult, error) {
	if backend == schema.NoneBackend {
		return schema.MigrationResult{}, fmt.Errorf("migrations are not supported for NoneBackend")
	}

	db, err := openDB(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return schema.MigrationResult{}, err
	}
	defer func() { _ = db.Close() }()

	return migrateDB(db, backend, targetVersion)
}

// migrateDB applies the embedded migrations of the backend to an open database.
func migrateDB(db *sql.DB, backend schema.DatabaseBackend, targetVersion int) (schema.MigrationResult, error) {
	var result schema.MigrationResult

	// Create a migrate driver instance
	var driver database.Driver
	var dir string
	var err error
	switch backend {
	case schema.SQLiteBackend:
		dir = "sqlite"
		driver, err = sqlite.WithInstance(db, &sqlite.Config{MigrationsTable: migrationsTable})
	case schema.MySQLBackend:
		dir = "mysql"
		driver, err = mysql.WithInstance(db, &mysql.Config{MigrationsTable: migrationsTable})
	case schema.PostgreSQLBackend:
		dir = "postgres"
		driver, err = pgxmigrate.WithInstance(db, &pgxmigrate.Config{MigrationsTable: migrationsTable})
	default:
		return result, fmt.Errorf("unsupported backend: %s", backend)
	}
	if err != nil {
		return result, fmt.Errorf("failed to create %s migrate driver: %w", backend, err)
	}

	// Get the migrations subdirectory
	migrationFS, err := fs.Sub(migrationsFS, "migrations/"+dir)
	if err != nil {
		return result, fmt.Errorf("failed to access migrations directory: %w", err)
	}

	// Create source driver from embedded FS
	sourceDriver, err := iofs.New(migrationFS, ".")
	if err != nil {
		return result, fmt.Errorf("failed to create migration source: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "rtps", driver)
	if err != nil {
		return result, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	currentVersion, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return result, fmt.Errorf("failed to get current migration version: %w", err)
	}
	if dirty {
		return result, fmt.Errorf("database is in a dirty state at version %d. Please fix manually or force version", currentVersion)
	}
	result.FromVersion = currentVersion

	switch {
	case targetVersion < 0:
		err = m.Up()
	case targetVersion == 0:
		err = m.Down()
	default:
		err = m.Migrate(uint(targetVersion))
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return result, fmt.Errorf("failed to migrate from version %d: %w", currentVersion, err)
	}

	newVersion, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return result, fmt.Errorf("failed to read migrated version: %w", err)
	}
	result.ToVersion = newVersion
	result.Changed = result.FromVersion != result.ToVersion
	return result, nil
}
