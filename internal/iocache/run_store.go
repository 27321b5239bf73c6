package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/rtps/internal/contract"
	"github.com/huangsam/rtps/schema"
)

// Table names for run tracking.
const (
	renderRunsTable  = "rtps_render_runs"
	classCountsTable = "rtps_class_counts"
)

// RunStoreImpl implements the RunStore interface.
type RunStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.RunStore = &RunStoreImpl{} // Compile-time check

// NewRunStore creates a new RunStore with the specified backend.
// Pending schema migrations are applied before the store is returned.
func NewRunStore(backend schema.DatabaseBackend, connStr string) (*RunStoreImpl, error) {
	if backend == schema.NoneBackend {
		// Return a no-op store for disabled tracking
		return &RunStoreImpl{backend: backend}, nil
	}

	db, err := openDB(backend, connStr, GetRunsDBFilePath())
	if err != nil {
		return nil, fmt.Errorf("run store: %w", err)
	}

	// SQLite migrates on the store's own handle so that in-memory databases
	// see their tables. Server backends migrate on a short-lived handle.
	if backend == schema.SQLiteBackend {
		_, err = migrateDB(db, backend, -1)
	} else {
		_, err = MigrateRuns(backend, connStr, -1)
	}
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate run tables: %w", err)
	}

	return &RunStoreImpl{db: db, backend: backend}, nil
}

// BeginRun creates a new render run and returns its unique ID.
func (rs *RunStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (string, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return "", nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return "", fmt.Errorf("failed to marshal config params: %w", err)
	}

	runID := uuid.NewString()
	query := fmt.Sprintf(`INSERT INTO %s (run_id, start_time, config_params) VALUES (%s)`,
		quoteTableName(renderRunsTable, rs.backend), placeholders(rs.backend, 3))
	if _, err := rs.db.Exec(query, runID, formatTime(startTime, rs.backend), string(configJSON)); err != nil {
		return "", fmt.Errorf("failed to insert render run: %w", err)
	}

	return runID, nil
}

// EndRun updates the render run with completion data.
func (rs *RunStoreImpl) EndRun(runID string, endTime time.Time, totalPoints int, outputFiles []string) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(renderRunsTable, rs.backend)
	query := fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, quotedTableName, placeholders(rs.backend, 1))
	startTime, err := rs.scanTime(rs.db.QueryRow(query, runID))
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %s: %w", runID, err)
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	filesJSON, err := json.Marshal(outputFiles)
	if err != nil {
		return fmt.Errorf("failed to marshal output files: %w", err)
	}

	var updateQuery string
	switch rs.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_points = $3, output_files = $4 WHERE run_id = $5`, quotedTableName)
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_points = ?, output_files = ? WHERE run_id = ?`, quotedTableName)
	}

	if _, err := rs.db.Exec(updateQuery, formatTime(endTime, rs.backend), durationMs, totalPoints, string(filesJSON), runID); err != nil {
		return fmt.Errorf("failed to update render run: %w", err)
	}
	return nil
}

// RecordClassCount stores the loaded summary of one source class.
func (rs *RunStoreImpl) RecordClassCount(runID string, summary schema.ClassSummary) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	query := fmt.Sprintf(`INSERT INTO %s (run_id, class_key, points, skipped, min_vw, max_vw, min_l, max_l) VALUES (%s)`,
		quoteTableName(classCountsTable, rs.backend), placeholders(rs.backend, 8))
	_, err := rs.db.Exec(query, runID, summary.Key, summary.Points, summary.Skipped,
		nullFloat(summary.MinVW), nullFloat(summary.MaxVW), nullFloat(summary.MinL), nullFloat(summary.MaxL))
	if err != nil {
		return fmt.Errorf("failed to insert class count for %s: %w", summary.Key, err)
	}
	return nil
}

// Close closes the underlying connection.
func (rs *RunStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the run store.
func (rs *RunStoreImpl) GetStatus() (schema.RunStatus, error) {
	status := schema.RunStatus{
		Backend:    string(rs.backend),
		Connected:  rs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	runsTable := quoteTableName(renderRunsTable, rs.backend)
	if err := rs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsTable)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		row := rs.db.QueryRow(fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY start_time DESC LIMIT 1", runsTable))
		var lastRunTime any
		if err := row.Scan(&status.LastRunID, &lastRunTime); err != nil {
			return status, fmt.Errorf("failed to get last run info: %w", err)
		}
		t, err := rs.toTime(lastRunTime)
		if err != nil {
			return status, fmt.Errorf("failed to parse last run time: %w", err)
		}
		status.LastRunTime = t

		// Get oldest run time
		oldest, err := rs.scanTime(rs.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY start_time ASC LIMIT 1", runsTable)))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
		status.OldestRunTime = oldest

		// Get total points rendered
		pointsQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_points), 0) FROM %s", runsTable)
		if err := rs.db.QueryRow(pointsQuery).Scan(&status.TotalPoints); err != nil {
			return status, fmt.Errorf("failed to get total points: %w", err)
		}
	}

	// Get table sizes
	for _, table := range []string{renderRunsTable, classCountsTable} {
		var count int64
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, rs.backend))
		if err := rs.db.QueryRow(countQuery).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRenderRuns retrieves all render runs from the store, oldest first.
func (rs *RunStoreImpl) GetAllRenderRuns() ([]schema.RenderRunRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, start_time, end_time, run_duration_ms, total_points, output_files, config_params
		FROM %s ORDER BY start_time, run_id`, quoteTableName(renderRunsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query render runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RenderRunRecord
	for rows.Next() {
		var record schema.RenderRunRecord
		var startRaw, endRaw any
		if err := rows.Scan(&record.RunID, &startRaw, &endRaw, &record.DurationMs, &record.TotalPoints,
			&record.OutputFiles, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan render run: %w", err)
		}

		if record.StartTime, err = rs.toTime(startRaw); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if endRaw != nil {
			endTime, err := rs.toTime(endRaw)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating render runs: %w", err)
	}
	return results, nil
}

// GetAllClassCounts retrieves all per-class counts from the store.
func (rs *RunStoreImpl) GetAllClassCounts() ([]schema.ClassCountRecord, error) {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, class_key, points, skipped, min_vw, max_vw, min_l, max_l
		FROM %s ORDER BY run_id, class_key`, quoteTableName(classCountsTable, rs.backend))
	rows, err := rs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query class counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ClassCountRecord
	for rows.Next() {
		var record schema.ClassCountRecord
		var minVW, maxVW, minL, maxL sql.NullFloat64
		if err := rows.Scan(&record.RunID, &record.Class, &record.Points, &record.Skipped,
			&minVW, &maxVW, &minL, &maxL); err != nil {
			return nil, fmt.Errorf("failed to scan class count: %w", err)
		}
		record.MinVW = floatOrNaN(minVW)
		record.MaxVW = floatOrNaN(maxVW)
		record.MinL = floatOrNaN(minL)
		record.MaxL = floatOrNaN(maxL)
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating class counts: %w", err)
	}
	return results, nil
}

// scanTime scans a single start_time column.
func (rs *RunStoreImpl) scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return rs.toTime(raw)
}

// toTime converts a scanned time column. SQLite stores RFC 3339 text while
// the server backends return native timestamps, or MySQL text without parseTime.
func (rs *RunStoreImpl) toTime(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		return parseTimeText(v)
	case []byte:
		return parseTimeText(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", raw)
	}
}

// parseTimeText parses a textual timestamp in either stored layout.
func parseTimeText(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	return time.Parse(mysqlTimeLayout, s)
}

// nullFloat maps NaN, used for empty ranges, to SQL NULL.
func nullFloat(v float64) sql.NullFloat64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: v, Valid: true}
}

// floatOrNaN maps SQL NULL back to NaN.
func floatOrNaN(v sql.NullFloat64) float64 {
	if !v.Valid {
		return math.NaN()
	}
	return v.Float64
}
