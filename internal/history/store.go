// Package history persists scoring runs so they can be inspected, exported,
// and compared over time.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Table names for run tracking.
const (
	runsTable       = "repopulse_runs"
	runMetricsTable = "repopulse_run_metrics"
)

// SQLStore implements contract.HistoryStore on database/sql.
type SQLStore struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = (*SQLStore)(nil) // Compile-time check

// DefaultSQLitePath returns the default location of the SQLite history file.
func DefaultSQLitePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".repopulse", "history.db")
}

// NewStore creates a HistoryStore for the configured backend. The none
// backend returns a connected no-op store.
func NewStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	var db *sql.DB
	var err error

	switch backend {
	case schema.SQLiteBackend:
		dbPath := connStr
		if dbPath == "" {
			dbPath = DefaultSQLitePath()
		}
		if mkerr := os.MkdirAll(filepath.Dir(dbPath), 0o755); mkerr != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", mkerr)
		}
		db, err = sql.Open("sqlite", dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		db, err = sql.Open("mysql", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		db, err = sql.Open("pgx", connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=... dbname=...", err)
		}

	case schema.NoneBackend:
		return &SQLStore{db: nil, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and accessible", backend, err)
	}

	if err := createRunTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &SQLStore{db: db, backend: backend}, nil
}

// createRunTables creates the run tracking tables.
func createRunTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{runMetricsTable, getCreateRunMetricsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for repopulse_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGINT AUTO_INCREMENT PRIMARY KEY,
				run_id VARCHAR(64) NOT NULL,
				project_root VARCHAR(512) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				score INT NOT NULL DEFAULT 0,
				band VARCHAR(32) NOT NULL DEFAULT '',
				total_metrics INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				run_id TEXT NOT NULL,
				project_root TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				score INT NOT NULL DEFAULT 0,
				band TEXT NOT NULL DEFAULT '',
				total_metrics INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				run_id TEXT NOT NULL,
				project_root TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				score INTEGER NOT NULL DEFAULT 0,
				band TEXT NOT NULL DEFAULT '',
				total_metrics INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, quoted)
	}
}

// getCreateRunMetricsQuery returns the CREATE TABLE query for
// repopulse_run_metrics.
func getCreateRunMetricsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(runMetricsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				metric_id VARCHAR(128) NOT NULL,
				category VARCHAR(32) NOT NULL,
				raw_value VARCHAR(255) NOT NULL,
				score DOUBLE NOT NULL,
				weight DOUBLE NOT NULL,
				recorded_at DATETIME(6) NOT NULL,
				PRIMARY KEY (run_id, metric_id)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				metric_id TEXT NOT NULL,
				category TEXT NOT NULL,
				raw_value TEXT NOT NULL,
				score DOUBLE PRECISION NOT NULL,
				weight DOUBLE PRECISION NOT NULL,
				recorded_at TIMESTAMPTZ NOT NULL,
				PRIMARY KEY (run_id, metric_id)
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				metric_id TEXT NOT NULL,
				category TEXT NOT NULL,
				raw_value TEXT NOT NULL,
				score REAL NOT NULL,
				weight REAL NOT NULL,
				recorded_at TEXT NOT NULL,
				PRIMARY KEY (run_id, metric_id)
			);
		`, quoted)
	}
}

// BeginRun creates a new run row and returns its storage ID.
func (s *SQLStore) BeginRun(runID string, startTime time.Time, projectRoot string, configParams map[string]any) (int64, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quoted := quoteTableName(runsTable, s.backend)

	var id int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (run_id, project_root, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING id`, quoted)
		err = s.db.QueryRow(query, runID, projectRoot, startTime, string(configJSON)).Scan(&id)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (run_id, project_root, start_time, config_params) VALUES (?, ?, ?, ?)`, quoted)
		var result sql.Result
		result, err = s.db.Exec(query, runID, projectRoot, formatTime(startTime, s.backend), string(configJSON))
		if err != nil {
			return 0, fmt.Errorf("failed to insert run: %w", err)
		}
		id, err = result.LastInsertId()
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return id, nil
}

// EndRun finalizes a run with its outcome.
func (s *SQLStore) EndRun(id int64, endTime time.Time, score int, band string, totalMetrics int) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	quoted := quoteTableName(runsTable, s.backend)

	var query string
	var args []any
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`UPDATE %s SET end_time = $1, score = $2, band = $3, total_metrics = $4 WHERE id = $5`, quoted)
		args = []any{endTime, score, band, totalMetrics, id}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`UPDATE %s SET end_time = ?, score = ?, band = ?, total_metrics = ? WHERE id = ?`, quoted)
		args = []any{formatTime(endTime, s.backend), score, band, totalMetrics, id}
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to finalize run %d: %w", id, err)
	}
	return nil
}

// RecordMetric stores one enriched metric row for a run.
func (s *SQLStore) RecordMetric(id int64, metric schema.Metric, weight float64) error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}

	var score float64
	if metric.Score != nil {
		score = *metric.Score
	}

	quoted := quoteTableName(runMetricsTable, s.backend)
	now := time.Now().UTC()

	var query string
	var args []any
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, metric_id, category, raw_value, score, weight, recorded_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`, quoted)
		args = []any{id, metric.ID, string(metric.Category), core.EncodeValue(metric.Value), score, weight, now}
	default: // SQLite and MySQL
		query = fmt.Sprintf(`INSERT INTO %s (run_id, metric_id, category, raw_value, score, weight, recorded_at) VALUES (?, ?, ?, ?, ?, ?, ?)`, quoted)
		args = []any{id, metric.ID, string(metric.Category), core.EncodeValue(metric.Value), score, weight, formatTime(now, s.backend)}
	}

	if _, err := s.db.Exec(query, args...); err != nil {
		return fmt.Errorf("failed to insert metric %s: %w", metric.ID, err)
	}
	return nil
}

// RecentRuns returns up to limit most recent runs, newest first.
func (s *SQLStore) RecentRuns(limit int) ([]schema.RunRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	quoted := quoteTableName(runsTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT id, run_id, project_root, start_time, end_time, score, band, total_metrics, config_params FROM %s ORDER BY id DESC LIMIT $1`, quoted)
	default:
		query = fmt.Sprintf(`SELECT id, run_id, project_root, start_time, end_time, score, band, total_metrics, config_params FROM %s ORDER BY id DESC LIMIT ?`, quoted)
	}

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.RunRecord
	for rows.Next() {
		record, err := s.scanRun(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return records, nil
}

// scanRun reads one run row, handling the per-backend time storage format.
func (s *SQLStore) scanRun(rows *sql.Rows) (schema.RunRecord, error) {
	var record schema.RunRecord
	var configParams sql.NullString

	switch s.backend {
	case schema.SQLiteBackend:
		var startStr string
		var endStr sql.NullString
		if err := rows.Scan(&record.ID, &record.RunID, &record.ProjectRoot, &startStr, &endStr,
			&record.Score, &record.Band, &record.TotalMetrics, &configParams); err != nil {
			return record, fmt.Errorf("failed to scan run: %w", err)
		}
		start, err := time.Parse(time.RFC3339Nano, startStr)
		if err != nil {
			return record, fmt.Errorf("failed to parse start_time: %w", err)
		}
		record.StartTime = start
		if endStr.Valid {
			end, err := time.Parse(time.RFC3339Nano, endStr.String)
			if err != nil {
				return record, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &end
		}
	default: // MySQL and PostgreSQL store native datetimes
		if err := rows.Scan(&record.ID, &record.RunID, &record.ProjectRoot, &record.StartTime, &record.EndTime,
			&record.Score, &record.Band, &record.TotalMetrics, &configParams); err != nil {
			return record, fmt.Errorf("failed to scan run: %w", err)
		}
	}

	record.ConfigParams = configParams.String
	return record, nil
}

// MetricsForRun returns the stored metric rows of a run.
func (s *SQLStore) MetricsForRun(id int64) ([]schema.MetricRecord, error) {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil, nil
	}

	quoted := quoteTableName(runMetricsTable, s.backend)
	var query string
	switch s.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT run_id, metric_id, category, raw_value, score, weight, recorded_at FROM %s WHERE run_id = $1 ORDER BY metric_id`, quoted)
	default:
		query = fmt.Sprintf(`SELECT run_id, metric_id, category, raw_value, score, weight, recorded_at FROM %s WHERE run_id = ? ORDER BY metric_id`, quoted)
	}

	rows, err := s.db.Query(query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to query run metrics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []schema.MetricRecord
	for rows.Next() {
		var record schema.MetricRecord

		switch s.backend {
		case schema.SQLiteBackend:
			var recordedStr string
			if err := rows.Scan(&record.RunID, &record.MetricID, &record.Category, &record.RawValue,
				&record.Score, &record.Weight, &recordedStr); err != nil {
				return nil, fmt.Errorf("failed to scan metric: %w", err)
			}
			recorded, perr := time.Parse(time.RFC3339Nano, recordedStr)
			if perr != nil {
				return nil, fmt.Errorf("failed to parse recorded_at: %w", perr)
			}
			record.RecordedAt = recorded
		default:
			if err := rows.Scan(&record.RunID, &record.MetricID, &record.Category, &record.RawValue,
				&record.Score, &record.Weight, &record.RecordedAt); err != nil {
				return nil, fmt.Errorf("failed to scan metric: %w", err)
			}
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating metrics: %w", err)
	}
	return records, nil
}

// GetStatus returns status information about the store.
func (s *SQLStore) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:   string(s.backend),
		Connected: s.db != nil,
	}
	if s.backend == schema.NoneBackend || s.db == nil {
		return status, nil
	}

	runsQuoted := quoteTableName(runsTable, s.backend)
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", runsQuoted)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	metricsQuoted := quoteTableName(runMetricsTable, s.backend)
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", metricsQuoted)).Scan(&status.TotalMetrics); err != nil {
		return status, fmt.Errorf("failed to get total metrics: %w", err)
	}

	if status.TotalRuns > 0 {
		last, err := s.runBoundaryTime("DESC")
		if err != nil {
			return status, err
		}
		status.LastRunTime = last

		oldest, err := s.runBoundaryTime("ASC")
		if err != nil {
			return status, err
		}
		status.OldestRunTime = oldest
	}

	size, err := s.storageSizeBytes()
	if err != nil {
		return status, err
	}
	status.TableSizeBytes = size

	return status, nil
}

// storageSizeBytes reports how much space the history tables occupy, using
// each backend's own accounting.
func (s *SQLStore) storageSizeBytes() (int64, error) {
	var query string
	switch s.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(
			"SELECT COALESCE(SUM(data_length + index_length), 0) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name IN ('%s', '%s')",
			runsTable, runMetricsTable)
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(
			"SELECT pg_total_relation_size('%s') + pg_total_relation_size('%s')",
			runsTable, runMetricsTable)
	default: // SQLite: whole-file size, the database holds only these tables
		query = "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
	}

	var size int64
	if err := s.db.QueryRow(query).Scan(&size); err != nil {
		return 0, fmt.Errorf("failed to get table size: %w", err)
	}
	return size, nil
}

// runBoundaryTime fetches the newest or oldest run start time.
func (s *SQLStore) runBoundaryTime(order string) (time.Time, error) {
	quoted := quoteTableName(runsTable, s.backend)
	row := s.db.QueryRow(fmt.Sprintf("SELECT start_time FROM %s ORDER BY id %s LIMIT 1", quoted, order))

	switch s.backend {
	case schema.SQLiteBackend:
		var str string
		if err := row.Scan(&str); err != nil {
			return time.Time{}, fmt.Errorf("failed to get boundary run time: %w", err)
		}
		t, err := time.Parse(time.RFC3339Nano, str)
		if err != nil {
			return time.Time{}, fmt.Errorf("failed to parse boundary run time: %w", err)
		}
		return t, nil
	default:
		var t time.Time
		if err := row.Scan(&t); err != nil {
			return time.Time{}, fmt.Errorf("failed to get boundary run time: %w", err)
		}
		return t, nil
	}
}

// Clear removes all stored runs and metrics.
func (s *SQLStore) Clear() error {
	if s.backend == schema.NoneBackend || s.db == nil {
		return nil
	}
	for _, table := range []string{runMetricsTable, runsTable} {
		query := fmt.Sprintf("DELETE FROM %s", quoteTableName(table, s.backend))
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to clear table %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// quoteTableName quotes a table identifier for the backend dialect.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
