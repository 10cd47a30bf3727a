package benchstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// submissionsTable is the name of the table holding audited scores.
const submissionsTable = "onboard_benchmark_submissions"

// BenchmarkStoreImpl implements the BenchmarkStore interface on database/sql.
type BenchmarkStoreImpl struct {
	db         *sql.DB
	tableName  string
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.BenchmarkStore = &BenchmarkStoreImpl{} // Compile-time check

// NewBenchmarkStore opens the store for the given backend and makes sure its table exists.
func NewBenchmarkStore(backend schema.DatabaseBackend, connStr string) (*BenchmarkStoreImpl, error) {
	return newBenchmarkStore(submissionsTable, backend, connStr)
}

func newBenchmarkStore(tableName string, backend schema.DatabaseBackend, connStr string) (*BenchmarkStoreImpl, error) {
	// Validate table name to prevent SQL injection
	if err := validateTableName(tableName); err != nil {
		return nil, err
	}

	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = contract.GetBenchmarkDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname?parseTime=true
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled benchmarking
		return &BenchmarkStoreImpl{tableName: tableName, backend: backend}, nil

	default:
		return nil, fmt.Errorf("unsupported benchmark backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	if _, err := db.Exec(getCreateTableQuery(tableName, backend)); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", tableName, err)
	}

	return &BenchmarkStoreImpl{
		db:         db,
		tableName:  tableName,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// getCreateTableQuery returns the CREATE TABLE query for the given backend.
// It matches version 1 of the embedded migrations.
func getCreateTableQuery(tableName string, backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(tableName, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				submission_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				cohort VARCHAR(128) NOT NULL,
				page_url VARCHAR(2048) NOT NULL DEFAULT '',
				raw_score DOUBLE NOT NULL,
				calibrated_score DOUBLE NOT NULL,
				manifest_version VARCHAR(64) NOT NULL,
				manifest_hash VARCHAR(64) NOT NULL,
				calibration_version VARCHAR(64) NOT NULL,
				submitted_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				submission_id BIGSERIAL PRIMARY KEY,
				cohort TEXT NOT NULL,
				page_url TEXT NOT NULL DEFAULT '',
				raw_score DOUBLE PRECISION NOT NULL,
				calibrated_score DOUBLE PRECISION NOT NULL,
				manifest_version TEXT NOT NULL,
				manifest_hash TEXT NOT NULL,
				calibration_version TEXT NOT NULL,
				submitted_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				submission_id INTEGER PRIMARY KEY AUTOINCREMENT,
				cohort TEXT NOT NULL,
				page_url TEXT NOT NULL DEFAULT '',
				raw_score REAL NOT NULL,
				calibrated_score REAL NOT NULL,
				manifest_version TEXT NOT NULL,
				manifest_hash TEXT NOT NULL,
				calibration_version TEXT NOT NULL,
				submitted_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// Submit records one audited page and returns its submission ID.
func (bs *BenchmarkStoreImpl) Submit(sub schema.BenchmarkSubmission) (int64, error) {
	// Skip for NoneBackend
	if bs.backend == schema.NoneBackend || bs.db == nil {
		return 0, nil
	}
	if sub.Cohort == "" {
		return 0, fmt.Errorf("submission needs a cohort")
	}
	if sub.SubmittedAt.IsZero() {
		sub.SubmittedAt = time.Now()
	}

	columns := `cohort, page_url, raw_score, calibrated_score, manifest_version, manifest_hash, calibration_version, submitted_at`
	args := []any{
		sub.Cohort, sub.PageURL, sub.RawScore, sub.CalibratedScore,
		sub.ManifestVersion, sub.ManifestHash, sub.CalibrationVersion,
		formatTime(sub.SubmittedAt, bs.backend),
	}
	quotedTableName := quoteTableName(bs.tableName, bs.backend)
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`, quotedTableName, columns, placeholderList(bs.backend, len(args)))

	var id int64
	switch bs.backend {
	case schema.PostgreSQLBackend:
		if err := bs.db.QueryRow(query+" RETURNING submission_id", args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to insert submission: %w", err)
		}
	default: // SQLite and MySQL
		result, err := bs.db.Exec(query, args...)
		if err != nil {
			return 0, fmt.Errorf("failed to insert submission: %w", err)
		}
		if id, err = result.LastInsertId(); err != nil {
			return 0, fmt.Errorf("failed to read submission id: %w", err)
		}
	}
	return id, nil
}

// CohortScores returns the calibrated scores of a cohort computed under one
// manifest and one calibration.
func (bs *BenchmarkStoreImpl) CohortScores(cohort, manifestHash, calibrationVersion string) ([]float64, error) {
	// Skip for NoneBackend
	if bs.backend == schema.NoneBackend || bs.db == nil {
		return nil, nil
	}

	ph := placeholders(bs.backend, 3)
	query := fmt.Sprintf(`SELECT calibrated_score FROM %s WHERE cohort = %s AND manifest_hash = %s AND calibration_version = %s ORDER BY submission_id`,
		quoteTableName(bs.tableName, bs.backend), ph[0], ph[1], ph[2])

	rows, err := bs.db.Query(query, cohort, manifestHash, calibrationVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to query cohort %s: %w", cohort, err)
	}
	defer func() { _ = rows.Close() }()

	var scores []float64
	for rows.Next() {
		var s float64
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("failed to scan cohort score: %w", err)
		}
		scores = append(scores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cohort scores: %w", err)
	}
	return scores, nil
}

// GetAllSubmissions retrieves all submissions from the store, oldest first.
func (bs *BenchmarkStoreImpl) GetAllSubmissions() ([]schema.BenchmarkSubmission, error) {
	// Skip for NoneBackend
	if bs.backend == schema.NoneBackend || bs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT submission_id, cohort, page_url, raw_score, calibrated_score,
		manifest_version, manifest_hash, calibration_version, submitted_at
		FROM %s ORDER BY submission_id`, quoteTableName(bs.tableName, bs.backend))

	rows, err := bs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.BenchmarkSubmission
	for rows.Next() {
		var record schema.BenchmarkSubmission
		dest := []any{
			&record.SubmissionID, &record.Cohort, &record.PageURL, &record.RawScore, &record.CalibratedScore,
			&record.ManifestVersion, &record.ManifestHash, &record.CalibrationVersion,
		}

		switch bs.backend {
		case schema.SQLiteBackend:
			var submittedAt string
			if err := rows.Scan(append(dest, &submittedAt)...); err != nil {
				return nil, fmt.Errorf("failed to scan submission: %w", err)
			}
			t, err := parseSQLiteTime(submittedAt)
			if err != nil {
				return nil, fmt.Errorf("failed to parse submitted_at: %w", err)
			}
			record.SubmittedAt = t
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(append(dest, &record.SubmittedAt)...); err != nil {
				return nil, fmt.Errorf("failed to scan submission: %w", err)
			}
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating submissions: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the benchmark store.
func (bs *BenchmarkStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(bs.backend),
		Connected: bs.db != nil,
		Cohorts:   make(map[string]int),
	}

	if bs.backend == schema.NoneBackend || bs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(bs.tableName, bs.backend)

	// Get total submissions
	row := bs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName))
	if err := row.Scan(&status.TotalSubmissions); err != nil {
		return status, fmt.Errorf("failed to get total submissions: %w", err)
	}
	if status.TotalSubmissions == 0 {
		return status, nil
	}

	// Per-cohort counts
	rows, err := bs.db.Query(fmt.Sprintf("SELECT cohort, COUNT(*) FROM %s GROUP BY cohort", quotedTableName))
	if err != nil {
		return status, fmt.Errorf("failed to count cohorts: %w", err)
	}
	for rows.Next() {
		var cohort string
		var count int
		if err := rows.Scan(&cohort, &count); err != nil {
			_ = rows.Close()
			return status, fmt.Errorf("failed to scan cohort count: %w", err)
		}
		status.Cohorts[cohort] = count
	}
	_ = rows.Close()
	if err := rows.Err(); err != nil {
		return status, fmt.Errorf("error iterating cohort counts: %w", err)
	}

	// Newest and oldest submission times
	last, err := bs.submissionTime(fmt.Sprintf("SELECT submitted_at FROM %s ORDER BY submission_id DESC LIMIT 1", quotedTableName))
	if err != nil {
		return status, fmt.Errorf("failed to get last submission time: %w", err)
	}
	status.LastSubmissionTime = last

	oldest, err := bs.submissionTime(fmt.Sprintf("SELECT submitted_at FROM %s ORDER BY submission_id ASC LIMIT 1", quotedTableName))
	if err != nil {
		return status, fmt.Errorf("failed to get oldest submission time: %w", err)
	}
	status.OldestSubmissionTime = oldest

	return status, nil
}

// submissionTime runs a single-row query selecting submitted_at.
func (bs *BenchmarkStoreImpl) submissionTime(query string) (time.Time, error) {
	row := bs.db.QueryRow(query)
	if bs.backend == schema.SQLiteBackend {
		var s string
		if err := row.Scan(&s); err != nil {
			return time.Time{}, err
		}
		return parseSQLiteTime(s)
	}
	var t time.Time
	err := row.Scan(&t)
	return t, err
}

// Close closes the underlying DB connection.
func (bs *BenchmarkStoreImpl) Close() error {
	if bs.db != nil {
		return bs.db.Close()
	}
	return nil
}
