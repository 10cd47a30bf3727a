package benchstore

import (
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
)

// Global Manager instance for main logic.
var (
	Manager   = &BenchmarkStoreManager{}
	initOnce  sync.Once
	closeOnce sync.Once
)

// InitStores initializes the global manager with the benchmark store.
// An empty backend leaves the store unset so that ranking falls back to cohort files.
func InitStores(backend schema.DatabaseBackend, connStr string) error {
	var initErr error

	initOnce.Do(func() {
		if backend == "" {
			return
		}
		store, err := NewBenchmarkStore(backend, connStr)
		if err != nil {
			initErr = fmt.Errorf("failed to initialize benchmark store: %w", err)
			return
		}
		Manager.Lock()
		Manager.benchmark = store
		Manager.Unlock()
	})

	// After once.Do, initErr will contain any error from the initialization block.
	return initErr
}

// CloseStores should be called on application shutdown.
func CloseStores() { // called in main defer
	closeOnce.Do(func() {
		Manager.Lock()
		defer Manager.Unlock()
		if Manager.benchmark != nil {
			_ = Manager.benchmark.Close()
		}
	})
}

// ClearBenchmarks removes every stored submission for the specified backend.
// For SQLite, it deletes the database file.
// For SQL backends (MySQL/PostgreSQL), it drops the submissions table.
// For NoneBackend, it does nothing.
func ClearBenchmarks(backend schema.DatabaseBackend, dbFilePath, connStr string) error {
	switch backend {
	case schema.SQLiteBackend:
		if dbFilePath == "" {
			dbFilePath = contract.GetBenchmarkDBFilePath()
		}
		// Remove the file; ignore if it doesn't exist
		if err := os.Remove(dbFilePath); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove SQLite database file %s: %w", dbFilePath, err)
		}
		return nil

	case schema.MySQLBackend:
		return clearSQLTable("mysql", connStr, quoteTableName(submissionsTable, backend))

	case schema.PostgreSQLBackend:
		return clearSQLTable("pgx", connStr, quoteTableName(submissionsTable, backend))

	case schema.NoneBackend:
		return nil

	default:
		return fmt.Errorf("unsupported benchmark backend for clearing: %s", backend)
	}
}

// clearSQLTable drops a quoted table over a short-lived connection.
func clearSQLTable(driverName, connStr, quotedTable string) error {
	db, err := sql.Open(driverName, connStr)
	if err != nil {
		return fmt.Errorf("failed to open %s database: %w", driverName, err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", quotedTable)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", quotedTable, err)
	}
	return nil
}
