package benchstore

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateBenchmarks_NoneBackend(t *testing.T) {
	err := MigrateBenchmarks(schema.NoneBackend, "", -1)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "migrations are not supported for NoneBackend")
}

func TestMigrateBenchmarks_UnsupportedBackend(t *testing.T) {
	err := MigrateBenchmarks(schema.DatabaseBackend("oracle"), "", -1)
	assert.Error(t, err)
}

func TestMigrationDirsAreEmbedded(t *testing.T) {
	for _, backend := range []schema.DatabaseBackend{schema.SQLiteBackend, schema.MySQLBackend, schema.PostgreSQLBackend} {
		entries, err := migrationsFS.ReadDir(migrationDir(backend))
		require.NoError(t, err, backend)
		assert.Len(t, entries, 4, "%s has an up and down file per version", backend)
	}
}

func TestMigrateBenchmarks_SQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test_migration.db")

	// Latest version
	require.NoError(t, MigrateBenchmarks(schema.SQLiteBackend, dbPath, -1))
	_, err := os.Stat(dbPath)
	assert.NoError(t, err)
	assert.True(t, tableExists(t, dbPath, submissionsTable))

	// No-op
	assert.NoError(t, MigrateBenchmarks(schema.SQLiteBackend, dbPath, -1))

	// Down to version 1 then all the way down
	assert.NoError(t, MigrateBenchmarks(schema.SQLiteBackend, dbPath, 1))
	assert.NoError(t, MigrateBenchmarks(schema.SQLiteBackend, dbPath, 0))
	assert.False(t, tableExists(t, dbPath, submissionsTable))

	// Back up to version 2
	assert.NoError(t, MigrateBenchmarks(schema.SQLiteBackend, dbPath, 2))
	assert.True(t, tableExists(t, dbPath, submissionsTable))
}

func TestMigrateBenchmarks_AfterStoreCreatedTable(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "bench.db")
	store, err := NewBenchmarkStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.NoError(t, MigrateBenchmarks(schema.SQLiteBackend, dbPath, -1))
}

func tableExists(t *testing.T, dbPath, table string) bool {
	t.Helper()
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&count)
	require.NoError(t, err)
	return count == 1
}
