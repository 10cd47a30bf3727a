package benchstore

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/huangsam/onboard/schema"
)

// tableNamePattern is the set of identifiers accepted as table names.
var tableNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// sqliteTimeFormat is fixed width so that text timestamps sort chronologically.
const sqliteTimeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// validateTableName validates that the table name is a safe SQL identifier.
func validateTableName(name string) error {
	if name == "" {
		return fmt.Errorf("table name cannot be empty")
	}
	if !tableNamePattern.MatchString(name) {
		return fmt.Errorf("invalid table name: %s (must match pattern %s)", name, tableNamePattern)
	}
	return nil
}

// quoteTableName returns the properly quoted table name for the given backend.
func quoteTableName(name string, backend schema.DatabaseBackend) string {
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf("`%s`", name)
	default: // SQLite and PostgreSQL
		return fmt.Sprintf("%q", name)
	}
}

// placeholders returns n bind parameters in the backend's syntax.
func placeholders(backend schema.DatabaseBackend, n int) []string {
	out := make([]string, n)
	for i := range out {
		if backend == schema.PostgreSQLBackend {
			out[i] = fmt.Sprintf("$%d", i+1)
		} else {
			out[i] = "?"
		}
	}
	return out
}

// placeholderList joins n bind parameters with commas.
func placeholderList(backend schema.DatabaseBackend, n int) string {
	return strings.Join(placeholders(backend, n), ", ")
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(sqliteTimeFormat)
	default:
		return t.UTC()
	}
}

// parseSQLiteTime reads a timestamp written by formatTime.
func parseSQLiteTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
