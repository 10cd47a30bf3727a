package benchstore

import (
	"testing"
	"time"

	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateTableName(t *testing.T) {
	tests := []struct {
		name  string
		valid   bool
	}{
		{"onboard_benchmark_submissions", true},
		{"_private", true},
		{"t1", true},
		{"", false},
		{"1table", false},
		{"drop table; --", false},
		{"name-with-dash", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateTableName(tt.name)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestNewBenchmarkStore_InvalidTableName(t *testing.T) {
	_, err := newBenchmarkStore("bad name", schema.SQLiteBackend, ":memory:")
	assert.Error(t, err)
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`subs`", quoteTableName("subs", schema.MySQLBackend))
	assert.Equal(t, `"subs"`, quoteTableName("subs", schema.PostgreSQLBackend))
	assert.Equal(t, `"subs"`, quoteTableName("subs", schema.SQLiteBackend))
}

func TestPlaceholderList(t *testing.T) {
	assert.Equal(t, "$1, $2, $3", placeholderList(schema.PostgreSQLBackend, 3))
	assert.Equal(t, "?, ?", placeholderList(schema.MySQLBackend, 2))
	assert.Equal(t, "?", placeholderList(schema.SQLiteBackend, 1))
}

func TestFormatTime_SQLiteSortsChronologically(t *testing.T) {
	whole := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	frac := whole.Add(500 * time.Millisecond)

	a, ok := formatTime(whole, schema.SQLiteBackend).(string)
	require.True(t, ok)
	b, ok := formatTime(frac, schema.SQLiteBackend).(string)
	require.True(t, ok)
	assert.Less(t, a, b)

	parsed, err := parseSQLiteTime(b)
	require.NoError(t, err)
	assert.True(t, frac.Equal(parsed))
}

func TestFormatTime_NativeBackendsUseUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	local := time.Date(2026, 1, 1, 2, 0, 0, 0, loc)
	got, ok := formatTime(local, schema.PostgreSQLBackend).(time.Time)
	require.True(t, ok)
	assert.Equal(t, time.UTC, got.Location())
	assert.True(t, local.Equal(got))
}
