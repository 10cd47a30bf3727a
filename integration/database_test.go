//go:build database

package integration

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/huangsam/onboard/internal/benchstore"
	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startMySQL starts a MySQL container and returns its connection string.
func startMySQL(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "mysql:8",
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "secret123",
			"MYSQL_DATABASE":      "onboard",
		},
		WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").WithStartupTimeout(60 * time.Second),
	}
	mysqlC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = mysqlC.Terminate(ctx) })

	host, err := mysqlC.Host(ctx)
	require.NoError(t, err)
	port, err := mysqlC.MappedPort(ctx, "3306")
	require.NoError(t, err)

	return fmt.Sprintf("root:secret123@tcp(%s:%s)/onboard?parseTime=true", host, port.Port())
}

// startPostgres starts a PostgreSQL container and returns its connection string.
func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	pgC, err := postgres.Run(ctx, "postgres:18-alpine",
		postgres.WithDatabase("onboard"),
		postgres.WithUsername("onboard"),
		postgres.WithPassword("secret123"),
		postgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = testcontainers.TerminateContainer(pgC) })

	host, err := pgC.Host(ctx)
	require.NoError(t, err)
	port, err := pgC.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	return fmt.Sprintf("host=%s port=%s user=onboard password=secret123 dbname=onboard sslmode=disable", host, port.Port())
}

// TestOnboardWithMySQL drives the CLI against a MySQL benchmark store.
func TestOnboardWithMySQL(t *testing.T) {
	connStr := startMySQL(t)
	runBenchmarkFlow(t, schema.MySQLBackend, connStr)
	checkStoreDirectly(t, schema.MySQLBackend, connStr)
}

// TestOnboardWithPostgres drives the CLI against a PostgreSQL benchmark store.
func TestOnboardWithPostgres(t *testing.T) {
	connStr := startPostgres(t)
	runBenchmarkFlow(t, schema.PostgreSQLBackend, connStr)
	checkStoreDirectly(t, schema.PostgreSQLBackend, connStr)
}

func runBenchmarkFlow(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	env := []string{
		"ONBOARD_BENCHMARK_BACKEND=" + string(backend),
		"ONBOARD_BENCHMARK_DB_CONNECT=" + connStr,
	}

	require.NoError(t, runOnboard(t, env, "benchmark", "clear").Err)
	require.NoError(t, runOnboard(t, env, "benchmark", "migrate").Err)
	require.NoError(t, runOnboard(t, env, "benchmark", "migrate", "--target-version", "1").Err)
	require.NoError(t, runOnboard(t, env, "benchmark", "migrate").Err)

	for _, page := range []string{"testdata/perfect_page.json", "testdata/sparse_page.json"} {
		require.NoError(t, runOnboard(t, env, "audit", page, "--cohort", "saas", "--submit").Err)
	}

	res := runOnboard(t, env, "audit", "testdata/sparse_page.json", "--cohort", "saas", "--output", "json")
	require.NoError(t, res.Err)
	var result schema.AuditResult
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &result))
	require.NotNil(t, result.Ranking)
	assert.Equal(t, 2, result.Ranking.Rank, "ties take the first tied position")
	assert.Equal(t, 3, result.Ranking.Of)

	res = runOnboard(t, env, "benchmark", "status", "--output", "json")
	require.NoError(t, res.Err)
	var status schema.StoreStatus
	require.NoError(t, json.Unmarshal([]byte(res.Stdout), &status))
	assert.True(t, status.Connected)
	assert.Equal(t, 2, status.TotalSubmissions)
	assert.False(t, status.LastSubmissionTime.IsZero())

	require.NoError(t, runOnboard(t, env, "benchmark", "clear").Err)
}

// checkStoreDirectly exercises manifest-hash scoping without the CLI.
func checkStoreDirectly(t *testing.T, backend schema.DatabaseBackend, connStr string) {
	store, err := benchstore.NewBenchmarkStore(backend, connStr)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	for i, hash := range []string{"hash-a", "hash-a", "hash-b"} {
		_, err := store.Submit(schema.BenchmarkSubmission{
			Cohort:             "fintech",
			RawScore:           float64(40 + i*10),
			CalibratedScore:    float64(40 + i*10),
			ManifestVersion:    "1.4.0",
			ManifestHash:       hash,
			CalibrationVersion: "identity",
			SubmittedAt:        at.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
	}

	scores, err := store.CohortScores("fintech", "hash-a", "identity")
	require.NoError(t, err)
	assert.Equal(t, []float64{40, 50}, scores)

	all, err := store.GetAllSubmissions()
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.True(t, all[0].SubmittedAt.Equal(at), "got %v", all[0].SubmittedAt)
}
