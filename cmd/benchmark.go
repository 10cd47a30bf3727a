package cmd

import (
	"fmt"

	"github.com/huangsam/onboard/internal/benchstore"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// benchmarkCmd focused on benchmark store management.
//
// Note: clear and migrate only validate config and never open the store, so they
// work against a fresh or broken database.
var benchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Manage the benchmark cohorts used to rank scores",
	Long: `Manage the store of submitted scores that audits are ranked against.

Each submission records its cohort, calibrated score and the hash of the manifest
that produced it. Scores from different manifests are never ranked together.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show submission counts per cohort
  export  - Export submissions to Parquet for analytics
  clear   - Remove all submissions
  migrate - Run database schema migrations

Examples:
  # Check how many pages each cohort holds
  onboard benchmark status

  # Export for analysis in pandas/DuckDB
  onboard benchmark export --output-file submissions.parquet`,
}

// benchmarkStatusCmd shows store status.
var benchmarkStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display submission statistics and connection details",
	Long: `Show the backend, connection state, total submissions, the newest and
oldest submission times and the number of submissions per cohort.

Examples:
  onboard benchmark status
  onboard benchmark status --output json`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		store := storeManager.GetBenchmarkStore()
		if store == nil {
			contract.LogFatal("Failed to get benchmark status", fmt.Errorf("benchmark store is not configured"))
		}
		status, err := store.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get benchmark status", err)
		}
		if err := writer.WriteStatus(status, cfg); err != nil {
			contract.LogFatal("Failed to print benchmark status", err)
		}
	},
}

// benchmarkClearCmd clears the store.
var benchmarkClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all benchmark submissions",
	Long: `Delete every stored submission from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the submissions table

Examples:
  # Export before clearing
  onboard benchmark export --output-file backup.parquet
  onboard benchmark clear

  # Clear a PostgreSQL store (set connection string via env variable)
  ONBOARD_BENCHMARK_BACKEND=postgresql ONBOARD_BENCHMARK_DB_CONNECT="..." onboard benchmark clear`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		var dbFilePath string
		if cfg.BenchmarkBackend == schema.SQLiteBackend {
			dbFilePath = cfg.BenchmarkDBConnect
		}
		if err := benchstore.ClearBenchmarks(cfg.BenchmarkBackend, dbFilePath, cfg.BenchmarkDBConnect); err != nil {
			contract.LogFatal("Failed to clear benchmark data", err)
		}
		fmt.Println("Benchmark data cleared successfully.")
	},
}

// benchmarkExportCmd exports submissions to a Parquet file.
var benchmarkExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export submissions to Parquet for BI tools and analytics",
	Long: `Export every stored submission to a Parquet file.

The file can be queried with DuckDB, pandas or Spark, and can be passed back to
audit or rank with --cohort-file to rank against a frozen cohort.

Requires: --output-file parameter

Examples:
  onboard benchmark export --output-file submissions.parquet
  duckdb -c "SELECT cohort, avg(calibrated_score) FROM 'submissions.parquet' GROUP BY cohort"`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := benchstore.ExecuteBenchmarkExport(storeManager.GetBenchmarkStore(), cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export benchmark data", err)
		}
	},
}

// benchmarkMigrateCmd runs database migrations for the benchmark store.
var benchmarkMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the benchmark store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  onboard benchmark migrate

  # Migrate to specific version
  onboard benchmark migrate --target-version 1

  # Rollback to initial state
  onboard benchmark migrate --target-version 0`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := benchstore.MigrateBenchmarks(cfg.BenchmarkBackend, cfg.BenchmarkDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
