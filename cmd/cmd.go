// Package cmd defines the command-line interface for onboard.
package cmd

import (
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(calibrateCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(rulesCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(benchmarkCmd)

	// Add the benchmark subcommands to the parent benchmark command
	benchmarkCmd.AddCommand(benchmarkStatusCmd)
	benchmarkCmd.AddCommand(benchmarkClearCmd)
	benchmarkCmd.AddCommand(benchmarkExportCmd)
	benchmarkCmd.AddCommand(benchmarkMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	rootCmd.PersistentFlags().String("manifest", "", "Path to a rules manifest (JSON or YAML); empty uses the built-in manifest")
	rootCmd.PersistentFlags().String("calibration", "", "Path to a calibration artifact; empty uses the identity calibration")
	rootCmd.PersistentFlags().Bool("strict-manifest", false, "Fail instead of warning when the manifest is invalid")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultResultLimit, "Number of findings to display")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent workers")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Colorize text output: yes or no")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug or info or warn or error")
	rootCmd.PersistentFlags().String("benchmark-backend", string(schema.SQLiteBackend), "Benchmark backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("benchmark-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("cohort", contract.DefaultCohort, "Benchmark cohort to rank against and submit to")
	rootCmd.PersistentFlags().String("cohort-file", "", "Rank against scores from a JSON, CSV or Parquet file instead of the store")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of auditCmd to Viper
	auditCmd.Flags().Bool("submit", false, "Store the audited score in the benchmark cohort")
	auditCmd.Flags().String("page-url", "", "URL recorded with a submitted score")
	auditCmd.Flags().Float64("fail-under", 0, "Exit non-zero when the calibrated score is below this value (0 disables)")
	if err := viper.BindPFlags(auditCmd.Flags()); err != nil {
		contract.LogFatal("Error binding audit flags", err)
	}

	// Bind all flags of calibrateCmd to Viper
	calibrateCmd.Flags().String("training-set", "", "Path to a labeled training set (JSON array)")
	calibrateCmd.Flags().String("calibration-out", "", "Path to write the fitted calibration artifact")
	calibrateCmd.Flags().String("calibration-version", contract.DefaultCalibrationVersion, "Version recorded in the fitted calibration")
	if err := viper.BindPFlags(calibrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding calibrate flags", err)
	}

	// Bind all flags of serveCmd to Viper
	serveCmd.Flags().String("addr", contract.DefaultAddr, "Address for the HTTP API to listen on")
	if err := viper.BindPFlags(serveCmd.Flags()); err != nil {
		contract.LogFatal("Error binding serve flags", err)
	}

	// Bind all flags of benchmarkMigrateCmd to Viper
	benchmarkMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(benchmarkMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding benchmark migrate flags", err)
	}
}
