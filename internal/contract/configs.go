package contract

import (
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/huangsam/onboard/schema"
)

// Default values for configuration.
const (
	DefaultResultLimit        = 10
	MaxResultLimit            = 1000
	DefaultPrecision          = 1
	DefaultAddr               = "127.0.0.1:8080"
	DefaultCohort             = "default"
	DefaultCalibrationVersion = "dev"
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration.
// This struct is the "final, validated" config.
type Config struct {
	ManifestPath    string
	CalibrationPath string
	StrictManifest  bool

	MeasurementsPath string
	Cohort           string
	CohortFile       string
	Submit           bool
	PageURL          string
	FailUnder        float64 // 0 disables the gate

	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool
	LogLevel    slog.Level

	BenchmarkBackend   schema.DatabaseBackend
	BenchmarkDBConnect string // Please use env var as this is plaintext

	TrainingSetPath    string
	CalibrationOut     string
	CalibrationVersion string

	Addr string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	MeasurementsPath string

	// --- Fields from rootCmd.PersistentFlags() ---
	Manifest           string `mapstructure:"manifest"`
	Calibration        string `mapstructure:"calibration"`
	StrictManifest     bool   `mapstructure:"strict-manifest"`
	OutputFile         string `mapstructure:"output-file"`
	Limit              int    `mapstructure:"limit"`
	Workers            int    `mapstructure:"workers"`
	Precision          int    `mapstructure:"precision"`
	Output             string `mapstructure:"output"`
	Width              int    `mapstructure:"width"`
	Color              string `mapstructure:"color"`
	LogLevel           string `mapstructure:"log-level"`
	BenchmarkBackend   string `mapstructure:"benchmark-backend"`
	BenchmarkDBConnect string `mapstructure:"benchmark-db-connect"`

	// --- Fields from auditCmd.Flags() and rankCmd.Flags() ---
	Cohort     string  `mapstructure:"cohort"`
	CohortFile string  `mapstructure:"cohort-file"`
	Submit     bool    `mapstructure:"submit"`
	PageURL    string  `mapstructure:"page-url"`
	FailUnder  float64 `mapstructure:"fail-under"`

	// --- Fields from calibrateCmd.Flags() ---
	TrainingSet        string `mapstructure:"training-set"`
	CalibrationOut     string `mapstructure:"calibration-out"`
	CalibrationVersion string `mapstructure:"calibration-version"`

	// --- Fields from serveCmd.Flags() ---
	Addr string `mapstructure:"addr"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processAuditInputs(cfg, input); err != nil {
		return err
	}
	if err := processCalibrationInputs(cfg, input); err != nil {
		return err
	}
	return validateBackendConfigs(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("benchmark-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("benchmark-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates the benchmark backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(strings.TrimSpace(input.BenchmarkBackend))
	if backend == "" {
		backend = string(schema.SQLiteBackend)
	}
	cfg.BenchmarkBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.BenchmarkBackend]; !ok {
		return fmt.Errorf("invalid benchmark backend '%s'. must be sqlite, mysql, postgresql, none", input.BenchmarkBackend)
	}
	cfg.BenchmarkDBConnect = input.BenchmarkDBConnect
	if cfg.Submit && cfg.BenchmarkBackend == schema.NoneBackend {
		return fmt.Errorf("--submit needs a benchmark backend other than none")
	}
	return ValidateDatabaseConnectionString(cfg.BenchmarkBackend, cfg.BenchmarkDBConnect)
}

// validateSimpleInputs checks the output and rendering settings.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.ManifestPath = strings.TrimSpace(input.Manifest)
	cfg.CalibrationPath = strings.TrimSpace(input.Calibration)
	cfg.StrictManifest = input.StrictManifest
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.LogLevel = ParseLogLevel(input.LogLevel)

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > 2 {
		return fmt.Errorf("precision must be 1 or 2 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processAuditInputs handles the audit, ranking and gating settings.
func processAuditInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.MeasurementsPath = strings.TrimSpace(input.MeasurementsPath)
	cfg.Cohort = strings.TrimSpace(input.Cohort)
	if cfg.Cohort == "" {
		cfg.Cohort = DefaultCohort
	}
	cfg.CohortFile = strings.TrimSpace(input.CohortFile)
	cfg.Submit = input.Submit
	cfg.PageURL = strings.TrimSpace(input.PageURL)

	if input.FailUnder < 0 || input.FailUnder > 100 {
		return fmt.Errorf("fail-under must be between 0 and 100 (received %.2f)", input.FailUnder)
	}
	cfg.FailUnder = input.FailUnder

	if cfg.Submit && cfg.CohortFile != "" {
		return fmt.Errorf("--submit cannot be combined with --cohort-file; submissions go to the benchmark store")
	}

	cfg.Addr = strings.TrimSpace(input.Addr)
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	return nil
}

// processCalibrationInputs handles the fit job settings.
func processCalibrationInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.TrainingSetPath = strings.TrimSpace(input.TrainingSet)
	cfg.CalibrationOut = strings.TrimSpace(input.CalibrationOut)
	cfg.CalibrationVersion = strings.TrimSpace(input.CalibrationVersion)
	if cfg.CalibrationVersion == "" {
		cfg.CalibrationVersion = DefaultCalibrationVersion
	}
	if cfg.CalibrationOut != "" && cfg.CalibrationOut == cfg.TrainingSetPath {
		return fmt.Errorf("calibration-out must differ from training-set (%q)", cfg.CalibrationOut)
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
