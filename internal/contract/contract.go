// Package contract provides interfaces and shared utilities for onboard's internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/onboard/schema"
)

// StoreManager defines the interface for managing the benchmark store.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetBenchmarkStore() BenchmarkStore
}

// BenchmarkStore defines the interface for persisting audited scores and reading
// cohort samples back out. The scoring engine never talks to it directly; the
// caller reads a snapshot and hands the scores over.
type BenchmarkStore interface {
	// Submit records one audited page and returns its submission ID.
	Submit(sub schema.BenchmarkSubmission) (int64, error)

	// CohortScores returns the calibrated scores of a cohort that were computed
	// under the given manifest hash and calibration version. Scores from other
	// manifests or calibrations sit on a different scale and are never mixed in.
	CohortScores(cohort, manifestHash, calibrationVersion string) ([]float64, error)

	// GetAllSubmissions returns every stored submission, oldest first.
	GetAllSubmissions() ([]schema.BenchmarkSubmission, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// Clock returns the current time. Fit jobs and submissions take it as a
// dependency so tests can pin the time.
type Clock func() time.Time

// OutputWriter renders command results in the configured output format.
// This allows the core orchestration to be tested without touching stdout.
type OutputWriter interface {
	WriteAudit(result schema.AuditResult, cfg *Config, duration time.Duration) error
	WriteValidation(report schema.ValidationReport, cfg *Config) error
	WriteCalibration(result schema.CalibrationResult, cfg *Config, duration time.Duration) error
	WriteRanking(ranking schema.BenchmarkRanking, cfg *Config) error
	WriteRules(listing schema.RulesListing, cfg *Config) error
	WriteStatus(status schema.StoreStatus, cfg *Config) error
}
