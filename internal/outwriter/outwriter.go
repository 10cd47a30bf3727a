// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

var _ contract.OutputWriter = &OutWriter{} // Compile-time check

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteAudit prints an audit result using the configured output format.
func (ow *OutWriter) WriteAudit(result schema.AuditResult, cfg *contract.Config, duration time.Duration) error {
	return WriteAuditResult(result, cfg, duration)
}

// WriteValidation prints a manifest validation report using the configured output format.
func (ow *OutWriter) WriteValidation(report schema.ValidationReport, cfg *contract.Config) error {
	return WriteValidationReport(report, cfg)
}

// WriteCalibration prints a calibration fit using the configured output format.
func (ow *OutWriter) WriteCalibration(result schema.CalibrationResult, cfg *contract.Config, duration time.Duration) error {
	return WriteCalibrationResult(result, cfg, duration)
}

// WriteRanking prints a benchmark ranking using the configured output format.
func (ow *OutWriter) WriteRanking(ranking schema.BenchmarkRanking, cfg *contract.Config) error {
	return WriteBenchmarkRanking(ranking, cfg)
}

// WriteRules prints the manifest rules using the configured output format.
func (ow *OutWriter) WriteRules(listing schema.RulesListing, cfg *contract.Config) error {
	return WriteRulesListing(listing, cfg)
}

// WriteStatus prints benchmark store status using the configured output format.
func (ow *OutWriter) WriteStatus(status schema.StoreStatus, cfg *contract.Config) error {
	return WriteStoreStatus(status, cfg)
}
