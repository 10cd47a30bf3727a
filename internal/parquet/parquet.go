// Package parquet exports benchmark submissions and audit findings to Parquet
// files using github.com/parquet-go/parquet-go, and reads submissions back in.
package parquet

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/onboard/schema"
	"github.com/parquet-go/parquet-go"
)

// Submission represents one audited page stored in the benchmark.
// This struct maps to the onboard_benchmark_submissions database table.
type Submission struct {
	// SubmissionID is the unique identifier of the stored audit
	SubmissionID int64 `parquet:"submission_id,snappy"`

	// Cohort is the page population the score is compared within
	Cohort string `parquet:"cohort,snappy"`

	// PageURL is the audited page (nullable)
	PageURL *string `parquet:"page_url,optional,snappy"`

	// RawScore is the weighted sum of sub-scores before calibration
	RawScore float64 `parquet:"raw_score,snappy"`

	// CalibratedScore is the score after the affine calibration
	CalibratedScore float64 `parquet:"calibrated_score,snappy"`

	// ManifestVersion is the rule manifest version the score was computed under
	ManifestVersion string `parquet:"manifest_version,snappy"`

	// ManifestHash identifies the exact manifest content
	ManifestHash string `parquet:"manifest_hash,snappy"`

	// CalibrationVersion identifies the calibration artifact
	CalibrationVersion string `parquet:"calibration_version,snappy"`

	// SubmittedAt is when the audit was stored (stored as TIMESTAMP with nanosecond precision)
	SubmittedAt time.Time `parquet:"submitted_at,snappy"`
}

// Finding represents one ranked finding of a single audit.
type Finding struct {
	SeverityRank int32   `parquet:"severity_rank,snappy"`
	RuleID       string  `parquet:"rule_id,snappy"`
	Category     string  `parquet:"category,snappy"`
	Weight       float64 `parquet:"weight,snappy"`
	SubScore     float64 `parquet:"sub_score,snappy"`
	Label        string  `parquet:"label,snappy"`
	Fix          string  `parquet:"fix,snappy"`
}

// WriteSubmissionsParquet writes a slice of Submission structs to a Parquet file.
func WriteSubmissionsParquet(data []Submission, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteFindingsParquet writes a slice of Finding structs to a Parquet file.
func WriteFindingsParquet(data []Finding, outputPath string) error {
	return writeRows(data, outputPath)
}

// writeRows writes rows of any struct type; the schema is derived from the struct tags.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ReadSubmissionsParquet reads every Submission row from a Parquet file.
func ReadSubmissionsParquet(inputPath string) ([]Submission, error) {
	file, err := os.Open(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[Submission](file)
	defer func() { _ = reader.Close() }()

	rows := make([]Submission, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read parquet rows: %w", err)
	}
	return rows[:n], nil
}

// ConvertSubmissions converts stored submissions to Parquet rows.
func ConvertSubmissions(records []schema.BenchmarkSubmission) []Submission {
	result := make([]Submission, len(records))
	for i, record := range records {
		var pageURL *string
		if record.PageURL != "" {
			u := record.PageURL
			pageURL = &u
		}
		result[i] = Submission{
			SubmissionID:       record.SubmissionID,
			Cohort:             record.Cohort,
			PageURL:            pageURL,
			RawScore:           record.RawScore,
			CalibratedScore:    record.CalibratedScore,
			ManifestVersion:    record.ManifestVersion,
			ManifestHash:       record.ManifestHash,
			CalibrationVersion: record.CalibrationVersion,
			SubmittedAt:        record.SubmittedAt,
		}
	}
	return result
}

// ToBenchmarkSubmissions converts Parquet rows back into submissions.
func ToBenchmarkSubmissions(rows []Submission) []schema.BenchmarkSubmission {
	result := make([]schema.BenchmarkSubmission, len(rows))
	for i, row := range rows {
		var pageURL string
		if row.PageURL != nil {
			pageURL = *row.PageURL
		}
		result[i] = schema.BenchmarkSubmission{
			SubmissionID:       row.SubmissionID,
			Cohort:             row.Cohort,
			PageURL:            pageURL,
			RawScore:           row.RawScore,
			CalibratedScore:    row.CalibratedScore,
			ManifestVersion:    row.ManifestVersion,
			ManifestHash:       row.ManifestHash,
			CalibrationVersion: row.CalibrationVersion,
			SubmittedAt:        row.SubmittedAt,
		}
	}
	return result
}

// ConvertFindings converts ranked findings to Parquet rows.
func ConvertFindings(findings []schema.Finding) []Finding {
	result := make([]Finding, len(findings))
	for i, f := range findings {
		result[i] = Finding{
			SeverityRank: int32(f.SeverityRank),
			RuleID:       f.RuleID,
			Category:     f.Category,
			Weight:       f.Weight,
			SubScore:     f.SubScore,
			Label:        schema.GetPlainLabel(f.SubScore),
			Fix:          f.Fix,
		}
	}
	return result
}
