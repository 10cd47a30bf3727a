package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/parquet"
	"github.com/huangsam/onboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// jsonAuditResult is the JSON shape of an audit, with labeled findings.
type jsonAuditResult struct {
	Label              string                   `json:"label"`
	Raw                float64                  `json:"raw"`
	Calibrated         float64                  `json:"calibrated"`
	ManifestVersion    string                   `json:"manifest_version"`
	ManifestHash       string                   `json:"manifest_hash"`
	CalibrationVersion string                   `json:"calibration_version"`
	SubScores          []schema.SubScore        `json:"sub_scores"`
	Findings           []schema.EnrichedFinding `json:"findings"`
	Ranking            *schema.BenchmarkRanking `json:"ranking,omitempty"`
}

// WriteAuditResult outputs an audit result, dispatching based on the output format configured.
func WriteAuditResult(result schema.AuditResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	findings := limitFindings(result.Report.Findings, cfg.ResultLimit)

	switch cfg.Output {
	case schema.JSONOut:
		// JSON always carries every finding
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONAudit(w, result)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVAudit(w, result.Report.Findings, fmtFloat)
		}, "Wrote CSV")
	case schema.ParquetOut:
		if err := parquet.WriteFindingsParquet(parquet.ConvertFindings(result.Report.Findings), cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		return nil
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeAuditTable(w, result, findings, cfg, fmtFloat, duration)
		}, "Wrote table")
	}
}

// limitFindings returns the first limit findings; a non-positive limit keeps all.
func limitFindings(findings []schema.Finding, limit int) []schema.Finding {
	if limit > 0 && len(findings) > limit {
		return findings[:limit]
	}
	return findings
}

// writeJSONAudit writes an audit result in JSON format.
func writeJSONAudit(w io.Writer, result schema.AuditResult) error {
	report := result.Report
	return writeJSON(w, jsonAuditResult{
		Label:              result.Label,
		Raw:                report.Raw,
		Calibrated:         report.Calibrated,
		ManifestVersion:    report.ManifestVersion,
		ManifestHash:       report.ManifestHash,
		CalibrationVersion: report.CalibrationVersion,
		SubScores:          report.SubScores,
		Findings:           schema.EnrichFindings(report.Findings),
		Ranking:            result.Ranking,
	})
}

// writeCSVAudit writes the findings of an audit in CSV format.
func writeCSVAudit(w io.Writer, findings []schema.Finding, fmtFloat func(float64) string) error {
	header := []string{"severity_rank", "rule_id", "category", "weight", "sub_score", "label", "fix"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, f := range findings {
			rec := []string{
				strconv.Itoa(f.SeverityRank),
				f.RuleID,
				f.Category,
				strconv.FormatFloat(f.Weight, 'f', -1, 64),
				fmtFloat(f.SubScore),
				schema.GetPlainLabel(f.SubScore),
				f.Fix,
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// writeAuditTable generates and writes the human-readable audit summary and findings table.
func writeAuditTable(w io.Writer, result schema.AuditResult, findings []schema.Finding, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	report := result.Report
	if _, err := fmt.Fprintf(w, "Onboarding score: %s (%s)\n", fmtFloat(report.Calibrated), contract.GetColorLabel(report.Calibrated)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Raw score: %s | Manifest: %s (%s) | Calibration: %s\n",
		fmtFloat(report.Raw), report.ManifestVersion, report.ManifestHash, report.CalibrationVersion); err != nil {
		return err
	}

	if len(findings) > 0 {
		table := tablewriter.NewWriter(w)
		table.Header([]string{"Rank", "Rule", "Category", "Weight", "Score", "Label", "Fix"})
		table.Configure(func(cfg *tablewriter.Config) {
			cfg.Row.Alignment.PerColumn = []tw.Align{
				tw.AlignRight, tw.AlignLeft, tw.AlignLeft, tw.AlignRight, tw.AlignRight, tw.AlignLeft, tw.AlignLeft,
			}
		})

		fixWidth := GetMaxTableTextWidth(cfg, 70) // Rank + Rule + Category + Weight + Score + Label
		var data [][]string
		for _, f := range findings {
			data = append(data, []string{
				strconv.Itoa(f.SeverityRank),
				f.RuleID,
				f.Category,
				strconv.FormatFloat(f.Weight, 'f', -1, 64),
				fmtFloat(f.SubScore),
				contract.GetColorLabel(f.SubScore),
				contract.TruncateText(f.Fix, fixWidth),
			})
		}
		if err := table.Bulk(data); err != nil {
			return err
		}
		if err := table.Render(); err != nil {
			return err
		}
	}

	if len(findings) < len(report.Findings) {
		if _, err := fmt.Fprintf(w, "Showing top %d of %d findings\n", len(findings), len(report.Findings)); err != nil {
			return err
		}
	}

	if r := result.Ranking; r != nil {
		if _, err := fmt.Fprintf(w, "Benchmark: rank %d of %d in cohort %q (p25 %s, p50 %s, p75 %s)\n",
			r.Rank, r.Of, r.Cohort, fmtFloat(r.P25), fmtFloat(r.P50), fmtFloat(r.P75)); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "Audit completed in %v. Benchmark backend: %s\n", duration, cfg.BenchmarkBackend); err != nil {
		return err
	}
	return nil
}
