package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
)

// WriteValidationReport outputs a manifest validation report.
func WriteValidationReport(report schema.ValidationReport, cfg *contract.Config) error {
	return dispatch(cfg,
		func(w io.Writer) error { return writeValidationText(w, report) },
		func(w io.Writer) error { return writeValidationCSV(w, report) },
		report,
	)
}

// writeValidationText writes one line per validation error.
func writeValidationText(w io.Writer, report schema.ValidationReport) error {
	if report.Valid {
		_, err := fmt.Fprintf(w, "✅ Manifest %s is valid (version %s, hash %s)\n",
			report.Source, report.ManifestVersion, report.ManifestHash)
		return err
	}
	if _, err := fmt.Fprintf(w, "❌ Manifest %s has %d error(s):\n", report.Source, len(report.Errors)); err != nil {
		return err
	}
	for _, e := range report.Errors {
		if _, err := fmt.Fprintf(w, "  - %s\n", e); err != nil {
			return err
		}
	}
	return nil
}

// writeValidationCSV writes validation errors in CSV format.
func writeValidationCSV(w io.Writer, report schema.ValidationReport) error {
	return writeCSVWithHeader(w, []string{"index", "error"}, func(cw *csv.Writer) error {
		for i, e := range report.Errors {
			if err := cw.Write([]string{strconv.Itoa(i + 1), e}); err != nil {
				return err
			}
		}
		return nil
	})
}
