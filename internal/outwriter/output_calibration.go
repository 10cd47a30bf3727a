package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// WriteCalibrationResult outputs a calibration fit with its per-example residuals.
func WriteCalibrationResult(result schema.CalibrationResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, _ := createFormatters(cfg.Precision)
	return dispatch(cfg,
		func(w io.Writer) error { return writeCalibrationText(w, result, fmtFloat, duration) },
		func(w io.Writer) error { return writeCalibrationCSV(w, result, fmtFloat) },
		result,
	)
}

// writeCalibrationText writes the fitted transform and a table of training examples.
func writeCalibrationText(w io.Writer, result schema.CalibrationResult, fmtFloat func(float64) string, duration time.Duration) error {
	p := result.Params
	if _, err := fmt.Fprintf(w, "Calibration %s: calibrated = %.4f * raw + %.4f\n", p.Version, p.A, p.B); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Fitted on %s from %d samples (RMSE %.4f, Pearson %.4f)\n",
		p.FittedOn.Format(contract.DateTimeFormat), p.NSamples, result.Quality.RMSE, result.Quality.Pearson); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Example", "Raw", "Target", "Calibrated", "Error"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})
	var data [][]string
	for _, s := range result.Samples {
		calibrated := algo.ApplyCalibration(p, s.Raw)
		data = append(data, []string{
			s.Name,
			fmtFloat(s.Raw),
			fmtFloat(s.Target),
			fmtFloat(calibrated),
			fmtFloat(calibrated - s.Target),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "Calibration completed in %v\n", duration)
	return err
}

// writeCalibrationCSV writes one row per training example.
func writeCalibrationCSV(w io.Writer, result schema.CalibrationResult, fmtFloat func(float64) string) error {
	header := []string{"name", "raw", "target", "calibrated", "version", "a", "b"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		p := result.Params
		for _, s := range result.Samples {
			rec := []string{
				s.Name,
				fmtFloat(s.Raw),
				fmtFloat(s.Target),
				fmtFloat(algo.ApplyCalibration(p, s.Raw)),
				p.Version,
				strconv.FormatFloat(p.A, 'f', -1, 64),
				strconv.FormatFloat(p.B, 'f', -1, 64),
			}
			if err := cw.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
