package core

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/huangsam/onboard/internal/artifact"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
)

// ExecuteAudit scores one page's measurements, ranks it against a cohort, optionally
// stores the result and prints it. It serves as the main entry point for the 'audit' command.
// A calibrated score under fail-under returns ErrScoreBelowThreshold after printing.
func ExecuteAudit(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager, ow contract.OutputWriter, now contract.Clock) error {
	start := now()

	engine, err := LoadEngine(cfg)
	if err != nil {
		return err
	}

	m, err := artifact.LoadMeasurements(cfg.MeasurementsPath)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	cohort, err := resolveCohort(cfg, mgr, engine)
	if err != nil {
		return err
	}

	// Rank before submitting so a page is never compared against itself
	result := engine.Audit(m, cohort)

	if cfg.Submit {
		if err := submitResult(cfg, mgr, result.Report, now); err != nil {
			return err
		}
	}

	if err := ow.WriteAudit(result, cfg, now().Sub(start)); err != nil {
		return err
	}

	if cfg.FailUnder > 0 && result.Report.Calibrated < cfg.FailUnder {
		return fmt.Errorf("%w: %.1f < %.1f", ErrScoreBelowThreshold, result.Report.Calibrated, cfg.FailUnder)
	}
	return nil
}

// submitResult stores an audited score in the benchmark store.
func submitResult(cfg *contract.Config, mgr contract.StoreManager, report schema.ScoreReport, now contract.Clock) error {
	// The none backend accepts writes and drops them
	if cfg.BenchmarkBackend == schema.NoneBackend {
		return fmt.Errorf("cannot submit: benchmark backend is %q", schema.NoneBackend)
	}
	if mgr == nil || mgr.GetBenchmarkStore() == nil {
		return fmt.Errorf("cannot submit: benchmark store is not configured")
	}
	id, err := mgr.GetBenchmarkStore().Submit(schema.BenchmarkSubmission{
		Cohort:             cfg.Cohort,
		PageURL:            cfg.PageURL,
		RawScore:           report.Raw,
		CalibratedScore:    report.Calibrated,
		ManifestVersion:    report.ManifestVersion,
		ManifestHash:       report.ManifestHash,
		CalibrationVersion: report.CalibrationVersion,
		SubmittedAt:        now(),
	})
	if err != nil {
		return fmt.Errorf("submit benchmark: %w", err)
	}
	slog.Info("submitted audit to benchmark", "id", id, "cohort", cfg.Cohort)
	return nil
}
