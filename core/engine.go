// Package core has core logic for auditing, calibrating and ranking onboarding pages.
package core

import (
	"fmt"
	"math"

	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/manifest"
	"github.com/huangsam/onboard/schema"
)

// Engine scores measurements against one manifest and one calibration.
// It holds no mutable state after construction, so a single Engine may serve
// concurrent callers.
type Engine struct {
	manifest    manifest.Loaded
	calibration schema.CalibrationParams
}

// Cohort is a named snapshot of calibrated scores to rank against.
type Cohort struct {
	Name   string
	Scores []float64
}

// NewEngine builds an Engine. The calibration must have finite coefficients.
func NewEngine(loaded manifest.Loaded, calibration schema.CalibrationParams) (*Engine, error) {
	if math.IsNaN(calibration.A) || math.IsInf(calibration.A, 0) || math.IsNaN(calibration.B) || math.IsInf(calibration.B, 0) {
		return nil, fmt.Errorf("calibration %q has non-finite coefficients", calibration.Version)
	}
	return &Engine{manifest: loaded, calibration: calibration}, nil
}

// Manifest returns the manifest the engine scores against.
func (e *Engine) Manifest() manifest.Loaded {
	return e.manifest
}

// Calibration returns the calibration the engine applies.
func (e *Engine) Calibration() schema.CalibrationParams {
	return e.calibration
}

// Score aggregates the measurements and calibrates the raw score.
func (e *Engine) Score(m schema.Measurements) schema.ScoreReport {
	report := algo.Aggregate(m, e.manifest.Manifest)
	report.Calibrated = algo.ApplyCalibration(e.calibration, report.Raw)
	report.ManifestVersion = e.manifest.Manifest.Version
	report.ManifestHash = e.manifest.Hash
	report.CalibrationVersion = e.calibration.Version
	return report
}

// Audit scores the measurements and, when a non-empty cohort is given, ranks the
// calibrated score within it.
func (e *Engine) Audit(m schema.Measurements, cohort *Cohort) schema.AuditResult {
	report := e.Score(m)
	result := schema.AuditResult{
		Label:  schema.GetPlainLabel(report.Calibrated),
		Report: report,
	}
	if cohort != nil && len(cohort.Scores) > 0 {
		ranking := algo.RankScore(report.Calibrated, cohort.Scores)
		ranking.Cohort = cohort.Name
		result.Ranking = &ranking
	}
	return result
}
