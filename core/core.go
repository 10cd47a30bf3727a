package core

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/huangsam/onboard/internal/artifact"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/manifest"
)

// Errors returned to the CLI so it can exit non-zero.
var (
	ErrInvalidManifest     = errors.New("manifest failed validation")
	ErrScoreBelowThreshold = errors.New("onboarding score is below the fail-under threshold")
)

// loadManifest loads the configured manifest and reports its integrity problems.
// With strict-manifest set, an invalid manifest is an error instead of a warning.
func loadManifest(cfg *contract.Config) (manifest.Loaded, error) {
	loaded, err := manifest.Load(cfg.ManifestPath)
	if err != nil {
		return manifest.Loaded{}, err
	}
	manifest.LogIntegrity(slog.Default(), loaded)
	if cfg.StrictManifest && !loaded.Validation.Valid {
		return manifest.Loaded{}, fmt.Errorf("%w: %s", ErrInvalidManifest, strings.Join(loaded.Validation.Errors, "; "))
	}
	return loaded, nil
}

// LoadEngine builds an Engine from the configured manifest and calibration.
func LoadEngine(cfg *contract.Config) (*Engine, error) {
	loaded, err := loadManifest(cfg)
	if err != nil {
		return nil, err
	}
	calibration, err := artifact.LoadCalibration(cfg.CalibrationPath)
	if err != nil {
		return nil, err
	}
	slog.Debug("engine ready", "manifest", loaded.Manifest.Version, "hash", loaded.Hash, "calibration", calibration.Version)
	return NewEngine(loaded, calibration)
}

// resolveCohort reads the cohort to rank against. A cohort file wins over the
// benchmark store; stored scores are filtered to the engine's manifest hash and
// calibration version. It returns nil when no cohort source is available.
func resolveCohort(cfg *contract.Config, mgr contract.StoreManager, engine *Engine) (*Cohort, error) {
	if cfg.CohortFile != "" {
		scores, err := artifact.LoadCohort(cfg.CohortFile)
		if err != nil {
			return nil, err
		}
		name := cfg.Cohort
		if name == "" || name == contract.DefaultCohort {
			name = strings.TrimSuffix(filepath.Base(cfg.CohortFile), filepath.Ext(cfg.CohortFile))
		}
		return &Cohort{Name: name, Scores: scores}, nil
	}

	if mgr == nil {
		return nil, nil
	}
	store := mgr.GetBenchmarkStore()
	if store == nil {
		return nil, nil
	}
	scores, err := store.CohortScores(cfg.Cohort, engine.Manifest().Hash, engine.Calibration().Version)
	if err != nil {
		return nil, fmt.Errorf("read cohort %s: %w", cfg.Cohort, err)
	}
	return &Cohort{Name: cfg.Cohort, Scores: scores}, nil
}
