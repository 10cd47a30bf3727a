package core

import (
	"fmt"

	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/contract"
)

// ExecuteRank places a calibrated score within a cohort and prints the ranking.
func ExecuteRank(cfg *contract.Config, mgr contract.StoreManager, ow contract.OutputWriter, score float64) error {
	if !(score >= 0 && score <= 100) {
		return fmt.Errorf("score must be between 0 and 100, got %g", score)
	}

	// Stored cohorts are scoped to a manifest and calibration, so the engine is needed even here
	engine, err := LoadEngine(cfg)
	if err != nil {
		return err
	}

	cohort, err := resolveCohort(cfg, mgr, engine)
	if err != nil {
		return err
	}
	if cohort == nil {
		return fmt.Errorf("no cohort available: pass --cohort-file or configure a benchmark backend")
	}

	ranking := algo.RankScore(score, cohort.Scores)
	ranking.Cohort = cohort.Name
	return ow.WriteRanking(ranking, cfg)
}
