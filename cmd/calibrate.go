package cmd

import (
	"fmt"

	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/spf13/cobra"
)

// calibrateCmd fits the raw-to-calibrated score mapping.
var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Fit a score calibration from labeled examples.",
	Long: `Fit a linear calibration that maps raw scores onto target scores.

The training set is a JSON array of labeled examples, each holding measurements and
a target score from expert review or observed conversion. Examples are scored in
parallel, then a least-squares line is fitted and its RMSE and Pearson correlation
are reported.

Examples:
  # Fit and inspect without writing anything
  onboard calibrate --training-set labeled.json

  # Fit and write a versioned artifact
  onboard calibrate --training-set labeled.json --calibration-out calibration.json --calibration-version 2026-10`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.TrainingSetPath == "" {
			contract.LogFatal("Cannot run calibration", fmt.Errorf("--training-set is required"))
		}
		if err := core.ExecuteCalibrate(rootCtx, cfg, writer, clock); err != nil {
			contract.LogFatal("Cannot run calibration", err)
		}
	},
}
