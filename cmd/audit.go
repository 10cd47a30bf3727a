package cmd

import (
	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/spf13/cobra"
)

// auditCmd scores one page and ranks it against a cohort.
var auditCmd = &cobra.Command{
	Use:   "audit [measurements.json]",
	Short: "Score an onboarding page and list its top fixes.",
	Long: `Score the measurements of one onboarding page against the rules manifest.

Reads a measurement document (from a file, or stdin when omitted or "-") and prints:
- The calibrated 0-100 onboarding score and its label
- Every rule ranked from the weakest sub-score to the strongest, with its fix
- The page's rank within the benchmark cohort when one is available

Use --fail-under in CI to block releases whose onboarding score regresses.

Examples:
  # Audit a page captured by a probe
  onboard audit page.json

  # Rank against a cohort exported by another team
  onboard audit page.json --cohort-file saas.csv

  # Store the result in the "saas" cohort
  onboard audit page.json --cohort saas --submit --page-url https://example.com/signup

  # Gate a pipeline on a minimum score
  onboard audit page.json --fail-under 60 --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if cfg.MeasurementsPath == "" {
			cfg.MeasurementsPath = "-"
		}
		if err := core.ExecuteAudit(rootCtx, cfg, storeManager, writer, clock); err != nil {
			contract.LogFatal("Cannot run audit", err)
		}
	},
}
