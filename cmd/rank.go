package cmd

import (
	"fmt"
	"strconv"

	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/spf13/cobra"
)

// rankCmd places an existing score within a cohort.
var rankCmd = &cobra.Command{
	Use:   "rank <score>",
	Short: "Rank a calibrated score against a benchmark cohort.",
	Long: `Show where a calibrated score sits within a cohort of peer pages.

Prints the rank (1 is best), the cohort size including the score and the
25th, 50th and 75th percentiles of the cohort.

Examples:
  # Rank against the stored "saas" cohort
  onboard rank 72 --cohort saas

  # Rank against a file of peer scores
  onboard rank 72 --cohort-file peers.json`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return sharedSetup(rootCtx, cmd, nil)
	},
	Run: func(_ *cobra.Command, args []string) {
		score, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			contract.LogFatal("Cannot rank score", fmt.Errorf("invalid score %q: %w", args[0], err))
		}
		if err := core.ExecuteRank(cfg, storeManager, writer, score); err != nil {
			contract.LogFatal("Cannot rank score", err)
		}
	},
}
