package cmd

import (
	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/spf13/cobra"
)

// rulesCmd lists the active manifest.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the heuristic rules, weights and fixes in the manifest.",
	Long: `Print every rule of the active manifest with its category, weight and confidence.

Rules without a built-in sub-score are marked as unscored; they always score 0
and surface first among the findings of an audit.

Examples:
  # Show the built-in rules
  onboard rules

  # Export a custom manifest's rules as CSV
  onboard rules --manifest rules.yaml --output csv`,
	Args:    cobra.NoArgs,
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteRules(cfg, writer); err != nil {
			contract.LogFatal("Cannot list rules", err)
		}
	},
}
