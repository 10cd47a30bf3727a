package cmd

import (
	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/spf13/cobra"
)

// validateCmd checks a manifest for integrity problems.
var validateCmd = &cobra.Command{
	Use:   "validate [manifest]",
	Short: "Check a rules manifest and list every integrity error.",
	Long: `Validate a rules manifest without scoring anything.

Reports every problem at once: duplicate rule ids, weights that do not sum to 1,
missing fields, non-numeric or non-positive weights and unknown confidence levels.
Exits non-zero when any error is found.

Examples:
  # Validate the built-in manifest
  onboard validate

  # Validate a candidate manifest before rollout
  onboard validate rules.yaml`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: configSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if len(args) == 1 {
			cfg.ManifestPath = args[0]
		}
		if err := core.ExecuteValidate(cfg, writer); err != nil {
			contract.LogFatal("Manifest validation failed", err)
		}
	},
}
