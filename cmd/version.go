package cmd

import (
	"runtime"

	"github.com/huangsam/onboard/internal/manifest"
	"github.com/spf13/cobra"
)

// versionCmd shows the build and the built-in scoring model it ships with.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of onboard.",
	Long: `Display build details and the built-in rules manifest.

Stored benchmark scores are scoped by manifest hash, so the hash printed here
tells which cohorts a default audit is ranked against.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("onboard CLI\n")
		cmd.Printf("  Version:  %s\n", version)
		cmd.Printf("  Commit:   %s\n", commit)
		cmd.Printf("  Built:    %s\n", date)
		cmd.Printf("  Runtime:  %s\n", runtime.Version())
		if l, err := manifest.Default(); err == nil {
			cmd.Printf("  Manifest: %s (%s, %d rules)\n", l.Manifest.Version, l.Hash, len(l.Manifest.Rules))
		}
	},
}
