package outwriter

import (
	"os"

	"github.com/huangsam/onboard/internal/contract"
	"golang.org/x/term"
)

// getTerminalWidth returns the width override or the detected terminal width.
func getTerminalWidth(cfg *contract.Config) int {
	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		return cfg.Width
	}
	detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || detectedWidth <= 0 {
		// Fallback to conservative default if terminal size can't be detected
		return 80 // Conservative default for narrow terminals and CI
	}
	return detectedWidth
}

// GetMaxTableTextWidth calculates the maximum width for the free-text column of
// a table (fix or description) given the width taken by its fixed columns.
func GetMaxTableTextWidth(cfg *contract.Config, fixedWidth int) int {
	// Reserve generous space for table borders, separators, and padding
	available := getTerminalWidth(cfg) - fixedWidth - 20
	if available < 20 {
		// Minimum reasonable text width
		return 20
	}
	if available > 90 {
		// Maximum text width to prevent overly wide tables
		return 90
	}
	return available
}
