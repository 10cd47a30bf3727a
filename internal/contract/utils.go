package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/onboard/schema"
)

// Color variables for console output.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold) // ExcellentColor marks pages that need no work.
	GoodColor      = color.New(color.FgCyan)              // GoodColor marks minor polish.
	FairColor      = color.New(color.FgYellow)            // FairColor marks noticeable friction.
	PoorColor      = color.New(color.FgRed, color.Bold)   // PoorColor marks a broken onboarding.
)

// GetColorLabel returns a colored text label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case schema.ExcellentLabel:
		return ExcellentColor.Sprint(text)
	case schema.GoodLabel:
		return GoodColor.Sprint(text)
	case schema.FairLabel:
		return FairColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path means os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetBenchmarkDBFilePath returns the path to the SQLite DB file for benchmark storage.
func GetBenchmarkDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".onboard_benchmark.db"
	}
	return filepath.Join(homeDir, ".onboard_benchmark.db")
}

// TruncateText truncates a string to a maximum width with an ellipsis suffix.
// Requires maxWidth > 3 so there is room for the "..." and at least one character.
func TruncateText(s string, maxWidth int) string {
	runes := []rune(s)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return s
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
