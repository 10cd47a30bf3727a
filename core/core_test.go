package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// perfectPage scores 100 under the built-in manifest.
const perfectPage = `{
  "schema_version": "1",
  "cta_above_fold": true,
  "focus_visible": true,
  "responsive_layout": true,
  "progress_indicator": true,
  "steps_count": 3,
  "form_field_count": 2,
  "lcp_ms": 1800,
  "copy": {"avg_sentence_length": 10, "jargon_count": 0, "passive_ratio": 0}
}`

// sparsePage scores 0.2*100 + 0.15*60 = 29 under the built-in manifest.
const sparsePage = `{"schema_version": "1", "cta_above_fold": true, "steps_count": 6}`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func baseConfig() *contract.Config {
	return &contract.Config{
		Cohort:             contract.DefaultCohort,
		Workers:            2,
		Precision:          1,
		Output:             schema.TextOut,
		BenchmarkBackend:   schema.NoneBackend,
		CalibrationVersion: contract.DefaultCalibrationVersion,
	}
}
