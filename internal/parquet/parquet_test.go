package parquet

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/onboard/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSubmissions() []schema.BenchmarkSubmission {
	now := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	return []schema.BenchmarkSubmission{
		{
			SubmissionID:       1,
			Cohort:             "saas",
			PageURL:            "https://example.com/signup",
			RawScore:           72,
			CalibratedScore:    68.4,
			ManifestVersion:    "1.4.0",
			ManifestHash:       "abcdef0123456789",
			CalibrationVersion: "2026-09",
			SubmittedAt:        now.Add(-time.Hour),
		},
		{
			SubmissionID:       2,
			Cohort:             "saas",
			RawScore:           45,
			CalibratedScore:    41.5,
			ManifestVersion:    "1.4.0",
			ManifestHash:       "abcdef0123456789",
			CalibrationVersion: "2026-09",
			SubmittedAt:        now,
		},
	}
}

func TestSubmissionStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	s := parquet.SchemaOf(new(Submission))
	require.NotNil(t, s)

	expectedColumns := []string{
		"submission_id",
		"cohort",
		"page_url",
		"raw_score",
		"calibrated_score",
		"manifest_version",
		"manifest_hash",
		"calibration_version",
		"submitted_at",
	}

	for _, colName := range expectedColumns {
		col, ok := s.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteAndReadSubmissionsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "submissions.parquet")
	data := ConvertSubmissions(sampleSubmissions())

	require.NoError(t, WriteSubmissionsParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err, "Output file should exist")
	assert.Greater(t, info.Size(), int64(0), "Output file should not be empty")

	readData, err := ReadSubmissionsParquet(outputPath)
	require.NoError(t, err)
	require.Len(t, readData, len(data))

	for i := range data {
		assert.Equal(t, data[i].SubmissionID, readData[i].SubmissionID)
		assert.Equal(t, data[i].Cohort, readData[i].Cohort)
		assert.InDelta(t, data[i].CalibratedScore, readData[i].CalibratedScore, 0.001)
		assert.Equal(t, data[i].ManifestHash, readData[i].ManifestHash)
		assert.WithinDuration(t, data[i].SubmittedAt, readData[i].SubmittedAt, time.Nanosecond)

		// Check nullable PageURL field
		if data[i].PageURL == nil {
			assert.Nil(t, readData[i].PageURL, "PageURL should be nil")
		} else {
			require.NotNil(t, readData[i].PageURL)
			assert.Equal(t, *data[i].PageURL, *readData[i].PageURL)
		}
	}
}

func TestSubmissionConversionRoundTrip(t *testing.T) {
	subs := sampleSubmissions()
	back := ToBenchmarkSubmissions(ConvertSubmissions(subs))
	assert.Equal(t, subs, back)
}

func TestWriteSubmissionsParquet_EmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteSubmissionsParquet([]Submission{}, outputPath))

	rows, err := ReadSubmissionsParquet(outputPath)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestReadSubmissionsParquet_MissingFile(t *testing.T) {
	_, err := ReadSubmissionsParquet(filepath.Join(t.TempDir(), "nope.parquet"))
	assert.Error(t, err)
}

func TestWriteFindingsParquet(t *testing.T) {
	findings := []schema.Finding{
		{RuleID: "steps_count", Category: "friction", Weight: 0.15, SubScore: 40, Fix: "merge steps", SeverityRank: 1},
		{RuleID: "lcp_ms", Category: "performance", Weight: 0.1, SubScore: 85, Fix: "preload hero", SeverityRank: 2},
	}
	rows := ConvertFindings(findings)
	require.Len(t, rows, 2)
	assert.Equal(t, "Fair", rows[0].Label)
	assert.Equal(t, int32(2), rows[1].SeverityRank)

	outputPath := filepath.Join(t.TempDir(), "findings.parquet")
	require.NoError(t, WriteFindingsParquet(rows, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
