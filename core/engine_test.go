package core

import (
	"math"
	"sync"
	"testing"

	"github.com/huangsam/onboard/internal/manifest"
	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultEngine(t *testing.T, calibration schema.CalibrationParams) *Engine {
	t.Helper()
	loaded, err := manifest.Default()
	require.NoError(t, err)
	engine, err := NewEngine(loaded, calibration)
	require.NoError(t, err)
	return engine
}

func sparseMeasurements() schema.Measurements {
	return schema.Measurements{
		SchemaVersion: schema.MeasurementSchemaVersion,
		CTAAboveFold:  schema.Bool(true),
		StepsCount:    schema.Int(6),
	}
}

func TestEngine_Score(t *testing.T) {
	engine := defaultEngine(t, schema.CalibrationParams{A: 0.5, B: 30, Version: "v1"})
	report := engine.Score(sparseMeasurements())

	assert.Equal(t, 29.0, report.Raw)
	assert.Equal(t, 44.5, report.Calibrated)
	assert.Equal(t, "1.4.0", report.ManifestVersion)
	assert.Equal(t, engine.Manifest().Hash, report.ManifestHash)
	assert.Equal(t, "v1", report.CalibrationVersion)
	assert.Len(t, report.SubScores, 8)
	assert.Equal(t, 1, report.Findings[0].SeverityRank)
}

func TestEngine_IdentityCalibration(t *testing.T) {
	engine := defaultEngine(t, schema.IdentityCalibration)
	report := engine.Score(sparseMeasurements())
	assert.Equal(t, report.Raw, report.Calibrated)
}

func TestNewEngine_RejectsNonFiniteCalibration(t *testing.T) {
	loaded, err := manifest.Default()
	require.NoError(t, err)

	_, err = NewEngine(loaded, schema.CalibrationParams{A: math.NaN(), B: 0})
	assert.Error(t, err)
	_, err = NewEngine(loaded, schema.CalibrationParams{A: 1, B: math.Inf(1)})
	assert.Error(t, err)
}

func TestEngine_Audit(t *testing.T) {
	engine := defaultEngine(t, schema.IdentityCalibration)

	tests := []struct {
		name        string
		cohort      *Cohort
		wantRanking bool
	}{
		{"no cohort", nil, false},
		{"empty cohort", &Cohort{Name: "saas"}, false},
		{"cohort", &Cohort{Name: "saas", Scores: []float64{10, 50, 90}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := engine.Audit(sparseMeasurements(), tt.cohort)
			assert.Equal(t, schema.PoorLabel, result.Label)
			if !tt.wantRanking {
				assert.Nil(t, result.Ranking)
				return
			}
			require.NotNil(t, result.Ranking)
			assert.Equal(t, "saas", result.Ranking.Cohort)
			assert.Equal(t, 3, result.Ranking.Rank)
			assert.Equal(t, 4, result.Ranking.Of)
			assert.Equal(t, 50.0, result.Ranking.P50)
		})
	}
}

func TestEngine_ConcurrentScore(t *testing.T) {
	engine := defaultEngine(t, schema.CalibrationParams{A: 0.9, B: 5, Version: "v"})
	want := engine.Score(sparseMeasurements())

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				assert.Equal(t, want, engine.Score(sparseMeasurements()))
			}
		}()
	}
	wg.Wait()
}
