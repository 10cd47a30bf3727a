package algo

import (
	"math"
	"testing"
	"time"

	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fitTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func samples(pairs ...[2]float64) []schema.CalibrationSample {
	out := make([]schema.CalibrationSample, len(pairs))
	for i, p := range pairs {
		out[i] = schema.CalibrationSample{Raw: p[0], Target: p[1]}
	}
	return out
}

func TestFitCalibration_IdentityRoundTrip(t *testing.T) {
	s := samples([2]float64{20, 20}, [2]float64{50, 50}, [2]float64{80, 80})

	params, err := FitCalibration(s, "v1", fitTime)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, params.A, 1e-9)
	assert.InDelta(t, 0.0, params.B, 1e-9)
	assert.Equal(t, "v1", params.Version)
	assert.Equal(t, 3, params.NSamples)
	assert.Equal(t, fitTime, params.FittedOn)

	q := EvaluateFit(params, s)
	assert.InDelta(t, 0.0, q.RMSE, 1e-9)
	assert.InDelta(t, 1.0, q.Pearson, 1e-9)
}

func TestFitCalibration_KnownLine(t *testing.T) {
	// target = 0.5*raw + 30
	s := samples([2]float64{0, 30}, [2]float64{40, 50}, [2]float64{100, 80})

	params, err := FitCalibration(s, "v2", fitTime)
	require.NoError(t, err)

	assert.Equal(t, 0.5, params.A)
	assert.Equal(t, 30.0, params.B)
}

func TestFitCalibration_RoundsCoefficients(t *testing.T) {
	s := samples([2]float64{10, 13}, [2]float64{20, 19}, [2]float64{30, 32})

	params, err := FitCalibration(s, "v", fitTime)
	require.NoError(t, err)

	assert.Equal(t, math.Round(params.A*1e4)/1e4, params.A)
	assert.Equal(t, math.Round(params.B*1e4)/1e4, params.B)
}

func TestFitCalibration_DegenerateRawScores(t *testing.T) {
	s := samples([2]float64{60, 40}, [2]float64{60, 70}, [2]float64{60, 55})

	params, err := FitCalibration(s, "flat", fitTime)
	require.NoError(t, err)

	assert.Equal(t, 1.0, params.A)
	assert.Equal(t, 0.0, params.B)
}

func TestFitCalibration_InsufficientSamples(t *testing.T) {
	tests := []struct {
		name    string
		samples []schema.CalibrationSample
	}{
		{"none", nil},
		{"one", samples([2]float64{50, 60})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FitCalibration(tt.samples, "v", fitTime)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInsufficientSamples)
		})
	}
}

func TestFitCalibration_FittedOnIsUTC(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	params, err := FitCalibration(samples([2]float64{1, 2}, [2]float64{3, 4}), "v", fitTime.In(loc))
	require.NoError(t, err)
	assert.Equal(t, time.UTC, params.FittedOn.Location())
	assert.True(t, params.FittedOn.Equal(fitTime))
}

func TestApplyCalibration(t *testing.T) {
	params := schema.CalibrationParams{A: 1.2, B: -5}

	tests := []struct {
		raw      float64
		expected float64
	}{
		{0, 0},     // -5 clamped
		{50, 55},   // 60 - 5
		{100, 100}, // 115 clamped
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.expected, ApplyCalibration(params, tt.raw), 1e-9, "raw=%v", tt.raw)
	}
}

func TestApplyCalibration_Identity(t *testing.T) {
	for raw := 0.0; raw <= 100; raw += 5 {
		assert.Equal(t, raw, ApplyCalibration(schema.IdentityCalibration, raw))
	}
}

func TestApplyCalibration_MonotonicForPositiveSlope(t *testing.T) {
	params := schema.CalibrationParams{A: 0.8, B: 12}
	prev := ApplyCalibration(params, 0)
	for raw := 1.0; raw <= 100; raw++ {
		cur := ApplyCalibration(params, raw)
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestPearson(t *testing.T) {
	assert.InDelta(t, 1.0, Pearson([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-9)
	assert.InDelta(t, -1.0, Pearson([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-9)
	assert.Equal(t, 0.0, Pearson([]float64{1, 1, 1}, []float64{1, 2, 3}), "no variance")
	assert.Equal(t, 0.0, Pearson([]float64{1, 2}, []float64{1}), "length mismatch")
	assert.Equal(t, 0.0, Pearson(nil, nil))
}

func TestEvaluateFit_Empty(t *testing.T) {
	assert.Equal(t, schema.FitQuality{}, EvaluateFit(schema.IdentityCalibration, nil))
}
