package algo

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/huangsam/onboard/schema"
)

// ErrInsufficientSamples is returned when a calibration fit has fewer than two samples.
var ErrInsufficientSamples = errors.New("calibration fit requires at least 2 samples")

// minFitSamples is the smallest training set a line can be fitted through.
const minFitSamples = 2

// FitCalibration fits calibrated = a*raw + b by ordinary least squares.
// When every raw score is identical the slope is undefined and the identity
// transform is returned instead. Coefficients are rounded to 4 decimal places.
// fittedOn is supplied by the caller so the fit itself stays deterministic.
func FitCalibration(samples []schema.CalibrationSample, version string, fittedOn time.Time) (schema.CalibrationParams, error) {
	n := len(samples)
	if n < minFitSamples {
		return schema.CalibrationParams{}, fmt.Errorf("%w (got %d)", ErrInsufficientSamples, n)
	}

	var sumX, sumY float64
	for _, s := range samples {
		sumX += s.Raw
		sumY += s.Target
	}
	meanX := sumX / float64(n)
	meanY := sumY / float64(n)

	var num, den float64
	for _, s := range samples {
		dx := s.Raw - meanX
		num += dx * (s.Target - meanY)
		den += dx * dx
	}

	a, b := 1.0, 0.0
	if den != 0 {
		a = num / den
		b = meanY - a*meanX
	}

	return schema.CalibrationParams{
		A:        round4(a),
		B:        round4(b),
		Version:  version,
		FittedOn: fittedOn.UTC(),
		NSamples: n,
	}, nil
}

// ApplyCalibration maps a raw score onto the calibrated scale, clamped to [0,100].
func ApplyCalibration(params schema.CalibrationParams, raw float64) float64 {
	return clamp(params.A*raw+params.B, 0, 100)
}

// EvaluateFit reports the RMSE between calibrated and target scores and the
// Pearson correlation between raw and target scores.
func EvaluateFit(params schema.CalibrationParams, samples []schema.CalibrationSample) schema.FitQuality {
	if len(samples) == 0 {
		return schema.FitQuality{}
	}
	var sq float64
	raws := make([]float64, len(samples))
	targets := make([]float64, len(samples))
	for i, s := range samples {
		d := ApplyCalibration(params, s.Raw) - s.Target
		sq += d * d
		raws[i] = s.Raw
		targets[i] = s.Target
	}
	return schema.FitQuality{
		RMSE:    math.Sqrt(sq / float64(len(samples))),
		Pearson: Pearson(raws, targets),
	}
}

// Pearson returns the correlation coefficient of xs and ys.
// It returns 0 when either series has no variance or the lengths differ.
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	var sumX, sumY float64
	for i := range n {
		sumX += xs[i]
		sumY += ys[i]
	}
	meanX, meanY := sumX/float64(n), sumY/float64(n)

	var cov, varX, varY float64
	for i := range n {
		dx, dy := xs[i]-meanX, ys[i]-meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func round4(v float64) float64 {
	r := math.Round(v*1e4) / 1e4
	if r == 0 {
		return 0 // drop negative zero
	}
	return r
}
