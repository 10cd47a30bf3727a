package schema

import "time"

// CalibrationParams is the affine transform fitted from labeled data.
// It is written once by a fit job and never mutated; a re-fit is a new version.
type CalibrationParams struct {
	A        float64   `json:"a"`
	B        float64   `json:"b"`
	Version  string    `json:"version"`
	FittedOn time.Time `json:"fitted_on"`
	NSamples int       `json:"n_samples"`
}

// IdentityCalibration maps raw scores onto themselves.
var IdentityCalibration = CalibrationParams{A: 1, B: 0, Version: "identity"}

// CalibrationSample pairs a raw score with its human-labeled target.
type CalibrationSample struct {
	Name   string  `json:"name,omitempty"`
	Raw    float64 `json:"raw"`
	Target float64 `json:"target"`
}

// TrainingExample is one labeled page: its measurements and the expected score range.
type TrainingExample struct {
	Name         string       `json:"name"`
	Measurements Measurements `json:"measurements"`
	ExpectedMin  float64      `json:"expected_min"`
	ExpectedMax  float64      `json:"expected_max"`
}

// Target returns the midpoint of the labeled range.
func (te TrainingExample) Target() float64 {
	return (te.ExpectedMin + te.ExpectedMax) / 2
}

// FitQuality reports how well a calibration fits its training data.
type FitQuality struct {
	RMSE    float64 `json:"rmse"`
	Pearson float64 `json:"pearson"`
}

// CalibrationResult is the output of a calibration fit job.
type CalibrationResult struct {
	Params  CalibrationParams   `json:"params"`
	Quality FitQuality          `json:"quality"`
	Samples []CalibrationSample `json:"samples"`
}
