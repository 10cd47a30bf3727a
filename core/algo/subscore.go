// Package algo holds the pure scoring, calibration and ranking functions.
// Nothing in this package reads the clock, does I/O or keeps state between calls.
package algo

import (
	"math"

	"github.com/huangsam/onboard/schema"
)

// Thresholds for the continuous and banded sub-scores.
const (
	lcpGoodMillis = 2500.0 // at or below this the page paints fast enough
	lcpPoorMillis = 6000.0 // at or above this the sub-score bottoms out

	sentenceLengthLimit = 15.0 // words per sentence before the copy reads as dense
	sentenceLengthRate  = 2.0
	sentenceLengthCap   = 50.0

	jargonRate = 5.0
	jargonCap  = 30.0

	passiveRatioLimit = 0.2
	passiveRatioRate  = 100.0
	passiveRatioCap   = 20.0
)

// SubScoreFunc maps a measurement set to a 0-100 sub-score for one heuristic.
type SubScoreFunc func(m schema.Measurements) float64

// subScoreFuncs is keyed by the heuristic name a rule id refers to.
var subScoreFuncs = map[schema.HeuristicName]SubScoreFunc{
	schema.CTAAboveFold:      func(m schema.Measurements) float64 { return BinaryScore(m.CTAAboveFold) },
	schema.FocusVisible:      func(m schema.Measurements) float64 { return BinaryScore(m.FocusVisible) },
	schema.ResponsiveLayout:  func(m schema.Measurements) float64 { return BinaryScore(m.ResponsiveLayout) },
	schema.ProgressIndicator: func(m schema.Measurements) float64 { return BinaryScore(m.ProgressIndicator) },
	schema.StepsCount:        func(m schema.Measurements) float64 { return StepsScore(m.StepsCount) },
	schema.FormFieldCount:    func(m schema.Measurements) float64 { return FormFieldScore(m.FormFieldCount) },
	schema.LCPTiming:         func(m schema.Measurements) float64 { return LCPScore(m.LCPMillis) },
	schema.CopyClarity:       func(m schema.Measurements) float64 { return CopyClarityScore(m.Copy) },
}

// HasSubScore reports whether a rule id has a sub-score function.
func HasSubScore(ruleID string) bool {
	_, ok := subScoreFuncs[schema.HeuristicName(ruleID)]
	return ok
}

// SubScoreFor computes the sub-score of one rule. Rules without a function
// score 0 so that the report stays complete.
func SubScoreFor(ruleID string, m schema.Measurements) float64 {
	fn, ok := subScoreFuncs[schema.HeuristicName(ruleID)]
	if !ok {
		return 0
	}
	return clamp(fn(m), 0, 100)
}

// BinaryScore gives full credit for a detected signal and none otherwise.
func BinaryScore(detected *bool) float64 {
	if detected != nil && *detected {
		return 100
	}
	return 0
}

// StepsScore bands the number of onboarding steps: fewer is better.
func StepsScore(steps *int) float64 {
	if steps == nil {
		return 0
	}
	n := max(*steps, 0)
	switch {
	case n < 4:
		return 100
	case n <= 5:
		return 80
	case n <= 7:
		return 60
	default:
		return 40
	}
}

// FormFieldScore bands the number of fields on the signup form.
func FormFieldScore(fields *int) float64 {
	if fields == nil {
		return 0
	}
	n := max(*fields, 0)
	switch {
	case n <= 3:
		return 100
	case n <= 5:
		return 80
	case n <= 8:
		return 60
	default:
		return 40
	}
}

// LCPScore decays linearly from 100 at 2.5s to 0 at 6s of largest contentful paint.
func LCPScore(lcp *float64) float64 {
	if lcp == nil || math.IsNaN(*lcp) {
		return 0
	}
	v := *lcp
	switch {
	case v <= lcpGoodMillis:
		return 100
	case v >= lcpPoorMillis:
		return 0
	default:
		return 100 * (lcpPoorMillis - v) / (lcpPoorMillis - lcpGoodMillis)
	}
}

// CopyClarityScore starts at 100 and subtracts one capped penalty per dimension.
func CopyClarityScore(c *schema.CopyStats) float64 {
	if c == nil {
		return 0
	}
	score := 100.0
	if c.AvgSentenceLength > sentenceLengthLimit {
		score -= math.Min(sentenceLengthCap, (c.AvgSentenceLength-sentenceLengthLimit)*sentenceLengthRate)
	}
	if c.JargonCount > 0 {
		score -= math.Min(jargonCap, float64(c.JargonCount)*jargonRate)
	}
	if c.PassiveRatio > passiveRatioLimit {
		score -= math.Min(passiveRatioCap, (c.PassiveRatio-passiveRatioLimit)*passiveRatioRate)
	}
	if math.IsNaN(score) {
		return 0
	}
	return math.Max(score, 0)
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
