package algo

import (
	"math"
	"sort"

	"github.com/huangsam/onboard/schema"
)

// Aggregate scores every manifest rule and combines the sub-scores into the raw score.
// Weights are used exactly as the manifest supplies them. A manifest whose weights
// do not sum to 1 still scores; catching that is the job of manifest validation.
// Only the raw-score fields of the report are filled.
func Aggregate(m schema.Measurements, manifest schema.Manifest) schema.ScoreReport {
	subScores := make([]schema.SubScore, 0, len(manifest.Rules))
	findings := make([]schema.Finding, 0, len(manifest.Rules))

	var total float64
	for _, rule := range manifest.Rules {
		value := SubScoreFor(rule.ID, m)
		weight := rule.Weight.Float()
		total += weight * value

		subScores = append(subScores, schema.SubScore{RuleID: rule.ID, Value: value})
		findings = append(findings, schema.Finding{
			RuleID:   rule.ID,
			Category: rule.Category,
			Weight:   weight,
			SubScore: value,
			Fix:      rule.Fix,
		})
	}

	RankFindings(findings)

	return schema.ScoreReport{
		Raw:       clamp(math.Round(total), 0, 100),
		SubScores: subScores,
		Findings:  findings,
	}
}

// RankFindings orders findings worst first: ascending sub-score, then descending
// weight, then rule id. It assigns each finding its 1-based severity rank.
func RankFindings(findings []schema.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := findings[i], findings[j]
		if a.SubScore != b.SubScore {
			return a.SubScore < b.SubScore
		}
		if a.Weight != b.Weight {
			return a.Weight > b.Weight
		}
		return a.RuleID < b.RuleID
	})
	for i := range findings {
		findings[i].SeverityRank = i + 1
	}
}
