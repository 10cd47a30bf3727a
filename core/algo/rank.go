package algo

import (
	"math"
	"slices"

	"github.com/huangsam/onboard/schema"
)

// RankScore places score within a cohort sample.
// The score is treated as inserted into the cohort, so Of is the cohort size plus one.
// Rank 1 is the highest score; a score equal to existing ones takes the first tied position.
// Percentiles describe the cohort as supplied, without the inserted score.
func RankScore(score float64, cohort []float64) schema.BenchmarkRanking {
	higher := 0
	for _, v := range cohort {
		if v > score {
			higher++
		}
	}

	sorted := slices.Clone(cohort)
	slices.Sort(sorted)

	return schema.BenchmarkRanking{
		Score: score,
		Rank:  higher + 1,
		Of:    len(cohort) + 1,
		P25:   percentileSorted(sorted, 0.25),
		P50:   percentileSorted(sorted, 0.50),
		P75:   percentileSorted(sorted, 0.75),
	}
}

// Percentile returns the p-th quantile (p in [0,1]) of values using linear
// interpolation between order statistics (the R-7 / Excel PERCENTILE.INC method).
// The input slice is not modified. An empty sample yields 0.
func Percentile(values []float64, p float64) float64 {
	sorted := slices.Clone(values)
	slices.Sort(sorted)
	return percentileSorted(sorted, p)
}

func percentileSorted(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	p = clamp(p, 0, 1)
	h := float64(n-1) * p
	lo := int(math.Floor(h))
	if lo >= n-1 {
		return sorted[n-1]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[lo+1]-sorted[lo])
}
