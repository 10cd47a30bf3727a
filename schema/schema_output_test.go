package schema_test

import (
	"testing"

	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
)

func TestGetPlainLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Excellent Score Upper", 100.0, "Excellent"},
		{"Excellent Score Lower", 80.0, "Excellent"},
		{"Good Score Upper", 79.9, "Good"},
		{"Good Score Lower", 60.0, "Good"},
		{"Fair Score Upper", 59.9, "Fair"},
		{"Fair Score Lower", 40.0, "Fair"},
		{"Poor Score Upper", 39.9, "Poor"},
		{"Poor Score Lower", 0.0, "Poor"},
		{"Negative Score", -10.0, "Poor"}, // Edge case
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := schema.GetPlainLabel(tt.score)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestEnrichFindings(t *testing.T) {
	findings := []schema.Finding{
		{RuleID: "steps_count", SubScore: 40, SeverityRank: 1},
		{RuleID: "lcp_ms", SubScore: 65, SeverityRank: 2},
		{RuleID: "cta_above_fold", SubScore: 100, SeverityRank: 3},
	}

	enriched := schema.EnrichFindings(findings)

	assert.Len(t, enriched, 3)
	assert.Equal(t, "Fair", enriched[0].Label)
	assert.Equal(t, "Good", enriched[1].Label)
	assert.Equal(t, "Excellent", enriched[2].Label)
	for i := range findings {
		assert.Equal(t, findings[i], enriched[i].Finding)
	}
}
