package schema

// Score label values.
const (
	ExcellentLabel = "Excellent"
	GoodLabel      = "Good"
	FairLabel      = "Fair"
	PoorLabel      = "Poor"
)

// GetPlainLabel returns a plain text label for an onboarding score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 80:
		return ExcellentLabel
	case score >= 60:
		return GoodLabel
	case score >= 40:
		return FairLabel
	default:
		return PoorLabel
	}
}

// EnrichedFinding adds presentation data to a Finding.
type EnrichedFinding struct {
	Label string `json:"label"`
	Finding
}

// EnrichFindings adds a label to each finding, keeping order.
func EnrichFindings(findings []Finding) []EnrichedFinding {
	output := make([]EnrichedFinding, len(findings))
	for i, f := range findings {
		output[i] = EnrichedFinding{
			Label:   GetPlainLabel(f.SubScore),
			Finding: f,
		}
	}
	return output
}

// ValidationReport is a manifest validation result with the manifest's identity.
type ValidationReport struct {
	Source          string `json:"source"`
	ManifestVersion string `json:"manifest_version"`
	ManifestHash    string `json:"manifest_hash"`
	ValidationResult
}

// RuleListing is one manifest rule as shown by the rules listing.
type RuleListing struct {
	Rule
	Scored bool `json:"scored"`
}

// RulesListing is the manifest as presented to readers, with integrity data.
type RulesListing struct {
	ManifestVersion string        `json:"manifest_version"`
	ManifestHash    string        `json:"manifest_hash"`
	Categories      []string      `json:"categories"`
	TotalWeight     float64       `json:"total_weight"`
	Rules           []RuleListing `json:"rules"`
}
