// Package schema has models and constants shared by every part of onboard.
package schema

import (
	"encoding/json"
	"math"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Rule is one scored onboarding heuristic with its weight and remediation text.
type Rule struct {
	ID          string     `json:"id" yaml:"id"`
	Category    string     `json:"category" yaml:"category"`
	Weight      Weight     `json:"weight" yaml:"weight"`
	Description string     `json:"description" yaml:"description"`
	Fix         string     `json:"fix" yaml:"fix"`
	Confidence  Confidence `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Manifest is the versioned catalog of all rules plus metadata.
// A manifest is immutable once loaded; a new version replaces it wholesale.
type Manifest struct {
	Version    string    `json:"version" yaml:"version"`
	UpdatedAt  time.Time `json:"updatedAt" yaml:"updatedAt"`
	Categories []string  `json:"categories" yaml:"categories"`
	Rules      []Rule    `json:"rules" yaml:"rules"`
}

// ValidationResult carries every manifest integrity problem found.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// Weight is a rule weight as it appeared in the manifest document.
// Manifests are authored by hand, so a weight may be missing or not a number;
// those cases are kept around for validation to report instead of failing the decode.
type Weight struct {
	Value   float64
	Present bool
	Numeric bool
	Raw     string
}

// W builds a present, numeric weight.
func W(v float64) Weight {
	return Weight{Value: v, Present: true, Numeric: true}
}

// Finite reports whether the weight is a present number other than NaN or ±Inf.
func (w Weight) Finite() bool {
	return w.Present && w.Numeric && !math.IsNaN(w.Value) && !math.IsInf(w.Value, 0)
}

// Float returns the numeric value, or 0 for missing, non-numeric and non-finite weights.
func (w Weight) Float() float64 {
	if !w.Finite() {
		return 0
	}
	return w.Value
}

// MarshalJSON implements json.Marshaler.
func (w Weight) MarshalJSON() ([]byte, error) {
	switch {
	case !w.Present:
		return []byte("null"), nil
	case !w.Numeric:
		return json.Marshal(w.Raw)
	case !w.Finite():
		// JSON has no NaN or Inf literal.
		return json.Marshal(strconv.FormatFloat(w.Value, 'g', -1, 64))
	default:
		return json.Marshal(w.Value)
	}
}

// UnmarshalJSON implements json.Unmarshaler.
func (w *Weight) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*w = Weight{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*w = W(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		s = string(data)
	}
	*w = Weight{Present: true, Raw: s}
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (w *Weight) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		*w = Weight{}
		return nil
	}
	if node.Kind == yaml.ScalarNode && (node.Tag == "!!int" || node.Tag == "!!float") {
		var f float64
		if err := node.Decode(&f); err == nil {
			*w = W(f)
			return nil
		}
	}
	*w = Weight{Present: true, Raw: node.Value}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (w Weight) MarshalYAML() (any, error) {
	switch {
	case !w.Present:
		return nil, nil
	case !w.Numeric:
		return w.Raw, nil
	default:
		return w.Value, nil
	}
}

// SubScore is a single rule's 0-100 contribution.
type SubScore struct {
	RuleID string  `json:"rule_id"`
	Value  float64 `json:"value"`
}

// Finding is a rule result packaged with remediation guidance, ranked by severity.
type Finding struct {
	RuleID       string  `json:"rule_id"`
	Category     string  `json:"category"`
	Weight       float64 `json:"weight"`
	SubScore     float64 `json:"sub_score"`
	Fix          string  `json:"fix"`
	SeverityRank int     `json:"severity_rank"`
}

// ScoreReport is the result of one audit. It is owned by the caller once returned.
type ScoreReport struct {
	Raw                float64    `json:"raw"`
	Calibrated         float64    `json:"calibrated"`
	SubScores          []SubScore `json:"sub_scores"`
	Findings           []Finding  `json:"findings"`
	ManifestVersion    string     `json:"manifest_version,omitempty"`
	ManifestHash       string     `json:"manifest_hash,omitempty"`
	CalibrationVersion string     `json:"calibration_version,omitempty"`
}

// BenchmarkRanking places one score within a cohort.
type BenchmarkRanking struct {
	Cohort string  `json:"cohort,omitempty"`
	Score  float64 `json:"score"`
	Rank   int     `json:"rank"`
	Of     int     `json:"of"`
	P25    float64 `json:"p25"`
	P50    float64 `json:"p50"`
	P75    float64 `json:"p75"`
}

// AuditResult is a score report with its optional benchmark placement.
type AuditResult struct {
	Label   string            `json:"label"`
	Report  ScoreReport       `json:"report"`
	Ranking *BenchmarkRanking `json:"ranking,omitempty"`
}
