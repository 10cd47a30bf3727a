package schema

// Measurements is the closed record of probe output for one page.
// Every heuristic is optional; a nil field means the probe did not report it.
type Measurements struct {
	SchemaVersion     string     `json:"schema_version"`
	CTAAboveFold      *bool      `json:"cta_above_fold,omitempty"`
	FocusVisible      *bool      `json:"focus_visible,omitempty"`
	ResponsiveLayout  *bool      `json:"responsive_layout,omitempty"`
	ProgressIndicator *bool      `json:"progress_indicator,omitempty"`
	StepsCount        *int       `json:"steps_count,omitempty"`
	FormFieldCount    *int       `json:"form_field_count,omitempty"`
	LCPMillis         *float64   `json:"lcp_ms,omitempty"`
	Copy              *CopyStats `json:"copy,omitempty"`
}

// CopyStats summarizes the onboarding copy extracted from the page.
type CopyStats struct {
	AvgSentenceLength float64 `json:"avg_sentence_length"`
	JargonCount       int     `json:"jargon_count"`
	PassiveRatio      float64 `json:"passive_ratio"`
}

// Bool returns a pointer to b, for building measurements in code.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n.
func Int(n int) *int { return &n }

// Float returns a pointer to f.
func Float(f float64) *float64 { return &f }
