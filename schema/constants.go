package schema

// Custom string types for type safety.
type (
	// HeuristicName identifies a probe measurement that a rule scores.
	HeuristicName string

	// Confidence represents how much trust a rule's heuristic deserves.
	Confidence string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for benchmark storage.
	DatabaseBackend string
)

// MeasurementSchemaVersion is the version of the Measurements record that the
// sub-score functions are keyed to. It moves together with the default manifest.
const MeasurementSchemaVersion = "1"

// Heuristic names produced by the page probes.
const (
	CTAAboveFold      HeuristicName = "cta_above_fold"
	FocusVisible      HeuristicName = "focus_visible"
	ResponsiveLayout  HeuristicName = "responsive_layout"
	ProgressIndicator HeuristicName = "progress_indicator"
	StepsCount        HeuristicName = "steps_count"
	FormFieldCount    HeuristicName = "form_field_count"
	LCPTiming         HeuristicName = "lcp_ms"
	CopyClarity       HeuristicName = "copy_clarity"
)

// AllHeuristics lists every heuristic with a sub-score function, in display order.
var AllHeuristics = []HeuristicName{
	CTAAboveFold,
	StepsCount,
	FormFieldCount,
	ProgressIndicator,
	CopyClarity,
	FocusVisible,
	ResponsiveLayout,
	LCPTiming,
}

// Rule confidence levels.
const (
	LowConfidence    Confidence = "low"
	MediumConfidence Confidence = "medium"
	HighConfidence   Confidence = "high"
)

// ValidConfidences lists all valid confidence levels.
var ValidConfidences = map[Confidence]struct{}{
	LowConfidence:    {},
	MediumConfidence: {},
	HighConfidence:   {},
}

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All benchmark backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid benchmark backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// Tolerances used by manifest validation.
const (
	WeightSumTarget    = 1.0
	WeightSumTolerance = 0.01
)
