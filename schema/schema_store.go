package schema

import "time"

// BenchmarkSubmission represents a row from the onboard_benchmark_submissions table.
type BenchmarkSubmission struct {
	SubmissionID       int64     `json:"submission_id"`
	Cohort             string    `json:"cohort"`
	PageURL            string    `json:"page_url"`
	RawScore           float64   `json:"raw_score"`
	CalibratedScore    float64   `json:"calibrated_score"`
	ManifestVersion    string    `json:"manifest_version"`
	ManifestHash       string    `json:"manifest_hash"`
	CalibrationVersion string    `json:"calibration_version"`
	SubmittedAt        time.Time `json:"submitted_at"`
}

// StoreStatus represents the status of the benchmark store.
type StoreStatus struct {
	Backend              string         `json:"backend"`
	Connected            bool           `json:"connected"`
	TotalSubmissions     int            `json:"total_submissions"`
	Cohorts              map[string]int `json:"cohorts"`
	LastSubmissionTime   time.Time      `json:"last_submission_time"`
	OldestSubmissionTime time.Time      `json:"oldest_submission_time"`
}
