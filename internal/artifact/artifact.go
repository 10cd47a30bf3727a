// Package artifact reads and writes the files that cross the scoring boundary:
// probe measurements, calibration parameters, labeled training sets and cohort samples.
package artifact

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/huangsam/onboard/internal/parquet"
	"github.com/huangsam/onboard/schema"
)

// ErrMeasurementShape marks measurement documents that do not match the
// versioned record: unknown fields, wrong types or a schema version mismatch.
var ErrMeasurementShape = errors.New("measurement shape")

// DecodeMeasurements decodes one measurement document strictly.
// Unknown fields are rejected and the schema version must match.
// A missing schema version is accepted as the current one.
func DecodeMeasurements(r io.Reader) (schema.Measurements, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var m schema.Measurements
	if err := dec.Decode(&m); err != nil {
		return schema.Measurements{}, fmt.Errorf("%w: %v", ErrMeasurementShape, err)
	}
	if dec.More() {
		return schema.Measurements{}, fmt.Errorf("%w: trailing data after measurement object", ErrMeasurementShape)
	}
	if m.SchemaVersion == "" {
		m.SchemaVersion = schema.MeasurementSchemaVersion
	}
	if m.SchemaVersion != schema.MeasurementSchemaVersion {
		return schema.Measurements{}, fmt.Errorf("%w: schema version %q, expected %q",
			ErrMeasurementShape, m.SchemaVersion, schema.MeasurementSchemaVersion)
	}
	return m, nil
}

// LoadMeasurements reads a measurement document from path, or stdin when path is "-".
func LoadMeasurements(path string) (schema.Measurements, error) {
	if path == "-" {
		return DecodeMeasurements(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return schema.Measurements{}, fmt.Errorf("open measurements: %w", err)
	}
	defer func() { _ = f.Close() }()
	return DecodeMeasurements(f)
}

// LoadCalibration reads a calibration artifact. An empty path means the identity transform.
func LoadCalibration(path string) (schema.CalibrationParams, error) {
	if path == "" {
		return schema.IdentityCalibration, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.CalibrationParams{}, fmt.Errorf("read calibration: %w", err)
	}
	var params schema.CalibrationParams
	if err := json.Unmarshal(data, &params); err != nil {
		return schema.CalibrationParams{}, fmt.Errorf("decode calibration %s: %w", path, err)
	}
	if math.IsNaN(params.A) || math.IsNaN(params.B) || math.IsInf(params.A, 0) || math.IsInf(params.B, 0) {
		return schema.CalibrationParams{}, fmt.Errorf("calibration %s has non-finite coefficients", path)
	}
	return params, nil
}

// SaveCalibration writes a calibration artifact as indented JSON.
// An existing file is replaced; artifacts are versioned by their Version field.
func SaveCalibration(path string, params schema.CalibrationParams) error {
	data, err := json.MarshalIndent(params, "", "  ")
	if err != nil {
		return fmt.Errorf("encode calibration: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write calibration: %w", err)
	}
	return nil
}

// LoadTrainingSet reads a JSON array of labeled examples. Every example's
// measurements go through the same strict decode as a single audit.
func LoadTrainingSet(path string) ([]schema.TrainingExample, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read training set: %w", err)
	}

	var raw []struct {
		Name         string          `json:"name"`
		Measurements json.RawMessage `json:"measurements"`
		ExpectedMin  float64         `json:"expected_min"`
		ExpectedMax  float64         `json:"expected_max"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode training set %s: %w", path, err)
	}

	examples := make([]schema.TrainingExample, 0, len(raw))
	for i, r := range raw {
		name := r.Name
		if name == "" {
			name = fmt.Sprintf("example-%d", i+1)
		}
		if r.ExpectedMin > r.ExpectedMax {
			return nil, fmt.Errorf("training example %s: expected_min %.1f exceeds expected_max %.1f", name, r.ExpectedMin, r.ExpectedMax)
		}
		m, err := DecodeMeasurements(bytes.NewReader(r.Measurements))
		if err != nil {
			return nil, fmt.Errorf("training example %s: %w", name, err)
		}
		examples = append(examples, schema.TrainingExample{
			Name:         name,
			Measurements: m,
			ExpectedMin:  r.ExpectedMin,
			ExpectedMax:  r.ExpectedMax,
		})
	}
	return examples, nil
}

// LoadCohort reads a benchmark sample. The format follows the extension:
// .csv needs a "score" column, .parquet is a benchmark export, and anything
// else is JSON holding either plain numbers or objects with a "score" field.
func LoadCohort(path string) ([]float64, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open cohort: %w", err)
		}
		defer func() { _ = f.Close() }()
		return DecodeCohortCSV(f)
	case ".parquet":
		rows, err := parquet.ReadSubmissionsParquet(path)
		if err != nil {
			return nil, err
		}
		scores := make([]float64, len(rows))
		for i, row := range rows {
			if !finite(row.CalibratedScore) {
				return nil, fmt.Errorf("cohort row %d: invalid score %g", i, row.CalibratedScore)
			}
			scores[i] = row.CalibratedScore
		}
		return scores, nil
	default:
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read cohort: %w", err)
		}
		return DecodeCohortJSON(data)
	}
}

// DecodeCohortJSON accepts [650, 720] or [{"score": 650}, {"score": 720}].
func DecodeCohortJSON(data []byte) ([]float64, error) {
	var plain []float64
	if err := json.Unmarshal(data, &plain); err == nil {
		return plain, nil
	}
	var records []struct {
		Score *float64 `json:"score"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode cohort: %w", err)
	}
	scores := make([]float64, 0, len(records))
	for i, r := range records {
		if r.Score == nil {
			return nil, fmt.Errorf("cohort record %d has no score", i)
		}
		scores = append(scores, *r.Score)
	}
	return scores, nil
}

// DecodeCohortCSV reads the "score" column of a CSV document with a header row.
func DecodeCohortCSV(r io.Reader) ([]float64, error) {
	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read cohort header: %w", err)
	}
	col := -1
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), "score") {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, fmt.Errorf("cohort csv has no score column")
	}

	var scores []float64
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read cohort line %d: %w", line, err)
		}
		// ParseFloat accepts NaN and Inf, which would poison the percentiles
		v, err := strconv.ParseFloat(strings.TrimSpace(record[col]), 64)
		if err != nil || !finite(v) {
			return nil, fmt.Errorf("cohort line %d: invalid score %q", line, record[col])
		}
		scores = append(scores, v)
	}
	return scores, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
