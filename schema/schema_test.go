package schema

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWeight_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		present bool
		numeric bool
		value   float64
		raw     string
	}{
		{"number", `{"weight": 0.25}`, true, true, 0.25, ""},
		{"integer", `{"weight": 1}`, true, true, 1, ""},
		{"negative", `{"weight": -0.1}`, true, true, -0.1, ""},
		{"null", `{"weight": null}`, false, false, 0, ""},
		{"missing", `{}`, false, false, 0, ""},
		{"string", `{"weight": "heavy"}`, true, false, 0, "heavy"},
		{"bool", `{"weight": true}`, true, false, 0, "true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Rule
			require.NoError(t, json.Unmarshal([]byte(tt.input), &r))
			assert.Equal(t, tt.present, r.Weight.Present)
			assert.Equal(t, tt.numeric, r.Weight.Numeric)
			assert.Equal(t, tt.value, r.Weight.Float())
			assert.Equal(t, tt.raw, r.Weight.Raw)
		})
	}
}

func TestWeight_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		present bool
		numeric bool
		value   float64
	}{
		{"float", "weight: 0.3\n", true, true, 0.3},
		{"int", "weight: 1\n", true, true, 1},
		{"null", "weight: ~\n", false, false, 0},
		{"missing", "id: x\n", false, false, 0},
		{"string", "weight: heavy\n", true, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r Rule
			require.NoError(t, yaml.Unmarshal([]byte(tt.input), &r))
			assert.Equal(t, tt.present, r.Weight.Present)
			assert.Equal(t, tt.numeric, r.Weight.Numeric)
			assert.Equal(t, tt.value, r.Weight.Float())
		})
	}
}

func TestWeight_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(W(0.4))
	require.NoError(t, err)
	assert.JSONEq(t, `0.4`, string(out))

	out, err = json.Marshal(Weight{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))

	out, err = json.Marshal(Weight{Present: true, Raw: "heavy"})
	require.NoError(t, err)
	assert.Equal(t, `"heavy"`, string(out))

	out, err = json.Marshal(W(math.NaN()))
	require.NoError(t, err)
	assert.Equal(t, `"NaN"`, string(out))

	out, err = json.Marshal(W(math.Inf(-1)))
	require.NoError(t, err)
	assert.Equal(t, `"-Inf"`, string(out))
}

func TestWeight_Float_NonFiniteCountsZero(t *testing.T) {
	assert.False(t, W(math.NaN()).Finite())
	assert.False(t, W(math.Inf(1)).Finite())
	assert.True(t, W(0.2).Finite())
	assert.Equal(t, 0.0, W(math.NaN()).Float())
	assert.Equal(t, 0.0, W(math.Inf(1)).Float())
}

func TestTrainingExample_Target(t *testing.T) {
	te := TrainingExample{ExpectedMin: 60, ExpectedMax: 80}
	assert.Equal(t, 70.0, te.Target())
}

func TestMeasurements_OmitsAbsentFields(t *testing.T) {
	m := Measurements{SchemaVersion: MeasurementSchemaVersion, StepsCount: Int(3)}
	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"schema_version":"1","steps_count":3}`, string(out))
}
