package manifest

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/onboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rule(id string, weight float64) schema.Rule {
	return schema.Rule{
		ID:          id,
		Category:    "conversion",
		Weight:      schema.W(weight),
		Description: "describes " + id,
		Fix:         "fix " + id,
	}
}

func TestValidate_DefaultManifestIsValid(t *testing.T) {
	l, err := Default()
	require.NoError(t, err)

	assert.True(t, l.Validation.Valid, "errors: %v", l.Validation.Errors)
	assert.Empty(t, l.Validation.Errors)
	assert.Len(t, l.Manifest.Rules, len(schema.AllHeuristics))
	assert.Empty(t, UnscoredRules(l.Manifest))
	assert.Len(t, l.Hash, hashLength)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		rules    []schema.Rule
		contains []string
		count    int
	}{
		{
			name:  "valid",
			rules: []schema.Rule{rule("a", 0.5), rule("b", 0.5)},
			count: 0,
		},
		{
			name:     "duplicate id",
			rules:    []schema.Rule{rule("X", 0.5), rule("X", 0.5)},
			contains: []string{`duplicate rule id "X"`},
			count:    1,
		},
		{
			name:     "every repeat reported",
			rules:    []schema.Rule{rule("X", 0.25), rule("X", 0.25), rule("X", 0.5)},
			contains: []string{`duplicate rule id "X"`},
			count:    2,
		},
		{
			name:     "weights sum to 0.5",
			rules:    []schema.Rule{rule("a", 0.25), rule("b", 0.25)},
			contains: []string{"rule weights sum to 0.5000"},
			count:    1,
		},
		{
			name:     "duplicate and bad sum are two errors",
			rules:    []schema.Rule{rule("X", 0.25), rule("X", 0.25)},
			contains: []string{`duplicate rule id "X"`, "rule weights sum to 0.5000"},
			count:    2,
		},
		{
			name:  "sum within tolerance",
			rules: []schema.Rule{rule("a", 0.5), rule("b", 0.495)},
			count: 0,
		},
		{
			name: "missing fields",
			rules: []schema.Rule{
				rule("a", 1.0),
				{ID: "b", Weight: schema.W(0)},
			},
			contains: []string{"missing required field(s) category, description, fix", `"id":"b"`, `rule "b" has non-positive weight 0`},
			count:    2,
		},
		{
			name: "missing weight",
			rules: []schema.Rule{
				rule("a", 1.0),
				{ID: "b", Category: "c", Description: "d", Fix: "f"},
			},
			contains: []string{"missing required field(s) weight"},
			count:    1,
		},
		{
			name:     "negative weight",
			rules:    []schema.Rule{rule("a", 1.1), rule("b", -0.1)},
			contains: []string{`rule "b" has non-positive weight -0.1`},
			count:    1,
		},
		{
			name: "non-numeric weight",
			rules: []schema.Rule{
				rule("a", 1.0),
				{ID: "b", Category: "c", Weight: schema.Weight{Present: true, Raw: "heavy"}, Description: "d", Fix: "f"},
			},
			contains: []string{`rule "b" has non-numeric weight "heavy"`},
			count:    1,
		},
		{
			name:     "nan weight is excluded from the sum",
			rules:    []schema.Rule{rule("a", 0.5), rule("b", math.NaN())},
			contains: []string{`rule "b" has non-finite weight`, "rule weights sum to 0.5000"},
			count:    2,
		},
		{
			name:     "infinite weight is excluded from the sum",
			rules:    []schema.Rule{rule("a", 1.0), rule("b", math.Inf(1))},
			contains: []string{`rule "b" has non-finite weight`},
			count:    1,
		},
		{
			name: "unknown confidence",
			rules: []schema.Rule{
				{ID: "a", Category: "c", Weight: schema.W(1), Description: "d", Fix: "f", Confidence: "certain"},
			},
			contains: []string{`unknown confidence "certain"`},
			count:    1,
		},
		{
			name:     "empty manifest",
			rules:    nil,
			contains: []string{"rule weights sum to 0.0000"},
			count:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Validate(schema.Manifest{Version: "t", Rules: tt.rules})
			assert.Len(t, result.Errors, tt.count, "errors: %v", result.Errors)
			assert.Equal(t, tt.count == 0, result.Valid)
			joined := strings.Join(result.Errors, "\n")
			for _, want := range tt.contains {
				assert.Contains(t, joined, want)
			}
		})
	}
}

func TestParse_JSONAndYAMLAgree(t *testing.T) {
	jsonDoc := `{
		"version": "2.0.0",
		"updatedAt": "2026-01-02T00:00:00Z",
		"categories": ["conversion"],
		"rules": [{"id": "cta_above_fold", "category": "conversion", "weight": 1, "description": "d", "fix": "f", "confidence": "high"}]
	}`
	yamlDoc := `
version: 2.0.0
updatedAt: 2026-01-02T00:00:00Z
categories: [conversion]
rules:
  - id: cta_above_fold
    category: conversion
    weight: 1
    description: d
    fix: f
    confidence: high
`
	fromJSON, err := Parse(strings.NewReader(jsonDoc), JSONFormat)
	require.NoError(t, err)
	fromYAML, err := Parse(strings.NewReader(yamlDoc), YAMLFormat)
	require.NoError(t, err)

	assert.Equal(t, fromJSON.Version, fromYAML.Version)
	assert.True(t, fromJSON.UpdatedAt.Equal(fromYAML.UpdatedAt))
	assert.Equal(t, fromJSON.Rules, fromYAML.Rules)
}

func TestParse_NonNumericWeightIsReportedNotFatal(t *testing.T) {
	doc := `{"version":"1","rules":[{"id":"a","category":"c","weight":"heavy","description":"d","fix":"f"}]}`
	m, err := Parse(strings.NewReader(doc), JSONFormat)
	require.NoError(t, err)

	result := Validate(m)
	assert.False(t, result.Valid)
	assert.Contains(t, strings.Join(result.Errors, "\n"), "non-numeric weight")
}

func TestNew_NonFiniteYAMLWeightIsReportedNotFatal(t *testing.T) {
	doc := `
version: "1"
rules:
  - {id: cta_above_fold, category: conversion, weight: .nan, description: d, fix: f}
  - {id: social_login, category: friction, weight: .inf, description: d, fix: f}
  - {id: progress_indicator, category: friction, weight: 1.0, description: d, fix: f}
`
	m, err := Parse(strings.NewReader(doc), YAMLFormat)
	require.NoError(t, err)

	l, err := New(m)
	require.NoError(t, err)
	assert.Len(t, l.Hash, hashLength)
	assert.False(t, l.Validation.Valid)

	joined := strings.Join(l.Validation.Errors, "\n")
	assert.Contains(t, joined, `rule "cta_above_fold" has non-finite weight`)
	assert.Contains(t, joined, `rule "social_login" has non-finite weight`)
	assert.NotContains(t, joined, "rule weights sum")
}

func TestParse_Malformed(t *testing.T) {
	_, err := Parse(strings.NewReader("{not json"), JSONFormat)
	assert.Error(t, err)

	_, err = Parse(strings.NewReader("x"), Format("toml"))
	assert.ErrorContains(t, err, "unsupported manifest format")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	yamlPath := filepath.Join(dir, "rules.yml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(`
version: 0.1.0
categories: [friction]
rules:
  - {id: steps_count, category: friction, weight: 0.5, description: d, fix: f}
  - {id: steps_count, category: friction, weight: 0.5, description: d, fix: f}
`), 0o644))

	l, err := Load(yamlPath)
	require.NoError(t, err, "validation failures do not fail the load")
	assert.Equal(t, "0.1.0", l.Manifest.Version)
	assert.False(t, l.Validation.Valid)
	assert.NotEmpty(t, l.Hash)

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	def, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", def.Manifest.Version)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, YAMLFormat, FormatFromPath("a/b.yaml"))
	assert.Equal(t, YAMLFormat, FormatFromPath("B.YML"))
	assert.Equal(t, JSONFormat, FormatFromPath("rules.json"))
	assert.Equal(t, JSONFormat, FormatFromPath("rules"))
}

func TestHash(t *testing.T) {
	a := schema.Manifest{Version: "1", Rules: []schema.Rule{rule("a", 1)}}
	b := schema.Manifest{Version: "1", Rules: []schema.Rule{rule("a", 1)}}
	c := schema.Manifest{Version: "1", Rules: []schema.Rule{rule("a", 0.9)}}

	ha, err := Hash(a)
	require.NoError(t, err)
	hb, err := Hash(b)
	require.NoError(t, err)
	hc, err := Hash(c)
	require.NoError(t, err)

	assert.Equal(t, ha, hb)
	assert.NotEqual(t, ha, hc)
	assert.Len(t, ha, hashLength)
}

func TestUnscoredRules(t *testing.T) {
	m := schema.Manifest{Rules: []schema.Rule{rule("cta_above_fold", 0.5), rule("hero_video", 0.5)}}
	assert.Equal(t, []string{"hero_video"}, UnscoredRules(m))
}

func TestLogIntegrity(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	l, err := New(schema.Manifest{Version: "9", Rules: []schema.Rule{rule("X", 0.2), rule("X", 0.2)}})
	require.NoError(t, err)

	LogIntegrity(logger, l)

	out := buf.String()
	assert.Contains(t, out, "duplicate rule id")
	assert.Contains(t, out, "rule weights sum")
	assert.Contains(t, out, "scores 0")
}
