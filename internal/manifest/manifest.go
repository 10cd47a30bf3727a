// Package manifest loads, validates and identifies rule manifests.
package manifest

import (
	"bytes"
	"crypto/sha256"
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/schema"
	"gopkg.in/yaml.v3"
)

//go:embed default_manifest.json
var defaultManifestJSON []byte

// hashLength is the number of hex characters kept from the SHA-256 digest.
const hashLength = 16

// Format is the encoding of a manifest document.
type Format string

// Supported manifest formats.
const (
	JSONFormat Format = "json"
	YAMLFormat Format = "yaml"
)

// Loaded is a manifest together with its identity and integrity report.
// It is built once at process start and passed to whatever scores against it.
type Loaded struct {
	Manifest   schema.Manifest
	Hash       string
	Validation schema.ValidationResult
}

// New validates and hashes a manifest.
func New(m schema.Manifest) (Loaded, error) {
	hash, err := Hash(m)
	if err != nil {
		return Loaded{}, err
	}
	return Loaded{Manifest: m, Hash: hash, Validation: Validate(m)}, nil
}

// Default returns the manifest embedded in the binary.
func Default() (Loaded, error) {
	m, err := Parse(bytes.NewReader(defaultManifestJSON), JSONFormat)
	if err != nil {
		return Loaded{}, fmt.Errorf("default manifest: %w", err)
	}
	return New(m)
}

// Load reads a manifest from path. An empty path means the embedded default.
// The format follows the file extension; anything other than .yaml or .yml is JSON.
func Load(path string) (Loaded, error) {
	if path == "" {
		return Default()
	}
	f, err := os.Open(path)
	if err != nil {
		return Loaded{}, fmt.Errorf("open manifest: %w", err)
	}
	defer func() { _ = f.Close() }()

	m, err := Parse(f, FormatFromPath(path))
	if err != nil {
		return Loaded{}, fmt.Errorf("manifest %s: %w", path, err)
	}
	return New(m)
}

// FormatFromPath picks a manifest format from a file name.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAMLFormat
	default:
		return JSONFormat
	}
}

// Parse decodes a manifest document. Structural problems such as a missing or
// non-numeric weight do not fail the decode; Validate reports them.
func Parse(r io.Reader, format Format) (schema.Manifest, error) {
	var m schema.Manifest
	switch format {
	case YAMLFormat:
		if err := yaml.NewDecoder(r).Decode(&m); err != nil {
			return schema.Manifest{}, fmt.Errorf("decode yaml: %w", err)
		}
	case JSONFormat:
		if err := json.NewDecoder(r).Decode(&m); err != nil {
			return schema.Manifest{}, fmt.Errorf("decode json: %w", err)
		}
	default:
		return schema.Manifest{}, fmt.Errorf("unsupported manifest format %q", format)
	}
	return m, nil
}

// Validate checks the structural integrity of a manifest. Every check runs and
// every problem is collected; nothing short-circuits.
func Validate(m schema.Manifest) schema.ValidationResult {
	var errs []string

	seen := make(map[string]struct{}, len(m.Rules))
	for _, r := range m.Rules {
		if r.ID == "" {
			continue
		}
		if _, ok := seen[r.ID]; ok {
			errs = append(errs, fmt.Sprintf("duplicate rule id %q", r.ID))
			continue
		}
		seen[r.ID] = struct{}{}
	}

	var sum float64
	for _, r := range m.Rules {
		sum += r.Weight.Float()
	}
	if math.Abs(sum-schema.WeightSumTarget) > schema.WeightSumTolerance {
		errs = append(errs, fmt.Sprintf("rule weights sum to %.4f, expected %.1f (tolerance %.2f)",
			sum, schema.WeightSumTarget, schema.WeightSumTolerance))
	}

	for _, r := range m.Rules {
		if missing := missingFields(r); len(missing) > 0 {
			errs = append(errs, fmt.Sprintf("rule missing required field(s) %s: %s",
				strings.Join(missing, ", "), serializeRule(r)))
		}
		if msg := weightProblem(r); msg != "" {
			errs = append(errs, msg)
		}
		if r.Confidence != "" {
			if _, ok := schema.ValidConfidences[r.Confidence]; !ok {
				errs = append(errs, fmt.Sprintf("rule %q has unknown confidence %q", r.ID, r.Confidence))
			}
		}
	}

	return schema.ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

func missingFields(r schema.Rule) []string {
	var missing []string
	if strings.TrimSpace(r.ID) == "" {
		missing = append(missing, "id")
	}
	if strings.TrimSpace(r.Category) == "" {
		missing = append(missing, "category")
	}
	if !r.Weight.Present {
		missing = append(missing, "weight")
	}
	if strings.TrimSpace(r.Description) == "" {
		missing = append(missing, "description")
	}
	if strings.TrimSpace(r.Fix) == "" {
		missing = append(missing, "fix")
	}
	return missing
}

// weightProblem describes a present weight that is not a positive number.
// A missing weight is reported by missingFields instead.
func weightProblem(r schema.Rule) string {
	w := r.Weight
	switch {
	case !w.Present:
		return ""
	case !w.Numeric:
		return fmt.Sprintf("rule %q has non-numeric weight %q", r.ID, w.Raw)
	case math.IsNaN(w.Value) || math.IsInf(w.Value, 0):
		return fmt.Sprintf("rule %q has non-finite weight", r.ID)
	case w.Value <= 0:
		return fmt.Sprintf("rule %q has non-positive weight %g", r.ID, w.Value)
	}
	return ""
}

func serializeRule(r schema.Rule) string {
	b, err := json.Marshal(r)
	if err != nil {
		return fmt.Sprintf("%+v", r)
	}
	return string(b)
}

// Hash returns the manifest identity: the leading hex characters of the SHA-256
// of its JSON encoding. Scores computed under different hashes are not comparable.
func Hash(m schema.Manifest) (string, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode manifest: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])[:hashLength], nil
}

// UnscoredRules lists rule ids that have no sub-score function and always score 0.
func UnscoredRules(m schema.Manifest) []string {
	var ids []string
	for _, r := range m.Rules {
		if !algo.HasSubScore(r.ID) {
			ids = append(ids, r.ID)
		}
	}
	return ids
}

// LogIntegrity writes one warning per validation error and per unscored rule.
func LogIntegrity(logger *slog.Logger, l Loaded) {
	for _, e := range l.Validation.Errors {
		logger.Warn("manifest integrity", "version", l.Manifest.Version, "error", e)
	}
	for _, id := range UnscoredRules(l.Manifest) {
		logger.Warn("rule has no sub-score function and scores 0", "rule", id)
	}
}
