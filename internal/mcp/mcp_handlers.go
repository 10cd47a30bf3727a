package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/core/algo"
	"github.com/huangsam/onboard/internal/artifact"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/huangsam/onboard/internal/manifest"
	"github.com/huangsam/onboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	engine *core.Engine
	mgr    contract.StoreManager
}

// cohortScores reads a stored cohort under the engine's manifest and calibration.
func (h *toolHandler) cohortScores(cohort string) ([]float64, error) {
	if h.mgr == nil || h.mgr.GetBenchmarkStore() == nil {
		return nil, fmt.Errorf("benchmark store is not configured")
	}
	return h.mgr.GetBenchmarkStore().CohortScores(cohort, h.engine.Manifest().Hash, h.engine.Calibration().Version)
}

func jsonResult(data any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(data, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleAuditPage(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := request.GetString("measurements", "")
	if strings.TrimSpace(doc) == "" {
		return mcp.NewToolResultError("measurements is required"), nil
	}
	m, err := artifact.DecodeMeasurements(strings.NewReader(doc))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid measurements: %v", err)), nil
	}

	var cohort *core.Cohort
	if name := request.GetString("cohort", ""); name != "" {
		scores, err := h.cohortScores(name)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cohort lookup failed: %v", err)), nil
		}
		cohort = &core.Cohort{Name: name, Scores: scores}
	}

	return jsonResult(h.engine.Audit(m, cohort)), nil
}

func (h *toolHandler) handleValidateManifest(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	doc := request.GetString("manifest", "")
	if strings.TrimSpace(doc) == "" {
		return mcp.NewToolResultError("manifest is required"), nil
	}
	format := manifest.Format(request.GetString("format", string(manifest.JSONFormat)))

	m, err := manifest.Parse(strings.NewReader(doc), format)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("manifest could not be parsed: %v", err)), nil
	}
	loaded, err := manifest.New(m)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("manifest could not be hashed: %v", err)), nil
	}

	return jsonResult(schema.ValidationReport{
		Source:           "inline",
		ManifestVersion:  m.Version,
		ManifestHash:     loaded.Hash,
		ValidationResult: loaded.Validation,
	}), nil
}

func (h *toolHandler) handleRankScore(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	if _, ok := args["score"]; !ok {
		return mcp.NewToolResultError("score is required"), nil
	}
	score := request.GetFloat("score", 0)
	if !(score >= 0 && score <= 100) {
		return mcp.NewToolResultError(fmt.Sprintf("score must be between 0 and 100, got %g", score)), nil
	}

	name := request.GetString("cohort", "")
	scores, err := floatSlice(args["cohort_scores"])
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if scores == nil {
		if name == "" {
			return mcp.NewToolResultError("either cohort_scores or cohort is required"), nil
		}
		if scores, err = h.cohortScores(name); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cohort lookup failed: %v", err)), nil
		}
	}

	ranking := algo.RankScore(score, scores)
	ranking.Cohort = name
	return jsonResult(ranking), nil
}

func (h *toolHandler) handleListRules(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(core.BuildRulesListing(h.engine.Manifest())), nil
}

// floatSlice converts a JSON array argument into scores. A missing argument is nil.
func floatSlice(v any) ([]float64, error) {
	if v == nil {
		return nil, nil
	}
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("cohort_scores must be an array of numbers")
	}
	out := make([]float64, 0, len(items))
	for i, item := range items {
		f, ok := item.(float64)
		if !ok {
			return nil, fmt.Errorf("cohort_scores[%d] is not a number", i)
		}
		out = append(out, f)
	}
	return out, nil
}
