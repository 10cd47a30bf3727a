// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/onboard/core"
	"github.com/huangsam/onboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the onboard MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(engine *core.Engine, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Onboard Audit Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		engine: engine,
		mgr:    mgr,
	}

	// --- 1. Tool: audit_page ---
	s.AddTool(mcp.NewTool("audit_page",
		mcp.WithDescription("Score one onboarding page from its probe measurements and list findings worst first."),
		mcp.WithString("measurements", mcp.Description("Measurement document as a JSON object string."), mcp.Required()),
		mcp.WithString("cohort", mcp.Description("Benchmark cohort to rank the score against (needs a benchmark backend).")),
	), h.handleAuditPage)

	// --- 2. Tool: validate_manifest ---
	s.AddTool(mcp.NewTool("validate_manifest",
		mcp.WithDescription("Check a rule manifest for duplicate ids, bad weights and missing fields."),
		mcp.WithString("manifest", mcp.Description("The manifest document."), mcp.Required()),
		mcp.WithString("format", mcp.Description("Document format. Defaults to 'json'."), mcp.Enum("json", "yaml")),
	), h.handleValidateManifest)

	// --- 3. Tool: rank_score ---
	s.AddTool(mcp.NewTool("rank_score",
		mcp.WithDescription("Rank a calibrated score within a cohort and report the cohort quartiles."),
		mcp.WithNumber("score", mcp.Description("Calibrated score between 0 and 100."), mcp.Required()),
		mcp.WithArray("cohort_scores", mcp.Description("Cohort scores to rank against."), mcp.Items(map[string]any{"type": "number"})),
		mcp.WithString("cohort", mcp.Description("Stored cohort to rank against when cohort_scores is not given.")),
	), h.handleRankScore)

	// --- 4. Tool: list_rules ---
	s.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List the rules, weights and categories of the active manifest."),
	), h.handleListRules)

	return s
}

// StartMCPServer starts the onboard MCP server on stdio.
func StartMCPServer(_ context.Context, engine *core.Engine, mgr contract.StoreManager) error {
	s := NewMCPServer(engine, mgr)
	return server.ServeStdio(s)
}
