package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/analyzer"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/render"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.HistoryStore
	version string
}

func (h *toolHandler) handleGetHealthScore(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("repo_path", ""); p != "" {
		cfg.ProjectRoot = p
	}
	if f := request.GetInt("fail_under", -1); f >= 0 {
		if f > 100 {
			return mcp.NewToolResultError("fail_under must be between 0 and 100"), nil
		}
		cfg.FailUnder = f
	}

	root, err := contract.ResolveProjectRoot(cfg.ProjectRoot)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repo_path: %v", err)), nil
	}
	cfg.ProjectRoot = root

	report, err := core.ExecuteHealthScore(ctx, cfg, &core.RunOptions{
		Analyzers:    analyzer.DefaultAnalyzers(cfg),
		Store:        h.store,
		ProjectTypes: analyzer.DetectProjectTypes(root),
		ToolName:     "repopulse",
		ToolVersion:  h.version,
	})
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("analysis failed: %v", err)), nil
	}

	result := struct {
		Report any  `json:"report"`
		Passed bool `json:"passed"`
	}{Report: report, Passed: true}
	if cfg.FailUnder > 0 {
		result.Passed = core.EvaluatePolicy(report, cfg.FailUnder) == nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetricDefinitions(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	defs := render.BuildMetricDefinitions(h.baseCfg.Health)
	jsonData, _ := json.MarshalIndent(defs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScoreHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if h.store == nil {
		return mcp.NewToolResultError("score history tracking is not enabled"), nil
	}

	limit := request.GetInt("limit", 20)
	if limit <= 0 {
		limit = 20
	}

	runs, err := h.store.RecentRuns(limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to read score history: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(runs, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
