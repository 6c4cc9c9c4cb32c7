// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/repopulse/repopulse/internal/contract"
)

// NewMCPServer initializes and configures the Repopulse MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.HistoryStore, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"Repopulse Health Server",
		version,
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
		version: version,
	}

	// --- 1. Tool: get_health_score ---
	s.AddTool(mcp.NewTool("get_health_score",
		mcp.WithDescription("Compute the 0-100 health score of a project from its git history, code layout, lint findings, and dependencies."),
		mcp.WithString("repo_path", mcp.Description("Path to the project root (defaults to current directory if not specified).")),
		mcp.WithNumber("fail_under", mcp.Description("Pass/fail floor from 0 to 100. When set, the result reports whether the score clears it.")),
	), h.handleGetHealthScore)

	// --- 2. Tool: get_metric_definitions ---
	s.AddTool(mcp.NewTool("get_metric_definitions",
		mcp.WithDescription("List the scored metric catalog with the effective weight each metric carries in the aggregate."),
	), h.handleGetMetricDefinitions)

	// --- 3. Tool: get_score_history ---
	s.AddTool(mcp.NewTool("get_score_history",
		mcp.WithDescription("Return recent scoring runs from the history store, newest first."),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleGetScoreHistory)

	return s
}

// StartMCPServer starts the Repopulse MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.HistoryStore, version string) error {
	s := NewMCPServer(baseCfg, store, version)
	return server.ServeStdio(s)
}
