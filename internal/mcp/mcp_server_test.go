package mcp_test

import (
	"context"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/repopulse/repopulse/internal/contract"
	mcp_internal "github.com/repopulse/repopulse/internal/mcp"
	"github.com/repopulse/repopulse/schema"
)

func baseConfig(root string) *contract.Config {
	return &contract.Config{
		ProjectRoot:     root,
		Output:          schema.JSONOut,
		Precision:       2,
		Workers:         4,
		AnalyzerTimeout: 30 * time.Second,
		Health:          contract.DefaultHealthConfig(),
	}
}

func TestMCPServerToolRegistration(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(t.TempDir()), nil, "test")

	for _, name := range []string{"get_health_score", "get_metric_definitions", "get_score_history"} {
		assert.NotNil(t, s.GetTool(name), "Tool %s should exist", name)
	}
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(t.TempDir()), nil, "test")
	ctx := context.Background()

	t.Run("get_health_score invalid repo_path", func(t *testing.T) {
		tool := s.GetTool("get_health_score")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_health_score",
				Arguments: map[string]any{
					"repo_path": "/definitely/not/a/real/path",
				},
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "invalid repo_path")
	})

	t.Run("get_health_score fail_under out of range", func(t *testing.T) {
		tool := s.GetTool("get_health_score")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name: "get_health_score",
				Arguments: map[string]any{
					"fail_under": 150.0,
				},
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "fail_under must be between 0 and 100")
	})

	t.Run("get_score_history without store", func(t *testing.T) {
		tool := s.GetTool("get_score_history")
		require.NotNil(t, tool)

		req := mcp.CallToolRequest{
			Params: mcp.CallToolParams{
				Name:      "get_score_history",
				Arguments: map[string]any{},
			},
		}
		res, err := tool.Handler(ctx, req)
		require.NoError(t, err)
		assert.True(t, res.IsError)
		assert.Contains(t, res.Content[0].(mcp.TextContent).Text, "score history tracking is not enabled")
	})
}

func TestMCPServerMetricDefinitions(t *testing.T) {
	s := mcp_internal.NewMCPServer(baseConfig(t.TempDir()), nil, "test")

	tool := s.GetTool("get_metric_definitions")
	require.NotNil(t, tool)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "get_metric_definitions",
			Arguments: map[string]any{},
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.Contains(t, res.Content[0].(mcp.TextContent).Text, schema.MetricGitRecency)
}
