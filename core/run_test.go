package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAnalyzer struct {
	name    string
	metrics []schema.Metric
	diags   []schema.Diagnostic
	err     error
	delay   time.Duration
}

func (f *fakeAnalyzer) Name() string { return f.name }

func (f *fakeAnalyzer) Gather(ctx context.Context, _ *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		}
	}
	return f.metrics, f.diags, f.err
}

func runConfig() *contract.Config {
	return &contract.Config{
		Workers:         4,
		AnalyzerTimeout: 5 * time.Second,
		Health:          contract.DefaultHealthConfig(),
	}
}

// TestRunAnalyzersMergeOrder: results come back in analyzer declaration order
// no matter which goroutine finishes first.
func TestRunAnalyzersMergeOrder(t *testing.T) {
	analyzers := []contract.Analyzer{
		&fakeAnalyzer{
			name:    "slowpoke",
			delay:   50 * time.Millisecond,
			metrics: []schema.Metric{{ID: "first.metric", Category: schema.GitCategory, Value: schema.CountValue(1)}},
		},
		&fakeAnalyzer{
			name:    "speedy",
			metrics: []schema.Metric{{ID: "second.metric", Category: schema.CodeCategory, Value: schema.CountValue(2)}},
		},
	}

	metrics, diags := RunAnalyzers(context.Background(), runConfig(), analyzers)

	require.Len(t, metrics, 2)
	assert.Equal(t, "first.metric", metrics[0].ID)
	assert.Equal(t, "second.metric", metrics[1].ID)
	assert.Empty(t, diags)
}

// TestRunAnalyzersFailureBecomesWarning: an analyzer error is downgraded to a
// warning diagnostic and its partial metrics survive.
func TestRunAnalyzersFailureBecomesWarning(t *testing.T) {
	analyzers := []contract.Analyzer{
		&fakeAnalyzer{
			name:    "flaky",
			metrics: []schema.Metric{{ID: "partial.metric", Category: schema.LintCategory, Value: schema.CountValue(7)}},
			err:     errors.New("tool not on PATH"),
		},
		&fakeAnalyzer{
			name:    "stable",
			metrics: []schema.Metric{{ID: "stable.metric", Category: schema.GitCategory, Value: schema.CountValue(1)}},
		},
	}

	metrics, diags := RunAnalyzers(context.Background(), runConfig(), analyzers)

	require.Len(t, metrics, 2)
	assert.Equal(t, "partial.metric", metrics[0].ID)

	require.Len(t, diags, 1)
	assert.Equal(t, schema.WarningLevel, diags[0].Level)
	assert.Contains(t, diags[0].Message, "flaky analyzer failed")
	assert.Contains(t, diags[0].Message, "tool not on PATH")
}

// TestRunAnalyzersTimeout: a hung analyzer is cut off at the per-analyzer
// timeout and reported as a warning, without stalling the run.
func TestRunAnalyzersTimeout(t *testing.T) {
	cfg := runConfig()
	cfg.AnalyzerTimeout = 20 * time.Millisecond

	analyzers := []contract.Analyzer{
		&fakeAnalyzer{name: "hung", delay: 2 * time.Second},
		&fakeAnalyzer{
			name:    "prompt",
			metrics: []schema.Metric{{ID: "ok.metric", Category: schema.CodeCategory, Value: schema.CountValue(1)}},
		},
	}

	start := time.Now()
	metrics, diags := RunAnalyzers(context.Background(), cfg, analyzers)
	assert.Less(t, time.Since(start), time.Second)

	require.Len(t, metrics, 1)
	assert.Equal(t, "ok.metric", metrics[0].ID)

	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "hung analyzer failed")
}

// TestRunAnalyzersDropsMalformedMetrics: a metric with a missing id or an
// unknown category is excluded from scoring and surfaced as a warning.
func TestRunAnalyzersDropsMalformedMetrics(t *testing.T) {
	analyzers := []contract.Analyzer{
		&fakeAnalyzer{
			name: "sloppy",
			metrics: []schema.Metric{
				{ID: "good.metric", Category: schema.GitCategory, Value: schema.CountValue(1)},
				{ID: "bad.metric", Category: schema.MetricCategory("weather"), Value: schema.CountValue(2)},
				{Category: schema.GitCategory, Value: schema.CountValue(3)},
			},
		},
	}

	metrics, diags := RunAnalyzers(context.Background(), runConfig(), analyzers)

	require.Len(t, metrics, 1)
	assert.Equal(t, "good.metric", metrics[0].ID)

	require.Len(t, diags, 2)
	assert.Equal(t, schema.WarningLevel, diags[0].Level)
	assert.Contains(t, diags[0].Message, `unknown metric category "weather"`)
	assert.Contains(t, diags[1].Message, "metric id is empty")
}

// TestRunAnalyzersEmptySet: no analyzers means no metrics and no diagnostics.
func TestRunAnalyzersEmptySet(t *testing.T) {
	metrics, diags := RunAnalyzers(context.Background(), runConfig(), nil)
	assert.Empty(t, metrics)
	assert.Empty(t, diags)
}

// TestRunAnalyzersKeepsOwnDiagnostics: diagnostics emitted by a successful
// analyzer pass through untouched.
func TestRunAnalyzersKeepsOwnDiagnostics(t *testing.T) {
	analyzers := []contract.Analyzer{
		&fakeAnalyzer{
			name:    "chatty",
			metrics: []schema.Metric{{ID: "m", Category: schema.GitCategory, Value: schema.CountValue(1)}},
			diags: []schema.Diagnostic{
				{Level: schema.InfoLevel, Message: "shallow clone detected"},
			},
		},
	}

	_, diags := RunAnalyzers(context.Background(), runConfig(), analyzers)
	require.Len(t, diags, 1)
	assert.Equal(t, "shallow clone detected", diags[0].Message)
}
