package core

import (
	"testing"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
	"github.com/stretchr/testify/assert"
)

// TestWeightFor pins the id → weight table, including the half-weight sharing
// rule for refinement metrics.
func TestWeightFor(t *testing.T) {
	w := contract.Weights{
		GitRecency:      0.20,
		GitContributors: 0.10,
		CodeLOC:         0.20,
		LintWarnings:    0.15,
		LintErrors:      0.20,
		DepsOutdated:    0.15,
	}

	tests := []struct {
		id       string
		expected float64
	}{
		{schema.MetricGitRecency, 0.20},
		{schema.MetricGitContributors, 0.10},
		{schema.MetricGitMessageQuality, 0.10},  // half of gitRecency
		{schema.MetricGitConventional, 0.10},    // half of gitRecency
		{schema.MetricCodeCommentsDensity, 0.10}, // half of codeLOC
		{schema.MetricCodeFilesAvgSize, 0.10},    // half of codeLOC
		{schema.MetricLintWarnings, 0.15},
		{schema.MetricLintErrors, 0.20},
		{schema.MetricDepsOutdated, 0.15},
		{schema.MetricGitBranchCount, 0},     // registered curve, no weight
		{schema.MetricGitMergePercentage, 0}, // registered curve, no weight
		{schema.MetricTestCoverage, 0},       // registered curve, no weight
		{schema.MetricDeadCode, 0},
		{"made.up.metric", 0},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			assert.InDelta(t, tt.expected, WeightFor(tt.id, w), 1e-12)
		})
	}
}

// TestWeightedMetricIDsAllWeighted ensures every listed id resolves to a
// positive weight under defaults.
func TestWeightedMetricIDsAllWeighted(t *testing.T) {
	w := contract.DefaultHealthConfig().Weights
	for _, id := range WeightedMetricIDs() {
		assert.Greater(t, WeightFor(id, w), 0.0, "id=%s", id)
	}
}

// TestRegisteredMetricIDsHaveNormalizers keeps the registry and display list
// in sync.
func TestRegisteredMetricIDsHaveNormalizers(t *testing.T) {
	for _, id := range RegisteredMetricIDs() {
		_, ok := normalizers[id]
		assert.True(t, ok, "id %s listed but has no normalizer", id)
	}
	assert.Equal(t, len(normalizers), len(RegisteredMetricIDs()))
}
