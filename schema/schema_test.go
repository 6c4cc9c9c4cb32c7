package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestMetricValueVariants ensures accessors only succeed on the active variant.
func TestMetricValueVariants(t *testing.T) {
	v := CountValue(7)

	c, ok := v.AsCount()
	assert.True(t, ok)
	assert.Equal(t, int64(7), c)

	_, ok = v.AsNumber()
	assert.False(t, ok)
	_, ok = v.AsRatio()
	assert.False(t, ok)
	_, ok = v.AsLabel()
	assert.False(t, ok)
	_, ok = v.AsDuration()
	assert.False(t, ok)

	r, ok := RatioValue(0.25).AsRatio()
	assert.True(t, ok)
	assert.Equal(t, 0.25, r)

	s, ok := LabelValue("go").AsLabel()
	assert.True(t, ok)
	assert.Equal(t, "go", s)

	d, ok := DurationValue(1.5).AsDuration()
	assert.True(t, ok)
	assert.Equal(t, 1.5, d)
}

// TestMetricValidate covers the well-formedness rules metric producers must meet.
func TestMetricValidate(t *testing.T) {
	ok := Metric{ID: MetricGitRecency, Category: GitCategory, Value: CountValue(1)}
	assert.NoError(t, ok.Validate())

	noID := Metric{Category: GitCategory, Value: CountValue(1)}
	assert.ErrorContains(t, noID.Validate(), "metric id is empty")

	badCategory := Metric{ID: "x", Category: MetricCategory("weather"), Value: CountValue(1)}
	assert.ErrorContains(t, badCategory.Validate(), `unknown metric category "weather"`)
}

// TestMetricWithScore verifies the enrichment copy leaves the original untouched.
func TestMetricWithScore(t *testing.T) {
	m := Metric{
		ID:       MetricLintWarnings,
		Title:    "Lint warnings",
		Category: LintCategory,
		Value:    CountValue(3),
		Details:  map[string]string{"tool": "go vet"},
	}

	enriched := m.WithScore(0.9)

	assert.Nil(t, m.Score)
	if assert.NotNil(t, enriched.Score) {
		assert.Equal(t, 0.9, *enriched.Score)
	}

	// The details map must be a copy, not shared state.
	enriched.Details["tool"] = "staticcheck"
	assert.Equal(t, "go vet", m.Details["tool"])
}
