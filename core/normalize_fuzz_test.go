package core

import (
	"testing"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// FuzzNormalize fuzzes Normalize with random metric ids, value kinds, and
// payloads. The invariant: the result is always in [0,1], never NaN, never a
// panic, whatever the input.
func FuzzNormalize(f *testing.F) {
	seeds := []struct {
		id       string
		kind     string
		number   float64
		count    int64
		label    string
		ratio    float64
		duration float64
	}{
		{schema.MetricGitRecency, string(schema.NumberKind), 7, 0, "", 0, 0},
		{schema.MetricGitContributors, string(schema.CountKind), 0, 3, "", 0, 0},
		{schema.MetricLintWarnings, string(schema.CountKind), 0, 150, "", 0, 0},
		{schema.MetricDepsOutdated, string(schema.RatioKind), 0, 0, "", 0.5, 0},
		{"unknown.metric", string(schema.LabelKind), 0, 0, "go", 0, 0},
		{schema.MetricGitRecency, string(schema.DurationKind), 0, 0, "", 0, 12.5},
	}
	for _, seed := range seeds {
		f.Add(seed.id, seed.kind, seed.number, seed.count, seed.label, seed.ratio, seed.duration)
	}

	th := contract.DefaultHealthConfig().Thresholds

	f.Fuzz(func(t *testing.T,
		id string,
		kind string,
		number float64,
		count int64,
		label string,
		ratio float64,
		duration float64,
	) {
		m := schema.Metric{
			ID: id,
			Value: schema.MetricValue{
				Kind:     schema.ValueKind(kind),
				Number:   number,
				Count:    count,
				Label:    label,
				Ratio:    ratio,
				Duration: duration,
			},
		}
		got := Normalize(m, th)
		if got < 0 || got > 1 || got != got {
			t.Errorf("Normalize(%q, kind=%q) = %v, want value in [0,1]", id, kind, got)
		}
	})
}

// FuzzScaleScore fuzzes the 0-100 scaling against arbitrary floats.
func FuzzScaleScore(f *testing.F) {
	for _, seed := range []float64{0, 0.5, 0.7999999, 1.0} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, final float64) {
		if final < 0 || final > 1 || final != final {
			t.Skip()
		}
		got := ScaleScore(final)
		if got < 0 || got > 100 {
			t.Errorf("ScaleScore(%v) = %d, want value in [0,100]", final, got)
		}
	})
}
