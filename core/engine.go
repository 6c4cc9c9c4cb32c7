package core

import (
	"math"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// Score normalizes every metric, attaches scores to copies, and computes the
// weighted-average final score plus its band.
//
// The input slice is never mutated; enriched copies are returned in input
// order. Only metrics with weight > 0 contribute to the aggregate, but every
// metric comes back enriched for reporting. With an empty weighted set the
// final score is 0.0 and the band Poor, an explicit edge case rather than a
// division by zero.
//
// Determinism is a hard requirement: identical (metrics, cfg) inputs always
// produce identical output, and the aggregate is order-independent.
func Score(metrics []schema.Metric, cfg *contract.HealthConfig) ([]schema.Metric, float64, schema.ScoreBand) {
	enriched := make([]schema.Metric, 0, len(metrics))

	var weightedSum, weightTotal float64
	for _, m := range metrics {
		s := Normalize(m, cfg.Thresholds)
		enriched = append(enriched, m.WithScore(s))

		if w := WeightFor(m.ID, cfg.Weights); w > 0 {
			weightedSum += w * s
			weightTotal += w
		}
	}

	final := 0.0
	if weightTotal > 0 {
		final = weightedSum / weightTotal
	}
	return enriched, final, schema.BandForScore(final)
}

// ScaleScore converts a normalized final score to the 0-100 integer scale.
func ScaleScore(final float64) int {
	return int(math.Round(final * 100))
}
