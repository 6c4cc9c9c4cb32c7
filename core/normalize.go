// Package core has the normalization, weighting and scoring engine.
package core

import (
	"math"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// NeutralScore is assigned when a metric cannot be normalized: unknown id, or
// a value variant the registered normalizer does not expect. "Don't know,
// don't penalize", never an error.
const NeutralScore = 0.5

// normalizerFunc maps a raw metric value to a unit-interval quality score.
// The boolean reports whether the value variant matched; on false the caller
// substitutes NeutralScore. Implementations never return values outside [0,1]
// and never fail: the validator guarantees warn != fail upstream.
type normalizerFunc func(v schema.MetricValue, t contract.Thresholds) (float64, bool)

// normalizers is the fixed id → curve registry.
var normalizers = map[string]normalizerFunc{
	schema.MetricGitRecency:          normalizeGitRecency,
	schema.MetricGitContributors:     normalizeContributors,
	schema.MetricGitMessageQuality:   normalizeRatioPassthrough,
	schema.MetricGitConventional:     normalizeRatioPassthrough,
	schema.MetricGitBranchCount:      normalizeBranchCount,
	schema.MetricGitMergePercentage:  normalizeMergePercentage,
	schema.MetricCodeCommentsDensity: normalizeCommentDensity,
	schema.MetricCodeFilesAvgSize:    normalizeAvgFileSize,
	schema.MetricLintWarnings:        normalizeLintWarnings,
	schema.MetricLintErrors:          normalizeLintErrors,
	schema.MetricDepsOutdated:        normalizeDepsOutdated,
	schema.MetricTestCoverage:        normalizeTestCoverage,
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// normalizeGitRecency scores days since last commit; lower is better.
// Full credit up to warn, linear decay to 0.5 at fail, then exponential decay
// with a 30-day scale.
func normalizeGitRecency(v schema.MetricValue, t contract.Thresholds) (float64, bool) {
	days, ok := v.AsNumber()
	if !ok {
		return 0, false
	}
	warn, fail := t.GitRecencyWarnDays, t.GitRecencyFailDays
	switch {
	case days <= warn:
		return 1.0, true
	case days <= fail:
		return 1.0 - ((days-warn)/(fail-warn))*0.5, true
	default:
		return math.Max(0, 0.5*math.Exp(-(days-fail)/30)), true
	}
}

// normalizeContributors scores the 30-day unique contributor count on a
// discrete table; saturates at five contributors.
func normalizeContributors(v schema.MetricValue, _ contract.Thresholds) (float64, bool) {
	count, ok := v.AsCount()
	if !ok {
		return 0, false
	}
	switch {
	case count <= 0:
		return 0.0, true
	case count == 1:
		return 0.5, true
	case count == 2:
		return 0.7, true
	case count == 3:
		return 0.8, true
	case count == 4:
		return 0.9, true
	default:
		return 1.0, true
	}
}

// normalizeRatioPassthrough forwards an already-normalized ratio unchanged.
func normalizeRatioPassthrough(v schema.MetricValue, _ contract.Thresholds) (float64, bool) {
	ratio, ok := v.AsRatio()
	if !ok {
		return 0, false
	}
	return clamp01(ratio), true
}

// normalizeBranchCount rewards a healthy working set of branches; both a
// single stale branch and unbounded sprawl score poorly.
func normalizeBranchCount(v schema.MetricValue, _ contract.Thresholds) (float64, bool) {
	count, ok := v.AsCount()
	if !ok {
		return 0, false
	}
	switch {
	case count <= 1:
		return 0.3, true
	case count <= 10:
		return 1.0, true
	case count <= 20:
		return 0.8, true
	case count <= 50:
		return 0.5, true
	default:
		return 0.2, true
	}
}

// normalizeMergePercentage scores the share of merge commits; lower is better.
func normalizeMergePercentage(v schema.MetricValue, _ contract.Thresholds) (float64, bool) {
	ratio, ok := v.AsRatio()
	if !ok {
		return 0, false
	}
	switch {
	case ratio < 0.1:
		return 1.0, true
	case ratio < 0.3:
		return 0.8, true
	case ratio < 0.5:
		return 0.5, true
	default:
		return 0.3, true
	}
}

// normalizeCommentDensity scores the comment-to-code ratio against an ideal
// band of 10-20%; both undocumented and over-commented code lose credit.
func normalizeCommentDensity(v schema.MetricValue, _ contract.Thresholds) (float64, bool) {
	density, ok := v.AsRatio()
	if !ok {
		return 0, false
	}
	switch {
	case density >= 0.10 && density <= 0.20:
		return 1.0, true
	case density >= 0.05 && density <= 0.30:
		return 0.8, true
	case density < 0.05:
		return clamp01(density / 0.05), true
	default: // density > 0.30
		return math.Max(0.3, 1.0-(density-0.20)*2), true
	}
}

// normalizeAvgFileSize scores mean lines per file; the 50-200 range is ideal.
func normalizeAvgFileSize(v schema.MetricValue, _ contract.Thresholds) (float64, bool) {
	lines, ok := v.AsNumber()
	if !ok {
		return 0, false
	}
	switch {
	case lines < 50:
		return 0.7, true
	case lines <= 200:
		return 1.0, true
	case lines <= 500:
		return 0.7, true
	case lines <= 1000:
		return 0.4, true
	default:
		return 0.2, true
	}
}

// normalizeLintWarnings scores the warning count; gentle to warn, steep to
// fail, exponential decay past fail with a 100-warning scale.
func normalizeLintWarnings(v schema.MetricValue, t contract.Thresholds) (float64, bool) {
	count, ok := v.AsCount()
	if !ok {
		return 0, false
	}
	x := float64(count)
	warn, fail := t.LintWarningsWarn, t.LintWarningsFail
	switch {
	case x <= 0:
		return 1.0, true
	case x <= warn:
		return 1.0 - (x/warn)*0.2, true
	case x <= fail:
		return 0.8 - ((x-warn)/(fail-warn))*0.6, true
	default:
		return math.Max(0, 0.2*math.Exp(-(x-fail)/100)), true
	}
}

// normalizeLintErrors scores the error count with a much steeper penalty than
// warnings; a single error already drops to 0.7.
func normalizeLintErrors(v schema.MetricValue, t contract.Thresholds) (float64, bool) {
	count, ok := v.AsCount()
	if !ok {
		return 0, false
	}
	x := float64(count)
	warn, fail := t.LintErrorsWarn, t.LintErrorsFail
	switch {
	case x <= 0:
		return 1.0, true
	case x <= warn:
		return 0.7, true
	case x <= fail:
		return 0.7 - ((x-warn)/(fail-warn))*0.5, true
	default:
		return math.Max(0, 0.2*math.Exp(-(x-fail)/5)), true
	}
}

// normalizeDepsOutdated scores the share of outdated dependencies. The value
// is a ratio in [0,1]; thresholds are expressed in percent, so the curve
// compares against x*100. Shape follows the lint.warnings curve with a
// 50-point decay scale.
func normalizeDepsOutdated(v schema.MetricValue, t contract.Thresholds) (float64, bool) {
	ratio, ok := v.AsRatio()
	if !ok {
		return 0, false
	}
	pct := clamp01(ratio) * 100
	warn, fail := t.DepsOutdatedWarnPct, t.DepsOutdatedFailPct
	switch {
	case pct <= 0:
		return 1.0, true
	case pct <= warn:
		return 1.0 - (pct/warn)*0.2, true
	case pct <= fail:
		return 0.8 - ((pct-warn)/(fail-warn))*0.6, true
	default:
		return math.Max(0, 0.2*math.Exp(-(pct-fail)/50)), true
	}
}

// normalizeTestCoverage scores coverage; higher is better, so the warn/fail
// pair is inverted relative to the other families. Full credit at or above
// warn, linear between fail and warn, proportional half-credit below fail.
func normalizeTestCoverage(v schema.MetricValue, t contract.Thresholds) (float64, bool) {
	ratio, ok := v.AsRatio()
	if !ok {
		return 0, false
	}
	x := clamp01(ratio)
	warn, fail := t.TestCoverageWarn, t.TestCoverageFail
	switch {
	case x >= warn:
		return 1.0, true
	case x >= fail:
		return 0.5 + ((x-fail)/(warn-fail))*0.5, true
	default:
		return (x / fail) * 0.5, true
	}
}

// Normalize maps one metric to a unit-interval score. Unknown ids and variant
// mismatches resolve to NeutralScore.
func Normalize(m schema.Metric, t contract.Thresholds) float64 {
	fn, ok := normalizers[m.ID]
	if !ok {
		return NeutralScore
	}
	score, ok := fn(m.Value, t)
	if !ok || math.IsNaN(score) {
		return NeutralScore
	}
	return clamp01(score)
}
