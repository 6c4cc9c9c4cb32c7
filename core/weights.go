package core

import (
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// refinementShare is the fraction of the parent family's weight that each
// refinement metric borrows. The sharing rule is a fixed convention, not a
// configuration key; `repopulse metrics` prints the derived table so the rule
// stays visible.
const refinementShare = 0.5

// WeightFor returns the aggregate contribution coefficient for a metric id.
// Ids outside the table weigh 0: they are still normalized and reported, just
// excluded from the final score.
func WeightFor(id string, w contract.Weights) float64 {
	switch id {
	case schema.MetricGitRecency:
		return w.GitRecency
	case schema.MetricGitContributors:
		return w.GitContributors
	case schema.MetricGitMessageQuality, schema.MetricGitConventional:
		return w.GitRecency * refinementShare
	case schema.MetricCodeCommentsDensity, schema.MetricCodeFilesAvgSize:
		return w.CodeLOC * refinementShare
	case schema.MetricLintWarnings:
		return w.LintWarnings
	case schema.MetricLintErrors:
		return w.LintErrors
	case schema.MetricDepsOutdated:
		return w.DepsOutdated
	default:
		return 0
	}
}

// WeightedMetricIDs lists every id with a direct or derived weight, for
// display purposes.
func WeightedMetricIDs() []string {
	return []string{
		schema.MetricGitRecency,
		schema.MetricGitContributors,
		schema.MetricGitMessageQuality,
		schema.MetricGitConventional,
		schema.MetricCodeCommentsDensity,
		schema.MetricCodeFilesAvgSize,
		schema.MetricLintWarnings,
		schema.MetricLintErrors,
		schema.MetricDepsOutdated,
	}
}

// RegisteredMetricIDs lists every id with a normalization curve, weighted or
// not, in a stable display order.
func RegisteredMetricIDs() []string {
	return []string{
		schema.MetricGitRecency,
		schema.MetricGitContributors,
		schema.MetricGitMessageQuality,
		schema.MetricGitConventional,
		schema.MetricGitBranchCount,
		schema.MetricGitMergePercentage,
		schema.MetricCodeCommentsDensity,
		schema.MetricCodeFilesAvgSize,
		schema.MetricLintWarnings,
		schema.MetricLintErrors,
		schema.MetricDepsOutdated,
		schema.MetricTestCoverage,
	}
}
