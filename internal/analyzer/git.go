package analyzer

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// messageSampleSize is how many recent commit subjects feed the message
// quality ratios.
const messageSampleSize = 100

// conventionalCommitRe matches the conventional-commit subject prefix.
var conventionalCommitRe = regexp.MustCompile(`^(feat|fix|docs|style|refactor|perf|test|build|ci|chore|revert)(\([^)]+\))?!?: .+`)

// GitAnalyzer gathers repository activity metrics from the local git history.
type GitAnalyzer struct {
	runner contract.CommandRunner
	now    func() time.Time
}

var _ contract.Analyzer = (*GitAnalyzer)(nil)

// NewGitAnalyzer creates an analyzer backed by the local git binary.
func NewGitAnalyzer(runner contract.CommandRunner) *GitAnalyzer {
	return &GitAnalyzer{runner: runner, now: time.Now}
}

// Name implements the contract.Analyzer interface.
func (a *GitAnalyzer) Name() string { return "git" }

// Gather implements the contract.Analyzer interface. A project that is not a
// git repository yields no metrics and a single info diagnostic; partial git
// failures degrade per-metric.
func (a *GitAnalyzer) Gather(ctx context.Context, cfg *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	root := cfg.ProjectRoot

	if _, err := a.git(ctx, root, "rev-parse", "--git-dir"); err != nil {
		return nil, []schema.Diagnostic{{
			Level:   schema.InfoLevel,
			Message: "project is not a git repository, activity metrics skipped",
		}}, nil
	}

	var metrics []schema.Metric
	var diags []schema.Diagnostic

	warn := func(what string, err error) {
		diags = append(diags, schema.Diagnostic{
			Level:   schema.WarningLevel,
			Message: fmt.Sprintf("could not measure %s: %v", what, err),
		})
	}

	// Days since the last commit.
	if out, err := a.git(ctx, root, "log", "-1", "--pretty=format:%ct"); err != nil {
		warn("last commit time", err)
	} else if ts, perr := parseUnixTimestamp(string(out)); perr != nil {
		warn("last commit time", perr)
	} else {
		days := a.now().Sub(ts).Hours() / 24
		if days < 0 {
			days = 0
		}
		metrics = append(metrics, schema.Metric{
			ID:       schema.MetricGitRecency,
			Title:    "Days since last commit",
			Category: schema.GitCategory,
			Value:    schema.NumberValue(days),
			Unit:     "days",
		})
	}

	// Unique contributors over the last 30 days.
	if out, err := a.git(ctx, root, "log", "--since=30.days", "--pretty=format:%ae"); err != nil {
		warn("recent contributors", err)
	} else {
		metrics = append(metrics, schema.Metric{
			ID:       schema.MetricGitContributors,
			Title:    "Contributors (30d)",
			Category: schema.GitCategory,
			Value:    schema.CountValue(int64(countUniqueLines(string(out)))),
		})
	}

	// Commit message quality over the recent sample.
	if out, err := a.git(ctx, root, "log", fmt.Sprintf("-%d", messageSampleSize), "--pretty=format:%s"); err != nil {
		warn("commit messages", err)
	} else {
		subjects := splitLines(string(out))
		if len(subjects) > 0 {
			metrics = append(metrics,
				schema.Metric{
					ID:       schema.MetricGitMessageQuality,
					Title:    "Commit message quality",
					Category: schema.GitCategory,
					Value:    schema.RatioValue(messageQualityRatio(subjects)),
					Details:  map[string]string{"sample": strconv.Itoa(len(subjects))},
				},
				schema.Metric{
					ID:       schema.MetricGitConventional,
					Title:    "Conventional commits",
					Category: schema.GitCategory,
					Value:    schema.RatioValue(conventionalRatio(subjects)),
					Details:  map[string]string{"sample": strconv.Itoa(len(subjects))},
				},
			)
		}
	}

	// Local branch count.
	if out, err := a.git(ctx, root, "for-each-ref", "--format=%(refname:short)", "refs/heads"); err != nil {
		warn("branch count", err)
	} else {
		metrics = append(metrics, schema.Metric{
			ID:       schema.MetricGitBranchCount,
			Title:    "Branches",
			Category: schema.GitCategory,
			Value:    schema.CountValue(int64(countUniqueLines(string(out)))),
		})
	}

	// Merge commit share of total history.
	total, terr := a.countCommits(ctx, root, false)
	merges, merr := a.countCommits(ctx, root, true)
	switch {
	case terr != nil:
		warn("commit counts", terr)
	case merr != nil:
		warn("merge commit counts", merr)
	case total > 0:
		metrics = append(metrics, schema.Metric{
			ID:       schema.MetricGitMergePercentage,
			Title:    "Merge commit share",
			Category: schema.GitCategory,
			Value:    schema.RatioValue(float64(merges) / float64(total)),
			Details: map[string]string{
				"merges": strconv.FormatInt(merges, 10),
				"total":  strconv.FormatInt(total, 10),
			},
		})
	}

	return metrics, diags, nil
}

func (a *GitAnalyzer) git(ctx context.Context, root string, args ...string) ([]byte, error) {
	return a.runner.Run(ctx, root, "git", args...)
}

func (a *GitAnalyzer) countCommits(ctx context.Context, root string, mergesOnly bool) (int64, error) {
	args := []string{"rev-list", "--count"}
	if mergesOnly {
		args = append(args, "--merges")
	}
	args = append(args, "HEAD")
	out, err := a.git(ctx, root, args...)
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(strings.TrimSpace(string(out)), 10, 64)
}

// parseUnixTimestamp converts git's %ct output into a time.
func parseUnixTimestamp(s string) (time.Time, error) {
	ts, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("unparseable commit timestamp %q: %w", strings.TrimSpace(s), err)
	}
	return time.Unix(ts, 0), nil
}

// splitLines splits command output into trimmed, non-empty lines.
func splitLines(s string) []string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// countUniqueLines counts distinct non-empty lines in command output.
func countUniqueLines(s string) int {
	seen := make(map[string]struct{})
	for _, line := range splitLines(s) {
		seen[line] = struct{}{}
	}
	return len(seen)
}

// isQualitySubject applies the message heuristics: a reasonable subject length
// and no trailing period.
func isQualitySubject(subject string) bool {
	n := len(subject)
	if n < 10 || n > 72 {
		return false
	}
	return !strings.HasSuffix(subject, ".")
}

// messageQualityRatio returns the share of subjects passing the quality
// heuristics.
func messageQualityRatio(subjects []string) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var good int
	for _, s := range subjects {
		if isQualitySubject(s) {
			good++
		}
	}
	return float64(good) / float64(len(subjects))
}

// conventionalRatio returns the share of subjects following the
// conventional-commit format.
func conventionalRatio(subjects []string) float64 {
	if len(subjects) == 0 {
		return 0
	}
	var matched int
	for _, s := range subjects {
		if conventionalCommitRe.MatchString(s) {
			matched++
		}
	}
	return float64(matched) / float64(len(subjects))
}
