package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// vetFindingRe matches one go vet finding: file:line:col: message. Not
// anchored, since the runner folds the first stderr line into its error
// message behind a command prefix.
var vetFindingRe = regexp.MustCompile(`\S+\.go:\d+(:\d+)?: `)

// LintAnalyzer runs go vet for Go projects and counts its findings.
type LintAnalyzer struct {
	runner contract.CommandRunner
}

var _ contract.Analyzer = (*LintAnalyzer)(nil)

// NewLintAnalyzer creates an analyzer backed by the go toolchain.
func NewLintAnalyzer(runner contract.CommandRunner) *LintAnalyzer {
	return &LintAnalyzer{runner: runner}
}

// Name implements the contract.Analyzer interface.
func (a *LintAnalyzer) Name() string { return "lint" }

// Gather implements the contract.Analyzer interface. Non-Go projects yield an
// info diagnostic and no metrics. go vet exits non-zero when it finds
// anything, so its error output is parsed rather than treated as failure.
func (a *LintAnalyzer) Gather(ctx context.Context, cfg *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	if _, err := os.Stat(filepath.Join(cfg.ProjectRoot, "go.mod")); err != nil {
		return nil, []schema.Diagnostic{{
			Level:   schema.InfoLevel,
			Message: "no go.mod found, lint metrics skipped",
		}}, nil
	}

	out, err := a.runner.Run(ctx, cfg.ProjectRoot, "go", "vet", "./...")
	combined := string(out)
	if err != nil {
		// Findings arrive on stderr, wrapped into the error by the runner.
		combined += "\n" + err.Error()
	}

	warnings, errors := parseVetOutput(combined)

	metrics := []schema.Metric{
		{
			ID:       schema.MetricLintWarnings,
			Title:    "Lint warnings",
			Category: schema.LintCategory,
			Value:    schema.CountValue(warnings),
		},
		{
			ID:       schema.MetricLintErrors,
			Title:    "Lint errors",
			Category: schema.LintCategory,
			Value:    schema.CountValue(errors),
		},
	}
	return metrics, nil, nil
}

// parseVetOutput counts go vet findings. Lines matching file:line:col are
// findings; ones reporting compilation failure count as errors, the rest as
// warnings.
func parseVetOutput(out string) (warnings, errors int64) {
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if !vetFindingRe.MatchString(line) {
			continue
		}
		if isCompileErrorLine(line) {
			errors++
		} else {
			warnings++
		}
	}
	return warnings, errors
}

// isCompileErrorLine reports whether a vet finding describes a build-breaking
// problem rather than a suspicious construct.
func isCompileErrorLine(line string) bool {
	for _, marker := range []string{"undefined:", "undeclared name", "expected ", "cannot use ", "syntax error"} {
		if strings.Contains(line, marker) {
			return true
		}
	}
	return false
}
