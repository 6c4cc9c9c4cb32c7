package analyzer

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// DeadCodeAnalyzer counts unreachable functions in Go projects via the
// x/tools deadcode command. The count is reported for visibility only and
// never contributes to the score.
type DeadCodeAnalyzer struct {
	runner contract.CommandRunner
}

var _ contract.Analyzer = (*DeadCodeAnalyzer)(nil)

// NewDeadCodeAnalyzer creates an analyzer backed by the deadcode tool.
func NewDeadCodeAnalyzer(runner contract.CommandRunner) *DeadCodeAnalyzer {
	return &DeadCodeAnalyzer{runner: runner}
}

// Name implements the contract.Analyzer interface.
func (a *DeadCodeAnalyzer) Name() string { return "deadcode" }

// Gather implements the contract.Analyzer interface. A missing tool is an
// info diagnostic, not a failure.
func (a *DeadCodeAnalyzer) Gather(ctx context.Context, cfg *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	if _, err := os.Stat(filepath.Join(cfg.ProjectRoot, "go.mod")); err != nil {
		return nil, nil, nil
	}

	out, err := a.runner.Run(ctx, cfg.ProjectRoot, "deadcode", "./...")
	if err != nil {
		return nil, []schema.Diagnostic{{
			Level:   schema.InfoLevel,
			Message: "deadcode tool not available, dead symbol count skipped",
			Hint:    "go install golang.org/x/tools/cmd/deadcode@latest",
		}}, nil
	}

	return []schema.Metric{{
		ID:       schema.MetricDeadCode,
		Title:    "Unreachable functions",
		Category: schema.CodeCategory,
		Value:    schema.CountValue(countDeadSymbols(string(out))),
	}}, nil, nil
}

// countDeadSymbols counts finding lines in deadcode output, which reports one
// unreachable function per line as "file:line:col: unreachable func: name".
func countDeadSymbols(out string) int64 {
	var n int64
	for _, line := range strings.Split(out, "\n") {
		if strings.Contains(line, "unreachable func:") {
			n++
		}
	}
	return n
}
