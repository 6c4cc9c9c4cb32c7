package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// analyzerOutput holds one analyzer's finished results.
type analyzerOutput struct {
	metrics     []schema.Metric
	diagnostics []schema.Diagnostic
}

// RunAnalyzers executes the analyzer set concurrently, each under its own
// timeout, and returns the merged metric and diagnostic lists.
//
// Failures degrade gracefully: an analyzer error or timeout becomes a warning
// diagnostic and its partial metrics are kept, so the scoring engine always
// receives a finished, already-merged list. Metrics that fail basic
// validation are dropped with a warning diagnostic. Results are merged in
// analyzer declaration order to keep runs reproducible regardless of
// goroutine timing.
func RunAnalyzers(ctx context.Context, cfg *contract.Config, analyzers []contract.Analyzer) ([]schema.Metric, []schema.Diagnostic) {
	outputs := make([]analyzerOutput, len(analyzers))

	sem := make(chan struct{}, cfg.Workers)
	var wg sync.WaitGroup
	for i, a := range analyzers {
		wg.Add(1)
		go func(slot int, a contract.Analyzer) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			actx, cancel := context.WithTimeout(ctx, cfg.AnalyzerTimeout)
			defer cancel()

			metrics, diags, err := a.Gather(actx, cfg)
			if err != nil {
				diags = append(diags, schema.Diagnostic{
					Level:   schema.WarningLevel,
					Message: fmt.Sprintf("%s analyzer failed: %v", a.Name(), err),
					Hint:    "the health score was computed from the remaining metrics",
				})
			}
			outputs[slot] = analyzerOutput{metrics: metrics, diagnostics: diags}
		}(i, a)
	}
	wg.Wait()

	var metrics []schema.Metric
	var diagnostics []schema.Diagnostic
	for _, out := range outputs {
		for _, m := range out.metrics {
			if err := m.Validate(); err != nil {
				diagnostics = append(diagnostics, schema.Diagnostic{
					Level:   schema.WarningLevel,
					Message: fmt.Sprintf("dropped malformed metric %q: %v", m.ID, err),
				})
				continue
			}
			metrics = append(metrics, m)
		}
		diagnostics = append(diagnostics, out.diagnostics...)
	}
	return metrics, diagnostics
}
