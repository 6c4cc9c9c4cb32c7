package core

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// RunOptions bundles the collaborators for one scoring run.
type RunOptions struct {
	Analyzers    []contract.Analyzer
	Store        contract.HistoryStore // nil disables persistence
	ProjectTypes []string
	ToolName     string
	ToolVersion  string
}

// ExecuteHealthScore runs the full pipeline: gather metrics, normalize and
// aggregate, assemble the report, and persist the run when a store is
// configured. Persistence failures are warnings, never fatal; the score must
// always be computable from whatever data happened to be gathered.
func ExecuteHealthScore(ctx context.Context, cfg *contract.Config, opts *RunOptions) (*schema.Report, error) {
	start := time.Now()
	runID := uuid.NewString()

	var storeRunID int64
	if opts.Store != nil {
		params := map[string]any{
			"workers":    cfg.Workers,
			"timeout":    cfg.AnalyzerTimeout.String(),
			"fail_under": cfg.FailUnder,
			"weights":    cfg.Health.Weights,
		}
		id, err := opts.Store.BeginRun(runID, start, cfg.ProjectRoot, params)
		if err != nil {
			contract.LogWarn("score history tracking unavailable", err)
		} else {
			storeRunID = id
		}
	}

	metrics, diagnostics := RunAnalyzers(ctx, cfg, opts.Analyzers)
	enriched, final, band := Score(metrics, cfg.Health)
	score := ScaleScore(final)

	if opts.Store != nil && storeRunID > 0 {
		for _, m := range enriched {
			if err := opts.Store.RecordMetric(storeRunID, m, WeightFor(m.ID, cfg.Health.Weights)); err != nil {
				contract.LogWarn("failed to record metric "+m.ID, err)
				break
			}
		}
		if err := opts.Store.EndRun(storeRunID, time.Now(), score, band.Label(), len(enriched)); err != nil {
			contract.LogWarn("failed to finalize score history entry", err)
		}
	}

	return &schema.Report{
		Tool:            opts.ToolName,
		ToolVersion:     opts.ToolVersion,
		RunID:           runID,
		ProjectRoot:     cfg.ProjectRoot,
		ProjectTypes:    opts.ProjectTypes,
		Metrics:         enriched,
		Score:           score,
		NormalizedScore: final,
		Band:            band.Label(),
		Diagnostics:     diagnostics,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// EvaluatePolicy applies the CI pass/fail floor to a finished report. This is
// the only place the score meets a policy threshold; the engine itself only
// classifies into bands.
func EvaluatePolicy(report *schema.Report, failUnder int) error {
	if report.Score < failUnder {
		return fmt.Errorf("health score %d is below the fail-under threshold %d", report.Score, failUnder)
	}
	return nil
}

// EncodeValue renders a metric value for storage rows and CSV cells.
func EncodeValue(v schema.MetricValue) string {
	switch v.Kind {
	case schema.NumberKind:
		return fmt.Sprintf("%g", v.Number)
	case schema.CountKind:
		return fmt.Sprintf("%d", v.Count)
	case schema.LabelKind:
		return v.Label
	case schema.RatioKind:
		return fmt.Sprintf("%g", v.Ratio)
	case schema.DurationKind:
		return fmt.Sprintf("%gs", v.Duration)
	default:
		b, _ := json.Marshal(v)
		return string(b)
	}
}
