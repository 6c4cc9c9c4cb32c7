// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"time"

	"github.com/repopulse/repopulse/schema"
)

// Analyzer gathers one family of metrics for a project. Implementations are a
// fixed, enumerable set (git, code, lint, dependencies, dead code, github);
// this is deliberately not an open plugin surface.
//
// Gather must be side-effect free with respect to the project: it reads state,
// invokes read-only tools, and returns whatever it could measure. Partial
// results plus diagnostics are preferred over errors; an error return is
// reserved for total failure and is converted to a diagnostic by the runner,
// never propagated.
type Analyzer interface {
	// Name returns a stable identifier used in diagnostics and logs.
	Name() string

	// Gather produces metrics and diagnostics for the project.
	Gather(ctx context.Context, cfg *Config) ([]schema.Metric, []schema.Diagnostic, error)
}

// CommandRunner abstracts subprocess invocation so analyzers can be tested
// without the underlying tools installed.
type CommandRunner interface {
	// Run executes a command in dir and returns its stdout.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// HistoryStore persists score runs for later inspection and export.
type HistoryStore interface {
	// BeginRun creates a new run row and returns its storage ID.
	BeginRun(runID string, startTime time.Time, projectRoot string, configParams map[string]any) (int64, error)

	// EndRun finalizes a run with its outcome.
	EndRun(id int64, endTime time.Time, score int, band string, totalMetrics int) error

	// RecordMetric stores one enriched metric row for a run, with the
	// effective weight it carried in the aggregate.
	RecordMetric(id int64, metric schema.Metric, weight float64) error

	// RecentRuns returns up to limit most recent runs, newest first.
	RecentRuns(limit int) ([]schema.RunRecord, error)

	// MetricsForRun returns the stored metric rows of a run.
	MetricsForRun(id int64) ([]schema.MetricRecord, error)

	// GetStatus returns status information about the store.
	GetStatus() (schema.HistoryStatus, error)

	// Clear removes all stored runs and metrics.
	Clear() error

	// Close closes the underlying connection.
	Close() error
}
