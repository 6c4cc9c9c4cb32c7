package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// goModule is the subset of `go list -m -json` output the analyzer reads.
type goModule struct {
	Path     string    `json:"Path"`
	Main     bool      `json:"Main"`
	Indirect bool      `json:"Indirect"`
	Update   *goUpdate `json:"Update"`
}

// goUpdate describes an available newer version.
type goUpdate struct {
	Version string `json:"Version"`
}

// DepsAnalyzer measures the dependency surface of Go projects: direct module
// count and the share with a newer version available.
type DepsAnalyzer struct {
	runner contract.CommandRunner
}

var _ contract.Analyzer = (*DepsAnalyzer)(nil)

// NewDepsAnalyzer creates an analyzer backed by the go toolchain.
func NewDepsAnalyzer(runner contract.CommandRunner) *DepsAnalyzer {
	return &DepsAnalyzer{runner: runner}
}

// Name implements the contract.Analyzer interface.
func (a *DepsAnalyzer) Name() string { return "deps" }

// Gather implements the contract.Analyzer interface. The update check needs
// network access to the module proxy; failure degrades to a warning.
func (a *DepsAnalyzer) Gather(ctx context.Context, cfg *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	if _, err := os.Stat(filepath.Join(cfg.ProjectRoot, "go.mod")); err != nil {
		return nil, []schema.Diagnostic{{
			Level:   schema.InfoLevel,
			Message: "no go.mod found, dependency metrics skipped",
		}}, nil
	}

	out, err := a.runner.Run(ctx, cfg.ProjectRoot, "go", "list", "-m", "-u", "-json", "all")
	if err != nil {
		return nil, nil, fmt.Errorf("go list -m -u failed: %w", err)
	}

	modules, err := parseGoListModules(bytes.NewReader(out))
	if err != nil {
		return nil, nil, fmt.Errorf("unparseable go list output: %w", err)
	}

	var direct, outdated int64
	for _, m := range modules {
		if m.Main || m.Indirect {
			continue
		}
		direct++
		if m.Update != nil {
			outdated++
		}
	}

	metrics := []schema.Metric{{
		ID:       schema.MetricDepsDirect,
		Title:    "Direct dependencies",
		Category: schema.DependenciesCategory,
		Value:    schema.CountValue(direct),
	}}
	if direct > 0 {
		metrics = append(metrics, schema.Metric{
			ID:       schema.MetricDepsOutdated,
			Title:    "Outdated dependencies",
			Category: schema.DependenciesCategory,
			Value:    schema.RatioValue(float64(outdated) / float64(direct)),
			Details:  map[string]string{"outdated": strconv.FormatInt(outdated, 10)},
		})
	}
	return metrics, nil, nil
}

// parseGoListModules decodes the concatenated JSON objects `go list -m -json`
// emits.
func parseGoListModules(r io.Reader) ([]goModule, error) {
	dec := json.NewDecoder(r)
	var modules []goModule
	for {
		var m goModule
		if err := dec.Decode(&m); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		modules = append(modules, m)
	}
	return modules, nil
}
