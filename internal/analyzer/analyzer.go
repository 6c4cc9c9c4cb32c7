// Package analyzer contains the metric producers. Each analyzer gathers one
// family of raw measurements; none of them normalizes or scores anything.
package analyzer

import (
	"github.com/repopulse/repopulse/internal/contract"
)

// DefaultAnalyzers returns the closed analyzer set for a run. The GitHub
// analyzer only joins when a repository is configured; everything else always
// runs and degrades gracefully when its tooling is missing.
func DefaultAnalyzers(cfg *contract.Config) []contract.Analyzer {
	runner := contract.NewExecRunner()
	analyzers := []contract.Analyzer{
		NewGitAnalyzer(runner),
		NewCodeAnalyzer(),
		NewLintAnalyzer(runner),
		NewDepsAnalyzer(runner),
		NewDeadCodeAnalyzer(runner),
	}
	if cfg.GitHubRepo != "" {
		analyzers = append(analyzers, NewGitHubAnalyzer(cfg.GitHubRepo, cfg.GitHubToken))
	}
	return analyzers
}
