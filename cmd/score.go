package cmd

import (
	"os"

	"github.com/repopulse/repopulse/core"
	"github.com/repopulse/repopulse/internal/analyzer"
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/render"
	"github.com/spf13/cobra"
)

// scoreCmd runs the full scoring pipeline for one project.
var scoreCmd = &cobra.Command{
	Use:   "score [project-path]",
	Short: "Compute the health score of a project",
	Long: `Analyze a project and condense its signals into a single 0-100 health score.

Analyzers inspect:
- Git history (recency, contributors, commit message quality, branches, merges)
- Code layout (total lines, average file size, comment density)
- Lint findings (go vet warnings and errors for Go projects)
- Dependencies (direct count and outdated share)
- Dead code (unreachable symbols, when the deadcode tool is installed)
- GitHub issues and pull requests (when --github-repo is set)

Each metric is normalized into [0,1], weighted, and aggregated. The score is
classified into a band: Excellent, Good, Fair, or Poor.

Exit codes:
  0 - score computed (and cleared --fail-under, if set)
  1 - score fell below the --fail-under floor
  2 - configuration or execution error

Examples:
  # Score the current directory
  repopulse score

  # Score another project as JSON
  repopulse score ~/src/myproject --output json

  # Gate a CI pipeline at 70
  repopulse score --fail-under 70`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := core.ExecuteHealthScore(rootCtx, cfg, &core.RunOptions{
			Analyzers:    analyzer.DefaultAnalyzers(cfg),
			Store:        historyStore,
			ProjectTypes: analyzer.DetectProjectTypes(cfg.ProjectRoot),
			ToolName:     "repopulse",
			ToolVersion:  version,
		})
		if err != nil {
			contract.LogFatal("Analysis failed", err)
		}

		if err := render.WriteReport(report, cfg); err != nil {
			contract.LogFatal("Cannot write report", err)
		}

		if cfg.FailUnder > 0 {
			if err := core.EvaluatePolicy(report, cfg.FailUnder); err != nil {
				contract.LogWarn(err.Error(), nil)
				_ = CloseHistory()
				os.Exit(1)
			}
		}
	},
}
