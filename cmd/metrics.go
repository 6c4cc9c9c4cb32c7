package cmd

import (
	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/render"
	"github.com/spf13/cobra"
)

// metricsCmd displays the scored metric catalog.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the metric catalog and the weight each metric carries",
	Long: `Show every metric the scoring engine knows about, including:
- Stable metric identifier and producing analyzer family
- Effective weight in the aggregate score
- Whether the metric is scored or informational only

Refinement metrics (commit message quality, comment density, average file
size) carry half the weight of their parent family.

No project analysis is performed - this is purely informational.

Use this to:
- Understand what contributes to the score
- Validate custom weight configurations
- Document scoring methodology for your team

Examples:
  # Show the catalog with default weights
  repopulse metrics

  # View with custom weights from a config file
  repopulse metrics --config .repopulse.yaml`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := render.WriteMetricDefinitions(cfg); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
