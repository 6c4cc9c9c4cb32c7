package cmd

import (
	"github.com/repopulse/repopulse/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Repopulse MCP server",
	Long:  `Launch an MCP server that allows AI agents to compute health scores and inspect score history via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Keep stdout clean for the protocol; any human-facing notes go to
		// stderr via the usual warning path.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, historyStore, version)
	},
}
