package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd prints build provenance. The values come from linker flags, so a
// source build reports dev/none/unknown.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build details.",
	Long: `Print the repopulse version together with the commit hash, build
timestamp, and Go runtime it was compiled with. Include this output when
reporting a bug.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("repopulse %s (commit %s, built %s, %s)\n",
			version, commit, date, runtime.Version())
	},
}
