package cmd

import (
	"fmt"

	"github.com/repopulse/repopulse/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd starts the HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API for scoring and history access",
	Long: `Launch an HTTP server exposing the scoring pipeline and score history.

Endpoints:
  GET /healthz                     - liveness check
  GET /api/v1/score                - run a scoring pass (?path=..., ?fail_under=...)
  GET /api/v1/metrics              - metric catalog with effective weights
  GET /api/v1/history              - recent scoring runs (?limit=...)
  GET /api/v1/history/status       - store-level counters
  GET /api/v1/history/:id/metrics  - stored metric rows for one run

Examples:
  # Serve on the default port
  repopulse serve

  # Bind an explicit address
  repopulse serve --listen 127.0.0.1:9090`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		handler := api.NewHandler(cfg, historyStore, "repopulse", version)
		router := api.SetupRoutes(handler)
		fmt.Printf("Listening on %s\n", cfg.ListenAddr)
		return router.Run(cfg.ListenAddr)
	},
}
