package cmd

import (
	"fmt"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/internal/history"
	"github.com/repopulse/repopulse/internal/render"
	"github.com/repopulse/repopulse/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need store access without full shared setup.
func historySetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	store, err := history.NewStore(backend, connStr)
	if err != nil {
		return fmt.Errorf("failed to initialize score history: %w", err)
	}
	historyStore = store

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.Output = schema.OutputMode(viper.GetString("output"))
	cfg.OutputFile = viper.GetString("output-file")
	cfg.Precision = contract.DefaultPrecision
	if cfg.Health == nil {
		cfg.Health = contract.DefaultHealthConfig()
	}

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT open the store or create tables,
// allowing migrations to run on a fresh database.
func historyMigrateSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	backend := schema.DatabaseBackend(viper.GetString("history-backend"))
	connStr := viper.GetString("history-db-connect")

	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr

	return nil
}

// historyMigrateSetupWrapper wraps historyMigrateSetup to provide PreRunE for
// the migrate command.
func historyMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return historyMigrateSetup()
}

// historyCmd focused on score history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead
// of the full sharedSetup used by scoring commands. This avoids project root
// validation and analyzer config processing for simple store operations.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage historical score tracking and exports",
	Long: `Manage historical score data used for trend tracking and reporting.

When enabled, Repopulse tracks every scoring run, storing:
- Run metadata (timestamp, project root, configuration)
- The final score and band
- Every metric with its raw value, normalized score, and effective weight

This enables longitudinal analysis, trend detection, and data export for BI tools.

Supported backends: SQLite (default), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  show    - List recent scoring runs
  status  - Show score tracking statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all tracking data
  migrate - Run database schema migrations

Examples:
  # List the latest runs
  repopulse history show

  # Export for analysis in pandas/DuckDB
  repopulse history export --output-file score-data`,
}

// historyShowCmd lists recent scoring runs.
var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List recent scoring runs, newest first",
	Long: `Display recent scoring runs with their project, score, and band.

Examples:
  # Show the last 20 runs
  repopulse history show

  # Show the last 5 runs as JSON
  repopulse history show --limit 5 --output json`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		runs, err := historyStore.RecentRuns(viper.GetInt("limit"))
		if err != nil {
			contract.LogFatal("Failed to read score history", err)
		}
		if err := render.WriteRunHistory(runs, cfg); err != nil {
			contract.LogFatal("Cannot write history", err)
		}
	},
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display score tracking statistics and connection details",
	Long: `Show detailed information about historical score tracking.

Displays:
- Backend type and connection status
- Total number of scoring runs stored
- Last and oldest run timestamps
- Total metric rows across all runs

Use this to:
- Verify score tracking is enabled and working
- Monitor data accumulation over time
- Check database connection health

Examples:
  # Check score tracking status
  repopulse history status`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyStore.GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		if err := render.WriteHistoryStatus(status, cfg); err != nil {
			contract.LogFatal("Cannot write history status", err)
		}
	},
}

// historyClearCmd clears the score history.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all historical score tracking data",
	Long: `Delete all stored scoring runs and metric history.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  # Export before clearing
  repopulse history export --output-file backup
  repopulse history clear`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := historyStore.Clear(); err != nil {
			contract.LogFatal("Failed to clear score history", err)
		}
		fmt.Println("Score history cleared successfully.")
	},
}

// historyExportCmd exports score history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export historical data to Parquet for BI tools and analytics",
	Long: `Export all stored score data to Parquet format for use with analytics tools.

Exports two datasets:
- Scoring runs - metadata and outcome of each run
- Metric rows - raw values, normalized scores, and weights per metric

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all data
  repopulse history export --output-file repopulse-data

  # Use with DuckDB for analysis
  repopulse history export --output-file data
  duckdb -c "SELECT * FROM read_parquet('data.runs.parquet') LIMIT 10"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExportRuns(historyStore, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export score history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the score tracking store.

By default, migrates to the latest version. Use --target-version for specific
versions.

Examples:
  # Migrate to latest version (default)
  repopulse history migrate

  # Migrate to specific version
  repopulse history migrate --target-version 1

  # Rollback to initial state
  repopulse history migrate --target-version 0`,
	PreRunE: historyMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.Migrate(cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
