package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// configCmd groups configuration management subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the scoring configuration file",
	Long: `Inspect and manage the weights, thresholds, and CI policy that shape the
health score.

Configuration resolution order:
1. Explicit --config path
2. .repopulse.yaml in the project root
3. .repopulse.yaml in $HOME
4. Built-in defaults

Subcommands:
  init     - Write the default configuration to a file
  validate - Check a configuration file for errors
  show     - Print the effective configuration after merging

Examples:
  # Scaffold a config to customize
  repopulse config init

  # Check an edited config before committing it
  repopulse config validate --config .repopulse.yaml`,
}

// configInitCmd writes the default configuration to disk.
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration to .repopulse.yaml",
	Long: `Create a configuration file populated with the built-in defaults.

The generated file documents every tunable: metric family weights (which must
sum to at most 1.0), warn/fail thresholds per family, and the CI fail-under
floor. Edit it, then verify with 'repopulse config validate'.

Refuses to overwrite an existing file.

Examples:
  # Create .repopulse.yaml in the current directory
  repopulse config init

  # Create it at an explicit path
  repopulse config init --config ./configs/health.yaml`,
	Run: func(_ *cobra.Command, _ []string) {
		path := viper.GetString("config")
		if path == "" {
			path = contract.DefaultConfigFileName
		}
		if _, err := os.Stat(path); err == nil {
			contract.LogFatal("Config file already exists", fmt.Errorf("refusing to overwrite %s", path))
		}
		if err := contract.SaveHealthConfig(contract.DefaultHealthConfig(), path); err != nil {
			contract.LogFatal("Cannot write config file", err)
		}
		fmt.Printf("Wrote default configuration to %s\n", path)
	},
}

// configValidateCmd checks a configuration file for errors.
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file without running analysis",
	Long: `Load and validate a configuration file, reporting the first error found.

Checks, in order:
1. Schema version is supported
2. Weights lie in [0,1] and sum to at most 1.0
3. Threshold pairs are correctly ordered per family
4. CI fail-under lies in [0,100]

Exits non-zero when the configuration is invalid.

Examples:
  # Validate the discovered config
  repopulse config validate

  # Validate an explicit file
  repopulse config validate --config ./health.yaml`,
	Run: func(_ *cobra.Command, _ []string) {
		path := viper.GetString("config")
		cwd, _ := os.Getwd()
		cfg, err := contract.LoadHealthConfig(path, cwd)
		if err != nil {
			contract.LogFatal("Configuration is invalid", err)
		}
		source := path
		if source == "" {
			source = "defaults (no config file found)"
		} else {
			source = filepath.Clean(source)
		}
		fmt.Printf("Configuration is valid (weights sum to %.2f, source: %s)\n", cfg.Weights.Sum(), source)
	},
}

// configShowCmd prints the effective configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration after merging",
	Long: `Print the configuration the scoring engine would use, after merging any
discovered file over the built-in defaults.

Useful to confirm which overrides took effect when a partial file only names
some of the weights or thresholds.

Examples:
  # Show the effective configuration
  repopulse config show`,
	Run: func(_ *cobra.Command, _ []string) {
		cwd, _ := os.Getwd()
		cfg, err := contract.LoadHealthConfig(viper.GetString("config"), cwd)
		if err != nil {
			contract.LogFatal("Cannot load configuration", err)
		}
		data, err := yaml.Marshal(cfg)
		if err != nil {
			contract.LogFatal("Cannot encode configuration", err)
		}
		fmt.Print(string(data))
	},
}
