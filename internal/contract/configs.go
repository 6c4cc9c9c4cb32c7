package contract

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/repopulse/repopulse/schema"
)

// SupportedConfigVersion is the single schema version this build understands.
const SupportedConfigVersion = 1

// Default values for runtime configuration.
const (
	DefaultPrecision       = 2
	DefaultAnalyzerTimeout = 30 * time.Second
	DefaultFailUnder       = 60
)

// DefaultWorkers is the default number of concurrent analyzer workers.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Weights holds the per-metric-family contribution coefficients.
// Each weight lies in [0,1]; their sum must not exceed 1.0.
type Weights struct {
	GitRecency      float64 `mapstructure:"gitRecency" yaml:"gitRecency" json:"gitRecency"`
	GitContributors float64 `mapstructure:"gitContributors" yaml:"gitContributors" json:"gitContributors"`
	CodeLOC         float64 `mapstructure:"codeLOC" yaml:"codeLOC" json:"codeLOC"`
	LintWarnings    float64 `mapstructure:"lintWarnings" yaml:"lintWarnings" json:"lintWarnings"`
	LintErrors      float64 `mapstructure:"lintErrors" yaml:"lintErrors" json:"lintErrors"`
	DepsOutdated    float64 `mapstructure:"depsOutdated" yaml:"depsOutdated" json:"depsOutdated"`
}

// Named returns all weights with their configuration key, in a fixed order.
func (w Weights) Named() []struct {
	Key   string
	Value float64
} {
	return []struct {
		Key   string
		Value float64
	}{
		{"weights.gitRecency", w.GitRecency},
		{"weights.gitContributors", w.GitContributors},
		{"weights.codeLOC", w.CodeLOC},
		{"weights.lintWarnings", w.LintWarnings},
		{"weights.lintErrors", w.LintErrors},
		{"weights.depsOutdated", w.DepsOutdated},
	}
}

// Sum returns the total of all configured family weights.
func (w Weights) Sum() float64 {
	var sum float64
	for _, nw := range w.Named() {
		sum += nw.Value
	}
	return sum
}

// Thresholds holds the warn/fail boundary pairs that shape the normalization
// curves. For "lower is better" families warn < fail; for coverage
// ("higher is better") fail < warn.
type Thresholds struct {
	GitRecencyWarnDays  float64 `mapstructure:"gitRecencyWarnDays" yaml:"gitRecencyWarnDays" json:"gitRecencyWarnDays"`
	GitRecencyFailDays  float64 `mapstructure:"gitRecencyFailDays" yaml:"gitRecencyFailDays" json:"gitRecencyFailDays"`
	LintWarningsWarn    float64 `mapstructure:"lintWarningsWarn" yaml:"lintWarningsWarn" json:"lintWarningsWarn"`
	LintWarningsFail    float64 `mapstructure:"lintWarningsFail" yaml:"lintWarningsFail" json:"lintWarningsFail"`
	LintErrorsWarn      float64 `mapstructure:"lintErrorsWarn" yaml:"lintErrorsWarn" json:"lintErrorsWarn"`
	LintErrorsFail      float64 `mapstructure:"lintErrorsFail" yaml:"lintErrorsFail" json:"lintErrorsFail"`
	DepsOutdatedWarnPct float64 `mapstructure:"depsOutdatedWarnPct" yaml:"depsOutdatedWarnPct" json:"depsOutdatedWarnPct"`
	DepsOutdatedFailPct float64 `mapstructure:"depsOutdatedFailPct" yaml:"depsOutdatedFailPct" json:"depsOutdatedFailPct"`
	TestCoverageWarn    float64 `mapstructure:"testCoverageWarn" yaml:"testCoverageWarn" json:"testCoverageWarn"`
	TestCoverageFail    float64 `mapstructure:"testCoverageFail" yaml:"testCoverageFail" json:"testCoverageFail"`
}

// CISettings holds the pass/fail policy applied after scoring.
type CISettings struct {
	FailUnder int `mapstructure:"failUnder" yaml:"failUnder" json:"failUnder"`
}

// HealthConfig is the validated set of weights, thresholds, and pass/fail
// policy for a run. It is constructed once, validated once, then read-only;
// the scoring engine never mutates it.
type HealthConfig struct {
	Version    int        `mapstructure:"version" yaml:"version" json:"version"`
	Weights    Weights    `mapstructure:"weights" yaml:"weights" json:"weights"`
	Thresholds Thresholds `mapstructure:"thresholds" yaml:"thresholds" json:"thresholds"`
	CI         CISettings `mapstructure:"ci" yaml:"ci" json:"ci"`
	Plugins    []string   `mapstructure:"plugins" yaml:"plugins,omitempty" json:"plugins,omitempty"`
}

// DefaultHealthConfig returns the built-in configuration. Its weights sum to
// exactly 1.00 and it always passes validation.
func DefaultHealthConfig() *HealthConfig {
	return &HealthConfig{
		Version: SupportedConfigVersion,
		Weights: Weights{
			GitRecency:      0.20,
			GitContributors: 0.10,
			CodeLOC:         0.20,
			LintWarnings:    0.15,
			LintErrors:      0.20,
			DepsOutdated:    0.15,
		},
		Thresholds: Thresholds{
			GitRecencyWarnDays:  7,
			GitRecencyFailDays:  30,
			LintWarningsWarn:    10,
			LintWarningsFail:    100,
			LintErrorsWarn:      1,
			LintErrorsFail:      10,
			DepsOutdatedWarnPct: 20,
			DepsOutdatedFailPct: 50,
			TestCoverageWarn:    0.80,
			TestCoverageFail:    0.40,
		},
		CI: CISettings{FailUnder: DefaultFailUnder},
	}
}

// Clone returns a deep copy of the health configuration.
func (c *HealthConfig) Clone() *HealthConfig {
	clone := *c
	if c.Plugins != nil {
		clone.Plugins = make([]string, len(c.Plugins))
		copy(clone.Plugins, c.Plugins)
	}
	return &clone
}

// HealthConfigRawInput mirrors HealthConfig with pointer-optional fields so a
// partially specified file only overrides what it names.
type HealthConfigRawInput struct {
	Version    *int                `mapstructure:"version" yaml:"version"`
	Weights    WeightsRawInput     `mapstructure:"weights" yaml:"weights"`
	Thresholds ThresholdsRawInput  `mapstructure:"thresholds" yaml:"thresholds"`
	CI         CISettingsRawInput  `mapstructure:"ci" yaml:"ci"`
	Plugins    []string            `mapstructure:"plugins" yaml:"plugins"`
}

// WeightsRawInput holds optional weight overrides.
type WeightsRawInput struct {
	GitRecency      *float64 `mapstructure:"gitRecency" yaml:"gitRecency"`
	GitContributors *float64 `mapstructure:"gitContributors" yaml:"gitContributors"`
	CodeLOC         *float64 `mapstructure:"codeLOC" yaml:"codeLOC"`
	LintWarnings    *float64 `mapstructure:"lintWarnings" yaml:"lintWarnings"`
	LintErrors      *float64 `mapstructure:"lintErrors" yaml:"lintErrors"`
	DepsOutdated    *float64 `mapstructure:"depsOutdated" yaml:"depsOutdated"`
}

// ThresholdsRawInput holds optional threshold overrides.
type ThresholdsRawInput struct {
	GitRecencyWarnDays  *float64 `mapstructure:"gitRecencyWarnDays" yaml:"gitRecencyWarnDays"`
	GitRecencyFailDays  *float64 `mapstructure:"gitRecencyFailDays" yaml:"gitRecencyFailDays"`
	LintWarningsWarn    *float64 `mapstructure:"lintWarningsWarn" yaml:"lintWarningsWarn"`
	LintWarningsFail    *float64 `mapstructure:"lintWarningsFail" yaml:"lintWarningsFail"`
	LintErrorsWarn      *float64 `mapstructure:"lintErrorsWarn" yaml:"lintErrorsWarn"`
	LintErrorsFail      *float64 `mapstructure:"lintErrorsFail" yaml:"lintErrorsFail"`
	DepsOutdatedWarnPct *float64 `mapstructure:"depsOutdatedWarnPct" yaml:"depsOutdatedWarnPct"`
	DepsOutdatedFailPct *float64 `mapstructure:"depsOutdatedFailPct" yaml:"depsOutdatedFailPct"`
	TestCoverageWarn    *float64 `mapstructure:"testCoverageWarn" yaml:"testCoverageWarn"`
	TestCoverageFail    *float64 `mapstructure:"testCoverageFail" yaml:"testCoverageFail"`
}

// CISettingsRawInput holds optional CI policy overrides.
type CISettingsRawInput struct {
	FailUnder *int `mapstructure:"failUnder" yaml:"failUnder"`
}

// MergeRawInput layers a raw input over the defaults and returns the merged
// configuration. The result still needs Validate.
func MergeRawInput(raw *HealthConfigRawInput) *HealthConfig {
	cfg := DefaultHealthConfig()
	if raw == nil {
		return cfg
	}
	if raw.Version != nil {
		cfg.Version = *raw.Version
	}

	w := &cfg.Weights
	setF(&w.GitRecency, raw.Weights.GitRecency)
	setF(&w.GitContributors, raw.Weights.GitContributors)
	setF(&w.CodeLOC, raw.Weights.CodeLOC)
	setF(&w.LintWarnings, raw.Weights.LintWarnings)
	setF(&w.LintErrors, raw.Weights.LintErrors)
	setF(&w.DepsOutdated, raw.Weights.DepsOutdated)

	t := &cfg.Thresholds
	setF(&t.GitRecencyWarnDays, raw.Thresholds.GitRecencyWarnDays)
	setF(&t.GitRecencyFailDays, raw.Thresholds.GitRecencyFailDays)
	setF(&t.LintWarningsWarn, raw.Thresholds.LintWarningsWarn)
	setF(&t.LintWarningsFail, raw.Thresholds.LintWarningsFail)
	setF(&t.LintErrorsWarn, raw.Thresholds.LintErrorsWarn)
	setF(&t.LintErrorsFail, raw.Thresholds.LintErrorsFail)
	setF(&t.DepsOutdatedWarnPct, raw.Thresholds.DepsOutdatedWarnPct)
	setF(&t.DepsOutdatedFailPct, raw.Thresholds.DepsOutdatedFailPct)
	setF(&t.TestCoverageWarn, raw.Thresholds.TestCoverageWarn)
	setF(&t.TestCoverageFail, raw.Thresholds.TestCoverageFail)

	if raw.CI.FailUnder != nil {
		cfg.CI.FailUnder = *raw.CI.FailUnder
	}
	if raw.Plugins != nil {
		cfg.Plugins = make([]string, len(raw.Plugins))
		copy(cfg.Plugins, raw.Plugins)
	}
	return cfg
}

func setF(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

// Config holds the final, validated runtime configuration for a CLI invocation.
// Health is the validated scoring configuration; the remaining fields control
// execution and output.
type Config struct {
	ProjectRoot      string
	Output           schema.OutputMode
	OutputFile       string
	Precision        int
	Workers          int
	AnalyzerTimeout  time.Duration
	UseColors        bool
	Width            int // Terminal width override (0 = auto-detect)
	FailUnder        int // Resolved pass/fail floor (flag overrides config)
	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext
	GitHubRepo       string // Optional "owner/repo" for remote metrics
	GitHubToken      string
	ListenAddr       string // serve command bind address

	Health *HealthConfig
}

// Clone returns a deep copy so per-request overrides never mutate the base
// configuration.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Health != nil {
		clone.Health = c.Health.Clone()
	}
	return &clone
}

// ConfigRawInput holds the raw, unvalidated runtime inputs from all sources
// (flags, env, config file). Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set manually from positional args, so no tag.
	ProjectRootStr string

	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Workers          int    `mapstructure:"workers"`
	TimeoutStr       string `mapstructure:"timeout"`
	Color            string `mapstructure:"color"`
	Width            int    `mapstructure:"width"`
	FailUnder        int    `mapstructure:"fail-under"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	GitHubRepo       string `mapstructure:"github-repo"`
	GitHubToken      string `mapstructure:"github-token"`
	ListenAddr       string `mapstructure:"listen"`
}

// ProcessAndValidate performs all parsing and validation on the raw runtime
// inputs and populates the final Config. The health configuration is loaded
// and validated separately and passed in already checked.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput, health *HealthConfig) error {
	cfg.Health = health
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.GitHubRepo = input.GitHubRepo
	cfg.GitHubToken = input.GitHubToken
	cfg.ListenAddr = input.ListenAddr

	// --- Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json", input.Output)
	}

	// --- Precision Validation ---
	if input.Precision < 1 || input.Precision > 4 {
		return fmt.Errorf("precision must be between 1 and 4 (received %d)", input.Precision)
	}
	cfg.Precision = input.Precision

	// --- Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- Analyzer Timeout ---
	cfg.AnalyzerTimeout = DefaultAnalyzerTimeout
	if input.TimeoutStr != "" {
		d, err := time.ParseDuration(input.TimeoutStr)
		if err != nil {
			return fmt.Errorf("invalid --timeout value '%s': %w", input.TimeoutStr, err)
		}
		if d <= 0 {
			return fmt.Errorf("timeout must be positive (received %s)", d)
		}
		cfg.AnalyzerTimeout = d
	}

	// --- Color Flag ---
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- Fail-Under Resolution ---
	// The flag overrides the configured ci.failUnder; -1 means "not set".
	cfg.FailUnder = health.CI.FailUnder
	if input.FailUnder >= 0 {
		if input.FailUnder > 100 {
			return fmt.Errorf("fail-under must be between 0 and 100 (received %d)", input.FailUnder)
		}
		cfg.FailUnder = input.FailUnder
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return err
	}

	// --- Project Root Resolution ---
	root, err := ResolveProjectRoot(input.ProjectRootStr)
	if err != nil {
		return err
	}
	cfg.ProjectRoot = root

	return nil
}

// ValidateDatabaseConnectionString validates the format of database connection
// strings for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}
