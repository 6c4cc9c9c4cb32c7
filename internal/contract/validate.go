package contract

// weightSumEpsilon absorbs float accumulation noise when comparing the weight
// sum against the 1.0 budget.
const weightSumEpsilon = 1e-9

// thresholdPair names a warn/fail boundary pair for validation messages.
type thresholdPair struct {
	field string
	warn  float64
	fail  float64
}

// Validate enforces the cross-field invariants of a HealthConfig. It is pure,
// side-effect free, and runs exactly once after construction. Checks run in a
// fixed order and short-circuit on the first failure. A nil return means the
// configuration is safe for the scoring engine, which trusts it unconditionally.
func Validate(cfg *HealthConfig) *ConfigError {
	// 1. Schema version.
	if cfg.Version != SupportedConfigVersion {
		return newConfigError(UnsupportedVersionKind, "version",
			"unsupported config version %d (supported: %d)", cfg.Version, SupportedConfigVersion)
	}

	// 2. Every weight must be non-negative.
	for _, nw := range cfg.Weights.Named() {
		if nw.Value < 0 {
			return newConfigError(InvalidWeightsKind, nw.Key,
				"weight must be >= 0 (received %g)", nw.Value)
		}
	}

	// 3. Weights must fit the 1.0 budget.
	if sum := cfg.Weights.Sum(); sum > 1.0+weightSumEpsilon {
		return newConfigError(InvalidWeightsKind, "weights",
			"weights must sum to at most 1.0 (received %.4f)", sum)
	}

	// 4. Lower-is-better pairs need warn < fail, otherwise the curve between
	// them is not well-defined.
	t := cfg.Thresholds
	lowerBetter := []thresholdPair{
		{"thresholds.gitRecency", t.GitRecencyWarnDays, t.GitRecencyFailDays},
		{"thresholds.lintWarnings", t.LintWarningsWarn, t.LintWarningsFail},
		{"thresholds.lintErrors", t.LintErrorsWarn, t.LintErrorsFail},
		{"thresholds.depsOutdated", t.DepsOutdatedWarnPct, t.DepsOutdatedFailPct},
	}
	for _, p := range lowerBetter {
		if p.warn >= p.fail {
			return newConfigError(InvalidThresholdsKind, p.field,
				"warn (%g) must be less than fail (%g)", p.warn, p.fail)
		}
	}

	// 5. Coverage is higher-is-better: fail < warn.
	if t.TestCoverageFail >= t.TestCoverageWarn {
		return newConfigError(InvalidThresholdsKind, "thresholds.testCoverage",
			"fail (%g) must be less than warn (%g)", t.TestCoverageFail, t.TestCoverageWarn)
	}

	// 6. CI policy range.
	if cfg.CI.FailUnder < 0 || cfg.CI.FailUnder > 100 {
		return newConfigError(InvalidCISettingsKind, "ci.failUnder",
			"failUnder must be between 0 and 100 (received %d)", cfg.CI.FailUnder)
	}

	return nil
}
