package schema

// Custom string types for type safety.
type (
	// ValueKind discriminates the active variant of a MetricValue.
	ValueKind string

	// MetricCategory groups metrics by their producing analyzer family.
	MetricCategory string

	// DiagnosticLevel represents the severity of a diagnostic.
	DiagnosticLevel string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for score history.
	DatabaseBackend string
)

// All metric value kinds supported.
const (
	NumberKind   ValueKind = "number"
	CountKind    ValueKind = "count"
	LabelKind    ValueKind = "label"
	RatioKind    ValueKind = "ratio"
	DurationKind ValueKind = "duration"
)

// All metric categories supported.
const (
	GitCategory          MetricCategory = "git"
	DependenciesCategory MetricCategory = "dependencies"
	CodeCategory         MetricCategory = "code"
	LintCategory         MetricCategory = "lint"
	TestCategory         MetricCategory = "test"
	BuildCategory        MetricCategory = "build"
)

// All diagnostic levels supported.
const (
	InfoLevel    DiagnosticLevel = "info"
	WarningLevel DiagnosticLevel = "warning"
	ErrorLevel   DiagnosticLevel = "error"
)

// All output modes supported.
const (
	TextOut OutputMode = "text" // default
	CSVOut  OutputMode = "csv"
	JSONOut OutputMode = "json"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Stable metric identifiers known to the scoring engine.
const (
	MetricGitRecency          = "git.recency"
	MetricGitContributors     = "git.contributors30d"
	MetricGitMessageQuality   = "git.message.quality"
	MetricGitConventional     = "git.message.conventional"
	MetricGitBranchCount      = "git.branch.count"
	MetricGitMergePercentage  = "git.merge.percentage"
	MetricCodeCommentsDensity = "code.comments.density"
	MetricCodeFilesAvgSize    = "code.files.avgSize"
	MetricCodeLinesTotal      = "code.lines.total"
	MetricLintWarnings        = "lint.warnings"
	MetricLintErrors          = "lint.errors"
	MetricDepsOutdated        = "deps.outdated"
	MetricDepsDirect          = "deps.direct"
	MetricTestCoverage        = "test.coverage"
	MetricDeadCode            = "code.dead.symbols"
)

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut: {},
	CSVOut:  {},
	JSONOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidCategories lists all valid metric categories.
var ValidCategories = map[MetricCategory]struct{}{
	GitCategory:          {},
	DependenciesCategory: {},
	CodeCategory:         {},
	LintCategory:         {},
	TestCategory:         {},
	BuildCategory:        {},
}
