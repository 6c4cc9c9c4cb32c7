package analyzer

import (
	"bufio"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/repopulse/repopulse/internal/contract"
	"github.com/repopulse/repopulse/schema"
)

// defaultExcludes are path patterns skipped during the source tree walk.
var defaultExcludes = []string{
	".git/", "vendor/", "node_modules/", "dist/", "build/", "target/",
	".venv/", "__pycache__/", "*.min.js", "*.pb.go",
}

// sourceExtensions maps recognized source file extensions to their
// line-comment prefix.
var sourceExtensions = map[string]string{
	".go":    "//",
	".js":    "//",
	".jsx":   "//",
	".ts":    "//",
	".tsx":   "//",
	".java":  "//",
	".c":     "//",
	".h":     "//",
	".cpp":   "//",
	".hpp":   "//",
	".cs":    "//",
	".rs":    "//",
	".swift": "//",
	".kt":    "//",
	".py":    "#",
	".rb":    "#",
	".sh":    "#",
	".pl":    "#",
	".ex":    "#",
	".exs":   "#",
}

// fileStats holds the line tally of one source file.
type fileStats struct {
	lines    int64
	comments int64
}

// CodeAnalyzer measures the source tree: total lines, mean file size, and
// comment density.
type CodeAnalyzer struct {
	excludes []string
}

var _ contract.Analyzer = (*CodeAnalyzer)(nil)

// NewCodeAnalyzer creates an analyzer with the default exclude patterns.
func NewCodeAnalyzer() *CodeAnalyzer {
	return &CodeAnalyzer{excludes: defaultExcludes}
}

// Name implements the contract.Analyzer interface.
func (a *CodeAnalyzer) Name() string { return "code" }

// Gather implements the contract.Analyzer interface. Unreadable files are
// skipped; an empty tree yields no metrics and an info diagnostic.
func (a *CodeAnalyzer) Gather(ctx context.Context, cfg *contract.Config) ([]schema.Metric, []schema.Diagnostic, error) {
	var totalLines, totalComments int64
	var fileCount int64

	err := filepath.WalkDir(cfg.ProjectRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, rerr := filepath.Rel(cfg.ProjectRoot, path)
		if rerr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && contract.ShouldIgnore(rel+"/", a.excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if contract.ShouldIgnore(rel, a.excludes) {
			return nil
		}

		prefix, ok := sourceExtensions[strings.ToLower(filepath.Ext(path))]
		if !ok {
			return nil
		}

		stats, serr := countFileLines(path, prefix)
		if serr != nil {
			return nil
		}
		totalLines += stats.lines
		totalComments += stats.comments
		fileCount++
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	if fileCount == 0 {
		return nil, []schema.Diagnostic{{
			Level:   schema.InfoLevel,
			Message: "no recognized source files found, code metrics skipped",
		}}, nil
	}

	metrics := []schema.Metric{
		{
			ID:       schema.MetricCodeLinesTotal,
			Title:    "Total lines of code",
			Category: schema.CodeCategory,
			Value:    schema.CountValue(totalLines),
			Unit:     "lines",
			Details:  map[string]string{"files": strconv.FormatInt(fileCount, 10)},
		},
		{
			ID:       schema.MetricCodeFilesAvgSize,
			Title:    "Mean file size",
			Category: schema.CodeCategory,
			Value:    schema.NumberValue(float64(totalLines) / float64(fileCount)),
			Unit:     "lines",
		},
	}
	if totalLines > 0 {
		metrics = append(metrics, schema.Metric{
			ID:       schema.MetricCodeCommentsDensity,
			Title:    "Comment density",
			Category: schema.CodeCategory,
			Value:    schema.RatioValue(float64(totalComments) / float64(totalLines)),
		})
	}
	return metrics, nil, nil
}

// countFileLines tallies non-blank lines and line comments in one file.
func countFileLines(path string, commentPrefix string) (fileStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return fileStats{}, err
	}
	defer f.Close()

	var stats fileStats
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		stats.lines++
		if strings.HasPrefix(line, commentPrefix) {
			stats.comments++
		}
	}
	return stats, scanner.Err()
}
