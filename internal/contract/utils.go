package contract

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/repopulse/repopulse/schema"
)

// Color variables for console output, one per band.
var (
	ExcellentColor = color.New(color.FgGreen, color.Bold)
	GoodColor      = color.New(color.FgCyan)
	FairColor      = color.New(color.FgYellow)
	PoorColor      = color.New(color.FgRed, color.Bold)
)

// GetColorBandLabel returns the band label wrapped in its console color.
func GetColorBandLabel(band schema.ScoreBand) string {
	text := band.Label()
	switch band {
	case schema.ExcellentBand:
		return ExcellentColor.Sprint(text)
	case schema.GoodBand:
		return GoodColor.Sprint(text)
	case schema.FairBand:
		return FairColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// ParseBoolString parses yes/no style flag values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "yes", "true", "1", "on":
		return true, nil
	case "no", "false", "0", "off":
		return false, nil
	default:
		return false, fmt.Errorf("expected yes/no/true/false/1/0 (received %q)", s)
	}
}

// SelectOutputFile returns the file handle for output, falling back to stdout
// when no path is configured.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ResolveProjectRoot turns a user-supplied path into an absolute directory.
func ResolveProjectRoot(path string) (string, error) {
	if path == "" {
		path = "."
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	abs = filepath.Clean(abs)

	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("project path %q is not accessible: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("project path %q is not a directory", abs)
	}
	return abs, nil
}

// ShouldIgnore returns true if the given path matches any of the exclude
// patterns. It supports simple glob patterns (using filepath.Match) when the
// pattern contains wildcard characters (*, ?, [ ]). Patterns ending with '/'
// are treated as prefixes. Patterns starting with '.' are treated as suffix
// (extension) matches. A user can provide patterns like "vendor/",
// "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// TruncateMiddle shortens a string to maxLen, keeping head and tail visible.
func TruncateMiddle(s string, maxLen int) string {
	if maxLen <= 0 || len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	keep := maxLen - 3
	head := keep / 2
	tail := keep - head
	return s[:head] + "..." + s[len(s)-tail:]
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Warning %s: %v\n", msg, err)
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "Warning %s\n", msg)
}

// execRunner shells out to the named tool.
type execRunner struct{}

var _ CommandRunner = execRunner{} // Compile-time check

// NewExecRunner returns a CommandRunner backed by os/exec.
func NewExecRunner() CommandRunner {
	return execRunner{}
}

// Run executes the command in dir and returns stdout. Stderr is discarded;
// analyzers that care about stderr content parse combined output themselves.
func (execRunner) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok && len(ee.Stderr) > 0 {
			return out, fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(ee.Stderr)))
		}
		return out, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}
