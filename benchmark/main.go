// Package main provides a performance benchmarking tool for the Repopulse CLI.
// It measures scoring times across different repository sizes, running each
// test multiple times and averaging the results, generating CSV output for
// performance analysis and documentation.
//
// Prerequisites:
// - repopulse binary installed and available in PATH
// - Test repositories cloned to the specified base directory
// - Git repositories: csv-parser, fd, git, kubernetes
//
// Usage: go run benchmark/main.go [repo-base-dir]
//
//	repo-base-dir: Directory containing test repositories
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the averaged timings of one command on one repository.
type BenchmarkResult struct {
	Repository  string
	Command     string
	AverageTime string
	BestTime    string
	WorstTime   string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	RepoBase  string
	Timeout   time.Duration
	Runs      int
	TestRepos []string
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [repo-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	repoBase := os.Args[1]

	config := BenchmarkConfig{
		RepoBase:  repoBase,
		Timeout:   5 * time.Minute,
		Runs:      5,
		TestRepos: []string{"csv-parser", "fd", "git", "kubernetes"},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the repopulse binary and test repositories exist
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if repopulse is available
	if _, err := exec.LookPath("repopulse"); err != nil {
		return fmt.Errorf("repopulse binary not found in PATH")
	}

	// Check if repositories exist
	for _, repo := range config.TestRepos {
		repoPath := filepath.Join(config.RepoBase, repo)
		if _, err := os.Stat(repoPath); os.IsNotExist(err) {
			return fmt.Errorf("repository %s not found at %s", repo, repoPath)
		}
	}

	return nil
}

// runBenchmarks executes all benchmark tests across configured repositories
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d repos, %v timeout, %d runs each\n",
		len(config.TestRepos), config.Timeout, config.Runs)

	for _, repo := range config.TestRepos {
		fmt.Printf("Benchmarking %s\n", repo)

		repoPath := filepath.Join(config.RepoBase, repo)

		// Full scoring pass, history disabled so every run pays full cost
		results = append(results, runBenchmarkSuite(config, repo, repoPath,
			"score", "full scoring pass", "--history-backend none"))

		// Scoring with SQLite history tracking enabled
		results = append(results, runBenchmarkSuite(config, repo, repoPath,
			"score-tracked", "scoring with history tracking", "--history-backend sqlite"))
	}

	return results
}

// runBenchmarkSuite runs one benchmarked command and aggregates its timings
func runBenchmarkSuite(config BenchmarkConfig, repo, repoPath, label, description, extraArgs string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, repo)

	times := runBenchmark(config, repoPath, extraArgs)

	avg, best, worst := "TIMEOUT", "TIMEOUT", "TIMEOUT"
	if len(times) > 0 {
		var sum float64
		minT, maxT := times[0], times[0]
		for _, t := range times {
			sum += t
			if t < minT {
				minT = t
			}
			if t > maxT {
				maxT = t
			}
		}
		avg = fmt.Sprintf("%.3fs", sum/float64(len(times)))
		best = fmt.Sprintf("%.3fs", minT)
		worst = fmt.Sprintf("%.3fs", maxT)
	}

	fmt.Printf("  Average: %s, Best: %s, Worst: %s\n", avg, best, worst)

	return BenchmarkResult{
		Repository:  repo,
		Command:     label,
		AverageTime: avg,
		BestTime:    best,
		WorstTime:   worst,
	}
}

// runBenchmark executes repopulse score multiple times and returns wall times of successful runs
func runBenchmark(config BenchmarkConfig, repoPath, extraArgs string) []float64 {
	args := []string{"score", "--output", "json"}
	if extraArgs != "" {
		args = append(args, parseArgs(extraArgs)...)
	}

	var times []float64
	for run := 1; run <= config.Runs; run++ {
		start := time.Now()

		cmd := exec.Command("repopulse", args...)
		cmd.Dir = repoPath

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	return times
}

func parseArgs(argsStr string) []string {
	var args []string
	var current strings.Builder
	inQuotes := false

	for _, r := range argsStr {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ' ':
			if !inQuotes && current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			} else if inQuotes {
				current.WriteRune(r)
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}

// isSuccess checks if command output looks like a complete JSON report
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, `"run_id"`) && strings.Contains(outputStr, `"score"`)
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/repopulse_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"repo", "cmd", "avg_time", "best_time", "worst_time"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Repository, result.Command, result.AverageTime, result.BestTime, result.WorstTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "score", "Full Scoring:")
	printCommandSummary(results, "score-tracked", "Scoring With History:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Avg: %s, Best: %s, Worst: %s\n", result.Repository, result.AverageTime, result.BestTime, result.WorstTime)
		}
	}
}
