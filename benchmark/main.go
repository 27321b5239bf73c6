// Package main provides a performance benchmarking tool for the rtps CLI.
// It measures execution times of the table-loading commands across data
// directories, running each command multiple times without a cache and with
// the SQLite table cache. The first cached run is reported as cold and the
// rest are averaged as warm. Results are written as CSV.
//
// Prerequisites:
// - rtps binary installed and available in PATH
// - One or more data directories holding the source-class tables
//
// Usage: go run benchmark/main.go <data-dir>...
package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (no-cache average, cold run and average of warm runs).
type BenchmarkResult struct {
	DataDir     string
	Command     string
	NoCacheTime string
	ColdTime    string
	WarmTime    string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	DataDirs    []string
	Timeout     time.Duration
	Workers     int
	NoCacheRuns int
	CacheRuns   int
	Commands    map[string][]string // Command name to extra arguments
	CacheDB     string
}

// completionPhrases identify a successful run of each command on stderr or stdout.
var completionPhrases = map[string]string{
	"plot":    "Plotted",
	"classes": "Loaded in",
	"check":   "class tables loaded",
}

func main() {
	if len(os.Args) < 2 {
		fmt.Printf("Usage: %s <data-dir>...\n", os.Args[0])
		os.Exit(1)
	}

	scratch, err := os.MkdirTemp("", "rtps-benchmark-*")
	if err != nil {
		fmt.Printf("Failed to create scratch dir: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = os.RemoveAll(scratch) }()

	config := BenchmarkConfig{
		DataDirs:    os.Args[1:],
		Timeout:     2 * time.Minute,
		Workers:     8,
		NoCacheRuns: 3,
		CacheRuns:   4,
		Commands: map[string][]string{
			"plot":    {"--output-dir", filepath.Join(scratch, "Plots"), "--formats", "png"},
			"classes": nil,
			"check":   nil,
		},
		CacheDB: filepath.Join(scratch, "cache.db"),
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

// checkPrerequisites verifies that the rtps binary and the data directories exist.
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("rtps"); err != nil {
		return fmt.Errorf("rtps binary not found in PATH")
	}
	for _, dir := range config.DataDirs {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			return fmt.Errorf("data directory %s not found", dir)
		}
	}
	return nil
}

// runBenchmarks executes every command against every data directory.
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d data dirs, %v timeout, %d workers, no-cache: %d runs, cache: %d runs\n",
		len(config.DataDirs), config.Timeout, config.Workers, config.NoCacheRuns, config.CacheRuns)

	for _, dir := range config.DataDirs {
		fmt.Printf("Benchmarking %s\n", dir)
		for _, command := range []string{"check", "classes", "plot"} {
			results = append(results, runBenchmarkSuite(config, dir, command))
		}
	}
	return results
}

// runBenchmarkSuite runs both no-cache and cache benchmarks for a command.
func runBenchmarkSuite(config BenchmarkConfig, dataDir, command string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", command, dataDir)

	runPhase := func(cacheBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dataDir, command, cacheBackend, numRuns)
		if len(times) == 0 {
			return cold, "TIMEOUT"
		}
		var sum float64
		for _, t := range times {
			sum += t
		}
		return cold, fmt.Sprintf("%.3fs", sum/float64(len(times)))
	}

	// Phase 1: No-cache runs
	_, noCacheAvg := runPhase("none", config.NoCacheRuns, "No-cache")

	// Phase 2: Cache runs, starting from an empty cache
	_ = os.Remove(config.CacheDB)
	coldTime, warmAvg := runPhase("sqlite", config.CacheRuns, "Cache")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  No-cache average: %s, Cold time: %s, Warm average: %s\n", noCacheAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		DataDir:     dataDir,
		Command:     command,
		NoCacheTime: noCacheAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes an rtps command multiple times with the given cache
// backend and returns the first successful time and the remaining times.
func runBenchmark(config BenchmarkConfig, dataDir, command, cacheBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{command,
		"--data-dir", dataDir,
		"--workers", fmt.Sprint(config.Workers),
		"--cache-backend", cacheBackend,
	}
	if cacheBackend == "sqlite" {
		args = append(args, "--cache-db-connect", config.CacheDB)
	}
	args = append(args, config.Commands[command]...)

	var times []float64
	for range numRuns {
		ctx, cancel := context.WithTimeout(context.Background(), config.Timeout)
		start := time.Now()
		output, err := exec.CommandContext(ctx, "rtps", args...).CombinedOutput()
		elapsed := time.Since(start).Seconds()
		cancel()
		if err == nil && isSuccess(output, command) {
			times = append(times, elapsed)
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return coldTime, warmTimes
}

// isSuccess checks if command output indicates successful completion.
func isSuccess(output []byte, command string) bool {
	phrase, ok := completionPhrases[command]
	return !ok || strings.Contains(string(output), phrase)
}

// saveResults writes benchmark results to a timestamped CSV file.
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(os.TempDir(), fmt.Sprintf("rtps_benchmark_%s.csv", timestamp))

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
	if err := writer.Write([]string{"data_dir", "cmd", "no_cache_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, result := range results {
		if err := writer.Write([]string{result.DataDir, result.Command, result.NoCacheTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary.
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "check", "Data Check:")
	printCommandSummary(results, "classes", "Class Summary:")
	printCommandSummary(results, "plot", "Phase Space Render:")
}

// printCommandSummary displays results for a specific command type.
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-24s: No-cache: %s, Cold: %s, Warm: %s\n", result.DataDir, result.NoCacheTime, result.ColdTime, result.WarmTime)
		}
	}
}
