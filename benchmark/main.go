// Package main provides a performance benchmarking tool for the Scorebench CLI.
// It measures verification times across synthetic suites of different sizes,
// running each configuration serially and with a worker pool, averaging the runs
// and generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - scorebench binary installed and available in PATH
//
// Usage: go run benchmark/main.go [suite-base-dir]
//
//	suite-base-dir: Directory where synthetic suites are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (serial average, pooled average and speedup).
type BenchmarkResult struct {
	Suite        string
	Command      string
	SerialTime   string
	ParallelTime string
	Speedup      string
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	SuiteBase       string
	Timeout         time.Duration
	Workers         int
	SerialRuns      int
	ParallelRuns    int
	SuiteSizes      []string
	ComponentCounts map[string]int
	BenchmarkCounts map[string]int
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [suite-base-dir]\n", os.Args[0])
		os.Exit(1)
	}
	suiteBase, err := filepath.Abs(os.Args[1])
	if err != nil {
		fmt.Printf("Invalid suite base directory: %v\n", err)
		os.Exit(1)
	}

	config := BenchmarkConfig{
		SuiteBase:    suiteBase,
		Timeout:      2 * time.Minute,
		Workers:      4,
		SerialRuns:   3,
		ParallelRuns: 3,
		SuiteSizes:   []string{"small", "medium", "large"},
		ComponentCounts: map[string]int{
			"small":  4,
			"medium": 16,
			"large":  64,
		},
		BenchmarkCounts: map[string]int{
			"small":  2,
			"medium": 4,
			"large":  8,
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	// Generate the synthetic suites the benchmark runs against
	fmt.Printf("Generating synthetic suites...\n")
	if err := generateSuites(config); err != nil {
		fmt.Printf("Failed to generate suites: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Suites generated under %s\n", config.SuiteBase)

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the scorebench binary is available
func checkPrerequisites(config BenchmarkConfig) error {
	// Check if scorebench is available
	if _, err := exec.LookPath("scorebench"); err != nil {
		return fmt.Errorf("scorebench binary not found in PATH")
	}

	if err := os.MkdirAll(config.SuiteBase, 0o755); err != nil {
		return fmt.Errorf("cannot create suite base directory %s: %w", config.SuiteBase, err)
	}

	return nil
}

// generateSuites writes one synthetic suite per configured size. Every
// benchmark holds equally weighted command checks so worker pools have
// real concurrency to exploit.
func generateSuites(config BenchmarkConfig) error {
	for _, size := range config.SuiteSizes {
		suiteDir := filepath.Join(config.SuiteBase, size)
		for b := 1; b <= config.BenchmarkCounts[size]; b++ {
			dir := filepath.Join(suiteDir, fmt.Sprintf("bench-%d", b))
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
			def := buildDefinition(fmt.Sprintf("%s-bench-%d", size, b), config.ComponentCounts[size])
			if err := os.WriteFile(filepath.Join(dir, "scorebench.yaml"), []byte(def), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildDefinition renders a definition with count equally weighted command checks.
func buildDefinition(name string, count int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "benchmark: %s\nthreshold: 70\ncomponents:\n", name)
	weight := strconv.FormatFloat(1.0/float64(count), 'f', -1, 64)
	for i := 1; i <= count; i++ {
		fmt.Fprintf(&sb, "  - name: comp-%d\n", i)
		fmt.Fprintf(&sb, "    weight: %s\n", weight)
		sb.WriteString("    check:\n")
		sb.WriteString("      type: command\n")
		sb.WriteString("      command: sleep 0.02\n")
	}
	return sb.String()
}

// runBenchmarks executes all benchmark tests across configured suite sizes
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d sizes, %v timeout, %d workers, serial: %d runs, parallel: %d runs\n",
		len(config.SuiteSizes), config.Timeout, config.Workers, config.SerialRuns, config.ParallelRuns)

	for _, size := range config.SuiteSizes {
		fmt.Printf("Benchmarking %s suite\n", size)

		suiteDir := filepath.Join(config.SuiteBase, size)
		submission := filepath.Join(suiteDir, "bench-1")
		resultsDir := filepath.Join(config.SuiteBase, size+"-results")

		// Single verification
		desc := fmt.Sprintf("verification (%d components)", config.ComponentCounts[size])
		result := runBenchmarkSuite(config, size, submission, "verify", desc, nil)
		results = append(results, result)

		// Full suite run
		desc = fmt.Sprintf("suite run (%d benchmarks)", config.BenchmarkCounts[size])
		args := []string{suiteDir, "--submission", submission, "--results-dir", resultsDir}
		result = runBenchmarkSuite(config, size, suiteDir, "run", desc, args)
		results = append(results, result)
	}

	return results
}

// runBenchmarkSuite runs both serial and pooled benchmarks for a command
func runBenchmarkSuite(config BenchmarkConfig, suite, workDir, command, description string, extraArgs []string) BenchmarkResult {
	fmt.Printf("Running %s on %s\n", description, suite)

	// Helper to run a benchmark phase
	runPhase := func(workers, numRuns int, phaseName string) (avg float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		times := runBenchmark(config, workDir, command, extraArgs, workers, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg = sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return avg, avgTime
	}

	// Phase 1: Serial runs
	serialAvg, serialStr := runPhase(1, config.SerialRuns, "Serial")

	// Phase 2: Worker pool runs
	parallelAvg, parallelStr := runPhase(config.Workers, config.ParallelRuns, "Parallel")

	speedup := "N/A"
	if serialAvg > 0 && parallelAvg > 0 {
		speedup = fmt.Sprintf("%.2fx", serialAvg/parallelAvg)
	}

	fmt.Printf("  Serial average: %s, Parallel average: %s, Speedup: %s\n", serialStr, parallelStr, speedup)

	return BenchmarkResult{
		Suite:        suite,
		Command:      command,
		SerialTime:   serialStr,
		ParallelTime: parallelStr,
		Speedup:      speedup,
	}
}

// runBenchmark executes a scorebench command multiple times with the specified worker count and returns elapsed times
func runBenchmark(config BenchmarkConfig, workDir, command string, extraArgs []string, workers, numRuns int) []float64 {
	// Prepare command arguments
	args := []string{command, "--workers", strconv.Itoa(workers)}
	args = append(args, extraArgs...)

	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("scorebench", args...)
		cmd.Dir = workDir

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output, command) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	return times
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte, command string) bool {
	outputStr := string(output)

	if command == "run" {
		return strings.Contains(outputStr, "Passed") &&
			strings.Contains(outputStr, "benchmarks")
	}

	return strings.Contains(outputStr, `"final_score"`) &&
		strings.Contains(outputStr, "/100 [")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/scorebench_benchmark_%s.csv", timestamp)

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
	if err := writer.Write([]string{"suite", "cmd", "serial_avg", "parallel_avg", "speedup"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Suite, result.Command, result.SerialTime, result.ParallelTime, result.Speedup}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")

	printCommandSummary(results, "verify", "Single Verification:")
	printCommandSummary(results, "run", "Suite Runs:")

	fmt.Printf("Benchmark script completed successfully\n")
}

// printCommandSummary displays results for a specific command type
func printCommandSummary(results []BenchmarkResult, command, title string) {
	fmt.Printf("%s\n", title)
	for _, result := range results {
		if result.Command == command {
			fmt.Printf("  %-12s: Serial: %s, Parallel: %s, Speedup: %s\n", result.Suite, result.SerialTime, result.ParallelTime, result.Speedup)
		}
	}
}
