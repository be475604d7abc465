package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

func TestComputeLeaderboard(t *testing.T) {
	records := []schema.ReportRecord{
		{Benchmark: "parser", FinalScore: 90, Passed: true},
		{Benchmark: "parser", FinalScore: 70, Passed: true},
		{Benchmark: "cache", FinalScore: 100, Passed: true},
		{Benchmark: "scheduler", FinalScore: 10, Passed: false},
		{Benchmark: "scheduler", FinalScore: 30, Passed: false},
	}

	stats := ComputeLeaderboard(records)
	require.Len(t, stats, 3)

	assert.Equal(t, "cache", stats[0].Benchmark)
	assert.Equal(t, 1, stats[0].Runs)
	assert.InDelta(t, 100.0, stats[0].AvgScore, 1e-9)
	assert.InDelta(t, 1.0, stats[0].PassRate, 1e-9)

	assert.Equal(t, "parser", stats[1].Benchmark)
	assert.Equal(t, 2, stats[1].Runs)
	assert.InDelta(t, 80.0, stats[1].AvgScore, 1e-9)
	assert.Equal(t, 70, stats[1].MinScore)
	assert.Equal(t, 90, stats[1].MaxScore)
	assert.InDelta(t, 1.0, stats[1].PassRate, 1e-9)

	assert.Equal(t, "scheduler", stats[2].Benchmark)
	assert.InDelta(t, 20.0, stats[2].AvgScore, 1e-9)
	assert.Equal(t, 10, stats[2].MinScore)
	assert.Equal(t, 30, stats[2].MaxScore)
	assert.InDelta(t, 0.0, stats[2].PassRate, 1e-9)
}

func TestComputeLeaderboardTieBreak(t *testing.T) {
	records := []schema.ReportRecord{
		{Benchmark: "zeta", FinalScore: 50, Passed: false},
		{Benchmark: "alpha", FinalScore: 50, Passed: false},
	}

	stats := ComputeLeaderboard(records)
	require.Len(t, stats, 2)
	assert.Equal(t, "alpha", stats[0].Benchmark)
	assert.Equal(t, "zeta", stats[1].Benchmark)
}

func TestComputeLeaderboardEmpty(t *testing.T) {
	assert.Empty(t, ComputeLeaderboard(nil))
}

// writeResultFile drops a JSON fixture into a results directory.
func writeResultFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadResultsDir(t *testing.T) {
	dir := t.TempDir()

	// Flat report file
	writeResultFile(t, dir, "parser_20260314_120000.json", `{
  "benchmark": "parser",
  "timestamp": "2026-03-14T12:00:00Z",
  "components": {"tests": {"score": 90, "weight": 1, "details": "ok"}},
  "base_score": 90,
  "penalties": {"time_penalty": 0, "iteration_penalty": 0, "error_penalty": 0},
  "final_score": 90,
  "passed": true
}`)

	// Batch artifact with a scored and an errored entry
	writeResultFile(t, dir, "batch_results_20260314_130000.json", `{
  "run_id": "batch-1",
  "timestamp": "2026-03-14T13:00:00Z",
  "submission": "/work/sub",
  "results": [
    {"benchmark": "cache", "run_id": "batch-1-0001", "report": {
      "benchmark": "cache", "timestamp": "2026-03-14T13:00:00Z",
      "components": {}, "base_score": 100,
      "penalties": {"time_penalty": 0, "iteration_penalty": 0, "error_penalty": 0},
      "final_score": 100, "passed": true}},
    {"benchmark": "broken", "report": {"benchmark": "", "timestamp": "", "components": {}, "base_score": 0, "penalties": {"time_penalty": 0, "iteration_penalty": 0, "error_penalty": 0}, "final_score": 0, "passed": false}, "error": "definition not found"}
  ]
}`)

	// Noise that must be skipped, not fatal
	writeResultFile(t, dir, "notes.txt", "not json")
	writeResultFile(t, dir, "garbage.json", "{nope")

	entries, err := LoadResultsDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, EntryBenchmark(entry))
	}
	assert.ElementsMatch(t, []string{"parser", "cache", "broken"}, names)
}

func TestLoadResultsDirMissing(t *testing.T) {
	_, err := LoadResultsDir(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, contract.IsConfigurationError(err))
}

func TestRecordsFromEntries(t *testing.T) {
	entries := []schema.BatchEntry{
		{
			Benchmark: "parser",
			RunID:     "run-1",
			Report: schema.ScoreReport{
				Benchmark:  "parser",
				Timestamp:  "2026-03-14T12:00:00Z",
				BaseScore:  90.5,
				FinalScore: 90,
				Passed:     true,
			},
		},
		{Benchmark: "broken", Error: "definition not found"},
		{
			// Flat result files have no entry-level name
			Report: schema.ScoreReport{
				Benchmark:  "cache",
				Timestamp:  "not-a-time",
				FinalScore: 40,
			},
		},
	}

	records := RecordsFromEntries(entries)
	require.Len(t, records, 2)

	assert.Equal(t, "parser", records[0].Benchmark)
	assert.Equal(t, "run-1", records[0].RunID)
	assert.Equal(t, 90, records[0].FinalScore)
	assert.InDelta(t, 90.5, records[0].BaseScore, 1e-9)
	assert.True(t, records[0].Passed)
	assert.True(t, records[0].CreatedAt.Equal(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)))

	assert.Equal(t, "cache", records[1].Benchmark)
	assert.True(t, records[1].CreatedAt.IsZero())
}
