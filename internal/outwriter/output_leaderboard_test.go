package outwriter

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func leaderboardStats() []schema.BenchmarkStats {
	return []schema.BenchmarkStats{
		{Benchmark: "fastapi-checkout", Runs: 3, AvgScore: 85.3, MinScore: 76, MaxScore: 92, PassRate: 1},
		{Benchmark: "redis-clone", Runs: 2, AvgScore: 42, MinScore: 32, MaxScore: 52, PassRate: 0},
	}
}

func leaderboardEntries() []schema.BatchEntry {
	var components schema.ComponentScores
	components.Add("tests", schema.ComponentScore{Score: 100, Weight: 0.6, Details: "18/18 tests passed"})
	components.Add("quality", schema.ComponentScore{Score: 80, Weight: 0.4, Details: "scorer reported 80"})

	return []schema.BatchEntry{
		{
			Benchmark: "fastapi-checkout",
			RunID:     "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809",
			Report: schema.ScoreReport{
				Benchmark:  "fastapi-checkout",
				Timestamp:  "2026-03-14T12:00:00Z",
				Components: components,
				BaseScore:  92,
				FinalScore: 92,
				Passed:     true,
			},
		},
	}
}

func TestWriteLeaderboardMarkdown(t *testing.T) {
	var buf bytes.Buffer

	err := writeLeaderboardMarkdown(leaderboardStats(), leaderboardEntries(), &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "# Benchmark Leaderboard")
	assert.Contains(t, output, "| 1 | fastapi-checkout | 3 | 85.3 | 76 | 92 | 100% | Passing |")
	assert.Contains(t, output, "| 2 | redis-clone | 2 | 42.0 | 32 | 52 | 0% | Weak |")

	// Breakdown of the most recent run: score x weight = contribution
	assert.Contains(t, output, "## fastapi-checkout (run 1a2b3c4d)")
	assert.Contains(t, output, "| tests | 100 | 0.60 | 60.0 |")
	assert.Contains(t, output, "| quality | 80 | 0.40 | 32.0 |")
	assert.Contains(t, output, "Final: 92/100 (base 92.0, passed: true)")
}

func TestWriteLeaderboardTable(t *testing.T) {
	cfg := &contract.Config{Width: 120}
	var buf bytes.Buffer

	err := writeLeaderboardTable(leaderboardStats(), cfg, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "fastapi-checkout")
	assert.Contains(t, output, "85.3")
	assert.Contains(t, output, "100%")
	assert.Contains(t, output, "Showing 2 benchmarks")
}

func TestWriteCSVResultsForLeaderboard(t *testing.T) {
	var buf bytes.Buffer

	err := writeCSVResultsForLeaderboard(&buf, leaderboardStats())
	require.NoError(t, err)

	expected := "rank,benchmark,runs,avg_score,min_score,max_score,pass_rate,label\n" +
		"1,fastapi-checkout,3,85.30,76,92,1.00,Passing\n" +
		"2,redis-clone,2,42.00,32,52,0.00,Weak\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteJSONResultsForLeaderboard(t *testing.T) {
	var buf bytes.Buffer

	err := writeJSONResultsForLeaderboard(&buf, leaderboardStats())
	require.NoError(t, err)

	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)
	assert.Equal(t, float64(1), parsed[0]["rank"])
	assert.Equal(t, "fastapi-checkout", parsed[0]["benchmark"])
	assert.Equal(t, 85.3, parsed[0]["avg_score"])
	assert.Equal(t, "Passing", parsed[0]["label"])
	assert.Equal(t, "Weak", parsed[1]["label"])
}

func TestLatestEntryPerBenchmark(t *testing.T) {
	older := leaderboardEntries()[0]
	newer := older
	newer.RunID = "ffffffff-0000-0000-0000-000000000000"
	newer.Report.Timestamp = "2026-03-14T13:00:00Z"
	errored := schema.BatchEntry{Benchmark: "fastapi-checkout", Error: "definition not found"}

	latest := latestEntryPerBenchmark([]schema.BatchEntry{older, errored, newer})
	require.Len(t, latest, 1)
	assert.Equal(t, newer.RunID, latest["fastapi-checkout"].RunID)
}

func TestPrintLeaderboardDefaultsToMarkdown(t *testing.T) {
	// Markdown has no dedicated case in the dispatcher; anything that is
	// not json, csv or table lands there
	cfg := &contract.Config{Output: schema.MarkdownOut}
	require.NoError(t, PrintLeaderboard(leaderboardStats(), leaderboardEntries(), cfg))
}
