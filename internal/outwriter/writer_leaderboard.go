package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/scorebench/scorebench/schema"
)

// writeJSONResultsForLeaderboard writes leaderboard stats in JSON format.
func writeJSONResultsForLeaderboard(w io.Writer, stats []schema.BenchmarkStats) error {
	return writeJSON(w, schema.EnrichStats(stats))
}

// writeCSVResultsForLeaderboard writes leaderboard stats in CSV format.
func writeCSVResultsForLeaderboard(w io.Writer, stats []schema.BenchmarkStats) error {
	header := []string{
		"rank",
		"benchmark",
		"runs",
		"avg_score",
		"min_score",
		"max_score",
		"pass_rate",
		"label",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, s := range stats {
			rec := []string{
				strconv.Itoa(i + 1),                          // Rank
				s.Benchmark,                                  // Benchmark
				strconv.Itoa(s.Runs),                         // Runs
				strconv.FormatFloat(s.AvgScore, 'f', 2, 64),  // Avg Score
				strconv.Itoa(s.MinScore),                     // Min Score
				strconv.Itoa(s.MaxScore),                     // Max Score
				strconv.FormatFloat(s.PassRate, 'f', 2, 64),  // Pass Rate
				schema.GetPlainLabel(s.AvgScore),             // Label
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
