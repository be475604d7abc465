package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// ComputeLeaderboard folds stored report records into per-benchmark
// statistics sorted by average final score in descending order. Benchmarks
// with equal averages tie-break alphabetically so the ranking is stable
// across runs.
func ComputeLeaderboard(records []schema.ReportRecord) []schema.BenchmarkStats {
	grouped := make(map[string][]schema.ReportRecord)
	for _, record := range records {
		grouped[record.Benchmark] = append(grouped[record.Benchmark], record)
	}

	stats := make([]schema.BenchmarkStats, 0, len(grouped))
	for benchmark, group := range grouped {
		stats = append(stats, summarize(benchmark, group))
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].AvgScore != stats[j].AvgScore {
			return stats[i].AvgScore > stats[j].AvgScore
		}
		return stats[i].Benchmark < stats[j].Benchmark
	})
	return stats
}

// LoadResultsDir reads saved report files from a results directory. Both
// flat report files and combined batch artifacts are accepted; batch files
// contribute every entry under their results key. Files that parse as
// neither shape are skipped with a warning so one stray file cannot sink
// the whole leaderboard.
func LoadResultsDir(dir string) ([]schema.BatchEntry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, contract.ConfigurationErrorf("cannot read results directory %s: %w", dir, err)
	}

	var entries []schema.BatchEntry
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".json") {
			continue
		}
		path := filepath.Join(dir, de.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping result file %s", path), err)
			continue
		}
		fileEntries, err := decodeResultFile(data)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping result file %s", path), err)
			continue
		}
		entries = append(entries, fileEntries...)
	}
	return entries, nil
}

// decodeResultFile interprets one JSON file as either a batch artifact or a
// single report. A flat report also unmarshals cleanly into BatchResult
// (with zero results), so the batch shape is detected by its entries.
func decodeResultFile(data []byte) ([]schema.BatchEntry, error) {
	var batch schema.BatchResult
	if err := json.Unmarshal(data, &batch); err == nil && len(batch.Results) > 0 {
		return batch.Results, nil
	}

	var report schema.ScoreReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, err
	}
	if report.Benchmark == "" {
		return nil, fmt.Errorf("result file has no benchmark name")
	}
	return []schema.BatchEntry{{Benchmark: report.Benchmark, Report: report}}, nil
}

// RecordsFromEntries converts loaded batch entries into store records so
// the leaderboard math has a single input shape. Entries that errored
// before scoring carry no report and are dropped.
func RecordsFromEntries(entries []schema.BatchEntry) []schema.ReportRecord {
	records := make([]schema.ReportRecord, 0, len(entries))
	for _, entry := range entries {
		if entry.Error != "" {
			continue
		}
		created, err := time.Parse(time.RFC3339, entry.Report.Timestamp)
		if err != nil {
			created = time.Time{}
		}
		records = append(records, schema.ReportRecord{
			RunID:      entry.RunID,
			Benchmark:  EntryBenchmark(entry),
			BaseScore:  entry.Report.BaseScore,
			FinalScore: entry.Report.FinalScore,
			Passed:     entry.Report.Passed,
			CreatedAt:  created,
		})
	}
	return records
}

// EntryBenchmark returns the benchmark name of an entry, falling back to
// the report's own name for flat result files.
func EntryBenchmark(entry schema.BatchEntry) string {
	if entry.Benchmark != "" {
		return entry.Benchmark
	}
	return entry.Report.Benchmark
}

// summarize reduces one benchmark's records to its headline numbers.
func summarize(benchmark string, records []schema.ReportRecord) schema.BenchmarkStats {
	total := 0
	passed := 0
	minScore := records[0].FinalScore
	maxScore := records[0].FinalScore
	for _, record := range records {
		total += record.FinalScore
		if record.Passed {
			passed++
		}
		if record.FinalScore < minScore {
			minScore = record.FinalScore
		}
		if record.FinalScore > maxScore {
			maxScore = record.FinalScore
		}
	}

	runs := len(records)
	return schema.BenchmarkStats{
		Benchmark: benchmark,
		Runs:      runs,
		AvgScore:  float64(total) / float64(runs),
		MinScore:  minScore,
		MaxScore:  maxScore,
		PassRate:  float64(passed) / float64(runs),
	}
}
