package outwriter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PrintLeaderboard outputs per-benchmark statistics, dispatching based on
// the output format configured. Markdown is the default so results paste
// straight into a PR or status report; the loaded entries feed the per-run
// component breakdown in the markdown view.
func PrintLeaderboard(stats []schema.BenchmarkStats, entries []schema.BatchEntry, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeLeaderboardJSONResults(stats, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeLeaderboardCSVResults(stats, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardTable(stats, cfg, w)
		}, "Wrote table")
	default:
		// Default to markdown
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLeaderboardMarkdown(stats, entries, w)
		}, "Wrote markdown")
	}
	return nil
}

// writeLeaderboardJSONResults handles opening the file and calling the JSON writer.
func writeLeaderboardJSONResults(stats []schema.BenchmarkStats, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForLeaderboard(w, stats)
	}, "Wrote JSON")
}

// writeLeaderboardCSVResults handles opening the file and calling the CSV writer.
func writeLeaderboardCSVResults(stats []schema.BenchmarkStats, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForLeaderboard(w, stats)
	}, "Wrote CSV")
}

// writeLeaderboardTable generates and writes the human-readable table.
func writeLeaderboardTable(stats []schema.BenchmarkStats, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Rank", "Benchmark", "Runs", "Avg", "Min", "Max", "Pass Rate", "Label"}
	table.Header(headers)

	// 2. Right-align everything; score columns read better that way
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	for i, s := range stats {
		row := []string{
			strconv.Itoa(i + 1),             // Rank
			s.Benchmark,                     // Benchmark
			strconv.Itoa(s.Runs),            // Runs
			fmt.Sprintf("%.1f", s.AvgScore), // Avg
			strconv.Itoa(s.MinScore),        // Min
			strconv.Itoa(s.MaxScore),        // Max
			formatPassRate(s.PassRate),      // Pass Rate
			scoreLabel(cfg, s.AvgScore),     // Label
		}
		data = append(data, row)
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(writer, "Showing %d benchmarks\n", len(stats)); err != nil {
		return err
	}
	return nil
}

// writeLeaderboardMarkdown writes the stats table plus a component
// breakdown of each benchmark's most recent run.
func writeLeaderboardMarkdown(stats []schema.BenchmarkStats, entries []schema.BatchEntry, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "# Benchmark Leaderboard\n\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "| Rank | Benchmark | Runs | Avg | Min | Max | Pass Rate | Label |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "|---:|:---|---:|---:|---:|---:|---:|:---|\n"); err != nil {
		return err
	}
	for i, s := range stats {
		if _, err := fmt.Fprintf(w, "| %d | %s | %d | %.1f | %d | %d | %s | %s |\n",
			i+1, s.Benchmark, s.Runs, s.AvgScore, s.MinScore, s.MaxScore,
			formatPassRate(s.PassRate), schema.GetPlainLabel(s.AvgScore)); err != nil {
			return err
		}
	}

	latest := latestEntryPerBenchmark(entries)
	for _, s := range stats {
		entry, ok := latest[s.Benchmark]
		if !ok {
			continue
		}
		if err := writeBreakdownMarkdown(w, entry); err != nil {
			return err
		}
	}
	return nil
}

// writeBreakdownMarkdown writes one run's weighted contribution table.
func writeBreakdownMarkdown(w io.Writer, entry schema.BatchEntry) error {
	title := entryName(entry)
	if entry.RunID != "" {
		title = fmt.Sprintf("%s (run %s)", title, shortRunID(entry.RunID))
	}
	if _, err := fmt.Fprintf(w, "\n## %s\n\n", title); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "| Component | Score | Weight | Contribution |\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "|:---|---:|---:|---:|\n"); err != nil {
		return err
	}
	for _, row := range schema.BreakdownRows(&entry.Report) {
		if _, err := fmt.Fprintf(w, "| %s | %d | %.2f | %.1f |\n",
			row.Component, row.Score, row.Weight, row.Contribution); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "\nFinal: %d/100 (base %.1f, passed: %t)\n",
		entry.Report.FinalScore, entry.Report.BaseScore, entry.Report.Passed); err != nil {
		return err
	}
	return nil
}

// latestEntryPerBenchmark picks the newest scored run for each benchmark.
// Report timestamps are RFC3339 UTC, so string order matches time order.
func latestEntryPerBenchmark(entries []schema.BatchEntry) map[string]schema.BatchEntry {
	latest := make(map[string]schema.BatchEntry)
	for _, entry := range entries {
		if entry.Error != "" {
			continue
		}
		name := entryName(entry)
		current, ok := latest[name]
		if !ok || entry.Report.Timestamp >= current.Report.Timestamp {
			latest[name] = entry
		}
	}
	return latest
}
