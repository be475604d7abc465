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

// PrintReportHistory outputs stored report rows, dispatching based on the output format configured.
func PrintReportHistory(records []schema.ReportRecord, cfg *contract.Config) error {
	// Dispatcher: Handle different output formats
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeHistoryJSONResults(records, cfg); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeHistoryCSVResults(records, cfg); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeHistoryTable(records, cfg, w)
		}, "Wrote table")
	}
	return nil
}

// writeHistoryJSONResults handles opening the file and calling the JSON writer.
func writeHistoryJSONResults(records []schema.ReportRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeJSONResultsForHistory(w, records)
	}, "Wrote JSON")
}

// writeHistoryCSVResults handles opening the file and calling the CSV writer.
func writeHistoryCSVResults(records []schema.ReportRecord, cfg *contract.Config) error {
	return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
		return writeCSVResultsForHistory(w, records)
	}, "Wrote CSV")
}

// writeHistoryTable generates and writes the human-readable table.
func writeHistoryTable(records []schema.ReportRecord, cfg *contract.Config, writer io.Writer) error {
	table := tablewriter.NewWriter(writer)

	// 1. Define Headers
	headers := []string{"Run", "Benchmark", "Submission", "Score", "Label", "Result", "Created"}
	table.Header(headers)

	// 2. Right-align everything; score columns read better that way
	table.Configure(func(tcfg *tablewriter.Config) {
		tcfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	var data [][]string
	maxPath := GetMaxTablePathWidth(cfg)
	for _, r := range records {
		result := contract.GetPlainResultLabel(r.Passed)
		if cfg.UseColors {
			result = contract.GetColorResultLabel(r.Passed)
		}
		row := []string{
			shortRunID(r.RunID),                      // Run
			r.Benchmark,                              // Benchmark
			contract.TruncatePath(r.Submission, maxPath), // Submission
			strconv.Itoa(r.FinalScore),               // Score
			scoreLabel(cfg, float64(r.FinalScore)),   // Label
			result,                                   // Result
			r.CreatedAt.Format("2006-01-02 15:04:05"), // Created
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

	// Compute summary stats
	passed := 0
	for _, r := range records {
		if r.Passed {
			passed++
		}
	}
	if _, err := fmt.Fprintf(writer, "Showing %d reports (%d passed). Store backend: %s\n", len(records), passed, cfg.StoreBackend); err != nil {
		return err
	}
	return nil
}
