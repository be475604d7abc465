package outwriter

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// writeJSONResultsForHistory writes stored report rows in JSON format.
func writeJSONResultsForHistory(w io.Writer, records []schema.ReportRecord) error {
	// 1. Prepare the data structure for JSON. Store rows carry no tags of
	// their own, so the wire shape is pinned here.
	type JSONReportRecord struct {
		RunID      string  `json:"run_id"`
		Benchmark  string  `json:"benchmark"`
		Submission string  `json:"submission,omitempty"`
		BaseScore  float64 `json:"base_score"`
		FinalScore int     `json:"final_score"`
		Passed     bool    `json:"passed"`
		Threshold  int     `json:"threshold"`
		CreatedAt  string  `json:"created_at"`
	}

	output := make([]JSONReportRecord, len(records))
	for i, r := range records {
		output[i] = JSONReportRecord{
			RunID:      r.RunID,
			Benchmark:  r.Benchmark,
			Submission: r.Submission,
			BaseScore:  r.BaseScore,
			FinalScore: r.FinalScore,
			Passed:     r.Passed,
			Threshold:  r.Threshold,
			CreatedAt:  r.CreatedAt.Format(contract.DateTimeFormat),
		}
	}

	// 2. Use the generic JSON writer
	return writeJSON(w, output)
}

// RenderHistory returns stored report rows as an indented JSON string in
// the same wire shape the history command emits. MCP handlers return this
// shape directly.
func RenderHistory(records []schema.ReportRecord) (string, error) {
	var buf bytes.Buffer
	if err := writeJSONResultsForHistory(&buf, records); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// writeCSVResultsForHistory writes stored report rows in CSV format.
func writeCSVResultsForHistory(w io.Writer, records []schema.ReportRecord) error {
	header := []string{
		"run_id",
		"benchmark",
		"submission",
		"base_score",
		"final_score",
		"passed",
		"threshold",
		"created_at",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range records {
			rec := []string{
				r.RunID,      // Run ID
				r.Benchmark,  // Benchmark
				r.Submission, // Submission Path
				strconv.FormatFloat(r.BaseScore, 'f', 2, 64),  // Base Score
				strconv.Itoa(r.FinalScore),                    // Final Score
				strconv.FormatBool(r.Passed),                  // Passed
				strconv.Itoa(r.Threshold),                     // Threshold
				r.CreatedAt.Format(contract.DateTimeFormat),   // Created At
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}
