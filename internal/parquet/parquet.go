// Package parquet provides data structures and functions for exporting
// report history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/scorebench/scorebench/schema"
)

// ReportRow represents one scored verification run for export.
// This struct maps to the scorebench_reports database table.
type ReportRow struct {
	// RunID is the unique identifier for this verification run
	RunID string `parquet:"run_id,snappy"`

	// Benchmark is the name of the benchmark that was scored
	Benchmark string `parquet:"benchmark,snappy"`

	// Submission is the path of the submission that was scored (nullable)
	Submission *string `parquet:"submission,optional,snappy"`

	// BaseScore is the weighted sum before penalties
	BaseScore float64 `parquet:"base_score,snappy"`

	// FinalScore is the integer score after penalties and rounding
	FinalScore int32 `parquet:"final_score,snappy"`

	// Passed indicates whether the final score met the threshold
	Passed bool `parquet:"passed,snappy"`

	// Threshold is the pass threshold the run was judged against
	Threshold int32 `parquet:"threshold,snappy"`

	// ReportJSON contains the full JSON-encoded score report
	ReportJSON string `parquet:"report_json,snappy"`

	// CreatedAt is when the run completed (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`
}

// WriteReportHistory writes a slice of ReportRow structs to a Parquet file.
func WriteReportHistory(data []ReportRow, outputPath string) error {
	// Create the output file
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// Create a Parquet writer using struct schema inference
	// The schema is automatically derived from the ReportRow struct tags
	writer := parquet.NewGenericWriter[ReportRow](file)
	defer func() { _ = writer.Close() }()

	// Write all records to the file
	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertReportRecords converts schema.ReportRecord to ReportRow for Parquet export.
func ConvertReportRecords(records []schema.ReportRecord) []ReportRow {
	result := make([]ReportRow, len(records))
	for i, record := range records {
		var submission *string
		if record.Submission != "" {
			submission = &record.Submission
		}
		result[i] = ReportRow{
			RunID:      record.RunID,
			Benchmark:  record.Benchmark,
			Submission: submission,
			BaseScore:  record.BaseScore,
			FinalScore: int32(record.FinalScore),
			Passed:     record.Passed,
			Threshold:  int32(record.Threshold),
			ReportJSON: record.ReportJSON,
			CreatedAt:  record.CreatedAt,
		}
	}
	return result
}

// MockFetchReportRows generates sample ReportRow data for demonstration.
func MockFetchReportRows() []ReportRow {
	now := time.Now()
	submission1 := "/work/submissions/checkout-api"
	submission2 := "/work/submissions/cache-layer"

	return []ReportRow{
		{
			RunID:      "6f1df2f5-0c6a-4c3a-9a58-3f3f6e2a9d01",
			Benchmark:  "fastapi-checkout",
			Submission: &submission1,
			BaseScore:  92.0,
			FinalScore: 92,
			Passed:     true,
			Threshold:  70,
			ReportJSON: `{"benchmark":"fastapi-checkout","final_score":92,"passed":true}`,
			CreatedAt:  now.Add(-2 * time.Hour),
		},
		{
			RunID:      "6f1df2f5-0c6a-4c3a-9a58-3f3f6e2a9d02",
			Benchmark:  "redis-clone",
			Submission: &submission2,
			BaseScore:  58.4,
			FinalScore: 52,
			Passed:     false,
			Threshold:  70,
			ReportJSON: `{"benchmark":"redis-clone","final_score":52,"passed":false}`,
			CreatedAt:  now.Add(-1 * time.Hour),
		},
		{
			RunID:      "6f1df2f5-0c6a-4c3a-9a58-3f3f6e2a9d03",
			Benchmark:  "fastapi-checkout",
			Submission: nil, // scored from the current directory - nullable field
			BaseScore:  76.5,
			FinalScore: 76,
			Passed:     true,
			Threshold:  70,
			ReportJSON: `{"benchmark":"fastapi-checkout","final_score":76,"passed":true}`,
			CreatedAt:  now.Add(-10 * time.Minute),
		},
	}
}
