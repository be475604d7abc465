package schema

import "time"

// ReportRecord represents a row from the scorebench_reports table.
type ReportRecord struct {
	RunID      string
	Benchmark  string
	Submission string
	BaseScore  float64
	FinalScore int
	Passed     bool
	Threshold  int
	ReportJSON string
	CreatedAt  time.Time
}

// StoreStatus represents the status of the report store.
type StoreStatus struct {
	Backend         string    `json:"backend"`
	Connected       bool      `json:"connected"`
	TotalReports    int       `json:"total_reports"`
	LastReportTime  time.Time `json:"last_report_time"`
	OldestReport    time.Time `json:"oldest_report_time"`
	PassedReports   int       `json:"passed_reports"`
	TableSizeBytes  int64     `json:"table_size_bytes"`
	DistinctBenches int       `json:"distinct_benchmarks"`
}
