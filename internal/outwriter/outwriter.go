// Package outwriter has output and writer logic.
package outwriter

import (
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the command layer.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteReport emits a verification report in the external JSON contract
// and returns the rendered string.
func (ow *OutWriter) WriteReport(report *schema.ScoreReport, cfg *contract.Config) (string, error) {
	return EmitReport(report, cfg.OutputFile)
}

// WriteHistory prints stored report rows using the configured output format.
func (ow *OutWriter) WriteHistory(records []schema.ReportRecord, cfg *contract.Config) error {
	return PrintReportHistory(records, cfg)
}

// WriteLeaderboard prints per-benchmark statistics using the configured output format.
func (ow *OutWriter) WriteLeaderboard(stats []schema.BenchmarkStats, entries []schema.BatchEntry, cfg *contract.Config) error {
	return PrintLeaderboard(stats, entries, cfg)
}

// WriteBatch saves batch artifacts to the results directory and prints the
// per-benchmark summary.
func (ow *OutWriter) WriteBatch(batch *schema.BatchResult, cfg *contract.Config) error {
	if err := SaveBatchArtifacts(batch, cfg.ResultsDir); err != nil {
		return err
	}
	PrintBatchSummary(batch, cfg)
	return nil
}
