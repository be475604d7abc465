// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
	"strings"
	"time"

	"github.com/scorebench/scorebench/schema"
)

// CheckEnv is the execution environment handed to every check: where the
// submission lives and how to run commands against it.
type CheckEnv struct {
	SubmissionDir string
	Runner        CommandRunner
}

// Check produces the raw signal for one component. Implementations report
// measurement failures through the error return; the runner converts both
// errors and panics into an ERROR result, so a misbehaving check can never
// abort the run.
type Check interface {
	Run(ctx context.Context, env CheckEnv) (schema.CheckOutcome, error)
}

// CheckFunc adapts a plain function to the Check interface.
type CheckFunc func(ctx context.Context, env CheckEnv) (schema.CheckOutcome, error)

// Run implements the Check interface.
func (f CheckFunc) Run(ctx context.Context, env CheckEnv) (schema.CheckOutcome, error) {
	return f(ctx, env)
}

// CommandOutput captures one command execution.
type CommandOutput struct {
	Stdout   string
	Stderr   string
	ExitCode int
	Elapsed  time.Duration
}

// Combined returns stdout followed by stderr, trimmed, for detail strings
// and pattern counting.
func (o CommandOutput) Combined() string {
	return strings.TrimSpace(strings.TrimSpace(o.Stdout) + "\n" + strings.TrimSpace(o.Stderr))
}

// CommandRunner defines how check adapters execute external commands.
// This allows the adapters to be tested without spawning real processes.
type CommandRunner interface {
	// Run executes a shell command in dir. A non-zero exit status is data,
	// reported via CommandOutput; the error covers failure to execute at
	// all and context cancellation or timeout.
	Run(ctx context.Context, dir string, command string) (CommandOutput, error)
}

// ReportStore defines the interface for report persistence.
// This allows mocking the store for testing.
type ReportStore interface {
	// SaveReport persists one report record, replacing any record with the
	// same run ID.
	SaveReport(record schema.ReportRecord) error

	// ListReports returns the most recent records, newest first. An empty
	// benchmark filter returns records for all benchmarks.
	ListReports(benchmark string, limit int) ([]schema.ReportRecord, error)

	// GetAllReports retrieves every record in the store, oldest first.
	GetAllReports() ([]schema.ReportRecord, error)

	// GetStatus returns status information about the report store.
	GetStatus() (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager defines the interface for accessing stores.
// This allows the storage layer to be mocked for testing.
type StoreManager interface {
	GetReportStore() ReportStore
}
