package cmd

import (
	"context"

	"github.com/scorebench/scorebench/engine"
	"github.com/scorebench/scorebench/internal/benchdef"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/outwriter"
	"github.com/scorebench/scorebench/schema"
	"github.com/spf13/cobra"
)

// runCmd focused on batch scoring across a benchmark suite.
var runCmd = &cobra.Command{
	Use:   "run <suite-dir>",
	Short: "Score one submission against every benchmark in a suite",
	Long: `Discover every benchmark definition under a suite directory and verify the
submission against each one in turn.

Each benchmark gets its own report; the batch is written to the results
directory as one JSON artifact per benchmark plus a combined batch file.
A benchmark whose definition fails to load is recorded with its error and
does not stop the rest of the suite.

The exit code is 0 only when every benchmark in the suite passed.

Examples:
  # Score the current directory against a suite
  scorebench run ./benchmarks

  # Score another submission and collect artifacts elsewhere
  scorebench run ./benchmarks --submission ./candidate --results-dir ./out

  # Parallel checks within each benchmark
  scorebench run ./benchmarks --workers 4`,
	Args:    cobra.ExactArgs(1),
	PreRunE: suiteSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		batch, err := executeRun(rootCtx)
		if err != nil {
			contract.LogFatal("Suite run failed", err)
		}
		if !batch.AllPassed() {
			exitFail()
		}
	},
}

// executeRun discovers the suite, scores every benchmark and writes the
// batch artifacts.
func executeRun(ctx context.Context) (*schema.BatchResult, error) {
	dirs, err := benchdef.Discover(cfg.SuiteDir)
	if err != nil {
		return nil, err
	}

	batch, err := engine.RunSuite(ctx, cfg, dirs, benchdef.LoadFromDir)
	if err != nil {
		return nil, err
	}

	ow := outwriter.NewOutWriter()
	if err := ow.WriteBatch(batch, cfg); err != nil {
		return nil, err
	}
	return batch, nil
}
