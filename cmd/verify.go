package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scorebench/scorebench/engine"
	"github.com/scorebench/scorebench/internal/benchdef"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/outwriter"
	"github.com/scorebench/scorebench/schema"
	"github.com/spf13/cobra"
)

// verifyCmd focused on scoring a single submission.
var verifyCmd = &cobra.Command{
	Use:   "verify [submission-dir]",
	Short: "Score a submission against a benchmark definition (fails build below threshold)",
	Long: `Run every component check declared in the benchmark definition against a
submission directory and aggregate the results into one weighted score.

The JSON report is written to stdout; progress lines go to stderr. The exit
code is 0 when the final score meets the pass threshold and 1 otherwise, so
the command can gate CI/CD pipelines directly.

The definition is read from scorebench.yaml inside the submission directory
unless --definition points elsewhere.

Use cases:
- Pull request gates - block merges when the score drops below threshold
- Grading harnesses - produce machine-readable component breakdowns
- Local iteration - rerun scoring while working on a submission

Examples:
  # Score the current directory
  scorebench verify

  # Score another directory with an external definition
  scorebench verify ./submission --definition ./bench/scorebench.yaml

  # Tighten the gate and run checks in parallel
  scorebench verify ./submission --threshold 85 --workers 4

  # Keep a history of runs in SQLite
  scorebench verify ./submission --store-backend sqlite`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		report, err := executeVerify(rootCtx)
		if err != nil {
			contract.LogFatal("Verification failed", err)
		}
		if !report.Passed {
			exitFail()
		}
	},
}

// executeVerify runs the scoring pipeline for one submission and emits the
// report. The returned report carries the pass/fail gate for the exit code.
func executeVerify(ctx context.Context) (*schema.ScoreReport, error) {
	bench, err := loadBenchmark()
	if err != nil {
		return nil, err
	}

	outcome, err := engine.Verify(ctx, cfg, bench)
	if err != nil {
		return nil, err
	}

	ow := outwriter.NewOutWriter()
	rendered, err := ow.WriteReport(outcome.Report, cfg)
	if err != nil {
		return nil, err
	}

	saveReport(outcome, bench.EffectiveThreshold(cfg), rendered)
	engine.LogRunSummary(cfg, outcome.Report)
	return outcome.Report, nil
}

// loadBenchmark resolves the definition path and loads the benchmark,
// applying the --benchmark name override when present.
func loadBenchmark() (*engine.Benchmark, error) {
	path := cfg.DefinitionPath
	if path == "" {
		path = filepath.Join(cfg.SubmissionDir, schema.DefinitionFileName)
	}
	bench, err := benchdef.Load(path)
	if err != nil {
		return nil, err
	}
	if cfg.BenchmarkName != "" {
		bench.Name = cfg.BenchmarkName
	}
	return bench, nil
}

// saveReport persists a run to the report store when a backend is
// configured. Persistence problems never fail the verification itself.
func saveReport(outcome *engine.RunOutcome, threshold int, rendered string) {
	if cfg.StoreBackend == schema.NoneBackend || storeManager == nil {
		return
	}

	record := schema.ReportRecord{
		RunID:      outcome.RunID,
		Benchmark:  outcome.Report.Benchmark,
		Submission: cfg.SubmissionDir,
		BaseScore:  outcome.Report.BaseScore,
		FinalScore: outcome.Report.FinalScore,
		Passed:     outcome.Report.Passed,
		Threshold:  threshold,
		ReportJSON: rendered,
		CreatedAt:  time.Now().UTC(),
	}
	if err := storeManager.GetReportStore().SaveReport(record); err != nil {
		contract.LogWarn("Failed to save report", err)
		return
	}

	if cfg.UseEmojis {
		fmt.Fprintf(os.Stderr, "💾 Saved report %s to %s store\n", outcome.RunID, cfg.StoreBackend)
	} else {
		fmt.Fprintf(os.Stderr, "Saved report %s to %s store\n", outcome.RunID, cfg.StoreBackend)
	}
}
