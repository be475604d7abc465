package engine

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// BenchmarkLoader loads a benchmark definition rooted at a directory.
type BenchmarkLoader func(cfg *contract.Config, dir string) (*Benchmark, error)

// RunSuite verifies one submission against every benchmark in a suite and
// collects the per-benchmark reports into a batch result. A benchmark that
// fails to load or validate is recorded in the batch with its error and
// does not stop the remaining benchmarks.
func RunSuite(ctx context.Context, cfg *contract.Config, dirs []string, load BenchmarkLoader) (*schema.BatchResult, error) {
	if len(dirs) == 0 {
		return nil, contract.ConfigurationErrorf("suite has no benchmark definitions under %s", cfg.SuiteDir)
	}

	batchID := uuid.NewString()
	batch := &schema.BatchResult{
		RunID:      batchID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Submission: cfg.SubmissionDir,
	}

	for i, dir := range dirs {
		bench, err := load(cfg, dir)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping benchmark at %s", dir), err)
			batch.Results = append(batch.Results, schema.BatchEntry{
				Benchmark: filepath.Base(dir),
				Error:     err.Error(),
			})
			continue
		}

		LogSuiteProgress(cfg, i+1, len(dirs), bench.Name)
		runID := fmt.Sprintf("%s-%04d", batchID, i+1)
		runCtx := WithRunID(WithSuppressProgress(ctx), runID)
		outcome, err := Verify(runCtx, cfg, bench)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Skipping benchmark %s", bench.Name), err)
			batch.Results = append(batch.Results, schema.BatchEntry{
				Benchmark: bench.Name,
				RunID:     runID,
				Error:     err.Error(),
			})
			continue
		}
		batch.Results = append(batch.Results, schema.BatchEntry{
			Benchmark: bench.Name,
			RunID:     outcome.RunID,
			Report:    *outcome.Report,
		})

		if ctx.Err() != nil {
			// Cancellation already marked the in-flight benchmark; stop
			// instead of burning through the remaining ones.
			break
		}
	}
	return batch, nil
}
