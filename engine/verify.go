package engine

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// VerifyRunBuilder assembles one verification run using a builder pattern.
type VerifyRunBuilder struct {
	ctx     context.Context
	cfg     *contract.Config
	bench   *Benchmark
	env     contract.CheckEnv
	runID   string
	start   time.Time
	results []schema.CheckResult
	report  *schema.ScoreReport
}

// NewVerifyRunBuilder creates a new builder for one submission run.
func NewVerifyRunBuilder(ctx context.Context, cfg *contract.Config, bench *Benchmark) *VerifyRunBuilder {
	runID, ok := runIDFrom(ctx)
	if !ok {
		runID = uuid.NewString()
	}
	return &VerifyRunBuilder{
		ctx:   ctx,
		cfg:   cfg,
		bench: bench,
		env: contract.CheckEnv{
			SubmissionDir: cfg.SubmissionDir,
			Runner:        contract.NewLocalShellRunner(),
		},
		runID: runID,
		start: time.Now(),
	}
}

// WithRunner overrides the command runner handed to checks. Tests use this
// to avoid spawning real processes.
func (b *VerifyRunBuilder) WithRunner(runner contract.CommandRunner) *VerifyRunBuilder {
	b.env.Runner = runner
	return b
}

// ValidateDefinition validates the component registry before anything runs.
func (b *VerifyRunBuilder) ValidateDefinition() (*VerifyRunBuilder, error) {
	if err := b.bench.Registry.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// CheckDeliverables verifies that every required artifact exists in the
// submission. Any missing artifact short-circuits the run to an all-zero
// report; checks never execute against an incomplete submission.
func (b *VerifyRunBuilder) CheckDeliverables() *VerifyRunBuilder {
	missing := missingDeliverables(b.cfg.SubmissionDir, b.bench.Deliverables)
	if len(missing) == 0 {
		return b
	}

	logMissingDeliverables(b.ctx, b.cfg, missing)
	b.report = MissingDeliverableReport(b.cfg, b.bench)
	b.results = missingDeliverableResults(b.bench)
	return b
}

// RunChecks executes the component checks under the run-level timeout.
// It is a no-op when an earlier stage already produced a report.
func (b *VerifyRunBuilder) RunChecks() (*VerifyRunBuilder, error) {
	if b.report != nil {
		return b, nil
	}

	LogRunHeader(b.ctx, b.cfg, b.bench)

	runCtx := b.ctx
	if b.cfg.RunTimeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(b.ctx, b.cfg.RunTimeout)
		defer cancel()
	}

	results, err := RunChecks(runCtx, b.cfg, b.bench.Registry, b.env)
	if err != nil {
		return nil, err
	}
	b.results = results
	return b, nil
}

// BuildReport aggregates results into the final report. Reports produced by
// earlier short-circuits pass through untouched.
func (b *VerifyRunBuilder) BuildReport() *VerifyRunBuilder {
	if b.report == nil {
		b.report = Aggregate(b.cfg, b.bench, b.results)
	}
	return b
}

// Outcome returns the assembled run outcome.
func (b *VerifyRunBuilder) Outcome() *RunOutcome {
	return &RunOutcome{
		RunID:   b.runID,
		Report:  b.report,
		Results: b.results,
		Elapsed: time.Since(b.start),
	}
}

// missingDeliverables returns the deliverables absent from the submission,
// in declaration order. Paths that escape the submission count as missing
// rather than being probed outside the boundary.
func missingDeliverables(submissionDir string, deliverables []string) []string {
	var missing []string
	for _, deliverable := range deliverables {
		normalized, err := contract.NormalizeArtifactPath(submissionDir, deliverable)
		if err != nil {
			missing = append(missing, deliverable)
			continue
		}
		if _, err := os.Stat(filepath.Join(submissionDir, filepath.FromSlash(normalized))); err != nil {
			missing = append(missing, deliverable)
		}
	}
	return missing
}

// missingDeliverableResults synthesizes per-component ERROR results for the
// all-zero report path so history and progress output stay uniform.
func missingDeliverableResults(bench *Benchmark) []schema.CheckResult {
	results := make([]schema.CheckResult, 0, bench.Registry.Len())
	for _, comp := range bench.Registry.Components() {
		results = append(results, schema.CheckResult{
			Name:    comp.Name,
			Status:  schema.StatusError,
			Details: contract.ErrMissingDeliverable.Error(),
		})
	}
	return results
}
