// Package engine has core logic for check execution, scoring and reporting.
package engine

import (
	"context"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Benchmark is a fully loaded benchmark definition: the component registry
// plus the run-level scoring inputs that travel with it.
type Benchmark struct {
	Name         string
	Threshold    int
	Deliverables []string
	Registry     *Registry
	Penalties    schema.Penalties
}

// EffectiveThreshold returns the pass threshold for a run. A definition
// without its own threshold falls back to the configured default.
func (b *Benchmark) EffectiveThreshold(cfg *contract.Config) int {
	if b.Threshold > 0 {
		return b.Threshold
	}
	return cfg.Threshold
}

// RunOutcome bundles everything a single verification run produces.
type RunOutcome struct {
	RunID   string
	Report  *schema.ScoreReport
	Results []schema.CheckResult
	Elapsed time.Duration
}

// Verify runs the full scoring pipeline for one submission: registry
// validation, deliverable pre-checks, check execution and aggregation.
// It serves as the main entry point for the 'verify' command.
func Verify(ctx context.Context, cfg *contract.Config, bench *Benchmark) (*RunOutcome, error) {
	builder, err := NewVerifyRunBuilder(ctx, cfg, bench).ValidateDefinition()
	if err != nil {
		return nil, err
	}
	builder, err = builder.CheckDeliverables().RunChecks()
	if err != nil {
		return nil, err
	}
	return builder.BuildReport().Outcome(), nil
}
