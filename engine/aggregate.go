package engine

import (
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Aggregate folds per-component results into the report body: weighted base
// score, penalty discount and the final pass decision. Results must line up
// with the registry's declaration order, the way RunChecks returns them.
func Aggregate(cfg *contract.Config, bench *Benchmark, results []schema.CheckResult) *schema.ScoreReport {
	var components schema.ComponentScores
	base := 0.0
	for i, comp := range bench.Registry.Components() {
		result := results[i]
		raw := result.EffectiveRaw()
		base += raw * comp.Weight
		components.Add(comp.Name, schema.ComponentScore{
			Score:   schema.RoundScore(raw, cfg.RoundMode),
			Weight:  comp.Weight,
			Details: result.Details,
			Status:  result.Status,
		})
	}

	final := schema.RoundScore(ApplyPenalties(base, bench.Penalties, cfg.PenaltyMode), cfg.RoundMode)

	return &schema.ScoreReport{
		Benchmark:  bench.Name,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
		BaseScore:  base,
		Penalties:  bench.Penalties,
		FinalScore: final,
		Passed:     final >= bench.EffectiveThreshold(cfg),
	}
}

// ApplyPenalties discounts a base score using the configured combination
// policy. Penalties only ever reduce a score; fractions are clamped to the
// 0-1 range before use.
func ApplyPenalties(base float64, penalties schema.Penalties, mode schema.PenaltyMode) float64 {
	switch mode {
	case schema.PenaltyCompound:
		discounted := base
		for _, fraction := range penalties.Values() {
			discounted *= 1 - clampFraction(fraction)
		}
		return discounted
	default:
		total := 0.0
		for _, fraction := range penalties.Values() {
			total += clampFraction(fraction)
		}
		return base * (1 - min(1.0, total))
	}
}

func clampFraction(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// MissingDeliverableReport builds the all-zero report emitted when required
// artifacts are absent from a submission. Every component still appears, at
// score 0 with status ERROR, so consumers always see the full component set.
// A submission missing required artifacts never passes, whatever the
// threshold.
func MissingDeliverableReport(cfg *contract.Config, bench *Benchmark) *schema.ScoreReport {
	var components schema.ComponentScores
	for _, comp := range bench.Registry.Components() {
		components.Add(comp.Name, schema.ComponentScore{
			Score:   0,
			Weight:  comp.Weight,
			Details: contract.ErrMissingDeliverable.Error(),
			Status:  schema.StatusError,
		})
	}
	return &schema.ScoreReport{
		Benchmark:  bench.Name,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Components: components,
		BaseScore:  0,
		Penalties:  bench.Penalties,
		FinalScore: 0,
		Passed:     false,
	}
}
