package schema

import "time"

// CheckOutcome is the raw signal a check implementation reports back.
// A check either measures a direct percentage or counts passed/total
// observations; the constructors below keep the two shapes apart.
type CheckOutcome struct {
	Percent   float64
	Passed    int
	Total     int
	HasCounts bool
	Details   string
}

// PercentOutcome builds an outcome carrying a direct 0-100 percentage.
func PercentOutcome(percent float64, details string) CheckOutcome {
	return CheckOutcome{Percent: percent, Details: details}
}

// CountOutcome builds an outcome carrying passed/total observation counts.
func CountOutcome(passed, total int, details string) CheckOutcome {
	return CheckOutcome{Passed: passed, Total: total, HasCounts: true, Details: details}
}

// RatioPercent converts counts to a 0-100 percentage. A zero denominator
// yields 100 so ratios computed inside a check never divide by zero; the
// aggregator applies the stricter zero-observation policy at the component
// level (see CheckResult.EffectiveRaw).
func RatioPercent(passed, total int) float64 {
	if total == 0 {
		return 100
	}
	return float64(passed) / float64(total) * 100
}

// CheckResult is the outcome of running one component's check. Created once
// per component per run and never mutated afterwards.
type CheckResult struct {
	Name      string
	Status    CheckStatus
	RawScore  float64
	Passed    int
	Total     int
	HasCounts bool
	Details   string
	Elapsed   time.Duration
}

// EffectiveRaw returns the raw 0-100 signal used for aggregation. Errored
// and skipped checks contribute zero. Counted results with zero observations
// also score zero: no measurable signal means failure, never a free pass.
func (r CheckResult) EffectiveRaw() float64 {
	if r.Status != StatusOK {
		return 0
	}
	if r.HasCounts {
		if r.Total == 0 {
			return 0
		}
		return float64(r.Passed) / float64(r.Total) * 100
	}
	return r.RawScore
}
