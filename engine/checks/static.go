package checks

import (
	"context"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Compile-time interface check
var _ contract.Check = &StaticCheck{}

// StaticCheck always reports a fixed score. Useful for placeholder
// components while a benchmark is under construction and for exercising
// registries in tests.
type StaticCheck struct {
	Percent float64
	Details string
}

// Run implements the contract.Check interface.
func (c *StaticCheck) Run(_ context.Context, _ contract.CheckEnv) (schema.CheckOutcome, error) {
	return schema.PercentOutcome(c.Percent, c.Details), nil
}
