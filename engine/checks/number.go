package checks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Compile-time interface check
var _ contract.Check = &NumberOutputCheck{}

// NumberOutputCheck runs a scorer command that prints a bare number on its
// last line of stdout and uses it directly as the 0-100 score. Scorer
// scripts exit 0 by convention and fall back to printing 0 on failure.
type NumberOutputCheck struct {
	Command string

	// Invert scores 100 minus the reported number, for scorers where a
	// lower reading is better.
	Invert bool
}

// NewNumberOutputCheck creates a bare-number scorer check.
func NewNumberOutputCheck(command string, invert bool) (*NumberOutputCheck, error) {
	if command == "" {
		return nil, errors.New("number-output check requires a command")
	}
	return &NumberOutputCheck{Command: command, Invert: invert}, nil
}

// Run implements the contract.Check interface.
func (c *NumberOutputCheck) Run(ctx context.Context, env contract.CheckEnv) (schema.CheckOutcome, error) {
	out, err := env.Runner.Run(ctx, env.SubmissionDir, c.Command)
	if err != nil {
		return schema.CheckOutcome{}, err
	}
	if out.ExitCode != 0 {
		return schema.CheckOutcome{}, fmt.Errorf("scorer exited with status %d: %s", out.ExitCode, schema.FirstLine(out.Stderr))
	}

	line := strings.TrimSpace(schema.TailLines(out.Stdout, 1))
	value, err := strconv.ParseFloat(line, 64)
	if err != nil {
		return schema.CheckOutcome{}, fmt.Errorf("scorer output is not a number: %q", line)
	}

	if c.Invert {
		return schema.PercentOutcome(100-value, fmt.Sprintf("scorer reported %g (inverted)", value)), nil
	}
	return schema.PercentOutcome(value, fmt.Sprintf("scorer reported %g", value)), nil
}
