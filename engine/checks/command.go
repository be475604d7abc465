package checks

import (
	"context"
	"errors"
	"fmt"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Compile-time interface check
var _ contract.Check = &CommandCheck{}

// CommandCheck runs a shell command and scores it pass/fail on its exit
// status: exit 0 scores 100, anything else is a check error. Use it for
// gates like builds and linters where partial credit makes no sense.
type CommandCheck struct {
	Command string
}

// NewCommandCheck creates a pass/fail command check.
func NewCommandCheck(command string) (*CommandCheck, error) {
	if command == "" {
		return nil, errors.New("command check requires a command")
	}
	return &CommandCheck{Command: command}, nil
}

// Run implements the contract.Check interface.
func (c *CommandCheck) Run(ctx context.Context, env contract.CheckEnv) (schema.CheckOutcome, error) {
	out, err := env.Runner.Run(ctx, env.SubmissionDir, c.Command)
	if err != nil {
		return schema.CheckOutcome{}, err
	}

	if out.ExitCode != 0 {
		detail := schema.FirstLine(out.Stderr)
		if detail == "" {
			detail = schema.FirstLine(out.Stdout)
		}
		if detail == "" {
			return schema.CheckOutcome{}, fmt.Errorf("command exited with status %d", out.ExitCode)
		}
		return schema.CheckOutcome{}, fmt.Errorf("command exited with status %d: %s", out.ExitCode, detail)
	}

	details := schema.FirstLine(out.Stdout)
	if details == "" {
		details = "command succeeded"
	}
	return schema.PercentOutcome(100, details), nil
}
