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
var _ contract.Check = &MutationCountCheck{}

// MutationCountCheck runs a mutation testing harness and scores the kill
// ratio. The harness prints a final "killed,survived,..." CSV line on
// stdout; fields beyond the first two are reserved and ignored.
type MutationCountCheck struct {
	Command string
}

// NewMutationCountCheck creates a mutation kill-ratio check.
func NewMutationCountCheck(command string) (*MutationCountCheck, error) {
	if command == "" {
		return nil, errors.New("mutation-count check requires a command")
	}
	return &MutationCountCheck{Command: command}, nil
}

// Run implements the contract.Check interface.
func (c *MutationCountCheck) Run(ctx context.Context, env contract.CheckEnv) (schema.CheckOutcome, error) {
	out, err := env.Runner.Run(ctx, env.SubmissionDir, c.Command)
	if err != nil {
		return schema.CheckOutcome{}, err
	}
	if out.ExitCode != 0 {
		return schema.CheckOutcome{}, fmt.Errorf("mutation harness exited with status %d: %s", out.ExitCode, schema.FirstLine(out.Stderr))
	}

	line := strings.TrimSpace(schema.TailLines(out.Stdout, 1))
	killed, survived, err := parseMutationLine(line)
	if err != nil {
		return schema.CheckOutcome{}, err
	}

	total := killed + survived
	details := fmt.Sprintf("%d/%d mutants killed", killed, total)
	if total == 0 {
		details = "no mutants generated"
	}
	return schema.CountOutcome(killed, total, details), nil
}

// parseMutationLine extracts the killed and survived counts from the
// harness output line.
func parseMutationLine(line string) (killed, survived int, err error) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("mutation output is not a killed,survived line: %q", line)
	}
	killed, err = strconv.Atoi(strings.TrimSpace(fields[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid killed count %q", fields[0])
	}
	survived, err = strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("invalid survived count %q", fields[1])
	}
	if killed < 0 || survived < 0 {
		return 0, 0, fmt.Errorf("mutation counts must not be negative: %q", line)
	}
	return killed, survived, nil
}
