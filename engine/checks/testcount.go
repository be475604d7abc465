package checks

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Compile-time interface check
var _ contract.Check = &TestCountCheck{}

// TestCountCheck runs a test command and scores the ratio of passed cases
// parsed from its output. Test commands exit non-zero when cases fail, so
// the exit status is ignored; only failing to execute at all is an error.
type TestCountCheck struct {
	Command string
	pass    *regexp.Regexp
	fail    *regexp.Regexp
}

// NewTestCountCheck creates a check that counts passed and failed cases in
// command output. Patterns either match once per case, or carry a capture
// group holding the count (see countMatches). The fail pattern is optional;
// without it the total is just the passed count.
func NewTestCountCheck(command, passPattern, failPattern string) (*TestCountCheck, error) {
	if command == "" {
		return nil, errors.New("test-count check requires a command")
	}
	if passPattern == "" {
		return nil, errors.New("test-count check requires a pass pattern")
	}
	pass, err := regexp.Compile(passPattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pass pattern %q: %w", passPattern, err)
	}
	var fail *regexp.Regexp
	if failPattern != "" {
		fail, err = regexp.Compile(failPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid fail pattern %q: %w", failPattern, err)
		}
	}
	return &TestCountCheck{Command: command, pass: pass, fail: fail}, nil
}

// Run implements the contract.Check interface.
func (c *TestCountCheck) Run(ctx context.Context, env contract.CheckEnv) (schema.CheckOutcome, error) {
	out, err := env.Runner.Run(ctx, env.SubmissionDir, c.Command)
	if err != nil {
		return schema.CheckOutcome{}, err
	}

	combined := out.Combined()
	passed := countMatches(c.pass, combined)
	failed := 0
	if c.fail != nil {
		failed = countMatches(c.fail, combined)
	}
	total := passed + failed

	details := fmt.Sprintf("%d/%d tests passed", passed, total)
	if total == 0 {
		details = "no test results recognized in output"
	}
	return schema.CountOutcome(passed, total, details), nil
}
