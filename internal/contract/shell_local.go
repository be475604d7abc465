package contract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the
// process is killed. Without it a check command that forks a child holding
// stdout open would stall past its timeout.
const waitDelay = 5 * time.Second

// LocalShellRunner implements the CommandRunner interface by executing
// commands through the local shell.
type LocalShellRunner struct {
	Shell string // defaults to bash
}

var _ CommandRunner = &LocalShellRunner{} // Compile-time check

// NewLocalShellRunner creates a new instance of the local shell runner.
func NewLocalShellRunner() *LocalShellRunner {
	return &LocalShellRunner{}
}

// Run executes a shell command in dir and captures its output. A non-zero
// exit status is returned in the output, not as an error; callers decide
// what an exit status means for their score.
func (r *LocalShellRunner) Run(ctx context.Context, dir string, command string) (CommandOutput, error) {
	shell := r.Shell
	if shell == "" {
		shell = "bash"
	}

	var stdout, stderr bytes.Buffer
	start := time.Now()

	cmd := exec.CommandContext(ctx, shell, "-lc", command)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()
	out := CommandOutput{
		Stdout:  stdout.String(),
		Stderr:  stderr.String(),
		Elapsed: time.Since(start),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && ctx.Err() == nil {
			out.ExitCode = exitErr.ExitCode()
			return out, nil
		}
		if ctx.Err() != nil {
			return out, ctx.Err()
		}
		return out, fmt.Errorf("command failed to start: %w. Ensure %s is installed and available on your PATH", err, shell)
	}
	return out, nil
}
