// Package shell provides the command executor backed by os/exec.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Executor runs the wrapped command with os/exec.
type Executor struct{}

// NewExecutor creates a new Executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// Execute launches the call's command in its working directory with the
// inherited environment and blocks until it terminates.
//
// The wrapped program may read or write any file, declared or not; the
// caller is responsible for re-hashing afterwards. A non-zero exit is
// reported through the result, not the error: the command failing is its
// own legitimate outcome, while the error return means the command never
// ran at all.
func (e *Executor) Execute(
	ctx context.Context,
	call domain.Call,
	stdout, stderr io.Writer,
) (ports.ExecutionResult, error) {
	if len(call.Command) == 0 {
		return ports.ExecutionResult{}, domain.ErrNoCommand
	}

	name := call.Command[0]
	args := call.Command[1:]

	cmd := exec.CommandContext(ctx, name, args...) //nolint:gosec // user provided command
	cmd.Dir = call.WorkingDir
	cmd.Env = os.Environ()
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitErr.ExitCode()
			if code < 0 {
				// Killed by a signal; there is no exit code to propagate.
				code = 1
			}
			return ports.ExecutionResult{ExitCode: code}, nil
		}
		return ports.ExecutionResult{}, zerr.With(
			zerr.Wrap(err, domain.ErrCommandStartFailed.Error()),
			"command", call.CommandLine(),
		)
	}

	return ports.ExecutionResult{ExitCode: 0}, nil
}
