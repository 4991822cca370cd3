package ports

import (
	"context"
	"io"

	"go.trai.ch/memo/internal/core/domain"
)

// ExecutionResult reports the outcome of a completed command.
type ExecutionResult struct {
	// ExitCode is the command's exit status. Zero means success.
	ExitCode int
}

// Executor defines the interface for running the wrapped command.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Execute launches the call's command in its working directory and waits
	// for completion. A command that runs and exits non-zero is a normal
	// result, not an error; the error return is reserved for commands that
	// could not be started at all.
	Execute(ctx context.Context, call domain.Call, stdout, stderr io.Writer) (ExecutionResult, error)
}
