// Package ports defines the core interfaces for the application.
package ports

import (
	"context"
	"time"
)

// ProcessRequest describes one external process invocation.
type ProcessRequest struct {
	// Dir is the working directory; empty means the current directory.
	Dir string
	// Name is the executable, either an absolute path or a bare name
	// resolved against PATH from Env.
	Name string
	// Args are the process arguments, excluding the executable itself.
	Args []string
	// Env is merged over the ambient process environment; entries here win.
	Env []string
	// Timeout forcibly terminates the process when exceeded; 0 means none.
	Timeout time.Duration
	// OnStdout receives standard output line by line as it arrives.
	// When nil, lines are echoed to the console.
	OnStdout func(line string)
	// OnStderr receives standard error line by line as it arrives.
	// When nil, lines are echoed to the console.
	OnStderr func(line string)
}

// ProcessRunner runs one external process to completion.
//
//go:generate go run go.uber.org/mock/mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type ProcessRunner interface {
	// Run blocks until the process exits or the timeout elapses and returns
	// the process's exit code. A process that could not be started yields
	// domain.ErrProcessInvocation; a timeout yields domain.ErrProcessTimeout
	// after the child has been killed. A non-zero exit code is returned with
	// a nil error; judging it is the caller's concern.
	Run(ctx context.Context, req ProcessRequest) (int, error)
}
