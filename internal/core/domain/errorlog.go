package domain

import (
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
)

// Stage names the phase in which a failure was recorded.
type Stage string

const (
	// StageConfiguration covers precondition failures before any process spawn.
	StageConfiguration Stage = "configuration"
	// StageToolchain covers toolchain discovery failures.
	StageToolchain Stage = "toolchain"
	// StageEnvironment covers setup-script environment capture failures.
	StageEnvironment Stage = "environment"
	// StageCompile covers compiler (and merged-link) invocations.
	StageCompile Stage = "compile"
	// StageArchive covers archiver invocations for static libraries.
	StageArchive Stage = "archive"
	// StagePropagation covers post-success header propagation.
	StagePropagation Stage = "propagation"
	// StageClean covers intermediary-directory clean failures.
	StageClean Stage = "clean"
)

// BuildError is one structured failure record.
// Cell-scoped records carry the cell identity and the tool's exit code.
type BuildError struct {
	Stage         Stage
	Configuration Configuration
	Architecture  Architecture
	ExitCode      int
	Err           error
}

func (e BuildError) Error() string {
	if e.Configuration == 0 && e.Architecture == 0 {
		return fmt.Sprintf("%s: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s [%s %s] (exit %d): %v",
		e.Stage, e.Configuration, e.Architecture, e.ExitCode, e.Err)
}

func (e BuildError) Unwrap() error { return e.Err }

// ErrorLog is an ordered, append-only sequence of failure records owned by one
// task execution. It is cleared at the start of each run and safe for
// concurrent appends from parallel cells.
type ErrorLog struct {
	mu      sync.Mutex
	records []BuildError
}

// NewErrorLog creates an empty log.
func NewErrorLog() *ErrorLog {
	return &ErrorLog{}
}

// Append adds one failure record.
func (l *ErrorLog) Append(rec BuildError) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
}

// Reset clears the log for a fresh run.
func (l *ErrorLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = nil
}

// Len returns the number of recorded failures.
func (l *ErrorLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Records returns a copy of the recorded failures in append order.
func (l *ErrorLog) Records() []BuildError {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]BuildError, len(l.records))
	copy(out, l.records)
	return out
}

// Err aggregates every record into a single error, or nil when the log is
// empty. The aggregate preserves record order.
func (l *ErrorLog) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	var result *multierror.Error
	for _, rec := range l.records {
		result = multierror.Append(result, rec)
	}
	return result.ErrorOrNil()
}
