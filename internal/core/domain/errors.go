package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned when a task field is missing, invalid, or
	// references a path that fails strict validation.
	ErrConfiguration = zerr.New("invalid configuration")

	// ErrToolchainNotFound is returned when no installed toolchain release
	// satisfies the minimum-version requirement.
	ErrToolchainNotFound = zerr.New("toolchain not found")

	// ErrInvalidArchitectureSelection is returned when an environment capture
	// is requested for zero or more than one architecture at once.
	// This is a caller bug, not an environmental condition.
	ErrInvalidArchitectureSelection = zerr.New("exactly one architecture must be selected")

	// ErrEnvironmentCapture is returned when the toolchain's setup script
	// could not be invoked or exited with an error status.
	ErrEnvironmentCapture = zerr.New("environment capture failed")

	// ErrCompilationFailed is recorded when the compiler exits non-zero for one cell.
	ErrCompilationFailed = zerr.New("compilation failed")

	// ErrLinkFailed is recorded when the linker exits non-zero for one cell.
	ErrLinkFailed = zerr.New("link failed")

	// ErrLibrarianFailed is recorded when the archiver exits non-zero for one cell.
	ErrLibrarianFailed = zerr.New("librarian failed")

	// ErrProcessInvocation is returned when an external executable could not
	// be located or started.
	ErrProcessInvocation = zerr.New("process invocation failed")

	// ErrProcessTimeout is returned when an external process exceeded its
	// deadline and was forcibly terminated.
	ErrProcessTimeout = zerr.New("process timed out")

	// ErrCleanFailed wraps a filesystem error raised while cleaning the
	// intermediary directory.
	ErrCleanFailed = zerr.New("clean failed")

	// ErrBuildFailed is the aggregate verdict error for a run in which at
	// least one cell failed or no cell was attempted.
	ErrBuildFailed = zerr.New("build failed")

	// ErrChecksumMismatch is returned when a file digest does not match the
	// expected value.
	ErrChecksumMismatch = zerr.New("checksum mismatch")
)
