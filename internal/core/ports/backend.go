package ports

import (
	"context"

	"go.trai.ch/forge/internal/core/domain"
)

// ToolchainBackend is the capability interface for one toolchain family.
// Discovery, environment capture, and flag vocabulary are backend-specific;
// the matrix executor drives the algorithm and stays family-agnostic.
//
// Both Discover and Environment take an explicit base snapshot instead of
// reading the ambient process environment, so backends are testable with
// synthetic environments.
type ToolchainBackend interface {
	// Name is the backend's selector, e.g. "msvc".
	Name() string

	// SupportedVersions lists the releases this backend can discover,
	// oldest first.
	SupportedVersions() []domain.ToolchainVersion

	// Discover probes base and the filesystem for installed releases among
	// candidates. Absence is a normal outcome: the registry is simply empty.
	// A release is either present with a valid install path or absent, never
	// partial.
	Discover(ctx context.Context, base *domain.EnvSnapshot, candidates []domain.ToolchainVersion) domain.Registry

	// Environment captures the complete variable set required to drive the
	// toolchain's tools for exactly one architecture. Passing zero or
	// multiple architecture bits is a caller bug and fails with
	// domain.ErrInvalidArchitectureSelection before any process is spawned.
	Environment(ctx context.Context, base *domain.EnvSnapshot, installPath string, arch domain.Architecture) (*domain.EnvSnapshot, error)

	// ConfigurationFlags are the compiler defaults for a configuration,
	// e.g. debug information and optimization level.
	ConfigurationFlags(cfg domain.Configuration) []string

	// MachineLinkerFlags select the target machine at link time.
	MachineLinkerFlags(arch domain.Architecture) []string

	// ObjectDirFlags route intermediate objects into dir.
	ObjectDirFlags(dir string) []string

	// IncludeFlags render header search path arguments.
	IncludeFlags(paths []string) []string

	// SharedLibraryCompilerFlags are the preprocessor defines and compiler
	// switches for building a shared library.
	SharedLibraryCompilerFlags() []string

	// SharedLibraryLinkerFlags are the linker switches for building a
	// shared library.
	SharedLibraryLinkerFlags() []string

	// CompileOnlyFlag suppresses automatic linking for compile-only steps.
	CompileOnlyFlag() string

	// Extension is the platform artifact extension for an assembly type,
	// including the leading dot, or empty.
	Extension(t domain.AssemblyType) string

	// ObjectPattern is the glob matching intermediate object files.
	ObjectPattern() string

	// CompileCommand assembles the compiler invocation for a cell. For
	// shared libraries and executables this is a merged compile+link; for
	// static libraries a compile-only step.
	CompileCommand(task *domain.CompilerTask, cell *domain.BuildCell) (name string, args []string)

	// ArchiveCommand assembles the archiver invocation packing objects into
	// the cell's static library output.
	ArchiveCommand(task *domain.CompilerTask, cell *domain.BuildCell, objects []string) (name string, args []string)
}
