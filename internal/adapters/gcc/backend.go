// Package gcc implements the GNU toolchain backend.
package gcc

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	compilerName = "g++"
	archiverName = "ar"
)

// Backend implements ports.ToolchainBackend for the GNU toolchain.
type Backend struct{}

var _ ports.ToolchainBackend = (*Backend)(nil)

// NewBackend creates a new GCC backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend selector.
func (b *Backend) Name() string { return "gcc" }

// SupportedVersions lists discoverable releases, oldest first.
func (b *Backend) SupportedVersions() []domain.ToolchainVersion {
	return []domain.ToolchainVersion{domain.GCC10, domain.GCC11, domain.GCC12, domain.GCC13, domain.GCC14}
}

// homeVar derives the version-specific environment variable naming a GCC
// install root, e.g. GCC13_HOME.
func homeVar(v domain.ToolchainVersion) string {
	return fmt.Sprintf("GCC%d_HOME", int(v))
}

// Discover probes base for installed GCC releases among candidates. A release
// is present when its GCC*_HOME variable is set and <root>/bin/g++ exists.
func (b *Backend) Discover(_ context.Context, base *domain.EnvSnapshot, candidates []domain.ToolchainVersion) domain.Registry {
	registry := make(domain.Registry)
	for _, v := range candidates {
		root, ok := base.Get(homeVar(v))
		if !ok || root == "" {
			continue
		}
		root = filepath.Clean(root)
		compiler := filepath.Join(root, "bin", compilerName)
		if info, err := os.Stat(compiler); err != nil || info.IsDir() {
			continue
		}
		registry[v] = root
	}
	return registry
}

// Environment derives the environment for one architecture. The GNU toolchain
// has no setup script; the install's bin directory is prepended to PATH so
// its tools win lookup, and CC/CXX point at them.
func (b *Backend) Environment(_ context.Context, base *domain.EnvSnapshot, installPath string, arch domain.Architecture) (*domain.EnvSnapshot, error) {
	if arch.Count() != 1 {
		return nil, zerr.With(domain.ErrInvalidArchitectureSelection, "selection", arch.String())
	}

	snapshot := base.Clone()
	bin := filepath.Join(installPath, "bin")
	if path, ok := snapshot.Get("PATH"); ok && path != "" {
		snapshot.Set("PATH", bin+string(os.PathListSeparator)+path)
	} else {
		snapshot.Set("PATH", bin)
	}
	snapshot.Set("CC", filepath.Join(bin, "gcc"))
	snapshot.Set("CXX", filepath.Join(bin, compilerName))
	return snapshot, nil
}

// ConfigurationFlags returns the g++ defaults for a configuration.
func (b *Backend) ConfigurationFlags(cfg domain.Configuration) []string {
	if cfg == domain.Debug {
		return []string{"-g", "-O0", "-D_DEBUG"}
	}
	return []string{"-O2", "-DNDEBUG"}
}

// MachineLinkerFlags selects the target machine width.
func (b *Backend) MachineLinkerFlags(arch domain.Architecture) []string {
	switch arch {
	case domain.X86:
		return []string{"-m32"}
	case domain.X64:
		return []string{"-m64"}
	default:
		// arm64 builds target the host; no width switch exists.
		return nil
	}
}

// ObjectDirFlags returns nothing: g++ drops objects in the working directory,
// and the matrix executor runs every compile inside the cell directory.
func (b *Backend) ObjectDirFlags(string) []string { return nil }

// IncludeFlags renders -I arguments.
func (b *Backend) IncludeFlags(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, "-I"+p)
	}
	return out
}

// SharedLibraryCompilerFlags returns position-independent codegen switches.
func (b *Backend) SharedLibraryCompilerFlags() []string {
	return []string{"-fPIC", "-DPIC"}
}

// SharedLibraryLinkerFlags returns the shared-object linker switch.
func (b *Backend) SharedLibraryLinkerFlags() []string {
	return []string{"-shared"}
}

// CompileOnlyFlag suppresses the automatic link step.
func (b *Backend) CompileOnlyFlag() string { return "-c" }

// Extension returns the POSIX artifact extension.
func (b *Backend) Extension(t domain.AssemblyType) string {
	switch t {
	case domain.SharedLibrary:
		return ".so"
	case domain.StaticLibrary:
		return ".a"
	default:
		return ""
	}
}

// ObjectPattern matches g++ intermediate objects.
func (b *Backend) ObjectPattern() string { return "*.o" }

// CompileCommand assembles the g++ invocation for a cell.
func (b *Backend) CompileCommand(task *domain.CompilerTask, cell *domain.BuildCell) (string, []string) {
	args := append([]string{}, cell.CompilerFlags...)
	args = append(args, task.Sources()...)

	if task.AssemblyType() == domain.StaticLibrary {
		return compilerName, args
	}

	args = append(args, "-o", cell.OutputPath)
	args = append(args, cell.LinkerFlags...)
	for _, p := range task.LibraryPaths() {
		args = append(args, "-L"+p)
	}
	for _, lib := range task.Libraries() {
		args = append(args, libraryArg(lib))
	}
	return compilerName, args
}

// libraryArg renders one library reference. Bare names use the usual -lfoo
// form; names carrying an extension are matched exactly.
func libraryArg(name string) string {
	if strings.Contains(name, ".") {
		return "-l:" + name
	}
	return "-l" + name
}

// ArchiveCommand assembles the ar invocation packing objects into the cell's
// static library.
func (b *Backend) ArchiveCommand(_ *domain.CompilerTask, cell *domain.BuildCell, objects []string) (string, []string) {
	args := []string{"rcs", cell.OutputPath}
	args = append(args, objects...)
	return archiverName, args
}
