// Package msvc implements the Visual C++ toolchain backend.
package msvc

import (
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
)

const (
	compilerName = "cl.exe"
	archiverName = "lib.exe"
)

// Backend implements ports.ToolchainBackend for Visual C++.
type Backend struct {
	runner ports.ProcessRunner
}

var _ ports.ToolchainBackend = (*Backend)(nil)

// NewBackend creates a new MSVC backend.
func NewBackend(runner ports.ProcessRunner) *Backend {
	return &Backend{runner: runner}
}

// Name returns the backend selector.
func (b *Backend) Name() string { return "msvc" }

// SupportedVersions lists discoverable releases, oldest first.
func (b *Backend) SupportedVersions() []domain.ToolchainVersion {
	return []domain.ToolchainVersion{domain.VS2012, domain.VS2013, domain.VS2015}
}

// ConfigurationFlags returns the cl.exe defaults for a configuration.
func (b *Backend) ConfigurationFlags(cfg domain.Configuration) []string {
	if cfg == domain.Debug {
		return []string{"/Zi", "/Od", "/MDd", "/D_DEBUG"}
	}
	return []string{"/O2", "/MD", "/DNDEBUG"}
}

// MachineLinkerFlags selects the target machine at link time.
func (b *Backend) MachineLinkerFlags(arch domain.Architecture) []string {
	switch arch {
	case domain.X86:
		return []string{"/MACHINE:X86"}
	case domain.X64:
		return []string{"/MACHINE:X64"}
	case domain.ARM64:
		return []string{"/MACHINE:ARM64"}
	default:
		return nil
	}
}

// ObjectDirFlags routes objects and the PDB into the cell directory.
// cl.exe treats a trailing backslash as "directory, keep source names".
func (b *Backend) ObjectDirFlags(dir string) []string {
	return []string{"/Fo" + dir + `\`, "/Fd" + dir + `\`}
}

// IncludeFlags renders /I arguments.
func (b *Backend) IncludeFlags(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		out = append(out, "/I"+p)
	}
	return out
}

// SharedLibraryCompilerFlags returns the DLL preprocessor defines.
func (b *Backend) SharedLibraryCompilerFlags() []string {
	return []string{"/D_USRDLL", "/D_WINDLL"}
}

// SharedLibraryLinkerFlags returns the DLL linker switch.
func (b *Backend) SharedLibraryLinkerFlags() []string {
	return []string{"/DLL"}
}

// CompileOnlyFlag suppresses the automatic link step.
func (b *Backend) CompileOnlyFlag() string { return "/c" }

// Extension returns the Windows artifact extension.
func (b *Backend) Extension(t domain.AssemblyType) string {
	switch t {
	case domain.SharedLibrary:
		return ".dll"
	case domain.StaticLibrary:
		return ".lib"
	case domain.Executable:
		return ".exe"
	default:
		return ""
	}
}

// ObjectPattern matches cl.exe intermediate objects.
func (b *Backend) ObjectPattern() string { return "*.obj" }

// CompileCommand assembles the cl.exe invocation for a cell. Shared
// libraries and executables compile and link in a single merged invocation;
// static libraries compile only, with the archiver run separately.
func (b *Backend) CompileCommand(task *domain.CompilerTask, cell *domain.BuildCell) (string, []string) {
	args := append([]string{"/nologo"}, cell.CompilerFlags...)
	args = append(args, task.Sources()...)

	if task.AssemblyType() == domain.StaticLibrary {
		return compilerName, args
	}

	// Merged link: everything after /link goes to the linker.
	args = append(args, "/Fe"+cell.OutputPath, "/link")
	args = append(args, cell.LinkerFlags...)
	for _, p := range task.LibraryPaths() {
		args = append(args, "/LIBPATH:"+p)
	}
	args = append(args, task.Libraries()...)
	return compilerName, args
}

// ArchiveCommand assembles the lib.exe invocation packing objects into the
// cell's static library.
func (b *Backend) ArchiveCommand(task *domain.CompilerTask, cell *domain.BuildCell, objects []string) (string, []string) {
	args := []string{"/nologo", "/OUT:" + cell.OutputPath}
	for _, p := range task.LibraryPaths() {
		args = append(args, "/LIBPATH:"+p)
	}
	args = append(args, objects...)
	return archiverName, args
}
