package domain

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// illegalPathChars are rejected in every path-valued field regardless of
// platform, so a config file written on one host fails the same way on another.
const illegalPathChars = `<>"|?*`

// CompilerTask is one validated compilation request.
//
// All slice-valued accessors return clones and all setters store clones, so a
// task never aliases caller state and cell-local mutation cannot leak back.
// When strict paths are enabled every path-valued setter validates before it
// commits: a failed assignment leaves the previous value untouched.
type CompilerTask struct {
	strictPaths      bool
	autoCopyIncludes bool

	sources       []string
	includePaths  []string
	libraryPaths  []string
	libraries     []string
	compilerFlags []string
	linkerFlags   []string

	intermediateDir string
	outputDir       string
	outputName      string
	assembly        AssemblyType
}

// NewCompilerTask creates an empty task. strict enables path validation at
// assignment time.
func NewCompilerTask(strict bool) *CompilerTask {
	return &CompilerTask{strictPaths: strict}
}

// StrictPaths reports whether strict path validation is enabled.
func (t *CompilerTask) StrictPaths() bool { return t.strictPaths }

// SetAutoCopyIncludes toggles post-build header propagation for library builds.
func (t *CompilerTask) SetAutoCopyIncludes(v bool) { t.autoCopyIncludes = v }

// AutoCopyIncludes reports whether headers are copied next to library output.
func (t *CompilerTask) AutoCopyIncludes() bool { return t.autoCopyIncludes }

// SetSources assigns the translation units to compile.
func (t *CompilerTask) SetSources(paths []string) error {
	if t.strictPaths {
		for _, p := range paths {
			if err := checkPathChars("sources", p); err != nil {
				return err
			}
			info, err := os.Stat(p)
			if err != nil {
				return fieldErr("sources", p, "source file does not exist")
			}
			if info.IsDir() {
				return fieldErr("sources", p, "source path is a directory")
			}
		}
	}
	t.sources = absAll(paths)
	return nil
}

// Sources returns a clone of the configured translation units.
func (t *CompilerTask) Sources() []string { return slices.Clone(t.sources) }

// SetIncludePaths assigns the header search directories.
func (t *CompilerTask) SetIncludePaths(paths []string) error {
	if err := t.checkDirs("includePaths", paths); err != nil {
		return err
	}
	t.includePaths = absAll(paths)
	return nil
}

// IncludePaths returns a clone of the header search directories.
func (t *CompilerTask) IncludePaths() []string { return slices.Clone(t.includePaths) }

// SetLibraryPaths assigns the library search directories.
func (t *CompilerTask) SetLibraryPaths(paths []string) error {
	if err := t.checkDirs("libraryPaths", paths); err != nil {
		return err
	}
	t.libraryPaths = absAll(paths)
	return nil
}

// LibraryPaths returns a clone of the library search directories.
func (t *CompilerTask) LibraryPaths() []string { return slices.Clone(t.libraryPaths) }

// SetLibraries assigns additional libraries to link. Strict validation
// resolves each name against the library paths configured at call time, so
// library paths must be assigned first for the check to be meaningful; that
// ordering is a caller contract.
func (t *CompilerTask) SetLibraries(names []string) error {
	if t.strictPaths {
		for _, name := range names {
			if err := checkPathChars("additionalLibraries", name); err != nil {
				return err
			}
			if !t.findLibrary(name) {
				return fieldErr("additionalLibraries", name, "library not found in any library path")
			}
		}
	}
	t.libraries = slices.Clone(names)
	return nil
}

// Libraries returns a clone of the additional libraries to link.
func (t *CompilerTask) Libraries() []string { return slices.Clone(t.libraries) }

func (t *CompilerTask) findLibrary(name string) bool {
	for _, dir := range t.libraryPaths {
		if info, err := os.Stat(filepath.Join(dir, name)); err == nil && !info.IsDir() {
			return true
		}
	}
	return false
}

// SetCompilerFlags assigns raw compiler flag tokens.
func (t *CompilerTask) SetCompilerFlags(flags []string) {
	t.compilerFlags = slices.Clone(flags)
}

// CompilerFlags returns a clone of the raw compiler flag tokens.
func (t *CompilerTask) CompilerFlags() []string { return slices.Clone(t.compilerFlags) }

// SetLinkerFlags assigns raw linker flag tokens.
func (t *CompilerTask) SetLinkerFlags(flags []string) {
	t.linkerFlags = slices.Clone(flags)
}

// LinkerFlags returns a clone of the raw linker flag tokens.
func (t *CompilerTask) LinkerFlags() []string { return slices.Clone(t.linkerFlags) }

// SetIntermediateDir assigns the root for per-cell object output. The path
// must be absolute regardless of strictness: clean deletes this directory
// recursively, and a relative path could point anywhere the process happens
// to run.
func (t *CompilerTask) SetIntermediateDir(path string) error {
	if err := checkPathChars("intermediaryDirectory", path); err != nil {
		return err
	}
	if !filepath.IsAbs(path) {
		return fieldErr("intermediaryDirectory", path, "intermediary directory must be absolute")
	}
	t.intermediateDir = path
	return nil
}

// IntermediateDir returns the intermediary root directory.
func (t *CompilerTask) IntermediateDir() string { return t.intermediateDir }

// SetOutputDir assigns the artifact output directory.
func (t *CompilerTask) SetOutputDir(path string) error {
	if err := checkPathChars("outputDirectory", path); err != nil {
		return err
	}
	if t.strictPaths {
		info, err := os.Stat(path)
		if err != nil {
			return fieldErr("outputDirectory", path, "output directory does not exist")
		}
		if !info.IsDir() {
			return fieldErr("outputDirectory", path, "output path is not a directory")
		}
	}
	t.outputDir = absPath(path)
	return nil
}

// OutputDir returns the artifact output directory.
func (t *CompilerTask) OutputDir() string { return t.outputDir }

// SetOutputName assigns the artifact base name, without extension.
func (t *CompilerTask) SetOutputName(name string) error {
	if err := checkPathChars("outputFileName", name); err != nil {
		return err
	}
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return fieldErr("outputFileName", name, "output file name must not contain separators")
	}
	t.outputName = name
	return nil
}

// OutputName returns the artifact base name.
func (t *CompilerTask) OutputName() string { return t.outputName }

// SetAssemblyType assigns the requested artifact kind.
func (t *CompilerTask) SetAssemblyType(a AssemblyType) { t.assembly = a }

// AssemblyType returns the requested artifact kind.
func (t *CompilerTask) AssemblyType() AssemblyType { return t.assembly }

// Validate checks the run preconditions: at least one source, an output
// directory and file name, and a concrete assembly type. It performs no
// filesystem access; strict setters have already done that.
func (t *CompilerTask) Validate() error {
	switch {
	case len(t.sources) == 0:
		return fieldErr("sources", "", "at least one source is required")
	case t.outputDir == "":
		return fieldErr("outputDirectory", "", "output directory is required")
	case t.outputName == "":
		return fieldErr("outputFileName", "", "output file name is required")
	case t.intermediateDir == "":
		return fieldErr("intermediaryDirectory", "", "intermediary directory is required")
	case t.assembly == Unspecified:
		return fieldErr("outputAssemblyType", t.assembly.String(), "assembly type must be specified")
	}
	return nil
}

func (t *CompilerTask) checkDirs(field string, paths []string) error {
	if !t.strictPaths {
		return nil
	}
	for _, p := range paths {
		if err := checkPathChars(field, p); err != nil {
			return err
		}
		info, err := os.Stat(p)
		if err != nil {
			return fieldErr(field, p, "directory does not exist")
		}
		if !info.IsDir() {
			return fieldErr(field, p, "path is not a directory")
		}
	}
	return nil
}

func checkPathChars(field, value string) error {
	if strings.ContainsAny(value, illegalPathChars) {
		return fieldErr(field, value, "path contains illegal characters")
	}
	return nil
}

func fieldErr(field, value, msg string) error {
	return zerr.With(zerr.With(zerr.Wrap(ErrConfiguration, msg), "field", field), "value", value)
}

// absPath canonicalizes to an absolute path so build steps can run from any
// working directory, e.g. a cell's intermediary directory. A path that cannot
// be absolutized is kept as given.
func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

func absAll(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = absPath(p)
	}
	return out
}
