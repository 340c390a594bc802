package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// AssemblyType is the kind of artifact a compiler task produces.
type AssemblyType int

const (
	// Unspecified is the zero value; a task must not run with it.
	Unspecified AssemblyType = iota
	// SharedLibrary produces a dynamically loaded library (.dll / .so).
	SharedLibrary
	// StaticLibrary produces an archive of object files (.lib / .a).
	StaticLibrary
	// Executable produces a runnable binary.
	Executable
)

func (t AssemblyType) String() string {
	switch t {
	case SharedLibrary:
		return "SharedLibrary"
	case StaticLibrary:
		return "StaticLibrary"
	case Executable:
		return "Executable"
	default:
		return "Unspecified"
	}
}

// ParseAssemblyType maps a config-file token to an AssemblyType.
func ParseAssemblyType(s string) (AssemblyType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "shared", "sharedlibrary", "dll":
		return SharedLibrary, nil
	case "static", "staticlibrary", "lib":
		return StaticLibrary, nil
	case "executable", "exe", "binary":
		return Executable, nil
	default:
		return Unspecified, zerr.With(zerr.Wrap(ErrConfiguration, "unknown assembly type"), "value", s)
	}
}
