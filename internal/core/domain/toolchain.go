package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// ToolchainVersion identifies one supported toolchain release.
// Values are ordered: a larger value is a newer release within its family.
type ToolchainVersion int

// GCC releases are identified by their major version.
const (
	GCC10 ToolchainVersion = 10
	GCC11 ToolchainVersion = 11
	GCC12 ToolchainVersion = 12
	GCC13 ToolchainVersion = 13
	GCC14 ToolchainVersion = 14
)

// Visual Studio releases are identified by their platform toolset number,
// which is also the number embedded in the VS*COMNTOOLS environment variable.
const (
	VS2012 ToolchainVersion = 110
	VS2013 ToolchainVersion = 120
	VS2015 ToolchainVersion = 140
)

var versionNames = map[ToolchainVersion]string{
	GCC10:  "gcc-10",
	GCC11:  "gcc-11",
	GCC12:  "gcc-12",
	GCC13:  "gcc-13",
	GCC14:  "gcc-14",
	VS2012: "vs2012",
	VS2013: "vs2013",
	VS2015: "vs2015",
}

func (v ToolchainVersion) String() string {
	if name, ok := versionNames[v]; ok {
		return name
	}
	return "unknown"
}

// ParseToolchainVersion maps a config-file token to a ToolchainVersion.
func ParseToolchainVersion(s string) (ToolchainVersion, error) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for v, name := range versionNames {
		if name == needle {
			return v, nil
		}
	}
	return 0, zerr.With(zerr.Wrap(ErrConfiguration, "unknown toolchain version"), "value", s)
}

// Registry maps an installed toolchain release to its absolute install path.
// It is rebuilt on every discovery call and read-only afterwards; installs can
// change between runs, so registries are never cached across runs.
type Registry map[ToolchainVersion]string

// Satisfy returns the newest installed release that is at least min.
// The boolean is false when no installed release satisfies the requirement;
// an empty registry is a normal outcome, not an error.
func (r Registry) Satisfy(min ToolchainVersion) (ToolchainVersion, string, bool) {
	var (
		best  ToolchainVersion
		path  string
		found bool
	)
	for v, p := range r {
		if v < min {
			continue
		}
		if !found || v > best {
			best, path, found = v, p, true
		}
	}
	return best, path, found
}
