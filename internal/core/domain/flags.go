package domain

import (
	"math/bits"
	"strings"

	"go.trai.ch/zerr"
)

// Configuration is a bit set of requested build configurations.
// A matrix request may carry several; a build cell carries exactly one.
type Configuration uint8

const (
	// Debug selects unoptimized codegen with debug information.
	Debug Configuration = 1 << iota
	// Release selects optimized codegen.
	Release
)

// configOrder fixes the enumeration order used by Split.
var configOrder = []Configuration{Debug, Release}

// Count returns the number of configurations selected.
func (c Configuration) Count() int {
	return bits.OnesCount8(uint8(c))
}

// Split enumerates the selected configurations in declaration order.
func (c Configuration) Split() []Configuration {
	out := make([]Configuration, 0, c.Count())
	for _, v := range configOrder {
		if c&v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func (c Configuration) String() string {
	switch c {
	case Debug:
		return "Debug"
	case Release:
		return "Release"
	default:
		parts := make([]string, 0, c.Count())
		for _, v := range c.Split() {
			parts = append(parts, v.String())
		}
		return strings.Join(parts, "|")
	}
}

// ParseConfiguration maps a config-file token to a Configuration value.
func ParseConfiguration(s string) (Configuration, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return Debug, nil
	case "release":
		return Release, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrConfiguration, "unknown configuration"), "value", s)
	}
}

// Architecture is a bit set of target architectures.
// A matrix request may carry several; a build cell carries exactly one.
type Architecture uint8

const (
	// X86 targets 32-bit x86.
	X86 Architecture = 1 << iota
	// X64 targets 64-bit x86.
	X64
	// ARM64 targets 64-bit ARM.
	ARM64
)

var archOrder = []Architecture{X86, X64, ARM64}

// Count returns the number of architectures selected.
func (a Architecture) Count() int {
	return bits.OnesCount8(uint8(a))
}

// Split enumerates the selected architectures in declaration order.
func (a Architecture) Split() []Architecture {
	out := make([]Architecture, 0, a.Count())
	for _, v := range archOrder {
		if a&v != 0 {
			out = append(out, v)
		}
	}
	return out
}

func (a Architecture) String() string {
	switch a {
	case X86:
		return "x86"
	case X64:
		return "x64"
	case ARM64:
		return "arm64"
	default:
		parts := make([]string, 0, a.Count())
		for _, v := range a.Split() {
			parts = append(parts, v.String())
		}
		return strings.Join(parts, "|")
	}
}

// ParseArchitecture maps a config-file token to an Architecture value.
func ParseArchitecture(s string) (Architecture, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x86", "win32":
		return X86, nil
	case "x64", "amd64":
		return X64, nil
	case "arm64":
		return ARM64, nil
	default:
		return 0, zerr.With(zerr.Wrap(ErrConfiguration, "unknown architecture"), "value", s)
	}
}
