package domain

import "time"

// MatrixRequest describes one build-matrix run: which toolchain family to
// use, the minimum acceptable release, and the configuration and architecture
// sets whose cross product forms the cells.
type MatrixRequest struct {
	// Toolchain selects the backend by name, e.g. "msvc" or "gcc".
	Toolchain string
	// MinimumVersion is the oldest acceptable toolchain release.
	MinimumVersion ToolchainVersion
	// Configurations is the set of requested build configurations.
	Configurations Configuration
	// Architectures is the set of requested target architectures.
	Architectures Architecture
	// Parallelism bounds concurrent cell execution; <= 0 means NumCPU.
	Parallelism int
	// ProcessTimeout bounds each external tool invocation; 0 means none.
	ProcessTimeout time.Duration
}
