package domain

// CellStatus tracks one build cell through its lifecycle.
type CellStatus int

const (
	// CellPending means the cell has been created but not started.
	CellPending CellStatus = iota
	// CellCompiling means the compiler invocation is in flight.
	CellCompiling
	// CellLinking means the link or archive invocation is in flight.
	CellLinking
	// CellSucceeded means every step of the cell completed with exit code 0.
	CellSucceeded
	// CellFailed means a step exited non-zero or could not be started.
	CellFailed
)

func (s CellStatus) String() string {
	switch s {
	case CellCompiling:
		return "Compiling"
	case CellLinking:
		return "Linking"
	case CellSucceeded:
		return "Succeeded"
	case CellFailed:
		return "Failed"
	default:
		return "Pending"
	}
}

// BuildCell is the unit of work for one (configuration, architecture) pair.
// Each cell owns cloned flag lists, a distinct intermediary directory, and a
// distinct output path, so cells never share mutable state. Cells are created
// fresh per matrix iteration and discarded afterwards.
type BuildCell struct {
	Configuration Configuration
	Architecture  Architecture

	CompilerFlags []string
	LinkerFlags   []string

	IntermediateDir string
	OutputPath      string

	Status CellStatus
}

// Name is the cell's identity, e.g. "Debug x86". It is also the name of the
// cell's intermediary subdirectory.
func (c *BuildCell) Name() string {
	return c.Configuration.String() + " " + c.Architecture.String()
}
