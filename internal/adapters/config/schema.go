package config

// Forgefile represents the structure of the forge.yaml build description.
type Forgefile struct {
	Version        string   `yaml:"version"`
	Toolchain      string   `yaml:"toolchain"`
	MinimumVersion string   `yaml:"minimumVersion"`
	Configurations []string `yaml:"configurations"`
	Architectures  []string `yaml:"architectures"`
	Parallelism    int      `yaml:"parallelism"`
	TimeoutSeconds int      `yaml:"timeoutSeconds"`
	Task           TaskDTO  `yaml:"task"`
}

// TaskDTO represents the compiler task definition in the build description.
type TaskDTO struct {
	Sources         []string `yaml:"sources"`
	IncludePaths    []string `yaml:"includePaths"`
	LibraryPaths    []string `yaml:"libraryPaths"`
	Libraries       []string `yaml:"libraries"`
	CompilerFlags   []string `yaml:"compilerFlags"`
	LinkerFlags     []string `yaml:"linkerFlags"`
	IntermediaryDir string   `yaml:"intermediaryDir"`
	OutputDir       string   `yaml:"outputDir"`
	OutputName      string   `yaml:"outputName"`
	Type            string   `yaml:"type"`
	StrictPaths     bool     `yaml:"strictPaths"`
	CopyIncludes    bool     `yaml:"copyIncludes"`
}
