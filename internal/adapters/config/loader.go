// Package config provides the build-description loader for forge.
package config

import (
	"os"
	"runtime"
	"time"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*FileLoader)(nil)

// FileLoader implements ports.ConfigLoader using a YAML file.
type FileLoader struct{}

// NewLoader creates a new FileLoader.
func NewLoader() *FileLoader {
	return &FileLoader{}
}

// Load reads a forge.yaml build description and maps it onto a validated
// CompilerTask plus its MatrixRequest.
func (l *FileLoader) Load(path string) (*domain.CompilerTask, domain.MatrixRequest, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		return nil, domain.MatrixRequest{}, zerr.Wrap(err, "failed to read build description")
	}

	var file Forgefile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, domain.MatrixRequest{}, zerr.Wrap(err, "failed to parse build description")
	}

	req, err := buildRequest(&file)
	if err != nil {
		return nil, domain.MatrixRequest{}, err
	}

	task, err := buildTask(&file.Task)
	if err != nil {
		return nil, domain.MatrixRequest{}, err
	}

	return task, req, nil
}

func buildRequest(file *Forgefile) (domain.MatrixRequest, error) {
	req := domain.MatrixRequest{
		Toolchain:      file.Toolchain,
		Parallelism:    file.Parallelism,
		ProcessTimeout: time.Duration(file.TimeoutSeconds) * time.Second,
	}

	if req.Toolchain == "" {
		if runtime.GOOS == "windows" {
			req.Toolchain = "msvc"
		} else {
			req.Toolchain = "gcc"
		}
	}

	if file.MinimumVersion != "" {
		min, err := domain.ParseToolchainVersion(file.MinimumVersion)
		if err != nil {
			return req, err
		}
		req.MinimumVersion = min
	}

	for _, s := range file.Configurations {
		cfg, err := domain.ParseConfiguration(s)
		if err != nil {
			return req, err
		}
		req.Configurations |= cfg
	}
	if req.Configurations == 0 {
		req.Configurations = domain.Debug
	}

	for _, s := range file.Architectures {
		arch, err := domain.ParseArchitecture(s)
		if err != nil {
			return req, err
		}
		req.Architectures |= arch
	}
	if req.Architectures == 0 {
		req.Architectures = domain.X64
	}

	return req, nil
}

// buildTask maps the DTO through the task's strict setters. Library paths are
// assigned before library names; strict library validation resolves against
// the paths configured at call time.
func buildTask(dto *TaskDTO) (*domain.CompilerTask, error) {
	task := domain.NewCompilerTask(dto.StrictPaths)
	task.SetAutoCopyIncludes(dto.CopyIncludes)
	task.SetCompilerFlags(dto.CompilerFlags)
	task.SetLinkerFlags(dto.LinkerFlags)

	if err := task.SetSources(dto.Sources); err != nil {
		return nil, err
	}
	if err := task.SetIncludePaths(dto.IncludePaths); err != nil {
		return nil, err
	}
	if err := task.SetLibraryPaths(dto.LibraryPaths); err != nil {
		return nil, err
	}
	if err := task.SetLibraries(dto.Libraries); err != nil {
		return nil, err
	}
	if err := task.SetIntermediateDir(dto.IntermediaryDir); err != nil {
		return nil, err
	}
	if err := task.SetOutputDir(dto.OutputDir); err != nil {
		return nil, err
	}
	if err := task.SetOutputName(dto.OutputName); err != nil {
		return nil, err
	}

	assembly, err := domain.ParseAssemblyType(dto.Type)
	if err != nil {
		return nil, err
	}
	task.SetAssemblyType(assembly)

	return task, nil
}
