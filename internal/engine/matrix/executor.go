// Package matrix implements the build matrix executor.
package matrix

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

const dirPerm = 0o755

// sourceExtensions are never propagated alongside headers.
var sourceExtensions = []string{".c", ".cpp", ".cxx"}

// Report summarizes one matrix run.
type Report struct {
	Attempted int
	Succeeded int
}

// Success reports the overall verdict: at least one cell attempted and every
// attempted cell succeeded.
func (r Report) Success() bool {
	return r.Attempted > 0 && r.Succeeded == r.Attempted
}

type envKey struct {
	version domain.ToolchainVersion
	arch    domain.Architecture
}

// Executor turns one compiler task plus a matrix request into a verdict.
//
// Cells are mutually independent by construction: each owns cloned flag lists,
// a distinct intermediary directory, and a distinct output path, so they run
// on a bounded worker pool. The error log and the report counters are the only
// shared mutable state and are serialized. A single cell's failure never
// short-circuits its siblings; the caller always gets the complete picture.
type Executor struct {
	backends  map[string]ports.ToolchainBackend
	runner    ports.ProcessRunner
	copier    ports.TreeCopier
	logger    ports.Logger
	telemetry ports.Telemetry
	baseEnv   *domain.EnvSnapshot

	log *domain.ErrorLog

	envMu    sync.Mutex
	envCache map[envKey]*domain.EnvSnapshot
}

// NewExecutor creates an Executor. baseEnv is the ambient environment used
// for toolchain discovery and environment capture; passing it explicitly
// keeps the executor testable with synthetic environments.
func NewExecutor(
	backends []ports.ToolchainBackend,
	runner ports.ProcessRunner,
	copier ports.TreeCopier,
	logger ports.Logger,
	telemetry ports.Telemetry,
	baseEnv *domain.EnvSnapshot,
) *Executor {
	byName := make(map[string]ports.ToolchainBackend, len(backends))
	for _, b := range backends {
		byName[b.Name()] = b
	}
	return &Executor{
		backends:  byName,
		runner:    runner,
		copier:    copier,
		logger:    logger,
		telemetry: telemetry,
		baseEnv:   baseEnv,
		log:       domain.NewErrorLog(),
	}
}

// ErrorLog exposes the failure records of the most recent Run or Clean.
func (e *Executor) ErrorLog() *domain.ErrorLog { return e.log }

// Run executes the build matrix for one task and returns the report plus the
// aggregated error, nil on success.
func (e *Executor) Run(ctx context.Context, task *domain.CompilerTask, req domain.MatrixRequest) (Report, error) {
	e.log.Reset()
	e.envMu.Lock()
	e.envCache = make(map[envKey]*domain.EnvSnapshot)
	e.envMu.Unlock()

	var report Report

	// Preconditions abort before any process is spawned.
	if err := task.Validate(); err != nil {
		e.log.Append(domain.BuildError{Stage: domain.StageConfiguration, Err: err})
		return report, e.log.Err()
	}

	backend, ok := e.backends[req.Toolchain]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrConfiguration, "unknown toolchain"), "toolchain", req.Toolchain)
		e.log.Append(domain.BuildError{Stage: domain.StageConfiguration, Err: err})
		return report, e.log.Err()
	}

	// Discovery runs fresh on every call; installs change between runs.
	registry := backend.Discover(ctx, e.baseEnv, backend.SupportedVersions())
	version, installPath, ok := registry.Satisfy(req.MinimumVersion)
	if !ok {
		err := zerr.With(zerr.With(domain.ErrToolchainNotFound,
			"backend", backend.Name()),
			"minimum_version", req.MinimumVersion.String())
		e.log.Append(domain.BuildError{Stage: domain.StageToolchain, Err: err})
		return report, e.log.Err()
	}
	e.logger.Info(fmt.Sprintf("using %s %s at %s", backend.Name(), version, installPath))

	cells := e.buildCells(task, backend, req)
	if len(cells) == 0 {
		err := zerr.Wrap(domain.ErrConfiguration, "empty build matrix")
		e.log.Append(domain.BuildError{Stage: domain.StageConfiguration, Err: err})
		return report, e.log.Err()
	}

	parallelism := req.Parallelism
	if parallelism <= 0 {
		parallelism = runtime.NumCPU()
	}

	var (
		mu sync.Mutex
		g  errgroup.Group
	)
	g.SetLimit(parallelism)
	for _, cell := range cells {
		g.Go(func() error {
			e.runCell(ctx, backend, task, req, version, installPath, cell)
			mu.Lock()
			report.Attempted++
			if cell.Status == domain.CellSucceeded {
				report.Succeeded++
			}
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if !report.Success() {
		// ErrBuildFailed heads the aggregate so callers can match it with
		// errors.Is while still seeing every cell record.
		agg := multierror.Append(nil, domain.ErrBuildFailed)
		for _, rec := range e.log.Records() {
			agg = multierror.Append(agg, rec)
		}
		return report, agg.ErrorOrNil()
	}

	if err := e.propagateIncludes(task); err != nil {
		e.log.Append(domain.BuildError{Stage: domain.StagePropagation, Err: err})
		return report, e.log.Err()
	}

	return report, nil
}

// buildCells expands the configuration × architecture cross product in the
// declared order. Every cell clones the task-level flag lists before
// composing its own, so cell-specific entries never leak between cells.
func (e *Executor) buildCells(task *domain.CompilerTask, backend ports.ToolchainBackend, req domain.MatrixRequest) []*domain.BuildCell {
	var cells []*domain.BuildCell
	for _, cfg := range req.Configurations.Split() {
		for _, arch := range req.Architectures.Split() {
			cell := &domain.BuildCell{
				Configuration: cfg,
				Architecture:  arch,
				Status:        domain.CellPending,
			}
			cell.IntermediateDir = filepath.Join(task.IntermediateDir(), cell.Name())

			compilerFlags := task.CompilerFlags()
			compilerFlags = append(compilerFlags, backend.ConfigurationFlags(cfg)...)
			compilerFlags = append(compilerFlags, backend.ObjectDirFlags(cell.IntermediateDir)...)
			compilerFlags = append(compilerFlags, backend.IncludeFlags(task.IncludePaths())...)

			linkerFlags := task.LinkerFlags()
			linkerFlags = append(linkerFlags, backend.MachineLinkerFlags(arch)...)

			switch task.AssemblyType() {
			case domain.SharedLibrary:
				compilerFlags = append(compilerFlags, backend.SharedLibraryCompilerFlags()...)
				linkerFlags = append(linkerFlags, backend.SharedLibraryLinkerFlags()...)
			case domain.StaticLibrary:
				if !slices.Contains(compilerFlags, backend.CompileOnlyFlag()) {
					compilerFlags = append(compilerFlags, backend.CompileOnlyFlag())
				}
			case domain.Executable, domain.Unspecified:
				// Unspecified is unreachable; Validate rejected it.
			}

			cell.CompilerFlags = compilerFlags
			cell.LinkerFlags = linkerFlags
			cell.OutputPath = filepath.Join(task.OutputDir(), cell.Name(),
				task.OutputName()+backend.Extension(task.AssemblyType()))

			cells = append(cells, cell)
		}
	}
	return cells
}

// runCell drives one cell to completion. A failing step marks the cell Failed
// and skips its remaining steps; sibling cells are unaffected.
func (e *Executor) runCell(
	ctx context.Context,
	backend ports.ToolchainBackend,
	task *domain.CompilerTask,
	req domain.MatrixRequest,
	version domain.ToolchainVersion,
	installPath string,
	cell *domain.BuildCell,
) {
	_, vertex := e.telemetry.Record(ctx, cell.Name())
	var cellErr error
	defer func() { vertex.Complete(cellErr) }()

	env, err := e.environmentFor(ctx, backend, version, installPath, cell.Architecture)
	if err != nil {
		cell.Status = domain.CellFailed
		cellErr = err
		e.log.Append(domain.BuildError{
			Stage:         domain.StageEnvironment,
			Configuration: cell.Configuration,
			Architecture:  cell.Architecture,
			Err:           err,
		})
		return
	}

	if err := e.prepareCellDirs(cell); err != nil {
		cell.Status = domain.CellFailed
		cellErr = err
		e.log.Append(domain.BuildError{
			Stage:         domain.StageCompile,
			Configuration: cell.Configuration,
			Architecture:  cell.Architecture,
			Err:           err,
		})
		return
	}

	cell.Status = domain.CellCompiling
	name, args := backend.CompileCommand(task, cell)
	code, err := e.runTool(ctx, req, cell, env, vertex, name, args)
	if err != nil || code != 0 {
		cell.Status = domain.CellFailed
		cellErr = stepError(compileSentinel(task.AssemblyType()), code, err)
		e.log.Append(domain.BuildError{
			Stage:         domain.StageCompile,
			Configuration: cell.Configuration,
			Architecture:  cell.Architecture,
			ExitCode:      code,
			Err:           cellErr,
		})
		return
	}

	if task.AssemblyType() == domain.StaticLibrary {
		cell.Status = domain.CellLinking
		objects, globErr := filepath.Glob(filepath.Join(cell.IntermediateDir, backend.ObjectPattern()))
		if globErr != nil || len(objects) == 0 {
			cell.Status = domain.CellFailed
			cellErr = zerr.With(zerr.Wrap(domain.ErrLibrarianFailed, "no object files produced"),
				"dir", cell.IntermediateDir)
			e.log.Append(domain.BuildError{
				Stage:         domain.StageArchive,
				Configuration: cell.Configuration,
				Architecture:  cell.Architecture,
				Err:           cellErr,
			})
			return
		}

		name, args := backend.ArchiveCommand(task, cell, objects)
		code, err := e.runTool(ctx, req, cell, env, vertex, name, args)
		if err != nil || code != 0 {
			cell.Status = domain.CellFailed
			cellErr = stepError(domain.ErrLibrarianFailed, code, err)
			e.log.Append(domain.BuildError{
				Stage:         domain.StageArchive,
				Configuration: cell.Configuration,
				Architecture:  cell.Architecture,
				ExitCode:      code,
				Err:           cellErr,
			})
			return
		}
	}

	cell.Status = domain.CellSucceeded
}

// runTool invokes one external tool inside the cell directory, streaming its
// output to the logger and the cell's telemetry vertex.
func (e *Executor) runTool(
	ctx context.Context,
	req domain.MatrixRequest,
	cell *domain.BuildCell,
	env *domain.EnvSnapshot,
	vertex ports.Vertex,
	name string,
	args []string,
) (int, error) {
	prefix := "[" + cell.Name() + "] "
	return e.runner.Run(ctx, ports.ProcessRequest{
		Dir:     cell.IntermediateDir,
		Name:    name,
		Args:    args,
		Env:     env.Environ(),
		Timeout: req.ProcessTimeout,
		OnStdout: func(line string) {
			_, _ = fmt.Fprintln(vertex.Stdout(), line)
			e.logger.Info(prefix + line)
		},
		OnStderr: func(line string) {
			_, _ = fmt.Fprintln(vertex.Stderr(), line)
			e.logger.Warn(prefix + line)
		},
	})
}

// environmentFor resolves or reuses the snapshot for one (version,
// architecture) pair. Snapshots are immutable once built and depend on
// nothing else, so they are shared read-only across cells.
func (e *Executor) environmentFor(
	ctx context.Context,
	backend ports.ToolchainBackend,
	version domain.ToolchainVersion,
	installPath string,
	arch domain.Architecture,
) (*domain.EnvSnapshot, error) {
	key := envKey{version: version, arch: arch}

	// The lock is held across the capture so concurrent cells of the same
	// architecture never spawn the setup script twice.
	e.envMu.Lock()
	defer e.envMu.Unlock()

	if snap, ok := e.envCache[key]; ok {
		return snap, nil
	}

	snap, err := backend.Environment(ctx, e.baseEnv, installPath, arch)
	if err != nil {
		return nil, err
	}
	e.envCache[key] = snap
	return snap, nil
}

func (e *Executor) prepareCellDirs(cell *domain.BuildCell) error {
	if err := os.MkdirAll(cell.IntermediateDir, dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create intermediary directory"), "dir", cell.IntermediateDir)
	}
	if err := os.MkdirAll(filepath.Dir(cell.OutputPath), dirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create output directory"), "dir", filepath.Dir(cell.OutputPath))
	}
	return nil
}

// propagateIncludes copies headers next to library output after a fully
// successful run, excluding source extensions.
func (e *Executor) propagateIncludes(task *domain.CompilerTask) error {
	if !task.AutoCopyIncludes() {
		return nil
	}
	if t := task.AssemblyType(); t != domain.SharedLibrary && t != domain.StaticLibrary {
		return nil
	}

	target := filepath.Join(task.OutputDir(), "include")
	for _, include := range task.IncludePaths() {
		if err := e.copier.CopyTree(include, target, nil, sourceExtensions); err != nil {
			return zerr.With(zerr.Wrap(err, "failed to propagate headers"), "include_path", include)
		}
	}
	return nil
}

// Clean recursively deletes and recreates the task's intermediary directory.
func (e *Executor) Clean(task *domain.CompilerTask) error {
	e.log.Reset()

	dir := task.IntermediateDir()
	if dir == "" || !filepath.IsAbs(dir) {
		err := zerr.With(zerr.Wrap(domain.ErrCleanFailed, "intermediary directory must be absolute"), "dir", dir)
		e.log.Append(domain.BuildError{Stage: domain.StageClean, Err: err})
		return e.log.Err()
	}

	if err := os.RemoveAll(dir); err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrCleanFailed, err.Error()), "dir", dir)
		e.log.Append(domain.BuildError{Stage: domain.StageClean, Err: wrapped})
		return e.log.Err()
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		wrapped := zerr.With(zerr.Wrap(domain.ErrCleanFailed, err.Error()), "dir", dir)
		e.log.Append(domain.BuildError{Stage: domain.StageClean, Err: wrapped})
		return e.log.Err()
	}
	return nil
}

// compileSentinel labels the compile step's failure: compile-only steps fail
// compilation; merged compile+link steps fail the link.
func compileSentinel(t domain.AssemblyType) error {
	if t == domain.StaticLibrary {
		return domain.ErrCompilationFailed
	}
	return domain.ErrLinkFailed
}

func stepError(sentinel error, code int, err error) error {
	if err != nil {
		return zerr.With(zerr.Wrap(sentinel, err.Error()), "exit_code", code)
	}
	return zerr.With(sentinel, "exit_code", code)
}
