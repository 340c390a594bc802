package msvc

import (
	"context"
	"path/filepath"
	"strings"
	"sync"

	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/zerr"
)

// vcvarsArg maps an architecture to the argument vcvarsall.bat expects.
var vcvarsArg = map[domain.Architecture]string{
	domain.X86:   "x86",
	domain.X64:   "amd64",
	domain.ARM64: "arm64",
}

// Environment captures the variable set vcvarsall.bat produces for one
// architecture.
//
// The script is run through the command shell with a trailing `set`, so the
// shell dumps its resulting variable table to stdout after the script has
// executed; the full stream is captured and parsed as NAME=VALUE lines,
// best-effort, with captured values winning over base on case-insensitive
// collision. No partial snapshot is ever returned.
func (b *Backend) Environment(ctx context.Context, base *domain.EnvSnapshot, installPath string, arch domain.Architecture) (*domain.EnvSnapshot, error) {
	if arch.Count() != 1 {
		return nil, zerr.With(domain.ErrInvalidArchitectureSelection, "selection", arch.String())
	}

	script := filepath.Join(installPath, "VC", "vcvarsall.bat")

	var (
		mu    sync.Mutex
		lines []string
	)
	capture := func(line string) {
		mu.Lock()
		lines = append(lines, line)
		mu.Unlock()
	}

	code, err := b.runner.Run(ctx, ports.ProcessRequest{
		Name:     "cmd.exe",
		Args:     []string{"/Q", "/C", script, vcvarsArg[arch], "&&", "set"},
		Env:      base.Environ(),
		OnStdout: capture,
		OnStderr: capture,
	})
	if err != nil || code != 0 {
		captureErr := zerr.Wrap(domain.ErrEnvironmentCapture, "setup script invocation failed")
		captureErr = zerr.With(captureErr, "architecture", arch.String())
		captureErr = zerr.With(captureErr, "install_path", installPath)
		if err != nil {
			return nil, zerr.With(captureErr, "cause", err.Error())
		}
		return nil, zerr.With(captureErr, "exit_code", code)
	}

	snapshot := base.Clone()
	snapshot.MergeAssignments(strings.Join(lines, "\n"))
	return snapshot, nil
}
