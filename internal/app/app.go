// Package app implements the application layer for forge.
package app

import (
	"context"
	"fmt"

	"go.trai.ch/forge/internal/core/ports"
	"go.trai.ch/forge/internal/engine/matrix"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	executor     *matrix.Executor
	verifier     ports.ChecksumVerifier
	logger       ports.Logger
}

// New creates a new App instance.
func New(loader ports.ConfigLoader, executor *matrix.Executor, verifier ports.ChecksumVerifier, logger ports.Logger) *App {
	return &App{
		configLoader: loader,
		executor:     executor,
		verifier:     verifier,
		logger:       logger,
	}
}

// Run loads the build description and executes the full build matrix.
func (a *App) Run(ctx context.Context, configPath string) error {
	task, req, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load build description")
	}

	report, err := a.executor.Run(ctx, task, req)
	if err != nil {
		for _, rec := range a.executor.ErrorLog().Records() {
			a.logger.Error(rec)
		}
		a.logger.Warn(fmt.Sprintf("build failed: %d/%d cells succeeded", report.Succeeded, report.Attempted))
		return err
	}

	a.logger.Info(fmt.Sprintf("build succeeded: %d/%d cells", report.Succeeded, report.Attempted))
	return nil
}

// Clean loads the build description and removes its intermediary output.
func (a *App) Clean(_ context.Context, configPath string) error {
	task, _, err := a.configLoader.Load(configPath)
	if err != nil {
		return zerr.Wrap(err, "failed to load build description")
	}

	if err := a.executor.Clean(task); err != nil {
		return err
	}

	a.logger.Info("intermediary directory cleaned")
	return nil
}

// Verify checks a produced artifact against an expected checksum.
func (a *App) Verify(_ context.Context, path, expected string) error {
	if err := a.verifier.VerifyFile(path, expected); err != nil {
		return err
	}

	a.logger.Info(fmt.Sprintf("checksum ok: %s", path))
	return nil
}
