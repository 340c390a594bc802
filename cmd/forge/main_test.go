package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/forge/internal/adapters/telemetry"
	"go.trai.ch/forge/internal/app"
	"go.trai.ch/forge/internal/core/domain"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/matrix"
	"go.uber.org/mock/gomock"
)

func testComponents(t *testing.T) (*app.Components, *mocks.MockConfigLoader) {
	t.Helper()
	ctrl := gomock.NewController(t)

	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Info(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Warn(gomock.Any()).AnyTimes()
	mockLogger.EXPECT().Error(gomock.Any()).AnyTimes()

	mockLoader := mocks.NewMockConfigLoader(ctrl)

	executor := matrix.NewExecutor(
		nil,
		mocks.NewMockProcessRunner(ctrl),
		mocks.NewMockTreeCopier(ctrl),
		mockLogger,
		telemetry.NewNoOp(),
		domain.NewEnvSnapshot(nil),
	)

	application := app.New(mockLoader, executor, mocks.NewMockChecksumVerifier(ctrl), mockLogger)
	return &app.Components{App: application, Logger: mockLogger}, mockLoader
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	components, _ := testComponents(t)

	provider := func(context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)
	assert.Equal(t, 0, exitCode)
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run returns 1 when the command execution fails.
func TestRun_ExecutionError(t *testing.T) {
	components, mockLoader := testComponents(t)

	mockLoader.EXPECT().
		Load("forge.yaml").
		Return(nil, domain.MatrixRequest{}, errors.New("load failed"))

	provider := func(context.Context) (*app.Components, func(), error) {
		return components, func() {}, nil
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"run"}, stderr, provider)
	assert.Equal(t, 1, exitCode)
}
