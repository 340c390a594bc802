package ports

//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks

import "go.trai.ch/forge/internal/core/domain"

// ConfigLoader reads a build description file and produces a validated task
// plus the matrix request to run it with.
type ConfigLoader interface {
	Load(path string) (*domain.CompilerTask, domain.MatrixRequest, error)
}
