package ports

import "go.trai.ch/lunaria/internal/core/domain"

// ConfigLoader defines the interface for loading the project configuration.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration at path. An empty path triggers discovery from cwd.
	Load(cwd, path string) (*domain.Config, error)
}
