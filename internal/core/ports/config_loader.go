package ports

import "go.trai.ch/gendocs/internal/core/domain"

// ConfigLoader defines the interface for loading the documentation manifest.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads, validates and defaults the manifest at path.
	Load(path string) (*domain.Config, error)
}
