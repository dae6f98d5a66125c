package ports

import "go.trai.ch/gendocs/internal/core/domain"

// Extractor introspects a source file into documented symbols.
//
//go:generate go run go.uber.org/mock/mockgen -source=extractor.go -destination=mocks/mock_extractor.go -package=mocks
type Extractor interface {
	// Extract parses the source file at path. The returned module keeps path as given.
	Extract(path string) (*domain.Module, error)
	// Supports reports whether the extractor handles the file at path.
	Supports(path string) bool
}
