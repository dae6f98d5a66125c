package ports

import "go.trai.ch/gendocs/internal/core/domain"

// StateStore records the digests of published files per config root.
//
//go:generate go run go.uber.org/mock/mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type StateStore interface {
	// Get retrieves the record for a site path.
	// Returns nil, nil if not found.
	Get(root, path string) (*domain.FileRecord, error)

	// Put replaces the recorded state of root with records.
	Put(root string, records []domain.FileRecord) error

	// Clear removes the recorded state of root.
	Clear(root string) error
}
