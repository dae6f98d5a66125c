package ports

import "go.trai.ch/gendocs/internal/core/domain"

// Publisher writes a generated site to disk and compares it with what is there.
//
//go:generate go run go.uber.org/mock/mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks
type Publisher interface {
	// Publish replaces the site root with the site's files.
	Publish(site *domain.Site) error
	// Diff reports how the files under the site root differ from the site.
	Diff(site *domain.Site) ([]domain.Drift, error)
}
