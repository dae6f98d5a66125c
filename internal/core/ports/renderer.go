package ports

import "go.trai.ch/gendocs/internal/core/domain"

// Renderer turns a symbol view into markdown.
//
//go:generate go run go.uber.org/mock/mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Render executes tmpl against view. An empty tmpl selects the built-in template.
	Render(tmpl string, view *domain.SymbolView) (string, error)
}
