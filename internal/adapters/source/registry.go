// Package source dispatches extraction to the language extractor that
// supports a file and memoizes the parsed modules.
package source

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

var _ ports.Extractor = (*Registry)(nil)

// Registry implements ports.Extractor over a list of language extractors.
type Registry struct {
	extractors []ports.Extractor

	requestGroup singleflight.Group
	mu           sync.Mutex
	modules      map[string]memo
}

// memo is the last module parsed from a path and the file stamp it was
// parsed at.
type memo struct {
	stamp string
	mod   *domain.Module
}

// NewRegistry creates a registry trying extractors in order.
func NewRegistry(extractors ...ports.Extractor) *Registry {
	return &Registry{
		extractors: extractors,
		modules:    make(map[string]memo),
	}
}

// Supports reports whether any registered extractor handles path.
func (r *Registry) Supports(path string) bool {
	return r.lookup(path) != nil
}

// Extract parses path with the first extractor supporting it. Results are
// reused until the file's size or modification time changes.
func (r *Registry) Extract(path string) (*domain.Module, error) {
	ext := r.lookup(path)
	if ext == nil {
		err := zerr.Wrap(domain.ErrUnsupportedSource, "no extractor for "+filepath.Base(path))
		return nil, zerr.With(err, "path", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", path)
	}
	stamp := strconv.FormatInt(info.ModTime().UnixNano(), 10) + ":" + strconv.FormatInt(info.Size(), 10)

	r.mu.Lock()
	m, ok := r.modules[path]
	r.mu.Unlock()
	if ok && m.stamp == stamp {
		return m.mod, nil
	}

	result, err, _ := r.requestGroup.Do(path+"@"+stamp, func() (any, error) {
		mod, err := ext.Extract(path)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.modules[path] = memo{stamp: stamp, mod: mod}
		r.mu.Unlock()
		return mod, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Module), nil
}

func (r *Registry) lookup(path string) ports.Extractor {
	for _, ext := range r.extractors {
		if ext.Supports(path) {
			return ext
		}
	}
	return nil
}
