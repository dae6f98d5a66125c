// Package fs provides file system adapters for reading inputs, hashing and
// publishing generated files.
package fs

import (
	"errors"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"go.trai.ch/gendocs/internal/core/ports"
)

var _ ports.FileSystem = (*Walker)(nil)

// Walker implements ports.FileSystem on the local disk.
type Walker struct{}

// NewWalker creates a new Walker.
func NewWalker() *Walker {
	return &Walker{}
}

// ReadFile returns the content of the file at path.
func (w *Walker) ReadFile(path string) ([]byte, error) {
	//nolint:gosec // Paths come from the validated manifest
	return os.ReadFile(path)
}

// Exists reports whether path exists.
func (w *Walker) Exists(path string) bool {
	_, err := os.Stat(path)
	return !errors.Is(err, fs.ErrNotExist)
}

// WalkFiles yields all files under root in lexical order, skipping .git, .jj
// and ignored entries. Yielded paths include root.
func (w *Walker) WalkFiles(root string, ignores []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root {
				if skip, action := w.shouldSkip(d, ignores); skip {
					return action
				}
			}
			if d.IsDir() {
				return nil
			}
			if !yield(path) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// shouldSkip reports whether d is excluded. For directories the returned
// action prunes the subtree.
func (w *Walker) shouldSkip(d fs.DirEntry, ignores []string) (bool, error) {
	name := d.Name()
	if d.IsDir() && (name == ".git" || name == ".jj") {
		return true, filepath.SkipDir
	}
	for _, ignore := range ignores {
		if matched, _ := filepath.Match(ignore, name); matched {
			if d.IsDir() {
				return true, filepath.SkipDir
			}
			return true, nil
		}
	}
	return false, nil
}
