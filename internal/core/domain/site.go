package domain

import (
	"iter"
	"path/filepath"
)

// File is a single generated file, addressed relative to the site root.
type File struct {
	Path    string
	Content []byte
}

// Site is the in-memory documentation tree written to SourcesDir.
// Files keep insertion order so publishing is deterministic.
type Site struct {
	Root  string
	files []File
	index map[string]int
}

// NewSite creates an empty site rooted at root.
func NewSite(root string) *Site {
	return &Site{
		Root:  root,
		index: make(map[string]int),
	}
}

// Put adds or replaces the file at path.
func (s *Site) Put(path string, content []byte) {
	path = filepath.ToSlash(filepath.Clean(path))
	if i, ok := s.index[path]; ok {
		s.files[i].Content = content
		return
	}
	s.index[path] = len(s.files)
	s.files = append(s.files, File{Path: path, Content: content})
}

// Get returns the content stored at path.
func (s *Site) Get(path string) ([]byte, bool) {
	i, ok := s.index[filepath.ToSlash(filepath.Clean(path))]
	if !ok {
		return nil, false
	}
	return s.files[i].Content, true
}

// Len returns the number of files.
func (s *Site) Len() int {
	return len(s.files)
}

// Files yields the files in insertion order.
func (s *Site) Files() iter.Seq[File] {
	return func(yield func(File) bool) {
		for _, f := range s.files {
			if !yield(f) {
				return
			}
		}
	}
}

// DriftKind describes how a published file differs from the generated one.
type DriftKind uint8

const (
	// DriftMissing means the generated file is not on disk.
	DriftMissing DriftKind = iota
	// DriftModified means the file on disk has different content.
	DriftModified
	// DriftExtra means the file on disk is not produced by generation.
	DriftExtra
)

// String returns a short label for the drift kind.
func (k DriftKind) String() string {
	switch k {
	case DriftMissing:
		return "missing"
	case DriftModified:
		return "modified"
	default:
		return "extra"
	}
}

// Drift is a difference between the generated site and the published one.
type Drift struct {
	Path string
	Kind DriftKind
	// Diff is a unified diff for modified files.
	Diff string
}

// FileRecord is the published digest of one site file.
type FileRecord struct {
	Path   string `json:"path"`
	Digest string `json:"digest"`
}
