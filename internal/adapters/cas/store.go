// Package cas stores the digests of published documentation files.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.StateStore = (*Store)(nil)

// state is the on-disk layout of the state file.
type state struct {
	Files []domain.FileRecord `json:"files"`
}

// Store implements ports.StateStore with one JSON file per config root.
// Loaded states are cached per root.
type Store struct {
	mu    sync.RWMutex
	cache map[string]map[string]domain.FileRecord
}

// NewStore creates a new Store.
func NewStore() *Store {
	return &Store{cache: make(map[string]map[string]domain.FileRecord)}
}

// Get retrieves the record for a site path.
// Returns nil, nil if not found.
func (s *Store) Get(root, path string) (*domain.FileRecord, error) {
	records, err := s.load(root)
	if err != nil {
		return nil, err
	}
	rec, ok := records[path]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

// Put replaces the recorded state of root with records.
func (s *Store) Put(root string, records []domain.FileRecord) error {
	data, err := json.MarshalIndent(state{Files: records}, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrStoreMarshalFailed.Error())
	}

	filename := domain.DefaultStatePath(root)
	if err := os.MkdirAll(filepath.Dir(filename), domain.StateDirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreCreateFailed.Error()), "path", filename)
	}
	//nolint:gosec // Path is constructed from the config directory
	if err := os.WriteFile(filename, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}

	index := make(map[string]domain.FileRecord, len(records))
	for _, rec := range records {
		index[rec.Path] = rec
	}
	s.mu.Lock()
	s.cache[root] = index
	s.mu.Unlock()
	return nil
}

// Clear removes the state file of root.
func (s *Store) Clear(root string) error {
	s.mu.Lock()
	delete(s.cache, root)
	s.mu.Unlock()

	filename := domain.DefaultStatePath(root)
	if err := os.Remove(filename); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrStoreWriteFailed.Error()), "path", filename)
	}
	return nil
}

func (s *Store) load(root string) (map[string]domain.FileRecord, error) {
	s.mu.RLock()
	records, ok := s.cache[root]
	s.mu.RUnlock()
	if ok {
		return records, nil
	}

	filename := domain.DefaultStatePath(root)
	//nolint:gosec // Path is constructed from the config directory
	data, err := os.ReadFile(filename)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]domain.FileRecord{}, nil
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreReadFailed.Error()), "path", filename)
	}

	var st state
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrStoreUnmarshalFailed.Error()), "path", filename)
	}
	records = make(map[string]domain.FileRecord, len(st.Files))
	for _, rec := range st.Files {
		records[rec.Path] = rec
	}

	s.mu.Lock()
	s.cache[root] = records
	s.mu.Unlock()
	return records, nil
}
