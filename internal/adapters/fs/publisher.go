package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/pmezard/go-difflib/difflib"
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Publisher = (*Publisher)(nil)

// Publisher implements ports.Publisher. The site root is owned entirely by
// the publisher: every publish starts from an empty directory.
type Publisher struct {
	hasher *Hasher
	walker *Walker
}

// NewPublisher creates a new Publisher.
func NewPublisher(hasher *Hasher, walker *Walker) *Publisher {
	return &Publisher{hasher: hasher, walker: walker}
}

// Publish removes the site root and writes every file of site beneath it.
func (p *Publisher) Publish(site *domain.Site) error {
	if err := os.RemoveAll(site.Root); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", site.Root)
	}
	if err := os.MkdirAll(site.Root, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", site.Root)
	}
	for file := range site.Files() {
		path := filepath.Join(site.Root, filepath.FromSlash(file.Path))
		if err := os.MkdirAll(filepath.Dir(path), domain.DirPerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
		}
		if err := os.WriteFile(path, file.Content, domain.FilePerm); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrPublishFailed.Error()), "path", path)
		}
	}
	return nil
}

// Diff compares site with the files under its root. Missing and modified
// files are reported in site order, extra files in lexical order.
func (p *Publisher) Diff(site *domain.Site) ([]domain.Drift, error) {
	var drifts []domain.Drift
	for file := range site.Files() {
		path := filepath.Join(site.Root, filepath.FromSlash(file.Path))
		//nolint:gosec // Path is beneath the configured sources dir
		current, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			drifts = append(drifts, domain.Drift{Path: file.Path, Kind: domain.DriftMissing})
			continue
		}
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to read published file"), "path", path)
		}
		if p.hasher.Sum(current) == p.hasher.Sum(file.Content) {
			continue
		}
		diff, err := unified(file.Path, current, file.Content)
		if err != nil {
			return nil, err
		}
		drifts = append(drifts, domain.Drift{Path: file.Path, Kind: domain.DriftModified, Diff: diff})
	}

	var extra []string
	for path := range p.walker.WalkFiles(site.Root, nil) {
		rel, err := filepath.Rel(site.Root, path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to relativize path"), "path", path)
		}
		rel = filepath.ToSlash(rel)
		if _, ok := site.Get(rel); !ok {
			extra = append(extra, rel)
		}
	}
	slices.Sort(extra)
	for _, rel := range extra {
		drifts = append(drifts, domain.Drift{Path: rel, Kind: domain.DriftExtra})
	}
	return drifts, nil
}

func unified(path string, published, generated []byte) (string, error) {
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(string(published)),
		B:        difflib.SplitLines(string(generated)),
		FromFile: "a/" + path,
		ToFile:   "b/" + path,
		Context:  3,
	})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to diff file"), "path", path)
	}
	return diff, nil
}
