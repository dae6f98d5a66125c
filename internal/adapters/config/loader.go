// Package config loads and validates the gendocs manifest.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader for YAML manifests.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads, validates and defaults the manifest at path.
func (l *Loader) Load(path string) (*domain.Config, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	//nolint:gosec // Path is provided by the user
	data, err := os.ReadFile(abs)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, zerr.With(zerr.Wrap(domain.ErrConfigNotFound, path), "path", abs)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", abs)
	}

	cfg, err := Parse(filepath.Dir(abs), data)
	if err != nil {
		return nil, zerr.With(err, "path", abs)
	}
	return cfg, nil
}

// Parse decodes and validates manifest data. Relative paths resolve against root.
func Parse(root string, data []byte) (*domain.Config, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}
	if raw == nil {
		raw = map[string]any{}
	}

	issues, err := validate(raw)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrInvalidConfig, err.Error())
	}
	if len(issues) > 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidConfig, strings.Join(issues, "; ")), "issues", issues)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.Wrap(domain.ErrConfigParseFailed, err.Error())
	}

	cfg := toDomain(root, &manifest)
	if err := check(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func toDomain(root string, m *Manifest) *domain.Config {
	cfg := &domain.Config{
		Root:              root,
		SourcesDir:        withDefault(m.SourcesDir, domain.DefaultSourcesDir),
		Templates:         m.Templates,
		Repo:              m.Repo,
		Version:           withDefault(m.Version, domain.DefaultVersion),
		DocstringTemplate: m.DocstringTemplate,
		Readme:            withDefault(m.Readme, domain.DefaultReadme),
		Contributing:      withDefault(m.Contributing, domain.DefaultContributing),
		ExamplesDir:       withDefault(m.ExamplesDir, domain.DefaultExamplesDir),
		Docstring: domain.DocstringOptions{
			CheckArgs:           m.Docstring.CheckArgs,
			OverrideAnnotations: m.Docstring.OverrideAnnotations,
		},
		Pages: make([]domain.Page, 0, len(m.Pages)),
	}
	for _, p := range m.Pages {
		page := domain.Page{
			Path:      path.Clean(filepath.ToSlash(p.Page)),
			Source:    p.Source,
			Index:     p.Index,
			Functions: p.Functions,
		}
		for _, c := range p.Classes {
			page.Classes = append(page.Classes, domain.ClassSpec{Name: c.Name, Methods: c.Methods})
		}
		cfg.Pages = append(cfg.Pages, page)
	}
	return cfg
}

// check applies the rules the schema cannot express.
func check(cfg *domain.Config) error {
	out := cfg.OutputDir()
	if rel, err := filepath.Rel(out, cfg.Root); err == nil && !strings.HasPrefix(rel, "..") {
		err := zerr.Wrap(domain.ErrInvalidConfig, "sources_dir must not contain the config directory")
		return zerr.With(err, "sources_dir", cfg.SourcesDir)
	}

	seen := make(map[string]bool, len(cfg.Pages))
	for _, p := range cfg.Pages {
		if path.IsAbs(p.Path) || strings.HasPrefix(p.Path, "../") || p.Path == ".." || path.Ext(p.Path) != ".md" {
			return zerr.With(zerr.Wrap(domain.ErrInvalidPagePath, p.Path), "page", p.Path)
		}
		if seen[p.Path] {
			return zerr.With(zerr.Wrap(domain.ErrDuplicatePage, p.Path), "page", p.Path)
		}
		seen[p.Path] = true

		if !p.Index {
			continue
		}
		for _, c := range p.Classes {
			if c.HasMethodFilter() {
				err := zerr.Wrap(domain.ErrIndexMethodFilter, "class "+c.Name+" on "+p.Path)
				return zerr.With(err, "page", p.Path)
			}
		}
	}
	return nil
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
