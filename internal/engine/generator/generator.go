// Package generator assembles the documentation site from a manifest.
package generator

import (
	"context"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Generator renders the pages of a manifest into an in-memory site.
type Generator struct {
	extractor ports.Extractor
	renderer  ports.Renderer
	fs        ports.FileSystem
	logger    ports.Logger
	telemetry ports.Telemetry
}

// New creates a new Generator.
func New(
	extractor ports.Extractor,
	renderer ports.Renderer,
	fsys ports.FileSystem,
	logger ports.Logger,
	telemetry ports.Telemetry,
) *Generator {
	return &Generator{
		extractor: extractor,
		renderer:  renderer,
		fs:        fsys,
		logger:    logger,
		telemetry: telemetry,
	}
}

// Build produces the site described by cfg. Nothing is written to disk.
func (g *Generator) Build(ctx context.Context, cfg *domain.Config) (*domain.Site, error) {
	site := domain.NewSite(cfg.OutputDir())

	if err := g.addTemplates(cfg, site); err != nil {
		return nil, err
	}
	if err := g.addIndex(cfg, site); err != nil {
		return nil, err
	}
	if err := g.addContributing(cfg, site); err != nil {
		return nil, err
	}
	if err := g.addExamples(cfg, site); err != nil {
		return nil, err
	}

	tmpl, err := g.symbolTemplate(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := g.extractAll(ctx, cfg)
	if err != nil {
		return nil, err
	}

	refs := newCrossRef(cfg)
	for _, page := range cfg.Pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := g.buildPage(ctx, cfg, site, tmpl, refs, page, modules[cfg.Resolve(page.Source)]); err != nil {
			return nil, err
		}
	}
	return site, nil
}

func (g *Generator) addTemplates(cfg *domain.Config, site *domain.Site) error {
	if cfg.Templates == "" {
		return nil
	}
	dir := cfg.Resolve(cfg.Templates)
	if !g.fs.Exists(dir) {
		return zerr.With(zerr.Wrap(domain.ErrTemplatesNotFound, "no such directory"), "path", dir)
	}
	for path := range g.fs.WalkFiles(dir, nil) {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to resolve template path"), "path", path)
		}
		data, err := g.fs.ReadFile(path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, "failed to read template"), "path", path)
		}
		site.Put(rel, data)
	}
	return nil
}

// addIndex writes index.md from the README, merged into templates/index.md when present.
func (g *Generator) addIndex(cfg *domain.Config, site *domain.Site) error {
	readme, _, err := g.readOptional(cfg.Resolve(cfg.Readme))
	if err != nil {
		return err
	}

	tmpl, ok := site.Get(domain.IndexPage)
	if !ok {
		site.Put(domain.IndexPage, readme)
		return nil
	}

	body := string(readme)
	if i := strings.Index(body, "##"); i >= 0 {
		body = body[i:]
	}
	site.Put(domain.IndexPage, []byte(strings.ReplaceAll(string(tmpl), domain.AutogeneratedTag, body)))
	return nil
}

func (g *Generator) addContributing(cfg *domain.Config, site *domain.Site) error {
	data, ok, err := g.readOptional(cfg.Resolve(cfg.Contributing))
	if err != nil || !ok {
		return err
	}
	site.Put(domain.ContributingPage, data)
	return nil
}

// symbolTemplate returns the custom symbol template, or "" for the built-in one.
func (g *Generator) symbolTemplate(cfg *domain.Config) (string, error) {
	if cfg.DocstringTemplate == "" {
		return "", nil
	}
	path := cfg.Resolve(cfg.DocstringTemplate)
	data, err := g.fs.ReadFile(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrTemplatesNotFound.Error()), "path", path)
	}
	return string(data), nil
}

func (g *Generator) readOptional(path string) ([]byte, bool, error) {
	if path == "" || !g.fs.Exists(path) {
		return nil, false, nil
	}
	data, err := g.fs.ReadFile(path)
	if err != nil {
		return nil, false, zerr.With(zerr.Wrap(err, "failed to read file"), "path", path)
	}
	return data, true, nil
}

// extractAll parses every referenced source once, concurrently.
func (g *Generator) extractAll(ctx context.Context, cfg *domain.Config) (map[string]*domain.Module, error) {
	var sources []string
	seen := make(map[string]bool)
	for _, page := range cfg.Pages {
		src := cfg.Resolve(page.Source)
		if !seen[src] {
			seen[src] = true
			sources = append(sources, src)
		}
	}

	var mu sync.Mutex
	modules := make(map[string]*domain.Module, len(sources))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for _, src := range sources {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			mod, err := g.extractor.Extract(src)
			if err != nil {
				return zerr.With(err, "source", src)
			}
			mu.Lock()
			modules[src] = mod
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return modules, nil
}
