// Package app implements the application layer for gendocs.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.trai.ch/gendocs/internal/adapters/watcher" //nolint:depguard // Debouncer is shared infrastructure
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/gendocs/internal/engine/generator"
	"go.trai.ch/zerr"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// filesGroup groups the progress of published files.
const filesGroup = "files"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	generator    *generator.Generator
	publisher    ports.Publisher
	store        ports.StateStore
	hasher       ports.Hasher
	logger       ports.Logger
	watcher      ports.Watcher
	telemetry    ports.Telemetry
	out          io.Writer
	debounce     time.Duration
	printer      *message.Printer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	gen *generator.Generator,
	publisher ports.Publisher,
	store ports.StateStore,
	hasher ports.Hasher,
	log ports.Logger,
	w ports.Watcher,
	telemetry ports.Telemetry,
) *App {
	return &App{
		configLoader: loader,
		generator:    gen,
		publisher:    publisher,
		store:        store,
		hasher:       hasher,
		logger:       log,
		watcher:      w,
		telemetry:    telemetry,
		out:          os.Stdout,
		debounce:     watcher.DefaultDebounceWindow,
		printer:      message.NewPrinter(language.English),
	}
}

// WithOutput sets the writer receiving check reports.
func (a *App) WithOutput(w io.Writer) *App {
	a.out = w
	return a
}

// WithDebounce sets the quiet window of watch mode.
func (a *App) WithDebounce(d time.Duration) *App {
	a.debounce = d
	return a
}

// Generate builds the documentation described by the manifest at configPath
// and publishes it.
func (a *App) Generate(ctx context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}
	return a.generate(ctx, cfg)
}

func (a *App) generate(ctx context.Context, cfg *domain.Config) error {
	site, err := a.generator.Build(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, domain.ErrGenerationFailed.Error())
	}

	records := make([]domain.FileRecord, 0, site.Len())
	vertices := make([]ports.Vertex, 0, site.Len())
	finish := func(err error) {
		for _, v := range vertices {
			v.Complete(err)
		}
	}

	changed := 0
	for f := range site.Files() {
		_, v := a.telemetry.Record(ctx, f.Path, ports.WithGroup(filesGroup))
		vertices = append(vertices, v)

		digest := a.hasher.Sum(f.Content)
		prev, err := a.store.Get(cfg.Root, f.Path)
		if err != nil {
			err = zerr.Wrap(err, "failed to read state")
			finish(err)
			return err
		}
		if prev == nil || prev.Digest != digest {
			changed++
		} else {
			v.Cached()
		}
		records = append(records, domain.FileRecord{Path: f.Path, Digest: digest})
	}

	err = a.publisher.Publish(site)
	finish(err)
	if err != nil {
		return err
	}
	if err := a.store.Put(cfg.Root, records); err != nil {
		return zerr.Wrap(err, "failed to record state")
	}

	a.logger.Info(a.printer.Sprintf("generated %d files in %s (%d changed)", site.Len(), cfg.SourcesDir, changed))
	return nil
}

// Check builds the documentation in memory and reports how the published
// files differ. It fails with domain.ErrDocsOutOfDate on any drift.
func (a *App) Check(ctx context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}

	site, err := a.generator.Build(ctx, cfg)
	if err != nil {
		return zerr.Wrap(err, domain.ErrGenerationFailed.Error())
	}

	drifts, err := a.publisher.Diff(site)
	if err != nil {
		return zerr.Wrap(err, "failed to compare published files")
	}
	if len(drifts) == 0 {
		a.logger.Info("documentation is up to date")
		return nil
	}

	writeDrifts(a.out, drifts)
	err = zerr.Wrap(domain.ErrDocsOutOfDate, a.printer.Sprintf("%d files differ from %s", len(drifts), cfg.SourcesDir))
	return zerr.With(err, "count", len(drifts))
}

// Watch generates once and then regenerates whenever inputs under the
// manifest directory change, until ctx is cancelled. Generation errors are
// logged and do not stop watching.
func (a *App) Watch(ctx context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}
	if err := a.generate(ctx, cfg); err != nil {
		a.logger.Error(err)
	}

	ignore := []string{cfg.OutputDir(), filepath.Join(cfg.Root, domain.GendocsDirName)}
	if err := a.watcher.Start(ctx, cfg.Root, ignore); err != nil {
		return zerr.Wrap(err, "failed to start watcher")
	}
	defer func() {
		if err := a.watcher.Stop(); err != nil {
			a.logger.Error(zerr.Wrap(err, "failed to stop watcher"))
		}
	}()
	a.logger.Info("watching " + cfg.Root + " for changes")

	var mu sync.Mutex
	debouncer := watcher.NewDebouncer(a.debounce, func(paths []string) {
		mu.Lock()
		defer mu.Unlock()
		if ctx.Err() != nil {
			return
		}

		a.logger.Info(a.printer.Sprintf("%d paths changed, regenerating", len(paths)))
		// The manifest itself may have changed.
		next, err := a.loadConfig(configPath)
		if err != nil {
			a.logger.Error(err)
			return
		}
		if err := a.generate(ctx, next); err != nil {
			a.logger.Error(err)
		}
	})

	for ev := range a.watcher.Events() {
		debouncer.Add(ev.Path)
	}
	debouncer.Flush()

	mu.Lock()
	defer mu.Unlock()
	return nil
}

// Clean removes the sources directory and the recorded state.
func (a *App) Clean(_ context.Context, configPath string) error {
	cfg, err := a.loadConfig(configPath)
	if err != nil {
		return err
	}

	out := cfg.OutputDir()
	if err := os.RemoveAll(out); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to remove sources directory"), "path", out)
	}
	a.logger.Info("removed " + cfg.SourcesDir)

	if err := a.store.Clear(cfg.Root); err != nil {
		return zerr.Wrap(err, "failed to clear state")
	}
	a.logger.Info("removed generation state")
	return nil
}

func (a *App) loadConfig(path string) (*domain.Config, error) {
	cfg, err := a.configLoader.Load(path)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	return cfg, nil
}
