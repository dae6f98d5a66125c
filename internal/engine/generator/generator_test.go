package generator_test

import (
	"context"
	"io/fs"
	"iter"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/gendocs/internal/core/ports/mocks"
	"go.trai.ch/gendocs/internal/engine/generator"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

// memFS is an in-memory ports.FileSystem keyed by absolute path.
type memFS map[string]string

var _ ports.FileSystem = memFS(nil)

func (m memFS) ReadFile(path string) ([]byte, error) {
	data, ok := m[path]
	if !ok {
		return nil, fs.ErrNotExist
	}
	return []byte(data), nil
}

func (m memFS) Exists(path string) bool {
	if _, ok := m[path]; ok {
		return true
	}
	for p := range m {
		if strings.HasPrefix(p, path+"/") {
			return true
		}
	}
	return false
}

func (m memFS) WalkFiles(root string, _ []string) iter.Seq[string] {
	var paths []string
	for p := range m {
		if strings.HasPrefix(p, root+"/") {
			paths = append(paths, p)
		}
	}
	slices.Sort(paths)
	return slices.Values(paths)
}

type fixture struct {
	extractor *mocks.MockExtractor
	renderer  *mocks.MockRenderer
	logger    *mocks.MockLogger
	vertex    *mocks.MockVertex
	files     memFS
	gen       *generator.Generator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		extractor: mocks.NewMockExtractor(ctrl),
		renderer:  mocks.NewMockRenderer(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
		vertex:    mocks.NewMockVertex(ctrl),
		files:     memFS{},
	}
	telemetry := mocks.NewMockTelemetry(ctrl)
	telemetry.EXPECT().Record(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(context.Background(), f.vertex).AnyTimes()
	f.vertex.EXPECT().Complete(gomock.Any()).AnyTimes()
	f.vertex.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()

	f.renderer.EXPECT().Render(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ string, v *domain.SymbolView) (string, error) {
			return "<" + v.Class + "." + v.Function + ">", nil
		}).AnyTimes()

	f.gen = generator.New(f.extractor, f.renderer, f.files, f.logger, telemetry)
	return f
}

func coreModule() *domain.Module {
	engine := &domain.Symbol{
		Name: "Engine", Kind: domain.KindClass, Exported: true, Line: 3, Doc: "An engine.",
		Methods: []*domain.Symbol{
			{Name: "run", Kind: domain.KindMethod, Parent: "Engine", Exported: true, Doc: "Runs."},
			{Name: "stop", Kind: domain.KindMethod, Parent: "Engine", Exported: true, Doc: "Stops."},
			{Name: "_tick", Kind: domain.KindMethod, Parent: "Engine"},
		},
	}
	return &domain.Module{
		Path:     "/proj/pkg/core.py",
		Language: "python",
		Classes: []*domain.Symbol{
			engine,
			{Name: "Other", Kind: domain.KindClass, Exported: true},
		},
		Functions: []*domain.Symbol{
			{Name: "helper", Kind: domain.KindFunction, Exported: true, Doc: "Helps."},
			{Name: "_hidden", Kind: domain.KindFunction},
		},
	}
}

func baseConfig(pages ...domain.Page) *domain.Config {
	return &domain.Config{
		Root:         "/proj",
		SourcesDir:   "docs/sources",
		Version:      "master",
		Readme:       "README.md",
		Contributing: "CONTRIBUTING.md",
		ExamplesDir:  "examples",
		Pages:        pages,
	}
}

func siteFile(t *testing.T, site *domain.Site, path string) string {
	t.Helper()
	data, ok := site.Get(path)
	require.True(t, ok, "missing %s", path)
	return string(data)
}

func TestBuild_Pages(t *testing.T) {
	f := newFixture(t)
	f.files["/proj/README.md"] = "Title\n\n## Usage\n"
	f.files["/proj/CONTRIBUTING.md"] = "Be nice.\n"
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(coreModule(), nil).Times(1)

	cfg := baseConfig(
		domain.Page{
			Path:      "api/core.md",
			Source:    "pkg/core.py",
			Classes:   []domain.ClassSpec{{Name: "Engine", Methods: []string{"!stop"}}},
			Functions: []string{"helper"},
		},
		domain.Page{Path: "api/index.md", Source: "pkg/core.py", Index: true},
	)

	site, err := f.gen.Build(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "/proj/docs/sources", site.Root)
	assert.Equal(t, "Title\n\n## Usage\n", siteFile(t, site, "index.md"))
	assert.Equal(t, "Be nice.\n", siteFile(t, site, "contributing.md"))
	assert.Equal(t,
		"#\n\n<Engine.>\n\n**Methods:**\n\n<Engine.run>\n----\n\n<.helper>",
		siteFile(t, site, "api/core.md"))
	assert.Equal(t,
		"#\n\n## Classes\n\n* [class Engine](/api/core/#engine)\n\n## Functions\n\n* [helper](/api/core/#helper)\n",
		siteFile(t, site, "api/index.md"))
}

func TestBuild_IndexWithoutReferences(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(coreModule(), nil)

	cfg := baseConfig(domain.Page{Path: "api/index.md", Source: "pkg/core.py", Index: true})
	site, err := f.gen.Build(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t,
		"#\n\n## Classes\n\n* class Engine\n* class Other\n\n## Functions\n\n* helper\n",
		siteFile(t, site, "api/index.md"))
	assert.Empty(t, siteFile(t, site, "index.md"))
}

func TestBuild_Templates(t *testing.T) {
	f := newFixture(t)
	f.files["/proj/README.md"] = "Title\n\n## Usage\nrun it\n"
	f.files["/proj/tpl/index.md"] = "Welcome\n{{autogenerated}}"
	f.files["/proj/tpl/api/core.md"] = "# Core\n\n{{autogenerated}}\n"
	f.files["/proj/tpl/img/logo.svg"] = "<svg/>"
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(coreModule(), nil)

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py", Functions: []string{"helper"}})
	cfg.Templates = "tpl"

	site, err := f.gen.Build(context.Background(), cfg)
	require.NoError(t, err)

	assert.Equal(t, "Welcome\n## Usage\nrun it\n", siteFile(t, site, "index.md"))
	assert.Equal(t, "# Core\n\n<.helper>\n", siteFile(t, site, "api/core.md"))
	assert.Equal(t, "<svg/>", siteFile(t, site, "img/logo.svg"))
}

func TestBuild_MissingAutogeneratedTag(t *testing.T) {
	f := newFixture(t)
	f.files["/proj/tpl/api/core.md"] = "# Core\n"
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(coreModule(), nil)

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py", Functions: []string{"helper"}})
	cfg.Templates = "tpl"

	_, err := f.gen.Build(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrMissingAutogeneratedTag)
}

func TestBuild_TemplatesNotFound(t *testing.T) {
	f := newFixture(t)
	cfg := baseConfig()
	cfg.Templates = "missing"

	_, err := f.gen.Build(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrTemplatesNotFound)
}

func TestBuild_UnknownSymbols(t *testing.T) {
	tests := []struct {
		name string
		page domain.Page
	}{
		{"class", domain.Page{Classes: []domain.ClassSpec{{Name: "Missing"}}}},
		{"function", domain.Page{Functions: []string{"missing"}}},
		{"included method", domain.Page{Classes: []domain.ClassSpec{{Name: "Engine", Methods: []string{"fly"}}}}},
		{"excluded method", domain.Page{Classes: []domain.ClassSpec{{Name: "Engine", Methods: []string{"!fly"}}}}},
		{"index class", domain.Page{Index: true, Classes: []domain.ClassSpec{{Name: "Missing"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(coreModule(), nil)

			page := tt.page
			page.Path = "api/core.md"
			page.Source = "pkg/core.py"

			_, err := f.gen.Build(context.Background(), baseConfig(page))
			require.ErrorIs(t, err, domain.ErrSymbolNotFound)
		})
	}
}

func TestBuild_ExtractError(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").
		Return(nil, zerr.Wrap(domain.ErrSourceParse, "line 3: unterminated string"))

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py"})
	_, err := f.gen.Build(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrSourceParse)
}

func TestBuild_CanceledContext(t *testing.T) {
	f := newFixture(t)
	f.extractor.EXPECT().Extract(gomock.Any()).Return(coreModule(), nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py"})
	_, err := f.gen.Build(ctx, cfg)
	require.ErrorIs(t, err, context.Canceled)
}

func TestBuild_Examples(t *testing.T) {
	f := newFixture(t)
	f.files["/proj/examples/demo.py"] = "\"\"\"\nDemo.\n\"\"\"\n\nprint(1)\n"
	f.files["/proj/examples/notes.txt"] = "notes"
	f.files["/proj/examples/nested/skip.py"] = "pass\n"

	f.extractor.EXPECT().Supports("/proj/examples/demo.py").Return(true)
	f.extractor.EXPECT().Supports("/proj/examples/notes.txt").Return(false)
	f.extractor.EXPECT().Extract("/proj/examples/demo.py").Return(&domain.Module{
		Path: "/proj/examples/demo.py", Language: "python", Doc: "Demo.", DocLine: 1, DocEndLine: 3,
	}, nil)

	site, err := f.gen.Build(context.Background(), baseConfig())
	require.NoError(t, err)

	assert.Equal(t, "Demo.\n\n```python\nprint(1)\n```\n", siteFile(t, site, "examples/demo.md"))
	_, ok := site.Get("examples/skip.md")
	assert.False(t, ok)
}

func TestBuild_SymbolView(t *testing.T) {
	ctrl := gomock.NewController(t)
	extractor := mocks.NewMockExtractor(ctrl)
	renderer := mocks.NewMockRenderer(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	telemetry := mocks.NewMockTelemetry(ctrl)
	vertex := mocks.NewMockVertex(ctrl)

	telemetry.EXPECT().Record(gomock.Any(), "api/core.md", gomock.Any()).Return(context.Background(), vertex)
	vertex.EXPECT().Complete(nil)

	mod := &domain.Module{
		Path:     "/proj/pkg/core.py",
		Language: "python",
		Functions: []*domain.Symbol{{
			Name: "fetch", Kind: domain.KindFunction, Exported: true, Async: true, Line: 12,
			Signature: "fetch(url)", Doc: "fetch(url, retries=3)\n\nFetches a URL.",
		}},
	}
	extractor.EXPECT().Extract("/proj/pkg/core.py").Return(mod, nil)

	files := memFS{"/proj/tpl.md": "{{ .Function }}"}
	renderer.EXPECT().Render("{{ .Function }}", gomock.Any()).DoAndReturn(
		func(_ string, v *domain.SymbolView) (string, error) {
			assert.Equal(t, "fetch", v.Function)
			assert.Empty(t, v.Class)
			assert.False(t, v.IsMethod)
			assert.True(t, v.Async)
			assert.Equal(t, "fetch(url, retries=3)", v.Signature)
			assert.Equal(t, "https://github.com/o/p/blob/v1/pkg/core.py#L12", v.Source)
			assert.Equal(t, "python", v.Language)
			assert.Equal(t, "##", v.H2)
			assert.Equal(t, "###", v.H3)
			require.Len(t, v.Sections, 1)
			assert.Equal(t, "Fetches a URL.", v.Sections[0].Text)
			return "fetch", nil
		})

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py", Functions: []string{"fetch"}})
	cfg.Repo = "https://github.com/o/p"
	cfg.Version = "v1"
	cfg.DocstringTemplate = "tpl.md"

	gen := generator.New(extractor, renderer, files, logger, telemetry)
	site, err := gen.Build(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "#\n\nfetch", siteFile(t, site, "api/core.md"))
}

func TestBuild_CheckArgsWarnings(t *testing.T) {
	f := newFixture(t)
	mod := &domain.Module{
		Path:     "/proj/pkg/core.py",
		Language: "python",
		Functions: []*domain.Symbol{{
			Name: "scale", Kind: domain.KindFunction, Exported: true,
			Params: []domain.Param{{Name: "x", Annotation: "int"}},
			Doc:    "Scales.\n\nArgs:\n    y: factor.",
		}},
	}
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(mod, nil)

	var warnings []string
	f.logger.EXPECT().Warn(gomock.Any()).Do(func(msg string) {
		warnings = append(warnings, msg)
	}).Times(2)

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py", Functions: []string{"scale"}})
	cfg.Docstring.CheckArgs = true

	_, err := f.gen.Build(context.Background(), cfg)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	for _, w := range warnings {
		assert.True(t, strings.HasPrefix(w, "api/core.md: scale: "), w)
	}
}

func TestBuild_DocstringSyntaxError(t *testing.T) {
	f := newFixture(t)
	mod := &domain.Module{
		Path:     "/proj/pkg/core.py",
		Language: "python",
		Functions: []*domain.Symbol{{
			Name: "broken", Kind: domain.KindFunction, Exported: true,
			Doc: "Broken.\n\nArgs:\nx: not indented",
		}},
	}
	f.extractor.EXPECT().Extract("/proj/pkg/core.py").Return(mod, nil)

	cfg := baseConfig(domain.Page{Path: "api/core.md", Source: "pkg/core.py", Functions: []string{"broken"}})
	_, err := f.gen.Build(context.Background(), cfg)
	require.ErrorIs(t, err, domain.ErrDocstringSyntax)
}
