package domain_test

import (
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gendocs/internal/core/domain"
)

func TestClassSpec_SelectMethods(t *testing.T) {
	available := []string{"run", "stop", "close"}

	tests := []struct {
		name     string
		methods  []string
		expected []string
	}{
		{"no filter takes all", nil, []string{"run", "stop", "close"}},
		{"explicit list keeps order", []string{"close", "run"}, []string{"close", "run"}},
		{"exclude only", []string{"!stop"}, []string{"run", "close"}},
		{"include and exclude", []string{"run", "stop", "!stop"}, []string{"run"}},
		{"exclude everything", []string{"!run", "!stop", "!close"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := domain.ClassSpec{Name: "Engine", Methods: tt.methods}
			assert.Equal(t, tt.expected, spec.SelectMethods(available))
			assert.Equal(t, len(tt.methods) > 0, spec.HasMethodFilter())
		})
	}
}

func TestConfig_SourceLink(t *testing.T) {
	tests := []struct {
		name     string
		repo     string
		source   string
		line     int
		expected string
	}{
		{"no repo", "", "pkg/core.py", 3, ""},
		{"with line", "https://github.com/o/p", "pkg/core.py", 12, "https://github.com/o/p/blob/main/pkg/core.py#L12"},
		{"trailing slash", "https://github.com/o/p/", "./pkg/core.py", 1, "https://github.com/o/p/blob/main/pkg/core.py#L1"},
		{"no line", "https://github.com/o/p", "pkg/core.py", 0, "https://github.com/o/p/blob/main/pkg/core.py"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &domain.Config{Repo: tt.repo, Version: "main"}
			assert.Equal(t, tt.expected, cfg.SourceLink(tt.source, tt.line))
		})
	}
}

func TestConfig_Resolve(t *testing.T) {
	root := t.TempDir()
	cfg := &domain.Config{Root: root, SourcesDir: "docs/sources"}

	assert.Equal(t, filepath.Join(root, "pkg", "a.py"), cfg.Resolve("pkg/a.py"))
	assert.Equal(t, "/abs/a.py", cfg.Resolve("/abs/a.py"))
	assert.Empty(t, cfg.Resolve(""))
	assert.Equal(t, filepath.Join(root, "docs", "sources"), cfg.OutputDir())
	assert.Equal(t, filepath.Join(root, ".gendocs", "state.json"), cfg.StatePath())
}

func TestSite_PutGet(t *testing.T) {
	site := domain.NewSite("/out")
	site.Put("index.md", []byte("a"))
	site.Put("api/core.md", []byte("b"))
	site.Put("./index.md", []byte("c"))

	got, ok := site.Get("index.md")
	require.True(t, ok)
	assert.Equal(t, "c", string(got))

	_, ok = site.Get("missing.md")
	assert.False(t, ok)

	var paths []string
	for f := range site.Files() {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"index.md", "api/core.md"}, paths)
	assert.Equal(t, 2, site.Len())
}

func TestModule_Lookups(t *testing.T) {
	run := &domain.Symbol{Name: "run", Kind: domain.KindMethod, Exported: true}
	prop := &domain.Symbol{Name: "size", Kind: domain.KindMethod, Exported: true, Decorators: []string{"property"}}
	static := &domain.Symbol{Name: "build", Kind: domain.KindMethod, Exported: true, Decorators: []string{"staticmethod"}}
	private := &domain.Symbol{Name: "_reset", Kind: domain.KindMethod}
	class := &domain.Symbol{Name: "Engine", Kind: domain.KindClass, Exported: true, Methods: []*domain.Symbol{run, prop, static, private}}
	helper := &domain.Symbol{Name: "helper", Kind: domain.KindFunction, Exported: true}
	hidden := &domain.Symbol{Name: "_hidden", Kind: domain.KindFunction}

	mod := &domain.Module{Path: "pkg/core.py", Classes: []*domain.Symbol{class}, Functions: []*domain.Symbol{helper, hidden}}

	got, err := mod.Class("Engine")
	require.NoError(t, err)
	assert.Same(t, class, got)

	_, err = mod.Class("Missing")
	require.ErrorIs(t, err, domain.ErrSymbolNotFound)
	assert.ErrorContains(t, err, "class Missing is not defined in pkg/core.py")

	fn, err := mod.Function("helper")
	require.NoError(t, err)
	assert.Same(t, helper, fn)

	_, err = class.Method("nope")
	require.ErrorIs(t, err, domain.ErrSymbolNotFound)

	assert.Equal(t, []string{"run", "build"}, class.DocumentedMethods())
	assert.True(t, slices.Equal([]*domain.Symbol{helper}, mod.PublicFunctions()))
	assert.Len(t, mod.PublicClasses(), 1)
}

func TestParam_String(t *testing.T) {
	assert.Equal(t, "a", domain.Param{Name: "a"}.String())
	assert.Equal(t, "a: int", domain.Param{Name: "a", Annotation: "int"}.String())
	assert.Equal(t, "a: int = 3", domain.Param{Name: "a", Annotation: "int", Default: "3"}.String())
	assert.Equal(t, "b = None", domain.Param{Name: "b", Default: "None"}.String())
}

func TestLogLevel_String(t *testing.T) {
	assert.Equal(t, "DEBUG", domain.LogLevelDebug.String())
	assert.Equal(t, "WARN", domain.LogLevelWarn.String())
	assert.Equal(t, "INFO", domain.LogLevel(99).String())
	assert.Equal(t, "method", domain.KindMethod.String())
	assert.Equal(t, "modified", domain.DriftModified.String())
}
