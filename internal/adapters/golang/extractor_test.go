package golang_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/gendocs/internal/adapters/golang"
	"go.trai.ch/gendocs/internal/core/domain"
)

const engineSource = `// Package engine drives things.
//
// It is small.
package engine

import "context"

// Engine runs targets.
type Engine struct {
	Speed int
}

type (
	// Mode selects a strategy.
	Mode int // trailing
	hidden struct{}
)

// Run drives e to target.
func (e *Engine) Run(ctx context.Context, target string) (int, error) {
	return 0, nil
}

func (e Engine) stop() {}

// Stack is generic.
type Stack[T any] struct{}

// Push adds v.
func (s *Stack[T]) Push(v T) {}

// New creates an Engine.
func New(speed int) *Engine {
	return &Engine{Speed: speed}
}

func helper(a, b int) {}
`

func TestParse_Module(t *testing.T) {
	mod, err := golang.Parse("engine.go", []byte(engineSource))
	require.NoError(t, err)

	assert.Equal(t, "go", mod.Language)
	assert.Equal(t, "Package engine drives things.\n\nIt is small.", mod.Doc)
	assert.Equal(t, 1, mod.DocLine)
	assert.Equal(t, 3, mod.DocEndLine)

	engine, err := mod.Class("Engine")
	require.NoError(t, err)
	assert.Equal(t, "Engine runs targets.", engine.Doc)
	assert.Equal(t, "type Engine struct {\n\tSpeed int\n}", engine.Signature)
	assert.Equal(t, 9, engine.Line)
	assert.Equal(t, []string{"Run"}, engine.DocumentedMethods())

	run, err := engine.Method("Run")
	require.NoError(t, err)
	assert.Equal(t, domain.KindMethod, run.Kind)
	assert.Equal(t, "Engine", run.Parent)
	assert.Equal(t, "Run drives e to target.", run.Doc)
	assert.Equal(t, "func (e *Engine) Run(ctx context.Context, target string) (int, error)", run.Signature)
	assert.Equal(t, []domain.Param{
		{Name: "ctx", Annotation: "context.Context"},
		{Name: "target", Annotation: "string"},
	}, run.Params)
	assert.Equal(t, "int, error", run.Returns)

	mode, err := mod.Class("Mode")
	require.NoError(t, err)
	assert.Equal(t, "Mode selects a strategy.", mode.Doc)
	assert.Equal(t, "type Mode int", mode.Signature)
	assert.Equal(t, 15, mode.Line)

	hidden, err := mod.Class("hidden")
	require.NoError(t, err)
	assert.False(t, hidden.Exported)

	stack, err := mod.Class("Stack")
	require.NoError(t, err)
	require.Len(t, stack.Methods, 1)
	assert.Equal(t, "Push", stack.Methods[0].Name)

	fn, err := mod.Function("New")
	require.NoError(t, err)
	assert.Equal(t, "func New(speed int) *Engine", fn.Signature)
	assert.Equal(t, "*Engine", fn.Returns)

	public := mod.PublicFunctions()
	require.Len(t, public, 1)
	assert.Equal(t, "New", public[0].Name)
}

func TestParse_GroupedTypeSignatures(t *testing.T) {
	src := "package p\n\ntype (\n\t// Mode selects a strategy.\n\tMode int // trailing\n\n\t// Level is a depth.\n\tLevel = int\n)\n"
	mod, err := golang.Parse("p.go", []byte(src))
	require.NoError(t, err)

	tests := []struct {
		name string
		sig  string
		doc  string
	}{
		{name: "Mode", sig: "type Mode int", doc: "Mode selects a strategy."},
		{name: "Level", sig: "type Level = int", doc: "Level is a depth."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sym, err := mod.Class(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.sig, sym.Signature)
			assert.Equal(t, tt.doc, sym.Doc)
			assert.NotContains(t, sym.Signature, "//")
		})
	}
}

func TestParse_SyntaxError(t *testing.T) {
	_, err := golang.Parse("bad.go", []byte("package x\nfunc {"))
	require.ErrorIs(t, err, domain.ErrSourceParse)
}

func TestExtractor_Extract(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.go")
	require.NoError(t, os.WriteFile(path, []byte("package main\n\nfunc main() {}\n"), 0o600))

	e := golang.New()
	assert.True(t, e.Supports(path))
	assert.False(t, e.Supports("mod.py"))

	mod, err := e.Extract(path)
	require.NoError(t, err)
	assert.Len(t, mod.Functions, 1)
	assert.Empty(t, mod.Doc)

	_, err = e.Extract(filepath.Join(dir, "missing.go"))
	assert.ErrorContains(t, err, domain.ErrSourceRead.Error())
}
