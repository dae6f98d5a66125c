// Package golang extracts types, functions and doc comments from Go sources.
package golang

import (
	"bytes"
	"go/ast"
	"go/format"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Language is the fence language of Go modules.
const Language = "go"

var _ ports.Extractor = (*Extractor)(nil)

// Extractor implements ports.Extractor for .go files.
// Named types play the role of classes and receiver functions that of methods.
type Extractor struct{}

// New creates a new Go extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether path is a Go source file.
func (e *Extractor) Supports(path string) bool {
	return filepath.Ext(path) == ".go"
}

// Extract reads and parses the file at path.
func (e *Extractor) Extract(path string) (*domain.Module, error) {
	//nolint:gosec // Path comes from the validated manifest
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", path)
	}
	mod, err := Parse(path, src)
	if err != nil {
		return nil, zerr.With(err, "path", path)
	}
	return mod, nil
}

// Parse extracts the package doc, declared types and functions of a Go file.
func Parse(path string, src []byte) (*domain.Module, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, src, parser.ParseComments)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrSourceParse, err.Error())
	}

	mod := &domain.Module{Path: path, Language: Language}
	if file.Doc != nil {
		mod.Doc = strings.TrimSpace(file.Doc.Text())
		mod.DocLine = fset.Position(file.Doc.Pos()).Line
		mod.DocEndLine = fset.Position(file.Doc.End()).Line
	}

	types := make(map[string]*domain.Symbol)
	for _, decl := range file.Decls {
		gen, ok := decl.(*ast.GenDecl)
		if !ok || gen.Tok != token.TYPE {
			continue
		}
		for _, spec := range gen.Specs {
			ts, ok := spec.(*ast.TypeSpec)
			if !ok {
				continue
			}
			doc := ts.Doc
			if doc == nil && len(gen.Specs) == 1 {
				doc = gen.Doc
			}
			// Comments of grouped specs would otherwise be printed inline.
			header := *ts
			header.Doc, header.Comment = nil, nil

			sym := &domain.Symbol{
				Name:      ts.Name.Name,
				Kind:      domain.KindClass,
				Doc:       strings.TrimSpace(doc.Text()),
				Line:      fset.Position(ts.Pos()).Line,
				Exported:  ast.IsExported(ts.Name.Name),
				Signature: "type " + render(fset, &header),
			}
			types[sym.Name] = sym
			mod.Classes = append(mod.Classes, sym)
		}
	}

	for _, decl := range file.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok {
			continue
		}
		sym := funcSymbol(fset, fn)
		if fn.Recv == nil || len(fn.Recv.List) == 0 {
			mod.Functions = append(mod.Functions, sym)
			continue
		}
		owner, ok := types[receiverName(fn.Recv.List[0].Type)]
		if !ok {
			continue
		}
		sym.Kind = domain.KindMethod
		sym.Parent = owner.Name
		owner.Methods = append(owner.Methods, sym)
	}

	return mod, nil
}

func funcSymbol(fset *token.FileSet, fn *ast.FuncDecl) *domain.Symbol {
	header := *fn
	header.Doc = nil
	header.Body = nil

	sym := &domain.Symbol{
		Name:      fn.Name.Name,
		Kind:      domain.KindFunction,
		Doc:       strings.TrimSpace(fn.Doc.Text()),
		Line:      fset.Position(fn.Pos()).Line,
		Exported:  ast.IsExported(fn.Name.Name),
		Signature: render(fset, &header),
		Params:    fieldParams(fset, fn.Type.Params),
	}
	if fn.Type.Results != nil {
		var results []string
		for _, f := range fn.Type.Results.List {
			typ := render(fset, f.Type)
			if len(f.Names) == 0 {
				results = append(results, typ)
				continue
			}
			names := make([]string, len(f.Names))
			for i, n := range f.Names {
				names[i] = n.Name
			}
			results = append(results, strings.Join(names, ", ")+" "+typ)
		}
		sym.Returns = strings.Join(results, ", ")
	}
	return sym
}

func fieldParams(fset *token.FileSet, fields *ast.FieldList) []domain.Param {
	if fields == nil {
		return nil
	}
	var params []domain.Param
	for _, f := range fields.List {
		typ := render(fset, f.Type)
		if len(f.Names) == 0 {
			params = append(params, domain.Param{Annotation: typ})
			continue
		}
		for _, n := range f.Names {
			params = append(params, domain.Param{Name: n.Name, Annotation: typ})
		}
	}
	return params
}

// receiverName returns the base type name of a method receiver.
func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

func render(fset *token.FileSet, node any) string {
	var buf bytes.Buffer
	if err := format.Node(&buf, fset, node); err != nil {
		return ""
	}
	return strings.TrimRight(buf.String(), "\n")
}
