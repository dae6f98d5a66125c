// Package python extracts classes, functions and docstrings from Python sources.
package python

import (
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
)

// Language is the fence language of Python modules.
const Language = "python"

const (
	maxLineWidth = 77
	signatureTab = "   "
)

var _ ports.Extractor = (*Extractor)(nil)

// Extractor implements ports.Extractor for .py files.
type Extractor struct{}

// New creates a new Python extractor.
func New() *Extractor {
	return &Extractor{}
}

// Supports reports whether path is a Python source file.
func (e *Extractor) Supports(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".py")
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

// node is a logical line and the statements indented beneath it.
type node struct {
	logicalLine
	children []*node
}

func buildTree(lines []logicalLine) []*node {
	root := &node{logicalLine: logicalLine{indent: -1}}
	stack := []*node{root}
	for _, l := range lines {
		n := &node{logicalLine: l}
		for len(stack) > 1 && l.indent <= stack[len(stack)-1].indent {
			stack = stack[:len(stack)-1]
		}
		parent := stack[len(stack)-1]
		parent.children = append(parent.children, n)
		stack = append(stack, n)
	}
	return root.children
}

// Parse extracts the module docstring and its top-level classes and functions.
func Parse(path string, src []byte) (*domain.Module, error) {
	lines, err := scanLines(string(src))
	if err != nil {
		return nil, err
	}
	body := buildTree(lines)

	mod := &domain.Module{Path: path, Language: Language}
	if doc, n, ok := docstringOf(body); ok {
		mod.Doc, mod.DocLine, mod.DocEndLine = doc, n.line, n.endLine
	}

	mod.Classes, mod.Functions = collect(body, "")
	return mod, nil
}

// collect walks a statement list, attaching decorators to the declaration that follows them.
func collect(body []*node, parent string) (classes, functions []*domain.Symbol) {
	var decorators []string
	for _, n := range body {
		if strings.HasPrefix(n.text, "@") {
			decorators = append(decorators, decoratorName(n.text))
			continue
		}

		decl, ok := parseDeclaration(n.text)
		if !ok {
			decorators = nil
			continue
		}

		sym := symbolFor(decl, n, parent)
		sym.Decorators = decorators
		decorators = nil

		if decl.kind == domain.KindClass {
			classes = append(classes, sym)
			continue
		}
		functions = append(functions, sym)
	}
	return classes, functions
}

func symbolFor(decl *declaration, n *node, parent string) *domain.Symbol {
	body := n.children
	if decl.inline != "" {
		body = []*node{{logicalLine: logicalLine{line: n.line, endLine: n.endLine, text: decl.inline}}}
	}

	sym := &domain.Symbol{
		Name:     decl.name,
		Kind:     decl.kind,
		Parent:   parent,
		Line:     n.line,
		Async:    decl.async,
		Returns:  decl.returns,
		Exported: !strings.HasPrefix(decl.name, "_"),
	}
	if doc, _, ok := docstringOf(body); ok {
		sym.Doc = doc
	}

	if decl.kind == domain.KindClass {
		_, methods := collect(body, decl.name)
		for _, m := range methods {
			m.Kind = domain.KindMethod
			m.Params = dropReceiver(m.Params)
			m.Signature = formatSignature(m.Name, m.Params)
		}
		sym.Methods = methods

		for _, m := range methods {
			if m.Name == "__init__" {
				sym.Params = m.Params
			}
		}
		sym.Signature = formatSignature(sym.Name, sym.Params)
		return sym
	}

	sym.Params = parseParams(decl.params)
	sym.Signature = formatSignature(sym.Name, sym.Params)
	return sym
}

func dropReceiver(params []domain.Param) []domain.Param {
	if len(params) > 0 && (params[0].Name == "self" || params[0].Name == "cls") {
		return params[1:]
	}
	return params
}

func docstringOf(body []*node) (string, *node, bool) {
	if len(body) == 0 {
		return "", nil, false
	}
	first := body[0]
	doc, ok := stringLiteral(first.text)
	if !ok {
		return "", nil, false
	}
	return cleandoc(doc), first, true
}

// formatSignature renders name(params) with parameters packed onto indented
// lines no wider than maxLineWidth.
func formatSignature(name string, params []domain.Param) string {
	if len(params) == 0 {
		return name + "()"
	}

	var lines []string
	current := signatureTab
	for i, p := range params {
		piece := p.String()
		if i < len(params)-1 {
			piece += ","
		}
		if current != signatureTab && len(current)+1+len(piece) > maxLineWidth {
			lines = append(lines, current)
			current = signatureTab
		}
		if current != signatureTab {
			current += " "
		}
		current += piece
	}
	lines = append(lines, current)

	return name + "(\n" + strings.Join(lines, "\n") + "\n)"
}
