package domain

import (
	"strings"

	"go.trai.ch/zerr"
)

// SymbolKind classifies an extracted symbol.
type SymbolKind uint8

const (
	// KindClass is a class, or a named type for Go sources.
	KindClass SymbolKind = iota
	// KindFunction is a module-level function.
	KindFunction
	// KindMethod is a function bound to a class.
	KindMethod
)

// String returns the lowercase name of the kind.
func (k SymbolKind) String() string {
	switch k {
	case KindClass:
		return "class"
	case KindMethod:
		return "method"
	default:
		return "function"
	}
}

// Module is the introspected content of one source file.
type Module struct {
	// Path is the source path as configured.
	Path string
	// Language names the source language and doubles as the code fence language.
	Language string
	Doc      string
	// DocLine and DocEndLine span the module docstring, 1-based. Both are 0 without one.
	DocLine    int
	DocEndLine int
	Classes    []*Symbol
	Functions  []*Symbol
}

// Symbol is a documented class, function or method.
type Symbol struct {
	Name   string
	Kind   SymbolKind
	Parent string
	// Signature is the language-specific rendering of the declaration.
	Signature  string
	Doc        string
	Line       int
	Async      bool
	Decorators []string
	Params     []Param
	Returns    string
	Methods    []*Symbol
	// Exported reports whether the symbol is public in its language.
	Exported bool
}

// Param is a single declared parameter.
type Param struct {
	Name       string
	Annotation string
	Default    string
}

// String renders the parameter as "name: annotation = default".
func (p Param) String() string {
	var b strings.Builder
	b.WriteString(p.Name)
	if p.Annotation != "" {
		b.WriteString(": ")
		b.WriteString(p.Annotation)
	}
	if p.Default != "" {
		b.WriteString(" = ")
		b.WriteString(p.Default)
	}
	return b.String()
}

// Class returns the class with the given name.
func (m *Module) Class(name string) (*Symbol, error) {
	for _, c := range m.Classes {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, m.notFound("class", name)
}

// Function returns the module-level function with the given name.
func (m *Module) Function(name string) (*Symbol, error) {
	for _, f := range m.Functions {
		if f.Name == name {
			return f, nil
		}
	}
	return nil, m.notFound("function", name)
}

// PublicFunctions returns the exported module-level functions in source order.
func (m *Module) PublicFunctions() []*Symbol {
	out := make([]*Symbol, 0, len(m.Functions))
	for _, f := range m.Functions {
		if f.Exported {
			out = append(out, f)
		}
	}
	return out
}

// PublicClasses returns the exported classes in source order.
func (m *Module) PublicClasses() []*Symbol {
	out := make([]*Symbol, 0, len(m.Classes))
	for _, c := range m.Classes {
		if c.Exported {
			out = append(out, c)
		}
	}
	return out
}

func (m *Module) notFound(kind, name string) error {
	err := zerr.Wrap(ErrSymbolNotFound, kind+" "+name+" is not defined in "+m.Path)
	err = zerr.With(err, "symbol", name)
	return zerr.With(err, "source", m.Path)
}

// Method returns the method with the given name.
func (s *Symbol) Method(name string) (*Symbol, error) {
	for _, m := range s.Methods {
		if m.Name == name {
			return m, nil
		}
	}
	err := zerr.Wrap(ErrSymbolNotFound, "method "+s.Name+"."+name+" is not defined")
	err = zerr.With(err, "class", s.Name)
	return nil, zerr.With(err, "symbol", name)
}

// DocumentedMethods returns the names of exported methods that are undecorated
// or only marked static or class methods.
func (s *Symbol) DocumentedMethods() []string {
	var names []string
	for _, m := range s.Methods {
		if !m.Exported || !plainDecorators(m.Decorators) {
			continue
		}
		names = append(names, m.Name)
	}
	return names
}

func plainDecorators(decorators []string) bool {
	for _, d := range decorators {
		if d != "staticmethod" && d != "classmethod" {
			return false
		}
	}
	return true
}
