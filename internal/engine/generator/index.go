package generator

import (
	"path/filepath"
	"strings"
	"unicode"

	"go.trai.ch/gendocs/internal/core/domain"
)

// crossRef maps each source to the pages documenting its symbols.
type crossRef struct {
	classes   map[string]map[string]string
	functions map[string]map[string]string
}

// newCrossRef indexes the symbols of every non-index page. The first page
// documenting a symbol wins.
func newCrossRef(cfg *domain.Config) *crossRef {
	refs := &crossRef{
		classes:   make(map[string]map[string]string),
		functions: make(map[string]map[string]string),
	}
	for _, page := range cfg.Pages {
		if page.Index {
			continue
		}
		src := cfg.Resolve(page.Source)
		for _, c := range page.Classes {
			addRef(refs.classes, src, c.Name, page.Path)
		}
		for _, f := range page.Functions {
			addRef(refs.functions, src, f, page.Path)
		}
	}
	return refs
}

func addRef(refs map[string]map[string]string, src, name, page string) {
	byName, ok := refs[src]
	if !ok {
		byName = make(map[string]string)
		refs[src] = byName
	}
	if _, ok := byName[name]; !ok {
		byName[name] = page
	}
}

// indexMarkdown lists the classes and functions of a source with links to
// the pages documenting them.
func indexMarkdown(pb *pageBuild, refs *crossRef) (string, error) {
	src := pb.cfg.Resolve(pb.page.Source)

	var classes []string
	if len(pb.page.Classes) > 0 {
		for _, spec := range pb.page.Classes {
			if _, err := pb.mod.Class(spec.Name); err != nil {
				return "", err
			}
			classes = append(classes, spec.Name)
		}
	} else {
		for _, c := range pb.mod.PublicClasses() {
			classes = append(classes, c.Name)
		}
	}

	var functions []string
	if len(pb.page.Functions) > 0 {
		for _, name := range pb.page.Functions {
			if _, err := pb.mod.Function(name); err != nil {
				return "", err
			}
			functions = append(functions, name)
		}
	} else {
		for _, f := range pb.mod.PublicFunctions() {
			functions = append(functions, f.Name)
		}
	}

	classRefs := refs.classes[src]
	classes = documentedOnly(classes, classRefs)
	fnRefs := refs.functions[src]
	functions = documentedOnly(functions, fnRefs)

	var b strings.Builder
	if len(classes) > 0 {
		b.WriteString("## Classes\n\n")
		for _, name := range classes {
			b.WriteString("* " + link("class "+name, classRefs[name], name) + "\n")
		}
	}
	if len(functions) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString("## Functions\n\n")
		for _, name := range functions {
			b.WriteString("* " + link(name, fnRefs[name], name) + "\n")
		}
	}
	return b.String(), nil
}

// documentedOnly keeps the documented names once any name of the source is documented.
func documentedOnly(names []string, refs map[string]string) []string {
	if len(refs) == 0 {
		return names
	}
	out := names[:0:0]
	for _, n := range names {
		if _, ok := refs[n]; ok {
			out = append(out, n)
		}
	}
	return out
}

func link(text, page, anchor string) string {
	if page == "" {
		return text
	}
	target := strings.TrimSuffix(filepath.ToSlash(page), ".md")
	return "[" + text + "](/" + target + "/#" + slug(anchor) + ")"
}

// slug turns a header into the anchor mkdocs generates for it.
func slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune('-')
		}
	}
	return b.String()
}
