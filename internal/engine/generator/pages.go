package generator

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/gendocs/internal/engine/docstring"
	"go.trai.ch/zerr"
)

const (
	methodsHeader  = "\n\n**Methods:**\n\n"
	entrySeparator = "\n----\n\n"
	newPagePrefix  = "#\n\n"
	pagesGroup     = "pages"
)

// pageBuild carries the state shared by the entries of one page.
type pageBuild struct {
	cfg    *domain.Config
	page   domain.Page
	mod    *domain.Module
	tmpl   string
	vertex ports.Vertex
}

func (g *Generator) buildPage(
	ctx context.Context,
	cfg *domain.Config,
	site *domain.Site,
	tmpl string,
	refs *crossRef,
	page domain.Page,
	mod *domain.Module,
) (err error) {
	_, vertex := g.telemetry.Record(ctx, page.Path, ports.WithGroup(pagesGroup))
	defer func() { vertex.Complete(err) }()

	pb := &pageBuild{cfg: cfg, page: page, mod: mod, tmpl: tmpl, vertex: vertex}

	var markdown string
	if page.Index {
		markdown, err = indexMarkdown(pb, refs)
	} else {
		markdown, err = g.pageMarkdown(pb)
	}
	if err != nil {
		return zerr.With(err, "page", page.Path)
	}

	content := newPagePrefix + markdown
	if existing, ok := site.Get(page.Path); ok {
		if !strings.Contains(string(existing), domain.AutogeneratedTag) {
			return zerr.With(zerr.Wrap(domain.ErrMissingAutogeneratedTag, "template found without "+domain.AutogeneratedTag), "page", page.Path)
		}
		content = strings.ReplaceAll(string(existing), domain.AutogeneratedTag, markdown)
	}
	site.Put(page.Path, []byte(content))
	return nil
}

// pageMarkdown renders the classes and functions listed on a page.
func (g *Generator) pageMarkdown(pb *pageBuild) (string, error) {
	var entries []string

	for _, spec := range pb.page.Classes {
		cls, err := pb.mod.Class(spec.Name)
		if err != nil {
			return "", err
		}
		md, err := g.renderSymbol(pb, cls)
		if err != nil {
			return "", err
		}

		methods, err := selectMethods(cls, spec)
		if err != nil {
			return "", err
		}
		if len(methods) > 0 {
			md += methodsHeader
			for _, m := range methods {
				out, err := g.renderSymbol(pb, m)
				if err != nil {
					return "", err
				}
				md += out
			}
		}
		entries = append(entries, md)
	}

	for _, name := range pb.page.Functions {
		fn, err := pb.mod.Function(name)
		if err != nil {
			return "", err
		}
		md, err := g.renderSymbol(pb, fn)
		if err != nil {
			return "", err
		}
		entries = append(entries, md)
	}

	return strings.Join(entries, entrySeparator), nil
}

// selectMethods applies the class spec filter. Every named method must exist.
func selectMethods(cls *domain.Symbol, spec domain.ClassSpec) ([]*domain.Symbol, error) {
	for _, name := range spec.Methods {
		if _, err := cls.Method(strings.TrimPrefix(name, "!")); err != nil {
			return nil, err
		}
	}

	names := cls.DocumentedMethods()
	if spec.HasMethodFilter() {
		names = spec.SelectMethods(names)
	}

	methods := make([]*domain.Symbol, 0, len(names))
	for _, name := range names {
		m, err := cls.Method(name)
		if err != nil {
			return nil, err
		}
		methods = append(methods, m)
	}
	return methods, nil
}

// renderSymbol parses the docstring of sym, runs the enabled checks and renders it.
func (g *Generator) renderSymbol(pb *pageBuild, sym *domain.Symbol) (string, error) {
	name := qualifiedName(sym)

	doc, err := docstring.Parse(sym.Doc, docstring.Options{Language: pb.mod.Language})
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "invalid docstring"), "symbol", name)
	}

	if sym.Kind != domain.KindClass {
		var warnings []string
		if pb.cfg.Docstring.CheckArgs {
			warnings = append(warnings, doc.CheckArgs(sym.Params)...)
		}
		if pb.cfg.Docstring.OverrideAnnotations {
			warnings = append(warnings, doc.CheckAnnotations(sym.Params)...)
		}
		for _, w := range warnings {
			msg := fmt.Sprintf("%s: %s: %s", pb.page.Path, name, w)
			g.logger.Warn(msg)
			pb.vertex.Log(domain.LogLevelWarn, msg)
		}
	}

	out, err := g.renderer.Render(pb.tmpl, symbolView(pb, sym, doc))
	if err != nil {
		return "", zerr.With(err, "symbol", name)
	}
	return out, nil
}

func symbolView(pb *pageBuild, sym *domain.Symbol, doc *docstring.Docstring) *domain.SymbolView {
	view := &domain.SymbolView{
		Source:    pb.cfg.SourceLink(pb.page.Source, sym.Line),
		Signature: sym.Signature,
		Async:     sym.Async,
		Language:  pb.mod.Language,
		Sections:  doc.Sections,
		Headers:   doc.Headers(),
		H2:        "##",
		H3:        "###",
	}
	if doc.Signature != "" {
		view.Signature = doc.Signature
	}

	switch sym.Kind {
	case domain.KindClass:
		view.Class = sym.Name
	case domain.KindMethod:
		view.Class = sym.Parent
		view.Function = sym.Name
		view.IsMethod = true
	default:
		view.Function = sym.Name
	}
	return view
}

func qualifiedName(sym *domain.Symbol) string {
	if sym.Parent != "" {
		return sym.Parent + "." + sym.Name
	}
	return sym.Name
}
