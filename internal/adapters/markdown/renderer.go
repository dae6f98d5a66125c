// Package markdown renders symbol views into Markdown with text/template.
package markdown

import (
	"bytes"
	_ "embed"
	"strings"
	"sync"
	"text/template"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/gendocs/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed templates/symbol.md.tmpl
var symbolTemplate string

// pythonLanguage marks sources whose method signatures get a leading dot.
const pythonLanguage = "python"

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer. Parsed templates are cached by the
// digest of their text.
type Renderer struct {
	mu    sync.Mutex
	cache map[uint64]*template.Template
}

// New creates a Renderer with an empty template cache.
func New() *Renderer {
	return &Renderer{cache: make(map[uint64]*template.Template)}
}

// Render executes tmpl against view. An empty tmpl selects the built-in template.
func (r *Renderer) Render(tmpl string, view *domain.SymbolView) (string, error) {
	if tmpl == "" {
		tmpl = symbolTemplate
	}
	t, err := r.parse(tmpl)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, view); err != nil {
		return "", zerr.With(zerr.Wrap(domain.ErrTemplateRender, err.Error()), "symbol", symbolName(view))
	}
	return buf.String(), nil
}

func (r *Renderer) parse(text string) (*template.Template, error) {
	key := xxhash.Sum64String(text)

	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.cache[key]; ok {
		return t, nil
	}
	t, err := template.New("symbol").Funcs(funcs).Parse(text)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrTemplateParse, err.Error())
	}
	r.cache[key] = t
	return t, nil
}

var funcs = template.FuncMap{
	"methodPrefix": func(v *domain.SymbolView) bool {
		return v.IsMethod && v.Language == pythonLanguage
	},
	"join":  strings.Join,
	"lower": strings.ToLower,
	"hasHeader": func(v *domain.SymbolView, header string) bool {
		for _, h := range v.Headers {
			if h == header {
				return true
			}
		}
		return false
	},
}

func symbolName(v *domain.SymbolView) string {
	switch {
	case v.Function == "":
		return v.Class
	case v.Class == "":
		return v.Function
	default:
		return v.Class + "." + v.Function
	}
}
