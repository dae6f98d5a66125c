package generator

import (
	"path"
	"path/filepath"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/zerr"
)

// addExamples renders every supported file directly inside the examples
// directory as examples/<name>.md.
func (g *Generator) addExamples(cfg *domain.Config, site *domain.Site) error {
	dir := cfg.Resolve(cfg.ExamplesDir)
	if dir == "" || !g.fs.Exists(dir) {
		return nil
	}

	for file := range g.fs.WalkFiles(dir, nil) {
		if filepath.Dir(file) != filepath.Clean(dir) || !g.extractor.Supports(file) {
			continue
		}
		mod, err := g.extractor.Extract(file)
		if err != nil {
			return zerr.With(err, "example", file)
		}
		src, err := g.fs.ReadFile(file)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrSourceRead.Error()), "path", file)
		}
		name := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)) + ".md"
		site.Put(path.Join(domain.DefaultExamplesDir, name), exampleMarkdown(mod, src))
	}
	return nil
}

// exampleMarkdown puts the module docstring above the code that follows it.
func exampleMarkdown(mod *domain.Module, src []byte) []byte {
	lines := strings.SplitAfter(string(src), "\n")
	start := min(mod.DocEndLine, len(lines))
	code := lines[start:]
	if len(code) > 0 && strings.TrimSpace(code[0]) == "" {
		code = code[1:]
	}
	body := strings.Join(code, "")

	var b strings.Builder
	b.WriteString(mod.Doc)
	b.WriteString("\n\n```")
	b.WriteString(mod.Language)
	b.WriteString("\n")
	b.WriteString(body)
	if body != "" && !strings.HasSuffix(body, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
	return []byte(b.String())
}
