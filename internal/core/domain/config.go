package domain

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Config is the validated documentation manifest.
type Config struct {
	// Root is the directory containing the manifest. Relative paths resolve against it.
	Root string
	// SourcesDir is the output directory, wiped on every publish.
	SourcesDir string
	// Templates is an optional directory copied into SourcesDir before generation.
	Templates string
	// Repo is the repository URL used to build source links. Empty disables links.
	Repo string
	// Version is the ref used in source links.
	Version string
	// DocstringTemplate is an optional text/template file replacing the built-in symbol template.
	DocstringTemplate string
	// Readme is rendered into index.md.
	Readme string
	// Contributing is copied to contributing.md.
	Contributing string
	// ExamplesDir holds example sources rendered as pages.
	ExamplesDir string
	// Docstring tunes docstring checks.
	Docstring DocstringOptions
	// Pages lists the generated pages in order.
	Pages []Page
}

// DocstringOptions enables optional docstring consistency warnings.
type DocstringOptions struct {
	CheckArgs           bool
	OverrideAnnotations bool
}

// Page maps one source file to one generated markdown page.
type Page struct {
	// Path is the page location relative to SourcesDir.
	Path string
	// Source is the source file relative to the config Root.
	Source string
	// Index renders a symbol index of Source instead of its documentation.
	Index     bool
	Classes   []ClassSpec
	Functions []string
}

// ClassSpec selects a class and, optionally, which of its methods to document.
type ClassSpec struct {
	Name string
	// Methods holds method names; entries prefixed with "!" exclude a method.
	Methods []string
}

// HasMethodFilter reports whether the spec names methods explicitly.
func (c ClassSpec) HasMethodFilter() bool {
	return len(c.Methods) > 0
}

// SelectMethods resolves the methods to document given the documentable ones.
// Without included names every available method is taken; excluded names are removed last.
func (c ClassSpec) SelectMethods(available []string) []string {
	var included []string
	excluded := make(map[string]bool)
	for _, m := range c.Methods {
		if name, ok := strings.CutPrefix(m, "!"); ok {
			excluded[name] = true
			continue
		}
		included = append(included, m)
	}

	if len(included) == 0 {
		included = available
	}

	selected := make([]string, 0, len(included))
	for _, m := range included {
		if !excluded[m] {
			selected = append(selected, m)
		}
	}
	return selected
}

// Resolve returns path relative to the config root unless it is already absolute.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Root, path)
}

// OutputDir returns the absolute-or-root-relative sources directory.
func (c *Config) OutputDir() string {
	return c.Resolve(c.SourcesDir)
}

// StatePath returns the location of the state store for this config.
func (c *Config) StatePath() string {
	return DefaultStatePath(c.Root)
}

// SourceLink builds the repository link for a line of a source file.
// It returns an empty string when no repository is configured.
func (c *Config) SourceLink(source string, line int) string {
	if c.Repo == "" {
		return ""
	}
	link := strings.TrimSuffix(c.Repo, "/") + "/blob/" + c.Version + "/" + filepath.ToSlash(filepath.Clean(source))
	if line > 0 {
		link += "#L" + strconv.Itoa(line)
	}
	return link
}

