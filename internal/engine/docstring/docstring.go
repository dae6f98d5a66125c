// Package docstring parses Google-style docstrings into sections.
package docstring

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/zerr"
)

// indentWidth is the number of columns that make a line part of a section body.
const indentWidth = 4

// Headers are the section keywords recognised when followed by a colon.
var Headers = []string{
	"Args", "Arguments", "Returns", "Yields", "Raises", "Note", "Notes", "Properties",
	"Fields", "Example", "Examples", "Attributes", "Todo", "References",
}

// argHeaders hold "name (type): description" entries; the others are free text.
var argHeaders = map[string]bool{
	"Args": true, "Arguments": true, "Returns": true, "Yields": true, "Raises": true,
	"Properties": true, "Fields": true, "Attributes": true,
}

var admonitions = []string{
	"note", "seealso", "abstract", "summary", "tldr", "info", "todo", "tip", "hint",
	"important", "success", "check", "done", "question", "help", "faq", "warning",
	"caution", "attention", "failure", "fail", "missing", "danger", "error", "bug",
	"example", "snippet", "quote", "cite",
}

var (
	headerRe    = regexp.MustCompile(`^[ \t]*(` + strings.Join(Headers, "|") + `):[ \t]*$`)
	blockRe     = regexp.MustCompile(`^[ \t]*(!!!|\?\?\?)[ \t]+(` + strings.Join(admonitions, "|") + `)([ \t]+"[^"]*")?[ \t]*$`)
	argRe       = regexp.MustCompile(`^(\*{0,2}\w+)[ \t]*(\([^)]*\))?[ \t]*:[ \t]*(.*)$`)
	signatureRe = regexp.MustCompile(`^\w+\(.*\)$`)
)

// Docstring is a parsed docstring.
type Docstring struct {
	Sections []domain.Section
	// Signature overrides the extracted signature when the docstring opens with one.
	Signature string
}

// Headers returns the distinct section headers in order of appearance.
func (d *Docstring) Headers() []string {
	var headers []string
	for _, s := range d.Sections {
		if s.Header != "" && !slices.Contains(headers, s.Header) {
			headers = append(headers, s.Header)
		}
	}
	return headers
}

// Options configure parsing.
type Options struct {
	// Language is the fence language for doctest examples.
	Language string
}

type rawSection struct {
	header string
	block  bool
	indent int
	lines  []string
}

func (s *rawSection) empty() bool {
	if s.header != "" || s.block {
		return false
	}
	for _, l := range s.lines {
		if strings.TrimSpace(l) != "" {
			return false
		}
	}
	return true
}

// Parse splits text into sections.
// A header or admonition must be followed by an indented line; otherwise
// domain.ErrDocstringSyntax is returned with the offending docstring line.
func Parse(text string, opts Options) (*Docstring, error) {
	raw, err := split(strings.Split(text, "\n"))
	if err != nil {
		return nil, err
	}

	doc := &Docstring{}
	for i, rs := range raw {
		if i == 0 && rs.header == "" && !rs.block {
			doc.Signature, rs.lines = takeSignature(rs.lines)
		}
		section := build(rs, opts.Language)
		if section.Header == "" && section.Text == "" && len(section.Args) == 0 {
			continue
		}
		doc.Sections = append(doc.Sections, section)
	}
	return doc, nil
}

func split(lines []string) ([]*rawSection, error) {
	var sections []*rawSection
	cur := &rawSection{}

	push := func(next *rawSection) {
		if !cur.empty() {
			sections = append(sections, cur)
		}
		cur = next
	}

	for i, line := range lines {
		header, block := matchHeader(line)
		if header != "" || block {
			ind := indentOf(line)
			next := nextNonEmpty(lines, i+1)
			if next < 0 || indentOf(lines[next]) < ind+indentWidth {
				label := header
				if block {
					label = strings.TrimSpace(line)
				}
				err := zerr.Wrap(domain.ErrDocstringSyntax, "docstring line "+strconv.Itoa(i+1)+": missing indent after "+label)
				return nil, zerr.With(err, "line", i+1)
			}
			section := &rawSection{header: header, block: block, indent: ind}
			if block {
				section.lines = append(section.lines, line)
			}
			push(section)
			continue
		}

		if (cur.header != "" || cur.block) && strings.TrimSpace(line) != "" && indentOf(line) < cur.indent+indentWidth {
			push(&rawSection{})
		}
		cur.lines = append(cur.lines, line)
	}
	push(nil)

	return sections, nil
}

func matchHeader(line string) (string, bool) {
	if m := headerRe.FindStringSubmatch(line); m != nil {
		return m[1], false
	}
	return "", blockRe.MatchString(line)
}

func takeSignature(lines []string) (string, []string) {
	for i, l := range lines {
		t := strings.TrimSpace(l)
		if t == "" {
			continue
		}
		if !signatureRe.MatchString(t) {
			return "", lines
		}
		return t, slices.Delete(slices.Clone(lines), i, i+1)
	}
	return "", lines
}

func build(rs *rawSection, language string) domain.Section {
	if rs.block || rs.header == "" {
		return domain.Section{Text: joinText(rs.lines, language)}
	}

	section := domain.Section{Header: rs.header}
	base := -1
	for _, l := range rs.lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		if ind := indentOf(l); base < 0 || ind < base {
			base = ind
		}
	}

	var text []string
	var current *domain.Arg
	for _, l := range rs.lines {
		if strings.TrimSpace(l) == "" {
			current = nil
			text = append(text, "")
			continue
		}

		ind := indentOf(l)
		body := strings.TrimSpace(l)
		if argHeaders[rs.header] && ind == base {
			if m := argRe.FindStringSubmatch(body); m != nil {
				section.Args = append(section.Args, domain.Arg{Field: m[1], Signature: m[2], Description: m[3]})
				current = &section.Args[len(section.Args)-1]
				continue
			}
		}
		if current != nil && ind > base {
			current.Description = strings.TrimSpace(current.Description + " " + body)
			continue
		}
		current = nil
		text = append(text, dedent(l, base))
	}

	section.Text = joinText(text, language)
	return section
}

func joinText(lines []string, language string) string {
	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	return strings.Join(markCode(lines[start:end], language), "\n")
}

// markCode fences runs of doctest lines that are not already inside a fence.
// A run starts at a ">>>" line and ends at the next blank line.
func markCode(lines []string, language string) []string {
	out := make([]string, 0, len(lines))
	var inFence, inDoctest bool
	var prefix string

	for _, l := range lines {
		t := strings.TrimSpace(l)
		switch {
		case inDoctest && t == "":
			out = append(out, prefix+"```")
			inDoctest = false
		case !inDoctest && strings.HasPrefix(t, "```"):
			inFence = !inFence
		case !inFence && !inDoctest && strings.HasPrefix(t, ">>>"):
			prefix = l[:len(l)-len(strings.TrimLeft(l, " \t"))]
			out = append(out, prefix+"```"+language)
			inDoctest = true
		}
		out = append(out, l)
	}
	if inDoctest {
		out = append(out, prefix+"```")
	}
	return out
}

func indentOf(line string) int {
	n := 0
	for _, r := range line {
		switch r {
		case ' ':
			n++
		case '\t':
			n += indentWidth
		default:
			return n
		}
	}
	return n
}

func dedent(line string, width int) string {
	n := 0
	for i, r := range line {
		if n >= width || (r != ' ' && r != '\t') {
			return line[i:]
		}
		if r == '\t' {
			n += indentWidth
		} else {
			n++
		}
	}
	return ""
}

func nextNonEmpty(lines []string, from int) int {
	for i := from; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) != "" {
			return i
		}
	}
	return -1
}
