package python

import (
	"strings"
	"unicode"

	"go.trai.ch/gendocs/internal/core/domain"
)

// declaration is a parsed class or def header.
type declaration struct {
	kind    domain.SymbolKind
	name    string
	async   bool
	params  string
	returns string
	// inline is the body following the header colon on the same line.
	inline string
}

// parseDeclaration recognises "class", "def" and "async def" headers.
func parseDeclaration(text string) (*declaration, bool) {
	s := strings.TrimSpace(text)
	d := &declaration{}

	if rest, ok := cutKeyword(s, "async"); ok {
		s, d.async = rest, true
	}

	switch {
	case hasKeyword(s, "def"):
		d.kind = domain.KindFunction
		s, _ = cutKeyword(s, "def")
	case hasKeyword(s, "class") && !d.async:
		d.kind = domain.KindClass
		s, _ = cutKeyword(s, "class")
	default:
		return nil, false
	}

	d.name, s = cutIdentifier(s)
	if d.name == "" {
		return nil, false
	}

	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "[") {
		end := matchClose(s, 0)
		if end < 0 {
			return nil, false
		}
		s = strings.TrimSpace(s[end+1:])
	}

	if strings.HasPrefix(s, "(") {
		end := matchClose(s, 0)
		if end < 0 {
			return nil, false
		}
		if d.kind == domain.KindFunction {
			d.params = s[1:end]
		}
		s = strings.TrimSpace(s[end+1:])
	} else if d.kind == domain.KindFunction {
		return nil, false
	}

	colon := indexTopLevel(s, ':')
	if colon < 0 {
		return nil, false
	}
	if head := strings.TrimSpace(s[:colon]); head != "" {
		ret, ok := strings.CutPrefix(head, "->")
		if !ok || d.kind != domain.KindFunction {
			return nil, false
		}
		d.returns = collapseSpace(strings.TrimSpace(ret))
	}
	d.inline = strings.TrimSpace(s[colon+1:])

	return d, true
}

// decoratorName returns the dotted name of a decorator line without its arguments.
func decoratorName(text string) string {
	name := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "@"))
	if i := strings.IndexAny(name, "( "); i >= 0 {
		name = name[:i]
	}
	return name
}

func hasKeyword(s, kw string) bool {
	_, ok := cutKeyword(s, kw)
	return ok
}

func cutKeyword(s, kw string) (string, bool) {
	rest, ok := strings.CutPrefix(s, kw)
	if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return s, false
	}
	return strings.TrimSpace(rest), true
}

func cutIdentifier(s string) (string, string) {
	end := 0
	for i, r := range s {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			end = i + len(string(r))
			continue
		}
		break
	}
	return s[:end], s[end:]
}

// walk calls fn for every byte of s outside string literals with the current
// bracket depth. It stops early when fn returns false.
func walk(s string, fn func(i, depth int) bool) {
	depth := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\'' {
			end, _, ok := scanString(s, i)
			if !ok {
				return
			}
			i = end - 1
			continue
		}
		switch c {
		case '(', '[', '{':
			if !fn(i, depth) {
				return
			}
			depth++
			continue
		case ')', ']', '}':
			depth--
		}
		if !fn(i, depth) {
			return
		}
	}
}

// matchClose returns the index of the bracket closing the one at open.
func matchClose(s string, open int) int {
	result := -1
	walk(s[open:], func(i, depth int) bool {
		if i > 0 && depth == 0 && strings.IndexByte(")]}", s[open+i]) >= 0 {
			result = open + i
			return false
		}
		return true
	})
	return result
}

// indexTopLevel returns the first index of c outside brackets and strings.
func indexTopLevel(s string, c byte) int {
	result := -1
	walk(s, func(i, depth int) bool {
		if depth == 0 && s[i] == c {
			result = i
			return false
		}
		return true
	})
	return result
}

// splitTopLevel splits s on sep outside brackets and strings.
func splitTopLevel(s string, sep byte) []string {
	var parts []string
	last := 0
	walk(s, func(i, depth int) bool {
		if depth == 0 && s[i] == sep {
			parts = append(parts, s[last:i])
			last = i + 1
		}
		return true
	})
	return append(parts, s[last:])
}

// indexDefault returns the index of the "=" introducing a default value.
func indexDefault(s string) int {
	result := -1
	walk(s, func(i, depth int) bool {
		if depth != 0 || s[i] != '=' {
			return true
		}
		if i+1 < len(s) && s[i+1] == '=' {
			return true
		}
		if i > 0 && strings.IndexByte("=<>!:", s[i-1]) >= 0 {
			return true
		}
		result = i
		return false
	})
	return result
}

// collapseSpace replaces whitespace runs outside string literals with a single space.
func collapseSpace(s string) string {
	var b strings.Builder
	space := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\'' {
			if end, _, ok := scanString(s, i); ok {
				if space && b.Len() > 0 {
					b.WriteByte(' ')
				}
				space = false
				b.WriteString(s[i:end])
				i = end - 1
				continue
			}
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' {
			space = true
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteByte(c)
	}
	return b.String()
}

// parseParams splits a parameter list into structured parameters.
func parseParams(raw string) []domain.Param {
	var params []domain.Param
	for _, part := range splitTopLevel(raw, ',') {
		p := collapseSpace(strings.TrimSpace(part))
		if p == "" {
			continue
		}

		var param domain.Param
		head := p
		if eq := indexDefault(p); eq >= 0 {
			head = p[:eq]
			param.Default = strings.TrimSpace(p[eq+1:])
		}
		if colon := indexTopLevel(head, ':'); colon >= 0 {
			param.Annotation = strings.TrimSpace(head[colon+1:])
			head = head[:colon]
		}
		param.Name = strings.TrimSpace(head)
		params = append(params, param)
	}
	return params
}
