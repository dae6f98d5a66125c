package python

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// stringLiteral evaluates a statement made only of adjacent string literals.
// Bytes and f-strings are rejected because they are never docstrings.
func stringLiteral(text string) (string, bool) {
	var out strings.Builder
	s := strings.TrimSpace(text)
	found := false

	for s != "" {
		p := 0
		for p < len(s) && p < 2 && strings.ContainsRune("rRuUbBfF", rune(s[p])) {
			p++
		}
		prefix := strings.ToLower(s[:p])
		if strings.ContainsAny(prefix, "bf") || p >= len(s) || (s[p] != '"' && s[p] != '\'') {
			return "", false
		}

		end, _, ok := scanString(s, p)
		if !ok {
			return "", false
		}
		q := 1
		if strings.HasPrefix(s[p:], strings.Repeat(s[p:p+1], 3)) {
			q = 3
		}
		body := s[p+q : end-q]
		if strings.Contains(prefix, "r") {
			out.WriteString(body)
		} else {
			out.WriteString(unescape(body))
		}
		found = true
		s = strings.TrimSpace(s[end:])
	}
	return out.String(), found
}

// unescape decodes Python string escapes. Unknown escapes are kept verbatim.
//
//nolint:cyclop // escape table
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '\n':
		case '\\', '\'', '"':
			b.WriteByte(e)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'v':
			b.WriteByte('\v')
		case 'x', 'u', 'U':
			width := 2
			switch e {
			case 'u':
				width = 4
			case 'U':
				width = 8
			}
			if i+width < len(s) {
				r, err := strconv.ParseUint(s[i+1:i+1+width], 16, 32)
				if err == nil && utf8.ValidRune(rune(r)) {
					b.WriteRune(rune(r))
					i += width
					continue
				}
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		case '0', '1', '2', '3', '4', '5', '6', '7':
			j := i
			for j < len(s) && j < i+3 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			r, _ := strconv.ParseUint(s[i:j], 8, 32)
			b.WriteRune(rune(r))
			i = j - 1
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

// cleandoc normalizes docstring indentation: tabs are expanded, the first line is
// stripped, the common margin of the remaining lines is removed and blank lines
// are trimmed from both ends.
func cleandoc(doc string) string {
	lines := strings.Split(doc, "\n")
	for i, l := range lines {
		lines[i] = expandTabs(l)
	}

	margin := -1
	for _, l := range lines[1:] {
		stripped := strings.TrimLeft(l, " ")
		if strings.TrimSpace(stripped) == "" {
			continue
		}
		if ind := len(l) - len(stripped); margin < 0 || ind < margin {
			margin = ind
		}
	}

	lines[0] = strings.TrimLeft(lines[0], " \t")
	if margin > 0 {
		for i := 1; i < len(lines); i++ {
			if len(lines[i]) < margin {
				lines[i] = strings.TrimLeft(lines[i], " ")
				continue
			}
			lines[i] = lines[i][margin:]
		}
	}

	start, end := 0, len(lines)
	for start < end && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	for end > start && strings.TrimSpace(lines[end-1]) == "" {
		end--
	}
	for i := start; i < end; i++ {
		lines[i] = strings.TrimRight(lines[i], " \t\r")
	}
	return strings.Join(lines[start:end], "\n")
}

func expandTabs(line string) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var b strings.Builder
	col := 0
	for _, r := range line {
		if r == '\t' {
			pad := tabSize - col%tabSize
			b.WriteString(strings.Repeat(" ", pad))
			col += pad
			continue
		}
		b.WriteRune(r)
		col++
	}
	return b.String()
}
