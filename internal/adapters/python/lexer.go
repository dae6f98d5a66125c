package python

import (
	"strconv"
	"strings"

	"go.trai.ch/gendocs/internal/core/domain"
	"go.trai.ch/zerr"
)

const tabSize = 8

// logicalLine is one Python statement line after joining continuations.
// Comments are removed; string literals are kept verbatim.
type logicalLine struct {
	line    int
	endLine int
	indent  int
	text    string
}

func parseError(line int, msg string) error {
	err := zerr.Wrap(domain.ErrSourceParse, "line "+strconv.Itoa(line)+": "+msg)
	return zerr.With(err, "line", line)
}

// scanLines splits src into logical lines.
//
//nolint:cyclop,gocognit // single pass tokenizer
func scanLines(src string) ([]logicalLine, error) {
	src = strings.TrimPrefix(src, "\ufeff")

	var (
		lines     []logicalLine
		buf       strings.Builder
		line      = 1
		startLine int
		indent    int
		depth     int
		atStart   = true
	)

	emit := func() {
		text := strings.TrimRight(buf.String(), " \t\f")
		if text != "" {
			lines = append(lines, logicalLine{line: startLine, endLine: line, indent: indent, text: text})
		}
		buf.Reset()
	}

	n := len(src)
	i := 0
	for i < n {
		if atStart {
			col, j := 0, i
		measure:
			for j < n {
				switch src[j] {
				case ' ':
					col++
				case '\t':
					col = (col/tabSize + 1) * tabSize
				case '\f':
					col = 0
				default:
					break measure
				}
				j++
			}
			if j >= n {
				break
			}
			if c := src[j]; c == '\n' || c == '\r' || c == '#' {
				for j < n && src[j] != '\n' {
					j++
				}
				i = j + 1
				line++
				continue
			}
			indent, startLine, i, atStart = col, line, j, false
		}

		c := src[i]
		switch {
		case c == '#':
			for i < n && src[i] != '\n' {
				i++
			}
		case c == '\\' && i+1 < n && (src[i+1] == '\n' || src[i+1] == '\r'):
			i++
			if src[i] == '\r' && i+1 < n && src[i+1] == '\n' {
				i++
			}
			i++
			line++
		case c == '\r':
			i++
		case c == '\n':
			i++
			if depth > 0 {
				buf.WriteByte(' ')
				line++
				continue
			}
			emit()
			line++
			atStart = true
		case c == '\'' || c == '"':
			end, newlines, ok := scanString(src, i)
			if !ok {
				return nil, parseError(line, "unterminated string literal")
			}
			buf.WriteString(src[i:end])
			line += newlines
			i = end
		case c == '(' || c == '[' || c == '{':
			depth++
			buf.WriteByte(c)
			i++
		case c == ')' || c == ']' || c == '}':
			depth--
			if depth < 0 {
				return nil, parseError(line, "unmatched '"+string(c)+"'")
			}
			buf.WriteByte(c)
			i++
		default:
			buf.WriteByte(c)
			i++
		}
	}

	if depth > 0 {
		return nil, parseError(startLine, "unclosed bracket")
	}
	if !atStart {
		emit()
	}
	return lines, nil
}

// scanString returns the index just past the literal starting at the quote
// src[start] and the number of newlines it spans.
func scanString(src string, start int) (end, newlines int, ok bool) {
	q := src[start]
	triple := strings.HasPrefix(src[start:], strings.Repeat(string(q), 3))
	i := start + 1
	if triple {
		i = start + 3
	}

	for i < len(src) {
		c := src[i]
		switch {
		case c == '\\':
			if i+1 < len(src) && src[i+1] == '\n' {
				newlines++
			}
			i += 2
			continue
		case c == '\n':
			if !triple {
				return 0, 0, false
			}
			newlines++
		case c == q:
			if !triple {
				return i + 1, newlines, true
			}
			if strings.HasPrefix(src[i:], strings.Repeat(string(q), 3)) {
				return i + 3, newlines, true
			}
		}
		i++
	}
	return 0, 0, false
}
