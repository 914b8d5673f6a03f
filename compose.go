package tgformat

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/tgformat/internal/buffer"
)

// DefaultSeparator is the separator Join callers usually want.
const DefaultSeparator = ", "

// Join projects every item and concatenates the results with separator.
//
// A projector returning nil skips the item. The separator is written after
// every emitted item except the one at the last index of items, so skipping
// the last item leaves a trailing separator behind.
//
//	Join(users, func(u User, _ int) Part { return Mention(u.FirstName, u) }, DefaultSeparator)
func Join[T any](items []T, project func(item T, index int) Part, separator string) Formattable {
	buf := buffer.New()
	last := len(items) - 1
	for i, item := range items {
		part := project(item, i)
		if part == nil {
			continue
		}
		writePart(buf, part, false)
		if i != last {
			buf.Write(separator)
		}
	}
	return Formattable{Text: buf.String(), Entities: buf.Entities()}
}

// Format merges parts left to right into one Formattable, re-basing the
// entities of every substituted value onto the merged text.
//
// Literal parts have the indentation after each newline removed, so a
// template spread over several indented source lines renders flush left.
// Blank lines are kept.
func Format(parts ...Part) Formattable {
	return compose(parts, true)
}

// FormatSaveIndents is Format without indentation stripping.
func FormatSaveIndents(parts ...Part) Formattable {
	return compose(parts, false)
}

// Concat merges parts verbatim. It is FormatSaveIndents under a name that
// reads better when no literal template is involved.
func Concat(parts ...Part) Formattable {
	return compose(parts, false)
}

func compose(parts []Part, strip bool) Formattable {
	buf := buffer.New()
	for _, p := range parts {
		writePart(buf, p, strip)
	}
	return Formattable{Text: buf.String(), Entities: buf.Entities()}
}

// writePart appends p to buf. The buffer carries the running UTF-16 length,
// so nested sequences land at the offset where they begin.
func writePart(buf *buffer.Buffer, p Part, strip bool) {
	switch v := p.(type) {
	case Literal:
		s := string(v)
		if strip {
			s = StripIndents(s)
		}
		buf.Write(s)
	case Text:
		buf.Write(string(v))
	case Formattable:
		buf.WriteShifted(v.Text, v.Entities)
	case Seq:
		for _, child := range v {
			if child != nil {
				writePart(buf, child, strip)
			}
		}
	}
}

// StripIndents replaces a newline followed by a run of indentation with a
// bare newline. Runs that reach another newline are left alone, which keeps
// blank lines made of whitespace intact.
func StripIndents(s string) string {
	if !strings.Contains(s, "\n") {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); {
		if s[i] != '\n' {
			sb.WriteByte(s[i])
			i++
			continue
		}

		j := i + 1
		for j < len(s) {
			r, size := utf8.DecodeRuneInString(s[j:])
			if r == '\n' || !unicode.IsSpace(r) {
				break
			}
			j += size
		}

		sb.WriteByte('\n')
		if j > i+1 && (j == len(s) || s[j] != '\n') {
			i = j
		} else {
			i++
		}
	}
	return sb.String()
}
