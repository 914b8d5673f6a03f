// Package markdown lowers markdown onto tgformat values.
//
// The source is tokenized by a Lexer (goldmark by default) and every token is
// mapped to a formatter or combinator:
//
//	strong, heading  -> bold
//	em               -> italic
//	del              -> strikethrough
//	blockquote       -> blockquote
//	codespan         -> code
//	code             -> pre with language
//	link, image      -> text_link
//	list             -> "<marker> item" lines
//
// Unknown tokens render their source text unchanged.
package markdown

import (
	"strconv"
	"strings"

	"github.com/riverfjs/tgformat"
	"github.com/riverfjs/tgformat/internal/buffer"
)

// ToFormattable converts markdown into a single Formattable using the
// default goldmark lexer.
func ToFormattable(markdown string) tgformat.Formattable {
	// The default lexer never fails.
	f, _ := Convert(markdown)
	return f
}

// Convert is ToFormattable with options. Lexer errors are returned as is.
func Convert(markdown string, opts ...Option) (tgformat.Formattable, error) {
	options := applyOptions(opts...)
	tokens, err := options.Lexer.Lex(markdown)
	if err != nil {
		return tgformat.Formattable{}, err
	}
	l := &lowerer{opts: options}
	return l.join(tokens), nil
}

// Lower converts an already lexed token tree.
func Lower(tokens []Token, opts ...Option) tgformat.Formattable {
	l := &lowerer{opts: applyOptions(opts...)}
	return l.join(tokens)
}

type lowerer struct {
	opts *Options
}

func (l *lowerer) join(tokens []Token) tgformat.Formattable {
	return tgformat.Join(spaceAfterHeadings(tokens), func(t Token, _ int) tgformat.Part {
		return l.token(t)
	}, "")
}

func (l *lowerer) token(t Token) tgformat.Formattable {
	switch t.Kind {
	case KindBlockquote:
		return tgformat.Blockquote(l.join(t.Tokens))

	case KindStrong, KindHeading:
		return tgformat.Bold(l.join(t.Tokens))

	case KindEm:
		return tgformat.Italic(l.join(t.Tokens))

	case KindLink, KindImage:
		if id, ok := customEmojiID(t.Href); ok && l.opts.CustomEmojiLinks {
			return tgformat.CustomEmoji(l.join(t.Tokens), id)
		}
		return tgformat.Link(l.join(t.Tokens), t.Href)

	case KindDel:
		return tgformat.Strikethrough(l.join(t.Tokens))

	case KindList:
		return l.list(t)

	case KindCodeSpan:
		return tgformat.Code(t.Text)

	case KindCode:
		return tgformat.Pre(t.Text, t.Lang)

	case KindText:
		if t.Tokens != nil {
			return l.join(t.Tokens)
		}
		return tgformat.FormatSaveIndents(tgformat.Text(t.Text))

	case KindParagraph:
		return l.join(t.Tokens)
	}

	switch t.Kind {
	case KindSpace, KindHr, KindHTML:
	default:
		tgformat.Logger.Printf("markdown: rendering %q token as raw text", t.Kind)
	}
	raw := t.Text
	if raw == "" {
		raw = t.Raw
	}
	return tgformat.FormatSaveIndents(tgformat.Text(raw))
}

// list renders the items of one list. The counter lives in this call only,
// so nested and sibling lists never share numbering.
func (l *lowerer) list(t Token) tgformat.Formattable {
	counter := 1
	if t.HasStart {
		counter = t.Start
	}

	return tgformat.Join(t.Items, func(item ListItem, _ int) tgformat.Part {
		marker := l.opts.Bullet
		if t.Ordered {
			marker = strconv.Itoa(counter) + l.opts.OrderedSuffix
			counter++
		}
		return l.item(item, marker)
	}, "\n")
}

// item prefixes the first child with the marker. Later children follow
// without one; a nested list always starts on a fresh line.
func (l *lowerer) item(item ListItem, marker string) tgformat.Formattable {
	buf := buffer.New()
	for i, child := range spaceAfterHeadings(item.Tokens) {
		if i == 0 {
			buf.Write(marker + " ")
		}
		if child.Kind == KindList && buf.TrailingNewlineCount() == 0 {
			buf.Write("\n")
		}
		lowered := l.token(child)
		buf.WriteShifted(lowered.Text, lowered.Entities)
	}
	return tgformat.Formattable{Text: buf.String(), Entities: buf.Entities()}
}

// spaceAfterHeadings adds a space token after every heading whose source was
// followed by newlines. Lexers fold those newlines into the heading itself.
func spaceAfterHeadings(tokens []Token) []Token {
	out := make([]Token, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t)
		if t.Kind != KindHeading {
			continue
		}
		if n := trailingNewlines(t.Raw); n > 0 {
			out = append(out, Token{Kind: KindSpace, Raw: strings.Repeat("\n", n)})
		}
	}
	return out
}

func trailingNewlines(s string) int {
	n := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case '\n':
			n++
		case '\r', ' ', '\t':
		default:
			return n
		}
	}
	return n
}

// customEmojiID returns the id of a tg://emoji?id=<19 digits> URL.
func customEmojiID(url string) (string, bool) {
	const prefix = "tg://emoji?id="
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	id := strings.TrimPrefix(url, prefix)
	if len(id) != 19 {
		return "", false
	}
	for _, ch := range id {
		if ch < '0' || ch > '9' {
			return "", false
		}
	}
	return id, true
}
