package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// StandardOptions is the goldmark configuration used by the default lexer.
var StandardOptions = []goldmark.Option{
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Linkify,
	),
}

// GoldmarkLexer lexes markdown with goldmark and reshapes the AST into
// tokens.
//
// Sibling blocks are separated by space tokens holding one newline per line
// break between them. Headings keep those newlines in their Raw instead, so
// the lowering can restore them explicitly.
type GoldmarkLexer struct {
	md goldmark.Markdown
}

// NewGoldmarkLexer creates a lexer. Without options StandardOptions is used.
func NewGoldmarkLexer(options ...goldmark.Option) *GoldmarkLexer {
	if len(options) == 0 {
		options = StandardOptions
	}
	return &GoldmarkLexer{md: goldmark.New(options...)}
}

// Lex implements Lexer. goldmark accepts any input, so the error is always nil.
func (l *GoldmarkLexer) Lex(markdown string) ([]Token, error) {
	source := []byte(markdown)
	w := &astWalker{source: source}
	return w.blocks(l.ParseAST(source), 0), nil
}

// ParseAST only parses source, without converting to tokens.
func (l *GoldmarkLexer) ParseAST(source []byte) ast.Node {
	return l.md.Parser().Parse(gtext.NewReader(source))
}

type astWalker struct {
	source []byte
}

// --- Blocks ---

func (w *astWalker) blocks(parent ast.Node, cursor int) []Token {
	out := make([]Token, 0)
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		start, end := w.locate(n, cursor)
		tok := w.block(n, start, end)
		cursor = end

		next := n.NextSibling()
		if next == nil {
			out = append(out, tok)
			continue
		}
		nextStart, _ := w.locate(next, cursor)
		newlines := strings.Repeat("\n", w.gap(end, nextStart))
		if tok.Kind == KindHeading {
			tok.Raw += newlines
			out = append(out, tok)
			continue
		}
		out = append(out, tok, Token{Kind: KindSpace, Raw: newlines})
	}
	return out
}

func (w *astWalker) block(n ast.Node, start, end int) Token {
	raw := string(w.source[start:end])

	switch n := n.(type) {
	case *ast.Paragraph:
		return Token{Kind: KindParagraph, Raw: raw, Text: w.plain(n), Tokens: w.inlines(n)}

	case *ast.TextBlock:
		return Token{Kind: KindText, Raw: raw, Text: w.plain(n), Tokens: w.inlines(n)}

	case *ast.Heading:
		return Token{Kind: KindHeading, Raw: raw, Depth: n.Level, Text: w.plain(n), Tokens: w.inlines(n)}

	case *ast.Blockquote:
		return Token{Kind: KindBlockquote, Raw: raw, Tokens: w.blocks(n, start)}

	case *ast.List:
		tok := Token{Kind: KindList, Raw: raw, Ordered: n.IsOrdered()}
		if tok.Ordered {
			tok.Start = n.Start
			tok.HasStart = true
		}
		cursor := start
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			itemStart, itemEnd := w.locate(c, cursor)
			tok.Items = append(tok.Items, ListItem{
				Raw:    string(w.source[itemStart:itemEnd]),
				Tokens: w.blocks(c, itemStart),
			})
			cursor = itemEnd
		}
		return tok

	case *ast.FencedCodeBlock:
		return Token{Kind: KindCode, Raw: raw, Lang: w.language(n), Text: w.code(n)}

	case *ast.CodeBlock:
		return Token{Kind: KindCode, Raw: raw, Text: w.code(n)}

	case *ast.ThematicBreak:
		return Token{Kind: KindHr, Raw: raw}

	case *ast.HTMLBlock:
		return Token{Kind: KindHTML, Raw: raw, Text: raw}
	}

	return Token{Kind: Kind(strings.ToLower(n.Kind().String())), Raw: raw}
}

func (w *astWalker) code(n ast.Node) string {
	var buf bytes.Buffer
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		buf.Write(line.Value(w.source))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func (w *astWalker) language(n *ast.FencedCodeBlock) string {
	lang := string(n.Language(w.source))
	return strings.TrimSpace(strings.Split(lang, ",")[0])
}

// --- Inlines ---

func (w *astWalker) inlines(parent ast.Node) []Token {
	out := make([]Token, 0)
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, w.inline(n))
	}
	return out
}

func (w *astWalker) inline(n ast.Node) Token {
	switch n := n.(type) {
	case *ast.Text:
		raw := string(n.Segment.Value(w.source))
		value := raw
		if !n.IsRaw() {
			value = string(util.UnescapePunctuations([]byte(raw)))
		}
		if n.SoftLineBreak() || n.HardLineBreak() {
			value += "\n"
		}
		return Token{Kind: KindText, Raw: raw, Text: value}

	case *ast.String:
		return Token{Kind: KindText, Raw: string(n.Value), Text: string(n.Value)}

	case *ast.CodeSpan:
		code := w.codeSpanText(n)
		return Token{Kind: KindCodeSpan, Raw: code, Text: code}

	case *ast.Emphasis:
		kind := KindEm
		if n.Level == 2 {
			kind = KindStrong
		}
		return Token{Kind: kind, Text: w.plain(n), Tokens: w.inlines(n)}

	case *east.Strikethrough:
		return Token{Kind: KindDel, Text: w.plain(n), Tokens: w.inlines(n)}

	case *ast.Link:
		return Token{Kind: KindLink, Href: string(n.Destination), Text: w.plain(n), Tokens: w.inlines(n)}

	case *ast.Image:
		return Token{Kind: KindImage, Href: string(n.Destination), Text: w.plain(n), Tokens: w.inlines(n)}

	case *ast.AutoLink:
		label := string(n.Label(w.source))
		return Token{
			Kind:   KindLink,
			Raw:    label,
			Href:   string(n.URL(w.source)),
			Text:   label,
			Tokens: []Token{{Kind: KindText, Raw: label, Text: label}},
		}

	case *ast.RawHTML:
		html := string(n.Segments.Value(w.source))
		return Token{Kind: KindHTML, Raw: html, Text: html}
	}

	return Token{Kind: Kind(strings.ToLower(n.Kind().String())), Raw: w.plain(n)}
}

func (w *astWalker) codeSpanText(n *ast.CodeSpan) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if textNode, ok := c.(*ast.Text); ok {
			buf.Write(textNode.Segment.Value(w.source))
		}
	}
	return buf.String()
}

// plain concatenates the text leaves below n.
func (w *astWalker) plain(n ast.Node) string {
	var buf strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			buf.Write(c.Segment.Value(w.source))
			if c.SoftLineBreak() || c.HardLineBreak() {
				buf.WriteByte('\n')
			}
		case *ast.String:
			buf.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return buf.String()
}

// --- Source positions ---

// locate returns the byte range [start, end) of block n: start is the
// beginning of its first line, end the end of its last line without the line
// terminator. cursor is where the previous sibling ended.
func (w *astWalker) locate(n ast.Node, cursor int) (start, end int) {
	start, end = -1, -1
	if _, fenced := n.(*ast.FencedCodeBlock); !fenced {
		if seg, ok := firstLine(n); ok {
			start = w.lineStart(seg.Start)
		}
	}
	if start < 0 {
		start = w.nextContentLine(cursor)
	}
	if seg, ok := lastLine(n); ok {
		end = w.trimEOL(seg.Stop)
	}
	if end < start {
		end = w.lineEnd(start)
	}

	switch n.(type) {
	case *ast.FencedCodeBlock:
		end = w.skipLine(end, isFence)
	case *ast.Heading:
		end = w.skipLine(end, isSetextUnderline)
	}
	return start, end
}

// gap counts the line breaks separating a block ending at end from one
// starting at next: one for the line end plus one per blank line between.
func (w *astWalker) gap(end, next int) int {
	if end < 0 || next <= end || next > len(w.source) {
		return 1
	}
	lines := bytes.Split(w.source[end:next], []byte{'\n'})
	if len(lines) < 2 {
		return 1
	}
	n := 1
	for _, l := range lines[1 : len(lines)-1] {
		if isBlank(l) {
			n++
		}
	}
	return n
}

func (w *astWalker) lineStart(pos int) int {
	for pos > 0 && w.source[pos-1] != '\n' {
		pos--
	}
	return pos
}

// lineEnd returns the end of the line holding pos, without its terminator.
// The result is never before pos.
func (w *astWalker) lineEnd(pos int) int {
	end := pos
	for end < len(w.source) && w.source[end] != '\n' {
		end++
	}
	if end > pos && w.source[end-1] == '\r' {
		end--
	}
	return end
}

// trimEOL drops the single line terminator ending just before pos.
func (w *astWalker) trimEOL(pos int) int {
	if pos > len(w.source) {
		pos = len(w.source)
	}
	if pos > 0 && w.source[pos-1] == '\n' {
		pos--
	}
	if pos > 0 && w.source[pos-1] == '\r' {
		pos--
	}
	return pos
}

// nextContentLine returns the start of the first non-blank line at or after
// pos. A pos in the middle of a line counts from the following line.
func (w *astWalker) nextContentLine(pos int) int {
	if pos > len(w.source) {
		return len(w.source)
	}
	if pos > 0 && w.source[pos-1] != '\n' {
		for pos < len(w.source) && w.source[pos] != '\n' {
			pos++
		}
		if pos < len(w.source) {
			pos++
		}
	}
	for pos < len(w.source) {
		eol := bytes.IndexByte(w.source[pos:], '\n')
		if eol < 0 || !isBlank(w.source[pos:pos+eol]) {
			return pos
		}
		pos += eol + 1
	}
	return pos
}

// skipLine extends end over the following line when match accepts it.
func (w *astWalker) skipLine(end int, match func([]byte) bool) int {
	pos := end
	for pos < len(w.source) && (w.source[pos] == '\r' || w.source[pos] == '\n') {
		if w.source[pos] == '\n' {
			pos++
			break
		}
		pos++
	}
	if pos == end || pos >= len(w.source) {
		return end
	}
	lineEnd := w.lineEnd(pos)
	if lineEnd < pos {
		return end
	}
	if match(w.source[pos:lineEnd]) {
		return lineEnd
	}
	return end
}

func firstLine(n ast.Node) (gtext.Segment, bool) {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0), true
	}
	if n.Type() == ast.TypeInline {
		return gtext.Segment{}, false
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if seg, ok := firstLine(c); ok {
			return seg, true
		}
	}
	return gtext.Segment{}, false
}

func lastLine(n ast.Node) (gtext.Segment, bool) {
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		return lines.At(lines.Len() - 1), true
	}
	if n.Type() == ast.TypeInline {
		return gtext.Segment{}, false
	}
	for c := n.LastChild(); c != nil; c = c.PreviousSibling() {
		if seg, ok := lastLine(c); ok {
			return seg, true
		}
	}
	return gtext.Segment{}, false
}

// isBlank reports whether line holds only whitespace and blockquote markers.
func isBlank(line []byte) bool {
	for _, b := range line {
		switch b {
		case ' ', '\t', '\r', '>':
		default:
			return false
		}
	}
	return true
}

func isFence(line []byte) bool {
	trimmed := bytes.TrimLeft(line, " >")
	return bytes.HasPrefix(trimmed, []byte("```")) || bytes.HasPrefix(trimmed, []byte("~~~"))
}

func isSetextUnderline(line []byte) bool {
	trimmed := bytes.TrimSpace(bytes.TrimLeft(line, " >"))
	if len(trimmed) == 0 {
		return false
	}
	first := trimmed[0]
	if first != '=' && first != '-' {
		return false
	}
	for _, b := range trimmed {
		if b != first {
			return false
		}
	}
	return true
}
