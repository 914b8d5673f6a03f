package markdown

// Kind names a token type. Names follow the usual markdown lexer vocabulary.
type Kind string

const (
	KindText       Kind = "text"
	KindParagraph  Kind = "paragraph"
	KindHeading    Kind = "heading"
	KindStrong     Kind = "strong"
	KindEm         Kind = "em"
	KindDel        Kind = "del"
	KindLink       Kind = "link"
	KindImage      Kind = "image"
	KindBlockquote Kind = "blockquote"
	KindList       Kind = "list"
	KindCodeSpan   Kind = "codespan"
	KindCode       Kind = "code"
	KindSpace      Kind = "space"
	KindHr         Kind = "hr"
	KindHTML       Kind = "html"
)

// Token is one node of a lexed markdown document.
//
// Only the fields meaningful for Kind are set. A text token with a nil Tokens
// slice is a leaf and renders Text verbatim; a non-nil Tokens slice means the
// text carries inline children.
type Token struct {
	Kind Kind
	// Raw is the source the token was lexed from.
	Raw string
	// Text is the literal content for leaves, code and code spans.
	Text string
	// Tokens are the inline or block children.
	Tokens []Token

	Href  string // link, image
	Lang  string // code
	Depth int    // heading

	// list
	Ordered  bool
	Start    int
	HasStart bool
	Items    []ListItem
}

// ListItem is one entry of a list token.
type ListItem struct {
	Raw    string
	Tokens []Token
}

// Lexer turns markdown source into a token tree. Any implementation producing
// the shapes documented on Token can replace the default goldmark one.
type Lexer interface {
	Lex(markdown string) ([]Token, error)
}

// LexerFunc adapts a plain function to Lexer.
type LexerFunc func(markdown string) ([]Token, error)

// Lex calls f.
func (f LexerFunc) Lex(markdown string) ([]Token, error) {
	return f(markdown)
}
