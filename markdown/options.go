package markdown

// Options holds options for markdown lowering.
type Options struct {
	// Lexer tokenizes the source. Defaults to a GoldmarkLexer.
	Lexer Lexer
	// Bullet is the marker written before unordered list items.
	Bullet string
	// OrderedSuffix follows the number of ordered list items.
	OrderedSuffix string
	// CustomEmojiLinks turns links to tg://emoji?id=<id> into custom_emoji
	// entities instead of text links.
	CustomEmojiLinks bool
}

// Option is a function that configures Options.
type Option func(*Options)

// WithLexer sets the tokenizer.
func WithLexer(lexer Lexer) Option {
	return func(opts *Options) {
		opts.Lexer = lexer
	}
}

// WithBullet sets the unordered list marker.
func WithBullet(bullet string) Option {
	return func(opts *Options) {
		opts.Bullet = bullet
	}
}

// WithOrderedSuffix sets the text written right after an ordered list number,
// e.g. "." to render "1. first".
func WithOrderedSuffix(suffix string) Option {
	return func(opts *Options) {
		opts.OrderedSuffix = suffix
	}
}

// WithCustomEmojiLinks enables custom emoji links.
func WithCustomEmojiLinks(enable bool) Option {
	return func(opts *Options) {
		opts.CustomEmojiLinks = enable
	}
}

// DefaultOptions returns the default lowering options.
func DefaultOptions() *Options {
	return &Options{
		Lexer:  NewGoldmarkLexer(),
		Bullet: "-",
	}
}

func applyOptions(opts ...Option) *Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	if options.Lexer == nil {
		options.Lexer = NewGoldmarkLexer()
	}
	return options
}
