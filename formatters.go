package tgformat

// Attr names an extra entity attribute filled from a formatter's positional
// arguments.
type Attr string

const (
	AttrLanguage      Attr = "language"
	AttrURL           Attr = "url"
	AttrCustomEmojiID Attr = "custom_emoji_id"
	AttrUser          Attr = "user"
)

// Formatter wraps a value in a single entity of one kind.
type Formatter struct {
	kind  EntityType
	attrs []Attr
}

// NewFormatter builds a formatter for kind. attrs name the extra values Apply
// accepts, in order.
func NewFormatter(kind EntityType, attrs ...Attr) Formatter {
	return Formatter{kind: kind, attrs: append([]Attr(nil), attrs...)}
}

// Kind returns the entity type the formatter produces.
func (f Formatter) Kind() EntityType {
	return f.kind
}

// Apply returns value with a new entity spanning its whole text placed in
// front of the entities value already carries. extra is matched to the
// formatter's attributes by position; strings fill language, url and
// custom_emoji_id, a User or *User fills user. Missing or mistyped values
// leave the attribute empty.
func (f Formatter) Apply(value Formattable, extra ...any) Formattable {
	entity := MessageEntity{
		Type:   f.kind,
		Offset: 0,
		Length: UTF16Len(value.Text),
	}
	for i, attr := range f.attrs {
		if i >= len(extra) {
			break
		}
		setAttr(&entity, attr, extra[i])
	}

	entities := make([]MessageEntity, 0, len(value.Entities)+1)
	entities = append(entities, entity)
	entities = append(entities, value.Entities...)
	return Formattable{Text: value.Text, Entities: entities}
}

// Format applies the formatter to the result of Format(parts...).
func (f Formatter) Format(parts ...Part) Formattable {
	return f.Apply(Format(parts...))
}

func setAttr(e *MessageEntity, attr Attr, v any) {
	switch attr {
	case AttrUser:
		switch u := v.(type) {
		case User:
			e.User = &u
		case *User:
			if u != nil {
				cp := *u
				e.User = &cp
			}
		}
		return
	}

	s, ok := v.(string)
	if !ok {
		return
	}
	switch attr {
	case AttrLanguage:
		e.Language = s
	case AttrURL:
		e.URL = s
	case AttrCustomEmojiID:
		e.CustomEmojiID = s
	}
}

var (
	boldFormatter                 = NewFormatter(EntityBold)
	italicFormatter               = NewFormatter(EntityItalic)
	underlineFormatter            = NewFormatter(EntityUnderline)
	strikethroughFormatter        = NewFormatter(EntityStrikethrough)
	spoilerFormatter              = NewFormatter(EntitySpoiler)
	blockquoteFormatter           = NewFormatter(EntityBlockquote)
	expandableBlockquoteFormatter = NewFormatter(EntityExpandableBlockquote)
	codeFormatter                 = NewFormatter(EntityCode)
	preFormatter                  = NewFormatter(EntityPre, AttrLanguage)
	linkFormatter                 = NewFormatter(EntityTextLink, AttrURL)
	mentionFormatter              = NewFormatter(EntityTextMention, AttrUser)
	customEmojiFormatter          = NewFormatter(EntityCustomEmoji, AttrCustomEmojiID)

	formatters = map[EntityType]Formatter{
		EntityBold:                 boldFormatter,
		EntityItalic:               italicFormatter,
		EntityUnderline:            underlineFormatter,
		EntityStrikethrough:        strikethroughFormatter,
		EntitySpoiler:              spoilerFormatter,
		EntityBlockquote:           blockquoteFormatter,
		EntityExpandableBlockquote: expandableBlockquoteFormatter,
		EntityCode:                 codeFormatter,
		EntityPre:                  preFormatter,
		EntityTextLink:             linkFormatter,
		EntityTextMention:          mentionFormatter,
		EntityCustomEmoji:          customEmojiFormatter,
	}
)

// FormatterFor returns the built-in formatter for kind.
func FormatterFor(kind EntityType) (Formatter, bool) {
	f, ok := formatters[kind]
	return f, ok
}

// Bold formats s as bold. Cannot be combined with code and pre.
func Bold[S Stringable](s S) Formattable {
	return boldFormatter.Apply(From(s))
}

// Italic formats s as italic. Cannot be combined with code and pre.
func Italic[S Stringable](s S) Formattable {
	return italicFormatter.Apply(From(s))
}

// Underline formats s as underlined text.
func Underline[S Stringable](s S) Formattable {
	return underlineFormatter.Apply(From(s))
}

// Strikethrough formats s as strikethrough text.
func Strikethrough[S Stringable](s S) Formattable {
	return strikethroughFormatter.Apply(From(s))
}

// Spoiler hides s behind a spoiler.
func Spoiler[S Stringable](s S) Formattable {
	return spoilerFormatter.Apply(From(s))
}

// Blockquote formats s as a blockquote. Blockquotes cannot be nested.
func Blockquote[S Stringable](s S) Formattable {
	return blockquoteFormatter.Apply(From(s))
}

// ExpandableBlockquote formats s as a blockquote collapsed by default.
func ExpandableBlockquote[S Stringable](s S) Formattable {
	return expandableBlockquoteFormatter.Apply(From(s))
}

// Code formats s as inline code. Cannot be combined with any other style.
func Code[S Stringable](s S) Formattable {
	return codeFormatter.Apply(From(s))
}

// Pre formats s as a preformatted block, optionally tagged with a language.
//
//	Pre(`fmt.Println("hi")`, "go")
func Pre[S Stringable](s S, language ...string) Formattable {
	if len(language) == 0 {
		return preFormatter.Apply(From(s))
	}
	return preFormatter.Apply(From(s), language[0])
}

// Link turns s into a text link pointing at url.
func Link[S Stringable](s S, url string) Formattable {
	return linkFormatter.Apply(From(s), url)
}

// Mention links s to a user that may have no username.
func Mention[S Stringable](s S, user User) Formattable {
	return mentionFormatter.Apply(From(s), user)
}

// CustomEmoji renders s as the custom emoji with the given id. s is the
// fallback emoji shown by clients that cannot display it.
func CustomEmoji[S Stringable](s S, id string) Formattable {
	return customEmojiFormatter.Apply(From(s), id)
}
