package tgformat

import (
	"errors"
	"fmt"
)

// ErrEntityOutOfRange is returned by Validate for an entity that does not fit
// inside the text.
var ErrEntityOutOfRange = errors.New("entity out of range")

// Formattable is text paired with the entities that style it.
//
// A Formattable is a value: combinators never modify their arguments and
// always return a new one. Entities are kept in construction order, so an
// outer style precedes the styles it wraps and several entities may cover the
// same span.
type Formattable struct {
	Text     string          `json:"text"`
	Entities []MessageEntity `json:"entities"`
}

// Stringable is anything a formatter accepts as input.
type Stringable interface {
	string | Text | Formattable
}

// New creates a Formattable from text and already positioned entities.
func New(text string, entities ...MessageEntity) Formattable {
	return Formattable{Text: text, Entities: cloneEntities(entities)}
}

// From coerces s into a Formattable. A Formattable is returned as a copy,
// plain text gets an empty entity list.
func From[S Stringable](s S) Formattable {
	switch v := any(s).(type) {
	case Formattable:
		return v.Clone()
	case Text:
		return New(string(v))
	case string:
		return New(v)
	}
	panic("unreachable")
}

// String returns the plain text. Entities never show up in string form.
func (f Formattable) String() string {
	return f.Text
}

// Len returns the length of the text in UTF-16 code units.
func (f Formattable) Len() int {
	return UTF16Len(f.Text)
}

// Clone returns a copy whose entity slice does not alias f's.
func (f Formattable) Clone() Formattable {
	return Formattable{Text: f.Text, Entities: cloneEntities(f.Entities)}
}

// Validate checks that every entity lies inside the text.
func (f Formattable) Validate() error {
	total := f.Len()
	for i, e := range f.Entities {
		if e.Offset < 0 || e.Length < 0 || e.Offset+e.Length > total {
			return fmt.Errorf("entity %d (%s at %d+%d, text length %d): %w",
				i, e.Type, e.Offset, e.Length, total, ErrEntityOutOfRange)
		}
	}
	return nil
}

func cloneEntities(entities []MessageEntity) []MessageEntity {
	out := make([]MessageEntity, len(entities))
	copy(out, entities)
	return out
}

// Part is one fragment of a template passed to Format, FormatSaveIndents or
// returned from a Join projector. The set of parts is closed:
//
//   - Literal: template text, indentation-normalized by Format
//   - Text: a substituted plain string, always kept verbatim
//   - Formattable: a substituted value whose entities are re-based
//   - Seq: a nested sequence, flattened depth-first
type Part interface {
	isPart()
}

// Literal is template source text.
type Literal string

// Text is a substituted plain string.
type Text string

// Seq is a nested sequence of parts.
type Seq []Part

func (Literal) isPart()     {}
func (Text) isPart()        {}
func (Seq) isPart()         {}
func (Formattable) isPart() {}

// SeqOf builds a Seq out of any Stringable values.
func SeqOf[S Stringable](values ...S) Seq {
	out := make(Seq, 0, len(values))
	for _, v := range values {
		out = append(out, From(v))
	}
	return out
}
