// Package params turns Formattable values inside raw Bot API request
// parameters into the plain text and entities fields the API expects.
//
//	p := params.Decompose("sendMessage", map[string]any{
//		"chat_id": 42,
//		"text":    tgformat.Bold("hi"),
//	})
//	// p["text"] == "hi", p["entities"] == []MessageEntity{{bold 0 2}}
//
// Which fields are inspected is declared per method in an embedded table;
// see Methods and Rules.
package params

import (
	"github.com/riverfjs/tgformat"
)

// Option configures Decompose.
type Option func(*options)

type options struct {
	entityMaps bool
}

// WithEntityMaps stores entities as []map[string]any in the form built by
// MessageEntity.ToDict, for callers that send fully untyped payloads.
func WithEntityMaps() Option {
	return func(o *options) {
		o.entityMaps = true
	}
}

// Decompose returns a copy of p where every formatted field of method that
// holds a tgformat.Formattable (or a pointer to one) is replaced by its text,
// and the matching entities field is set. Fields holding anything else are
// left alone, as are methods without formatted fields.
//
// p is never modified. Maps and slices on the way to a rewritten field are
// copied; everything else is shared with p.
func Decompose(method string, p map[string]any, opts ...Option) map[string]any {
	if p == nil {
		return nil
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	rules, ok := mustTable()[method]
	if !ok {
		return p
	}

	out := copyMap(p)
	for _, r := range rules {
		apply(out, r.path(), r, o)
	}
	return out
}

// apply rewrites r inside m, which the caller already owns.
func apply(m map[string]any, path []segment, r Rule, o *options) {
	if len(path) == 0 {
		decompose(m, r, o)
		return
	}

	seg := path[0]
	v, ok := m[seg.name]
	if !ok || v == nil {
		return
	}

	if !seg.array {
		child, ok := v.(map[string]any)
		if !ok {
			return
		}
		child = copyMap(child)
		apply(child, path[1:], r, o)
		m[seg.name] = child
		return
	}

	switch items := v.(type) {
	case []any:
		copied := make([]any, len(items))
		for i, item := range items {
			child, ok := item.(map[string]any)
			if !ok {
				copied[i] = item
				continue
			}
			child = copyMap(child)
			apply(child, path[1:], r, o)
			copied[i] = child
		}
		m[seg.name] = copied
	case []map[string]any:
		copied := make([]map[string]any, len(items))
		for i, child := range items {
			if child == nil {
				continue
			}
			child = copyMap(child)
			apply(child, path[1:], r, o)
			copied[i] = child
		}
		m[seg.name] = copied
	}
}

func decompose(m map[string]any, r Rule, o *options) {
	var f tgformat.Formattable
	switch v := m[r.Text].(type) {
	case tgformat.Formattable:
		f = v
	case *tgformat.Formattable:
		if v == nil {
			return
		}
		f = *v
	default:
		return
	}
	f = f.Clone()
	m[r.Text] = f.Text
	if !o.entityMaps {
		m[r.Entities] = f.Entities
		return
	}
	entities := make([]map[string]any, 0, len(f.Entities))
	for _, e := range f.Entities {
		entities = append(entities, e.ToDict())
	}
	m[r.Entities] = entities
}

func copyMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}
