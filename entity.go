package tgformat

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/riverfjs/tgformat/internal/buffer"
	"github.com/riverfjs/tgformat/internal/types"
)

// Exported type aliases.
type (
	MessageEntity = types.MessageEntity
	EntityType    = types.EntityType
	User          = types.User
)

const (
	EntityBold                 = types.EntityBold
	EntityItalic               = types.EntityItalic
	EntityUnderline            = types.EntityUnderline
	EntityStrikethrough        = types.EntityStrikethrough
	EntitySpoiler              = types.EntitySpoiler
	EntityBlockquote           = types.EntityBlockquote
	EntityExpandableBlockquote = types.EntityExpandableBlockquote
	EntityCode                 = types.EntityCode
	EntityPre                  = types.EntityPre
	EntityTextLink             = types.EntityTextLink
	EntityTextMention          = types.EntityTextMention
	EntityCustomEmoji          = types.EntityCustomEmoji
)

// MaxMessageLength is the Bot API limit for a text message in UTF-16 code units.
const MaxMessageLength = 4096

// UTF16Len returns the length of text measured in UTF-16 code units.
//
// Telegram measures entity offsets and lengths in UTF-16 code units,
// not Go string bytes or runes. Characters outside the BMP (codepoint > 0xFFFF)
// take 2 UTF-16 code units (a surrogate pair); all others take 1.
func UTF16Len(text string) int {
	return buffer.UTF16Len(text)
}

// buildUTF16OffsetTable returns, for every byte position of text, the UTF-16
// offset it maps to and whether a rune starts there. Index len(text) holds the
// total length.
func buildUTF16OffsetTable(text string) (offsets []int, starts []bool) {
	offsets = make([]int, len(text)+1)
	starts = make([]bool, len(text)+1)
	cum := 0
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		starts[i] = true
		for k := 0; k < size; k++ {
			offsets[i+k] = cum
		}
		if r > 0xFFFF {
			cum += 2
		} else {
			cum++
		}
		i += size
	}
	offsets[len(text)] = cum
	starts[len(text)] = true
	return offsets, starts
}

// clipEntities keeps the parts of entities overlapping [start, end) and
// re-bases them onto start.
func clipEntities(entities []MessageEntity, start, end int) []MessageEntity {
	out := make([]MessageEntity, 0)
	for _, ent := range entities {
		entStart := ent.Offset
		entEnd := ent.Offset + ent.Length
		if entEnd <= start || entStart >= end {
			continue
		}

		clippedStart := max(entStart, start)
		clippedEnd := min(entEnd, end)
		if clippedEnd-clippedStart <= 0 {
			continue
		}

		ent.Offset = clippedStart - start
		ent.Length = clippedEnd - clippedStart
		out = append(out, ent)
	}
	return out
}

// Split cuts f into chunks of at most maxUTF16Len UTF-16 code units.
//
// It prefers to cut right after a newline. Entities that span a cut are
// clipped into both chunks. A non-positive limit returns f unchanged.
func (f Formattable) Split(maxUTF16Len int) []Formattable {
	text := f.Text
	total := UTF16Len(text)
	if maxUTF16Len <= 0 || total <= maxUTF16Len {
		return []Formattable{f.Clone()}
	}

	offsets, starts := buildUTF16OffsetTable(text)

	var splitPoints []int
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			splitPoints = append(splitPoints, i+1)
		}
	}

	var ranges [][2]int
	byteStart := 0
	for byteStart < len(text) {
		budget := offsets[byteStart] + maxUTF16Len
		if offsets[len(text)] <= budget {
			ranges = append(ranges, [2]int{byteStart, len(text)})
			break
		}

		best := -1
		for _, sp := range splitPoints {
			if sp <= byteStart {
				continue
			}
			if offsets[sp] > budget {
				break
			}
			best = sp
		}

		if best == -1 {
			// No newline fits, hard split on the last rune boundary in budget.
			best = byteStart
			for i := byteStart + 1; i <= len(text); i++ {
				if !starts[i] {
					continue
				}
				if offsets[i] > budget {
					break
				}
				best = i
			}
			if best == byteStart {
				// A single surrogate pair wider than the budget.
				best = byteStart + 1
				for !starts[best] {
					best++
				}
			}
		}

		ranges = append(ranges, [2]int{byteStart, best})
		byteStart = best
	}

	result := make([]Formattable, 0, len(ranges))
	for _, r := range ranges {
		result = append(result, Formattable{
			Text:     text[r[0]:r[1]],
			Entities: clipEntities(f.Entities, offsets[r[0]], offsets[r[1]]),
		})
	}
	return result
}

// TrimSpace removes leading and trailing whitespace while adjusting entities.
// Entities left without any covered text are dropped.
func (f Formattable) TrimSpace() Formattable {
	trimmed := strings.TrimSpace(f.Text)
	if trimmed == f.Text {
		return f.Clone()
	}
	if trimmed == "" {
		return New("")
	}

	lead := len(f.Text) - len(strings.TrimLeftFunc(f.Text, unicode.IsSpace))
	start := UTF16Len(f.Text[:lead])
	return Formattable{
		Text:     trimmed,
		Entities: clipEntities(f.Entities, start, start+UTF16Len(trimmed)),
	}
}
