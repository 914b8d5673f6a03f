package buffer

import (
	"strings"

	"github.com/riverfjs/tgformat/internal/types"
)

// UTF16Len returns the length of text measured in UTF-16 code units.
func UTF16Len(text string) int {
	count := 0
	for _, r := range text {
		if r > 0xFFFF {
			count += 2
		} else {
			count++
		}
	}
	return count
}

// Buffer accumulates plain text together with entities positioned in it.
// Entities written through WriteShifted are re-based onto the current
// UTF-16 offset, so callers always hand in offsets local to the fragment.
type Buffer struct {
	sb          strings.Builder
	utf16Offset int
	entities    []types.MessageEntity
}

// New creates an empty Buffer.
func New() *Buffer {
	return &Buffer{entities: make([]types.MessageEntity, 0)}
}

// Write appends text without entities.
func (b *Buffer) Write(text string) {
	b.sb.WriteString(text)
	b.utf16Offset += UTF16Len(text)
}

// WriteShifted appends text and copies entities, shifting each one by the
// UTF-16 offset the text starts at.
func (b *Buffer) WriteShifted(text string, entities []types.MessageEntity) {
	start := b.utf16Offset
	for _, e := range entities {
		b.entities = append(b.entities, e.Shift(start))
	}
	b.Write(text)
}

// TrailingNewlineCount counts trailing newline characters in the buffer.
func (b *Buffer) TrailingNewlineCount() int {
	s := b.sb.String()
	count := 0
	for i := len(s) - 1; i >= 0 && s[i] == '\n'; i-- {
		count++
	}
	return count
}

// String returns the accumulated text.
func (b *Buffer) String() string {
	return b.sb.String()
}

// Entities returns the accumulated entities. The slice is owned by the caller.
func (b *Buffer) Entities() []types.MessageEntity {
	out := make([]types.MessageEntity, len(b.entities))
	copy(out, b.entities)
	return out
}
