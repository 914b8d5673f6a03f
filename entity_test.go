package tgformat

import (
	"strings"
	"testing"
	"unicode/utf16"
)

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{"empty", "", 0},
		{"ascii", "hello", 5},
		{"cjk", "你好", 2},
		// U+2611 + U+FE0F, both in the BMP
		{"bmp emoji", "☑️", 2},
		// U+1F4CC needs a surrogate pair
		{"supplementary emoji", "📌", 2},
		{"mixed", "A📌B", 4},
		// two regional indicators
		{"flag", "🇺🇸", 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UTF16Len(tt.text); got != tt.want {
				t.Errorf("UTF16Len(%q) = %d, want %d", tt.text, got, tt.want)
			}
		})
	}
}

func TestUTF16Len_MatchesEncode(t *testing.T) {
	for _, s := range []string{"", "hello", "你好世界", "📌✅🔗", "A📌B你好C", "test 🇺🇸 flag"} {
		t.Run(s, func(t *testing.T) {
			want := len(utf16.Encode([]rune(s)))
			if got := UTF16Len(s); got != want {
				t.Errorf("UTF16Len(%q) = %d, want %d", s, got, want)
			}
		})
	}
}

func TestMessageEntity_ToDict(t *testing.T) {
	e := MessageEntity{Type: EntityBold, Offset: 0, Length: 5}
	d := e.ToDict()
	if d["type"] != "bold" || d["offset"] != 0 || d["length"] != 5 {
		t.Errorf("ToDict() = %v, want type=bold offset=0 length=5", d)
	}
	if _, exists := d["url"]; exists {
		t.Error("ToDict() should not include empty url")
	}
}

func TestMessageEntity_ToDictAttributes(t *testing.T) {
	user := &User{ID: 1, FirstName: "Ann"}
	tests := []struct {
		entity MessageEntity
		key    string
		want   any
	}{
		{MessageEntity{Type: EntityTextLink, Length: 5, URL: "https://example.com"}, "url", "https://example.com"},
		{MessageEntity{Type: EntityPre, Length: 10, Language: "python"}, "language", "python"},
		{MessageEntity{Type: EntityCustomEmoji, Length: 2, CustomEmojiID: "5368324170671202286"}, "custom_emoji_id", "5368324170671202286"},
		{MessageEntity{Type: EntityTextMention, Length: 3, User: user}, "user", user},
	}
	for _, tt := range tests {
		d := tt.entity.ToDict()
		if d[tt.key] != tt.want {
			t.Errorf("%s: ToDict()[%q] = %v, want %v", tt.entity.Type, tt.key, d[tt.key], tt.want)
		}
		if len(d) != 4 {
			t.Errorf("%s: ToDict() has %d keys, want 4", tt.entity.Type, len(d))
		}
	}
}

func joinChunks(chunks []Formattable) string {
	var sb strings.Builder
	for _, c := range chunks {
		sb.WriteString(c.Text)
	}
	return sb.String()
}

func TestSplit_NoSplitNeeded(t *testing.T) {
	f := Bold("hello")
	result := f.Split(100)
	if len(result) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(result))
	}
	if result[0].Text != "hello" || len(result[0].Entities) != 1 {
		t.Errorf("Split() result = %v, want text=hello with 1 entity", result[0])
	}
}

func TestSplit_EmptyText(t *testing.T) {
	result := New("").Split(100)
	if len(result) != 1 {
		t.Fatalf("Split() returned %d chunks, want 1", len(result))
	}
	if result[0].Text != "" || len(result[0].Entities) != 0 {
		t.Errorf("Split() result = %v, want empty", result[0])
	}
}

func TestSplit_NonPositiveLimit(t *testing.T) {
	f := New("abc")
	if result := f.Split(0); len(result) != 1 || result[0].Text != "abc" {
		t.Errorf("Split(0) = %v, want the input unchanged", result)
	}
}

func TestSplit_AtNewline(t *testing.T) {
	text := "aaa\nbbb\nccc"
	result := New(text).Split(5)

	want := []string{"aaa\n", "bbb\n", "ccc"}
	if len(result) != len(want) {
		t.Fatalf("Split() returned %d chunks, want %d", len(result), len(want))
	}
	for i, w := range want {
		if result[i].Text != w {
			t.Errorf("chunk %d = %q, want %q", i, result[i].Text, w)
		}
	}
}

func TestSplit_ClipsEntities(t *testing.T) {
	// bold covers "old\nnor" and spans the cut after the newline
	f := New("bold\nnormal", MessageEntity{Type: EntityBold, Offset: 1, Length: 7})
	result := f.Split(6)

	if len(result) != 2 {
		t.Fatalf("Split() returned %d chunks, want 2", len(result))
	}
	first, second := result[0], result[1]
	if first.Text != "bold\n" || second.Text != "normal" {
		t.Fatalf("Split() texts = %q, %q", first.Text, second.Text)
	}
	if len(first.Entities) != 1 || first.Entities[0].Offset != 1 || first.Entities[0].Length != 4 {
		t.Errorf("first chunk entities = %v, want bold 1+4", first.Entities)
	}
	if len(second.Entities) != 1 || second.Entities[0].Offset != 0 || second.Entities[0].Length != 3 {
		t.Errorf("second chunk entities = %v, want bold 0+3", second.Entities)
	}
	for i, c := range result {
		if err := c.Validate(); err != nil {
			t.Errorf("chunk %d: %v", i, err)
		}
	}
}

func TestSplit_KeepsAttributes(t *testing.T) {
	user := User{ID: 7, FirstName: "Ann"}
	f := Concat(Mention("ab\ncd", user), Text("\n"), Link("ef", "https://x"))
	result := f.Split(3)

	for _, c := range result {
		for _, e := range c.Entities {
			switch e.Type {
			case EntityTextMention:
				if e.User == nil || e.User.ID != 7 {
					t.Errorf("mention lost its user: %v", e)
				}
			case EntityTextLink:
				if e.URL != "https://x" {
					t.Errorf("link lost its url: %v", e)
				}
			}
		}
	}
	if got := joinChunks(result); got != f.Text {
		t.Errorf("combined = %q, want %q", got, f.Text)
	}
}

func TestSplit_PreservesTotalText(t *testing.T) {
	text := "line1\nline2\nline3\nline4\nline5"
	result := New(text, MessageEntity{Type: EntityItalic, Offset: 0, Length: 5}).Split(12)
	if got := joinChunks(result); got != text {
		t.Errorf("combined = %q, want %q", got, text)
	}
}

func TestSplit_WithEmoji(t *testing.T) {
	text := "📌\n📌\n📌"
	result := New(text).Split(4)
	if got := joinChunks(result); got != text {
		t.Errorf("combined = %q, want %q", got, text)
	}
	for _, c := range result {
		if UTF16Len(c.Text) > 4 {
			t.Errorf("chunk %q exceeds max length 4", c.Text)
		}
	}
}

func TestSplit_HardSplitNoNewlines(t *testing.T) {
	text := "abcdefghij"
	result := New(text).Split(4)
	for _, c := range result {
		if UTF16Len(c.Text) > 4 {
			t.Errorf("chunk %q exceeds max length 4", c.Text)
		}
	}
	if got := joinChunks(result); got != text {
		t.Errorf("combined = %q, want %q", got, text)
	}
}

func TestSplit_SurrogatePairWiderThanLimit(t *testing.T) {
	result := New("📌📌").Split(1)
	if len(result) != 2 || result[0].Text != "📌" || result[1].Text != "📌" {
		t.Errorf("Split(1) = %v, want one emoji per chunk", result)
	}
}

func TestTrimSpace(t *testing.T) {
	f := Concat(Text("  \n"), Bold("hi"), Text(" "), Italic("there"), Text("\n\n"))
	got := f.TrimSpace()

	if got.Text != "hi there" {
		t.Fatalf("TrimSpace() text = %q, want %q", got.Text, "hi there")
	}
	want := []MessageEntity{
		{Type: EntityBold, Offset: 0, Length: 2},
		{Type: EntityItalic, Offset: 3, Length: 5},
	}
	if len(got.Entities) != len(want) {
		t.Fatalf("TrimSpace() entities = %v, want %v", got.Entities, want)
	}
	for i := range want {
		if got.Entities[i] != want[i] {
			t.Errorf("entity %d = %v, want %v", i, got.Entities[i], want[i])
		}
	}
}

func TestTrimSpace_DropsWhitespaceOnlyEntities(t *testing.T) {
	f := Concat(Underline("  "), Text("x"))
	got := f.TrimSpace()
	if got.Text != "x" || len(got.Entities) != 0 {
		t.Errorf("TrimSpace() = %v, want x without entities", got)
	}

	if got := Bold(" \n ").TrimSpace(); got.Text != "" || len(got.Entities) != 0 {
		t.Errorf("TrimSpace() of blank = %v, want empty", got)
	}
}
