package params

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riverfjs/tgformat"
)

func TestDecompose_SendMessage(t *testing.T) {
	in := map[string]any{
		"chat_id": 42,
		"text":    tgformat.Bold("hi"),
	}

	out := Decompose("sendMessage", in)

	assert.Equal(t, 42, out["chat_id"])
	assert.Equal(t, "hi", out["text"])
	assert.Equal(t, []tgformat.MessageEntity{
		{Type: tgformat.EntityBold, Offset: 0, Length: 2},
	}, out["entities"])

	// input untouched
	assert.IsType(t, tgformat.Formattable{}, in["text"])
	assert.NotContains(t, in, "entities")
}

func TestDecompose_Pointer(t *testing.T) {
	f := tgformat.Italic("x")
	out := Decompose("editMessageText", map[string]any{"text": &f})

	assert.Equal(t, "x", out["text"])
	assert.Len(t, out["entities"], 1)
}

func TestDecompose_EntityMaps(t *testing.T) {
	out := Decompose("sendMessage", map[string]any{
		"text": tgformat.Link("site", "https://example.com"),
	}, WithEntityMaps())

	assert.Equal(t, "site", out["text"])
	assert.Equal(t, []map[string]any{
		{"type": "text_link", "offset": 0, "length": 4, "url": "https://example.com"},
	}, out["entities"])
}

func TestDecompose_PlainStringUntouched(t *testing.T) {
	out := Decompose("sendMessage", map[string]any{"text": "plain"})

	assert.Equal(t, "plain", out["text"])
	assert.NotContains(t, out, "entities")
}

func TestDecompose_Caption(t *testing.T) {
	out := Decompose("sendPhoto", map[string]any{
		"photo":   "file-id",
		"caption": tgformat.Format(tgformat.Literal("a "), tgformat.Code("b")),
	})

	assert.Equal(t, "a b", out["caption"])
	assert.Equal(t, []tgformat.MessageEntity{
		{Type: tgformat.EntityCode, Offset: 2, Length: 1},
	}, out["caption_entities"])
}

func TestDecompose_ReplyQuote(t *testing.T) {
	reply := map[string]any{
		"message_id": 7,
		"quote":      tgformat.Underline("quoted"),
	}
	in := map[string]any{
		"text":             "hello",
		"reply_parameters": reply,
	}

	out := Decompose("sendMessage", in)

	got := out["reply_parameters"].(map[string]any)
	assert.Equal(t, 7, got["message_id"])
	assert.Equal(t, "quoted", got["quote"])
	assert.Len(t, got["quote_entities"], 1)

	// nested map copied, not modified
	assert.IsType(t, tgformat.Formattable{}, reply["quote"])
	assert.NotContains(t, reply, "quote_entities")
}

func TestDecompose_MediaGroup(t *testing.T) {
	media := []any{
		map[string]any{"type": "photo", "caption": tgformat.Bold("one")},
		map[string]any{"type": "photo", "caption": "two"},
		"not a map",
	}
	out := Decompose("sendMediaGroup", map[string]any{"media": media})

	got := out["media"].([]any)
	require.Len(t, got, 3)

	first := got[0].(map[string]any)
	assert.Equal(t, "one", first["caption"])
	assert.Len(t, first["caption_entities"], 1)

	second := got[1].(map[string]any)
	assert.Equal(t, "two", second["caption"])
	assert.NotContains(t, second, "caption_entities")

	assert.Equal(t, "not a map", got[2])
	assert.IsType(t, tgformat.Formattable{}, media[0].(map[string]any)["caption"])
}

func TestDecompose_PollOptions(t *testing.T) {
	out := Decompose("sendPoll", map[string]any{
		"question": tgformat.Bold("Q?"),
		"options": []map[string]any{
			{"text": tgformat.Italic("yes")},
			{"text": "no"},
		},
	})

	assert.Equal(t, "Q?", out["question"])
	assert.Len(t, out["question_entities"], 1)

	options := out["options"].([]map[string]any)
	assert.Equal(t, "yes", options[0]["text"])
	assert.Len(t, options[0]["text_entities"], 1)
	assert.Equal(t, "no", options[1]["text"])
}

func TestDecompose_InlineQueryResults(t *testing.T) {
	out := Decompose("answerInlineQuery", map[string]any{
		"inline_query_id": "1",
		"results": []any{
			map[string]any{
				"type": "article",
				"input_message_content": map[string]any{
					"message_text": tgformat.Spoiler("secret"),
				},
			},
		},
	})

	result := out["results"].([]any)[0].(map[string]any)
	content := result["input_message_content"].(map[string]any)
	assert.Equal(t, "secret", content["message_text"])
	assert.Equal(t, []tgformat.MessageEntity{
		{Type: tgformat.EntitySpoiler, Offset: 0, Length: 6},
	}, content["entities"])
}

func TestDecompose_EditMessageMedia(t *testing.T) {
	out := Decompose("editMessageMedia", map[string]any{
		"media": map[string]any{"type": "photo", "caption": tgformat.Bold("c")},
	})

	media := out["media"].(map[string]any)
	assert.Equal(t, "c", media["caption"])
	assert.Len(t, media["caption_entities"], 1)
}

func TestDecompose_SendGift(t *testing.T) {
	out := Decompose("sendGift", map[string]any{"text": tgformat.Bold("gift")})

	assert.Equal(t, "gift", out["text"])
	assert.Len(t, out["text_entities"], 1)
	assert.NotContains(t, out, "entities")
}

func TestDecompose_UnknownMethod(t *testing.T) {
	in := map[string]any{"text": tgformat.Bold("x")}
	out := Decompose("getMe", in)

	assert.IsType(t, tgformat.Formattable{}, out["text"])
}

func TestDecompose_Nil(t *testing.T) {
	assert.Nil(t, Decompose("sendMessage", nil))
}

func TestMethods(t *testing.T) {
	methods := Methods()

	assert.Contains(t, methods, "sendMessage")
	assert.Contains(t, methods, "answerWebAppQuery")
	assert.IsIncreasing(t, methods)
}

func TestRules(t *testing.T) {
	rules, err := Rules("sendPoll")
	require.NoError(t, err)
	assert.Len(t, rules, 4)
	assert.Equal(t, Rule{At: "options[]", Text: "text", Entities: "text_entities"}, rules[3])

	quote, err := Rules("sendDice")
	require.NoError(t, err)
	assert.Equal(t, []Rule{{At: "reply_parameters", Text: "quote", Entities: "quote_entities"}}, quote)

	_, err = Rules("getMe")
	assert.True(t, errors.Is(err, ErrUnknownMethod))
}

func TestParseTable_Invalid(t *testing.T) {
	_, err := parseTable([]byte("methods: {sendMessage: [{text: text}]}"))
	assert.Error(t, err)

	_, err = parseTable([]byte("{{{{invalid yaml"))
	assert.Error(t, err)
}

func TestRulePath(t *testing.T) {
	r := Rule{At: "results[].input_message_content"}
	assert.Equal(t, []segment{
		{name: "results", array: true},
		{name: "input_message_content"},
	}, r.path())
	assert.Nil(t, Rule{}.path())
}
