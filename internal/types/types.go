package types

// EntityType is the Bot API name of a message entity style.
type EntityType string

const (
	EntityBold                 EntityType = "bold"
	EntityItalic               EntityType = "italic"
	EntityUnderline            EntityType = "underline"
	EntityStrikethrough        EntityType = "strikethrough"
	EntitySpoiler              EntityType = "spoiler"
	EntityBlockquote           EntityType = "blockquote"
	EntityExpandableBlockquote EntityType = "expandable_blockquote"
	EntityCode                 EntityType = "code"
	EntityPre                  EntityType = "pre"
	EntityTextLink             EntityType = "text_link"
	EntityTextMention          EntityType = "text_mention"
	EntityCustomEmoji          EntityType = "custom_emoji"
)

// EntityTypes lists every supported style in declaration order.
var EntityTypes = []EntityType{
	EntityBold,
	EntityItalic,
	EntityUnderline,
	EntityStrikethrough,
	EntitySpoiler,
	EntityBlockquote,
	EntityExpandableBlockquote,
	EntityCode,
	EntityPre,
	EntityTextLink,
	EntityTextMention,
	EntityCustomEmoji,
}

// Valid reports whether t is one of the supported styles.
func (t EntityType) Valid() bool {
	for _, known := range EntityTypes {
		if t == known {
			return true
		}
	}
	return false
}

// User is the subset of a Telegram user carried by text_mention entities.
type User struct {
	ID        int64  `json:"id"`
	IsBot     bool   `json:"is_bot"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name,omitempty"`
	Username  string `json:"username,omitempty"`
}

// MessageEntity is one styled span. Offset and Length count UTF-16 code units.
type MessageEntity struct {
	Type          EntityType `json:"type"`
	Offset        int        `json:"offset"`
	Length        int        `json:"length"`
	URL           string     `json:"url,omitempty"`
	Language      string     `json:"language,omitempty"`
	CustomEmojiID string     `json:"custom_emoji_id,omitempty"`
	User          *User      `json:"user,omitempty"`
}

// Shift returns a copy of e moved delta code units to the right.
func (e MessageEntity) Shift(delta int) MessageEntity {
	e.Offset += delta
	return e
}

// ToDict converts the entity to the map form used by raw Bot API payloads.
func (e MessageEntity) ToDict() map[string]interface{} {
	result := map[string]interface{}{
		"type":   string(e.Type),
		"offset": e.Offset,
		"length": e.Length,
	}
	if e.URL != "" {
		result["url"] = e.URL
	}
	if e.Language != "" {
		result["language"] = e.Language
	}
	if e.CustomEmojiID != "" {
		result["custom_emoji_id"] = e.CustomEmojiID
	}
	if e.User != nil {
		result["user"] = e.User
	}
	return result
}
