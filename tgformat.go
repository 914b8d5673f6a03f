// Package tgformat builds Telegram formatted text as a plain string plus a
// list of MessageEntity spans instead of inline markup.
//
// Offsets and lengths are measured in UTF-16 code units of the final text,
// which is what the Bot API expects.
//
// Main API:
//   - Bold, Italic, Link, Pre, ...: wrap a value in one styling entity
//   - Format, FormatSaveIndents: merge literal text and formatted values
//   - Join: merge a slice of projected values with a separator
//
// Example:
//
//	msg := tgformat.Format(
//		tgformat.Literal("Hello, "),
//		tgformat.Bold(tgformat.Italic("world")),
//		tgformat.Literal("!"),
//	)
//	// msg.Text == "Hello, world!"
//	// msg.Entities == [{bold 7 5} {italic 7 5}]
//
// For markdown input see the markdown subpackage; for turning a value into
// raw request fields see the params subpackage.
package tgformat
