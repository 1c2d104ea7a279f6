package services

import "strings"

// markdownV2Reserved is the character set the Telegram Bot API requires to
// be backslash-escaped in MarkdownV2 text.
const markdownV2Reserved = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdownV2 escapes user-supplied text for safe interpolation into
// a MarkdownV2 message. Every reserved character is prefixed with a single
// backslash; everything else passes through unchanged. Empty input yields
// an empty string.
//
// Escaping must be applied exactly once per value: escaping already
// escaped text doubles the backslashes. The composer and diff engine are
// the only call sites, and they escape each field at the point where it
// enters a message.
func EscapeMarkdownV2(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r < 128 && strings.ContainsRune(markdownV2Reserved, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
