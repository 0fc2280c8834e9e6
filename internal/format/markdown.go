package format

import "strings"

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// EscapeMarkdown escapes user text for Telegram's legacy Markdown mode
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
