package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertLegacyMarkdown fails when Telegram's legacy Markdown parser would reject text:
// an entity that is never closed, an escape inside an entity, or a bare link bracket
func AssertLegacyMarkdown(t *testing.T, text string) {
	t.Helper()

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		switch r := runes[i]; r {
		case '\\':
			i++
		case '*', '_', '`':
			end := -1
			for j := i + 1; j < len(runes); j++ {
				if runes[j] == r {
					end = j
					break
				}
			}
			if end < 0 {
				assert.Failf(t, "unclosed entity", "%q opened at rune %d in %q", r, i, text)
				return
			}
			assert.NotContains(t, string(runes[i+1:end]), "\\", "escape inside %q entity in %q", r, text)
			i = end
		case '[':
			assert.Failf(t, "bare link bracket", "unescaped '[' at rune %d in %q", i, text)
		}
	}
}
