package catalog

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Descriptions are untrusted and may contain markup.
var (
	ugcPolicy    = bluemonday.UGCPolicy()
	strictPolicy = bluemonday.StrictPolicy()
)

// SanitizeDescription returns the description with only safe user-content
// markup left, for renderers that interpret HTML.
func SanitizeDescription(s string) string {
	return ugcPolicy.Sanitize(s)
}

// PlainDescription strips all markup and collapses whitespace, for terminal output.
func PlainDescription(s string) string {
	s = strings.NewReplacer("<br>", " ", "<br/>", " ", "<br />", " ").Replace(s)
	return strings.Join(strings.Fields(html.UnescapeString(strictPolicy.Sanitize(s))), " ")
}

// Preview shortens a plain description to limit runes with a trailing "...".
func Preview(s string, limit int) string {
	r := []rune(PlainDescription(s))
	if limit <= 0 || len(r) <= limit {
		return string(r)
	}
	return strings.TrimSpace(string(r[:limit])) + "..."
}
