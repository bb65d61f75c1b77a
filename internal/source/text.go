package source

import (
	"html"
	"regexp"
	"strings"
)

// maxDescriptionLen bounds description text so downstream prompts stay a
// stable size regardless of source.
const maxDescriptionLen = 3000

var htmlTagRegex = regexp.MustCompile(`<[^>]*>`)

// extractText converts an HTML or HTML-encoded string to plain text.
// It first unescapes HTML entities, strips all tags, then collapses
// whitespace.
func extractText(content string) string {
	unescaped := html.UnescapeString(content)
	plain := htmlTagRegex.ReplaceAllString(unescaped, "")
	return strings.Join(strings.Fields(plain), " ")
}

// normalizeDescription strips markup and truncates to maxDescriptionLen.
func normalizeDescription(content string) string {
	text := extractText(content)
	if len(text) > maxDescriptionLen {
		text = text[:maxDescriptionLen]
	}
	return text
}

// looksRemote reports whether a location string indicates a remote role.
func looksRemote(location string) bool {
	return strings.Contains(strings.ToLower(location), "remote")
}
