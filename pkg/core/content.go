package core

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// markupPattern removes markup the same way the editor bridge does:
	// every tag becomes a single space so that adjacent text nodes keep
	// their word boundaries. Tag extraction is defined on this exact
	// plain-text projection.
	markupPattern = regexp.MustCompile(`<[^>]+>`)

	// tagPattern matches "#" followed by word characters. The extra
	// range covers the Hebrew block, which \w does not.
	tagPattern = regexp.MustCompile(`#[0-9A-Za-z_\x{0590}-\x{05FF}]+`)

	spacePattern = regexp.MustCompile(`\s+`)

	// strictPolicy drops every element and attribute. Used for the
	// display-oriented plain-text projection.
	strictPolicy = bluemonday.StrictPolicy()
)

// StripMarkup replaces all markup in a rich content blob with spaces,
// yielding the plain-text projection the tag contract operates on.
func StripMarkup(content string) string {
	return markupPattern.ReplaceAllString(content, " ")
}

// PlainText sanitizes a rich content blob down to readable text:
// markup removed, entities decoded, whitespace collapsed. Used for
// display truncation and for the empty-note check.
func PlainText(content string) string {
	text := strictPolicy.Sanitize(content)
	text = html.UnescapeString(text)
	return strings.TrimSpace(spacePattern.ReplaceAllString(text, " "))
}

// ExtractTags scans a rich content blob for hashtags and returns the
// matches verbatim, leading "#" included. Duplicates are preserved as
// found; deduplication happens only at the AllTags aggregation step.
func ExtractTags(content string) []string {
	matches := tagPattern.FindAllString(StripMarkup(content), -1)
	if matches == nil {
		return []string{}
	}
	return matches
}
