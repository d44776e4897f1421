package service

import (
	"regexp"
	"strings"

	"github.com/vanshika/filmgraph/internal/decode"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	nonSlugRegex    = regexp.MustCompile(`[^\p{L}\p{N}]+`)
)

// sanitizeString collapses whitespace and trims the result.
func sanitizeString(value string) string {
	value = whitespaceRegex.ReplaceAllString(value, " ")
	return strings.TrimSpace(value)
}

// cleanText sanitizes value and strips the surrounding quotes the decoder
// would strip on read, until neither changes it. What is stored is then
// exactly what reads back.
func cleanText(value string) string {
	for {
		next := sanitizeString(decode.StripQuotes(sanitizeString(value)))
		if next == value {
			return next
		}
		value = next
	}
}

// slugify derives a permalink from a title: lowercase letter and digit runs joined by dashes.
func slugify(title string) string {
	slug := nonSlugRegex.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// normalizeNames sanitizes every name, dropping empty entries, duplicates and
// the list separator.
func normalizeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	out := make([]string, 0, len(names))
	for _, name := range names {
		name = cleanText(strings.ReplaceAll(name, listSeparator, " "))
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
