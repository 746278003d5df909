package services

import (
	"regexp"
	"strings"
	"unicode"
)

var nameSeparators = regexp.MustCompile(`[\s\-]+`)

// normalizeColumnName canonicalizes a column name for pattern matching:
// trimmed, camelCase boundaries converted to underscores, lowercased, and
// spaces/hyphens collapsed to single underscores. "AccountNumber",
// "account-number", and " Account Number " all normalize to "account_number".
func normalizeColumnName(name string) string {
	name = strings.TrimSpace(name)

	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if unicode.IsUpper(r) && i > 0 {
			prev := rune(name[i-1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteByte('_')
			}
		}
		b.WriteRune(unicode.ToLower(r))
	}

	normalized := nameSeparators.ReplaceAllString(b.String(), "_")
	return strings.Trim(normalized, "_")
}

// extractKeywords splits a normalized column name into its fragments, e.g.
// "account_holder_name" → ["account", "holder", "name"].
func extractKeywords(name string) []string {
	parts := strings.Split(normalizeColumnName(name), "_")
	keywords := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
