// Package strings holds small naming helpers shared by the generator.
package strings

import (
	"strings"
	"unicode"
)

// ToSnakeCase converts CamelCase to snake_case, keeping acronym runs
// together (HTTPRequest -> http_request). Existing underscores survive
// unchanged, so derived adapter identifiers stay unambiguous.
func ToSnakeCase(s string) string {
	var b strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 {
				prev := runes[i-1]
				if unicode.IsLower(prev) || unicode.IsDigit(prev) {
					b.WriteRune('_')
				} else if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
					b.WriteRune('_')
				}
			}
			b.WriteRune(unicode.ToLower(r))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ArtifactFileName maps a generated artifact identifier to its file name:
// snake-cased with the .go suffix. Colliding identifiers map to the same
// file, which is where the legacy last-write-wins overwrite happens.
func ArtifactFileName(identifier string) string {
	return ToSnakeCase(identifier) + ".go"
}
