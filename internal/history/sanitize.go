package history

import (
	"strings"
	"unicode"
)

// DefaultName is the history used when no name (or an unusable one) is given.
const DefaultName = "default"

// SanitizeName maps a user-supplied history name to a filesystem-safe
// identifier. Only letters, digits, underscore, and hyphen survive; anything
// else is stripped. An empty result falls back to DefaultName.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			b.WriteRune(r)
		}
	}
	safe := b.String()
	if safe == "" {
		return DefaultName
	}
	return safe
}
