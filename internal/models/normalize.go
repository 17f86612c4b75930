package models

import (
	"strings"
)

// NormalizeName lowercases a display name and strips every character
// outside [a-z0-9]. The result is the sole identity key for store
// deduplication and for cross-referencing mall names between sources.
func NormalizeName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
