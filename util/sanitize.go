package util

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString trims whitespace and removes control characters from s.
func SanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(s))
}

// SanitizeLabel sanitizes s and cuts it to at most maxLen bytes without
// splitting a rune. Used for client-supplied values that end up in logs and
// client metadata.
func SanitizeLabel(s string, maxLen int) string {
	s = SanitizeString(s)
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
