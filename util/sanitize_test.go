package util

import "testing"

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims whitespace", "  hello  ", "hello"},
		{"removes control chars", "hello\x00world", "helloworld"},
		{"removes line breaks", "line1\r\n\tline2", "line1line2"},
		{"empty string", "", ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeString(tc.input); got != tc.want {
				t.Errorf("SanitizeString(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSanitizeLabel(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		maxLen int
		want   string
	}{
		{"short enough", "user-1", 16, "user-1"},
		{"truncated", "abcdefgh", 4, "abcd"},
		{"does not split runes", "héllo", 2, "h"},
		{"sanitized before cut", " a\nb ", 2, "ab"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeLabel(tc.input, tc.maxLen); got != tc.want {
				t.Errorf("SanitizeLabel(%q, %d) = %q, want %q", tc.input, tc.maxLen, got, tc.want)
			}
		})
	}
}
