package util

import (
	"strings"
	"unicode/utf8"
)

// CleanText drops invalid UTF-8 and NUL bytes and collapses runs of
// whitespace into single spaces.
func CleanText(value string) string {
	if value == "" {
		return value
	}

	sanitized := strings.ToValidUTF8(value, "")
	sanitized = strings.ReplaceAll(sanitized, "\x00", "")
	return strings.Join(strings.Fields(sanitized), " ")
}

// Truncate shortens value to at most maxRunes runes, marking the cut with
// "...". Values that already fit are returned unchanged.
func Truncate(value string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	if utf8.RuneCountInString(value) <= maxRunes {
		return value
	}
	if maxRunes <= 3 {
		return string([]rune(value)[:maxRunes])
	}
	return string([]rune(value)[:maxRunes-3]) + "..."
}

// SplitList splits a comma separated list, trimming entries and dropping
// empty ones.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
