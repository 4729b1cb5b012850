package textproc

import (
	"strings"
	"unicode/utf8"
)

// CountWords returns the number of whitespace-separated words in s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

// TruncateWords cuts s down to at most maxWords words, appending an ellipsis
// when anything was removed. maxWords <= 0 means unconstrained.
func TruncateWords(s string, maxWords int) string {
	if maxWords <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}

// TruncateChars cuts s down to at most maxChars characters at a word
// boundary, appending an ellipsis when anything was removed.
func TruncateChars(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	for maxChars > 0 && !utf8.RuneStart(s[maxChars]) {
		maxChars--
	}
	cut := s[:maxChars]
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimRight(cut, " ,;:") + "..."
}
