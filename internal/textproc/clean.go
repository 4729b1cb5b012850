package textproc

import (
	"strings"
)

// Newsletter slot labels the model sometimes prepends to its output even when
// told not to. Matched case-insensitively after an optional month name.
var labelPrefixes = []string{
	"newsletter intro:",
	"intro:",
	"quick tip:",
	"video description:",
	"featured video:",
	"news of the month:",
	"trend alert:",
}

var monthNames = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
}

// Clean normalizes one generated field: trims whitespace and wrapping quotes,
// drops hallucinated title/label lines, strips known slot-label prefixes, and
// converts lightweight markdown to inline HTML. Cleaning already-clean text
// is a no-op, so the pipeline can be re-applied safely.
func Clean(s string) string {
	prev := ""
	// Each stripping step can expose another artifact underneath (a quoted
	// label line over a heading, for example), so iterate to a fixpoint.
	for s != prev {
		prev = s
		s = MarkdownToHTML(cleanOnce(s))
	}
	return s
}

func cleanOnce(s string) string {
	s = strings.TrimSpace(s)
	s = stripMatchingQuotes(s)
	s = stripHeadingMarker(s)
	s = dropTitleLine(s)
	s = stripLabelPrefix(s)
	return strings.TrimSpace(s)
}

// stripMatchingQuotes removes one layer of matching wrapping quotes.
func stripMatchingQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	pairs := map[byte]byte{'"': '"', '\'': '\'', '`': '`'}
	if closer, ok := pairs[s[0]]; ok && s[len(s)-1] == closer {
		return strings.TrimSpace(s[1 : len(s)-1])
	}
	// Curly quotes arrive as multi-byte runes.
	curly := [][2]string{{"“", "”"}, {"‘", "’"}}
	for _, p := range curly {
		if strings.HasPrefix(s, p[0]) && strings.HasSuffix(s, p[1]) {
			return strings.TrimSpace(s[len(p[0]) : len(s)-len(p[1])])
		}
	}
	return s
}

// stripHeadingMarker removes a leading markdown heading marker from the
// first line.
func stripHeadingMarker(s string) string {
	trimmed := strings.TrimLeft(s, "#")
	if trimmed != s {
		return strings.TrimLeft(trimmed, " ")
	}
	return s
}

// dropTitleLine drops a short first line that looks like a hallucinated
// title or label: under 60 characters, no terminal punctuation, and followed
// by strictly longer remaining content.
func dropTitleLine(s string) string {
	first, rest, found := strings.Cut(s, "\n")
	if !found {
		return s
	}
	first = strings.TrimSpace(first)
	rest = strings.TrimSpace(rest)
	if first == "" {
		return rest
	}
	if len(first) < 60 && !endsTerminal(first) && len(rest) > len(first) {
		return rest
	}
	return s
}

func endsTerminal(s string) bool {
	return strings.HasSuffix(s, ".") || strings.HasSuffix(s, "!") ||
		strings.HasSuffix(s, "?") || strings.HasSuffix(s, "…")
}

// stripLabelPrefix removes a known slot label, optionally preceded by a
// month name, from the start of the text. Case-insensitive.
func stripLabelPrefix(s string) string {
	lower := strings.ToLower(s)

	for _, label := range labelPrefixes {
		if strings.HasPrefix(lower, label) {
			return strings.TrimSpace(s[len(label):])
		}
		for _, month := range monthNames {
			withMonth := month + " " + label
			if strings.HasPrefix(lower, withMonth) {
				return strings.TrimSpace(s[len(withMonth):])
			}
		}
	}
	return s
}
