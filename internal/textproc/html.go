package textproc

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	stripPolicy  = bluemonday.StrictPolicy()
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	newlineRun   = regexp.MustCompile(`\n{3,}`)
	blockBreaker = regexp.MustCompile(`(?i)</(p|div|h[1-6]|li|tr|table|blockquote)>|<br\s*/?>`)
	anchorTag    = regexp.MustCompile(`(?is)<a[^>]*href=["']([^"']*)["'][^>]*>(.*?)</a>`)
)

// StripHTML removes all HTML tags, decodes entities, and collapses
// whitespace. Used for provider titles and excerpts.
func StripHTML(s string) string {
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}

// HTMLToText converts an HTML document to readable plain text, keeping
// paragraph breaks as newlines. Used when pushing rendered email content to
// channels that only accept plain text.
func HTMLToText(s string) string {
	s = anchorTag.ReplaceAllString(s, "$2 ($1)")
	s = blockBreaker.ReplaceAllString(s, "$0\n")
	s = stripPolicy.Sanitize(s)
	s = html.UnescapeString(s)

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(spaceRun.ReplaceAllString(line, " "))
	}
	s = strings.Join(lines, "\n")
	s = newlineRun.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
