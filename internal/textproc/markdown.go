package textproc

import "regexp"

var (
	mdBold   = regexp.MustCompile(`\*\*(.+?)\*\*`)
	mdItalic = regexp.MustCompile(`(^|[^*])\*([^*\n]+)\*`)
	mdLink   = regexp.MustCompile(`\[([^\]]+)\]\(([^)\s]+)\)`)
)

// MarkdownToHTML converts the lightweight markdown the model emits (bold,
// italic, inline links) to inline HTML. Text without markdown passes through
// unchanged.
func MarkdownToHTML(s string) string {
	s = mdLink.ReplaceAllString(s, `<a href="$2">$1</a>`)
	s = mdBold.ReplaceAllString(s, "<strong>$1</strong>")
	s = mdItalic.ReplaceAllString(s, "$1<em>$2</em>")
	return s
}
