package research

import (
	"fmt"
	"regexp"
	"strings"

	"facet/internal/core"
	"facet/internal/textproc"
)

var (
	markerPattern  = regexp.MustCompile(`\[\d+\]`)
	urlPattern     = regexp.MustCompile(`https?://[^\s<>"{}|\\^` + "`" + `\[\]]+`)
	trailingFiller = regexp.MustCompile(`(?i)\s+(and|or|with|the|a|an|to|for|in|on|by)$`)
)

// ParseWithCitations pairs each citation URL with the sentences that
// reference it. Primary match is the [N] citation marker; when a URL's
// marker never appears in the prose, a mention of the URL's domain is
// accepted instead. The title is synthesized from the first matched
// sentence. Markers that appear close together can attribute a sentence to
// the wrong citation; the output is best-effort by nature.
func ParseWithCitations(content string, citations []string, maxResults int) []core.SearchResult {
	sentences := splitSentences(content)

	results := make([]core.SearchResult, 0, maxResults)
	for i, citationURL := range citations {
		if i >= maxResults {
			break
		}
		if citationURL == "" {
			continue
		}

		domain := Domain(citationURL)
		marker := fmt.Sprintf("[%d]", i+1)

		var related []string
		for _, sentence := range sentences {
			if strings.Contains(sentence, marker) {
				if clean := cleanSentence(sentence); clean != "" {
					related = append(related, clean)
				}
			}
		}
		if len(related) == 0 {
			lowerDomain := strings.ToLower(domain)
			for _, sentence := range sentences {
				if strings.Contains(strings.ToLower(sentence), lowerDomain) {
					if clean := cleanSentence(sentence); clean != "" {
						related = append(related, clean)
						break
					}
				}
			}
		}

		summary := "Source from " + domain
		if len(related) > 0 {
			joined := related
			if len(joined) > 2 {
				joined = joined[:2]
			}
			summary = textproc.TruncateChars(strings.Join(joined, " "), 300)
		}

		results = append(results, core.SearchResult{
			Title:     titleFromSentences(related, domain),
			URL:       citationURL,
			Publisher: domain,
			Summary:   summary,
		})
	}
	return results
}

// cleanSentence strips citation markers and drops fragments too short to
// carry meaning.
func cleanSentence(s string) string {
	clean := strings.TrimSpace(markerPattern.ReplaceAllString(s, ""))
	if len(clean) <= 20 {
		return ""
	}
	return clean
}

// titleFromSentences synthesizes a headline from the first matched sentence,
// keeping it under ~70 characters at a word boundary.
func titleFromSentences(sentences []string, domain string) string {
	if len(sentences) == 0 {
		return "Update from " + domain
	}

	first := sentences[0]
	if len(first) <= 80 {
		return first
	}

	// Prefer the clause before the first comma when it stands on its own.
	clause := first
	if idx := strings.IndexByte(clause, ','); idx != -1 {
		clause = clause[:idx]
	}
	if len(clause) <= 70 {
		clause = trailingFiller.ReplaceAllString(strings.TrimSpace(clause), "")
		if len(clause) > 25 {
			return clause
		}
	}

	// Otherwise accumulate whole words up to the length cap.
	var title string
	for _, word := range strings.Fields(first) {
		if title != "" && len(title)+1+len(word) > 70 {
			break
		}
		if title == "" {
			title = word
		} else {
			title += " " + word
		}
	}
	if title == "" {
		return first[:70]
	}
	return title
}

// splitSentences breaks prose at terminal punctuation followed by
// whitespace.
func splitSentences(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s)-1; i++ {
		if (s[i] == '.' || s[i] == '!' || s[i] == '?') && isSpace(s[i+1]) {
			if part := strings.TrimSpace(s[start : i+1]); part != "" {
				out = append(out, part)
			}
			j := i + 1
			for j < len(s) && isSpace(s[j]) {
				j++
			}
			start = j
			i = j - 1
		}
	}
	if start < len(s) {
		if part := strings.TrimSpace(s[start:]); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

type structuredResult struct {
	Title         string `json:"title"`
	URL           string `json:"url"`
	Publisher     string `json:"publisher"`
	PublishedDate string `json:"published_date"`
	Summary       string `json:"summary"`
}

// parseStructured extracts a {"results": [...]} payload from model output,
// falling back to bare URL extraction when no JSON can be recovered.
func parseStructured(content string, maxResults int) []core.SearchResult {
	var payload struct {
		Results []structuredResult `json:"results"`
	}
	if err := textproc.ExtractJSON(content, &payload); err != nil {
		return parsePlainText(content, maxResults)
	}

	results := make([]core.SearchResult, 0, len(payload.Results))
	for _, r := range payload.Results {
		if len(results) >= maxResults {
			break
		}
		if r.URL == "" || r.Title == "" {
			continue
		}
		// The model occasionally invents placeholder links.
		if strings.Contains(r.URL, "example.com") || strings.Contains(strings.ToLower(r.URL), "placeholder") {
			continue
		}

		publisher := r.Publisher
		if publisher == "" {
			publisher = Domain(r.URL)
		}
		results = append(results, core.SearchResult{
			Title:         r.Title,
			URL:           r.URL,
			Publisher:     publisher,
			PublishedDate: r.PublishedDate,
			Summary:       r.Summary,
		})
	}
	return results
}

// parsePlainText is the last-resort fallback: pull bare URLs out of prose
// and give them placeholder titles.
func parsePlainText(content string, maxResults int) []core.SearchResult {
	urls := urlPattern.FindAllString(content, -1)

	results := make([]core.SearchResult, 0, maxResults)
	for _, u := range urls {
		if len(results) >= maxResults {
			break
		}
		domain := Domain(u)
		results = append(results, core.SearchResult{
			Title:     "Finding from " + domain,
			URL:       u,
			Publisher: domain,
			Summary:   "See source for details",
		})
	}
	return results
}
