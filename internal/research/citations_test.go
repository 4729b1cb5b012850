package research

import (
	"strings"
	"testing"
)

func TestParseWithCitations(t *testing.T) {
	content := "A rare Kashmir sapphire sold for a record price at auction this spring[1]. " +
		"The stone had been in a private collection for over fifty years[1]. " +
		"Meanwhile a museum in Geneva unveiled a restored art deco tiara to the public[2]."
	citations := []string{
		"https://www.auctionnews.com/kashmir-sapphire",
		"https://museumdaily.org/tiara",
	}

	results := ParseWithCitations(content, citations, 4)

	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}

	first := results[0]
	if first.URL != citations[0] {
		t.Errorf("URL = %q", first.URL)
	}
	if first.Publisher != "auctionnews.com" {
		t.Errorf("Publisher = %q, want auctionnews.com", first.Publisher)
	}
	if first.Title != "A rare Kashmir sapphire sold for a record price at auction this spring." {
		t.Errorf("Title = %q", first.Title)
	}
	if strings.Contains(first.Summary, "[1]") {
		t.Errorf("Summary still contains citation markers: %q", first.Summary)
	}
	if !strings.Contains(first.Summary, "private collection") {
		t.Errorf("Summary should include both matched sentences: %q", first.Summary)
	}

	second := results[1]
	if second.Title != "Meanwhile a museum in Geneva unveiled a restored art deco tiara to the public." {
		t.Errorf("second Title = %q", second.Title)
	}
}

func TestParseWithCitationsDomainFallback(t *testing.T) {
	// No [2] marker anywhere; the domain mention should still pair it.
	content := "A record emerald changed hands in Bogota[1]. " +
		"According to museumdaily.org the Geneva exhibit opens in June."
	citations := []string{
		"https://emeraldwire.com/bogota",
		"https://www.museumdaily.org/geneva",
	}

	results := ParseWithCitations(content, citations, 4)
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2", len(results))
	}
	if !strings.Contains(results[1].Summary, "Geneva exhibit") {
		t.Errorf("domain fallback not applied: %q", results[1].Summary)
	}
}

func TestParseWithCitationsNoMatch(t *testing.T) {
	results := ParseWithCitations("Nothing relevant here at all.", []string{"https://example.org/x"}, 4)
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1", len(results))
	}
	if results[0].Title != "Update from example.org" {
		t.Errorf("Title = %q, want placeholder", results[0].Title)
	}
	if results[0].Summary != "Source from example.org" {
		t.Errorf("Summary = %q, want placeholder", results[0].Summary)
	}
}

func TestParseWithCitationsRespectsMaxResults(t *testing.T) {
	citations := []string{"https://a.com/1", "https://b.com/2", "https://c.com/3"}
	results := ParseWithCitations("Some prose[1][2][3].", citations, 2)
	if len(results) != 2 {
		t.Errorf("len = %d, want 2", len(results))
	}
}

func TestTitleFromSentencesLongSentence(t *testing.T) {
	long := "The record-setting Kashmir sapphire that stunned collectors worldwide this spring was quietly consigned, according to people familiar with the sale."
	title := titleFromSentences([]string{long}, "auctionnews.com")

	if len(title) > 70 {
		t.Errorf("title length = %d, want <= 70: %q", len(title), title)
	}
	if !strings.HasPrefix(long, title) {
		t.Errorf("title %q is not a prefix of the sentence", title)
	}
	if strings.HasSuffix(title, " ") {
		t.Errorf("title has trailing space: %q", title)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One sentence. Another one! A third? Trailing fragment")
	want := []string{"One sentence.", "Another one!", "A third?", "Trailing fragment"}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sentence %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseStructured(t *testing.T) {
	content := "```json\n" + `{"results": [
		{"title": "Blue Belle resurfaces", "url": "https://gemnews.com/blue-belle", "publisher": "Gem News", "summary": "The famous sapphire is back."},
		{"title": "Placeholder entry", "url": "https://example.com/fake", "publisher": "X", "summary": "Not real."},
		{"title": "", "url": "https://gemnews.com/untitled", "publisher": "Gem News", "summary": "No title."}
	]}` + "\n```"

	results := parseStructured(content, 4)
	if len(results) != 1 {
		t.Fatalf("len = %d, want 1 (placeholder and untitled filtered): %+v", len(results), results)
	}
	if results[0].Title != "Blue Belle resurfaces" {
		t.Errorf("Title = %q", results[0].Title)
	}
}

func TestParseStructuredFallsBackToPlainText(t *testing.T) {
	content := "I found two pieces worth a look: https://gemnews.com/one and https://www.jewelrywire.com/two are both recent."

	results := parseStructured(content, 4)
	if len(results) != 2 {
		t.Fatalf("len = %d, want 2: %+v", len(results), results)
	}
	if results[0].Title != "Finding from gemnews.com" {
		t.Errorf("Title = %q, want synthetic placeholder", results[0].Title)
	}
	if results[1].Publisher != "jewelrywire.com" {
		t.Errorf("Publisher = %q", results[1].Publisher)
	}
}
