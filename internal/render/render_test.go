package render

import (
	"strings"
	"testing"

	"facet/internal/core"
)

func TestEmailSubstitutesContent(t *testing.T) {
	content := core.NewsletterContent{
		"intro":        "Summer is here and so are the sapphires.",
		"agenda_items": []any{"A dazzling auction", "Trend: chunky gold", "Guess the price", "Care tips"},
		"news_of_month": map[string]any{
			"title":         "Record Auction Night",
			"thumbnail_url": "https://img.example.com/auction.jpg",
			"description":   "A rare blue diamond broke records.",
			"video_url":     "https://youtube.com/watch?v=abc123",
		},
		"blog_articles": []any{
			map[string]any{"title": "Caring for Pearls", "url": "https://blog.example.com/pearls", "featured_image_url": "https://img.example.com/pearls.jpg"},
			map[string]any{"title": "Gold vs Platinum", "url": "https://blog.example.com/gold", "featured_image_url": "https://img.example.com/gold.jpg"},
		},
		"guess_the_price": map[string]any{
			"title":    "Guess the Price",
			"material": "18k gold, emerald",
			"question": "What would this fetch at auction?",
		},
		"quick_tip": "Store silver in anti-tarnish cloth.",
	}

	html, err := Email(Request{
		Content:   content,
		Month:     "June",
		Year:      2026,
		Preheader: "June sparkle awaits",
		Images: map[string]ImageRef{
			"guess_the_price": {URL: "https://cdn.example.com/gtp.png"},
			"quick_tip":       {URL: "https://cdn.example.com/tip.png"},
		},
	})
	if err != nil {
		t.Fatalf("Email: %v", err)
	}

	wantFragments := []string{
		"June 2026",
		"June sparkle awaits",
		"Summer is here and so are the sapphires.",
		"A dazzling auction",
		"Record Auction Night",
		"https://youtube.com/watch?v=abc123",
		"Caring for Pearls",
		"Gold vs Platinum",
		"18k gold, emerald",
		"What would this fetch at auction?",
		"https://cdn.example.com/gtp.png", // Uploaded image wins over content URL
		"https://cdn.example.com/tip.png",
		"Store silver in anti-tarnish cloth.",
	}
	for _, want := range wantFragments {
		if !strings.Contains(html, want) {
			t.Errorf("rendered html missing %q", want)
		}
	}
	if strings.Contains(html, "{{") {
		idx := strings.Index(html, "{{")
		t.Errorf("rendered html still contains a placeholder near %q", html[idx:min(idx+30, len(html))])
	}
}

func TestEmailDefaults(t *testing.T) {
	html, err := Email(Request{Content: core.NewsletterContent{}, Month: "March", Year: 2026})
	if err != nil {
		t.Fatalf("Email: %v", err)
	}

	if !strings.Contains(html, "Welcome to the March edition!") {
		t.Error("missing default intro")
	}
	if !strings.Contains(html, "Your monthly jewelry inspiration - March 2026") {
		t.Error("missing default preheader")
	}
	if !strings.Contains(html, "News of the Month") {
		t.Error("missing default news title")
	}
	if !strings.Contains(html, "Blog Article") {
		t.Error("missing default blog title")
	}
	if strings.Contains(html, "{{") {
		t.Error("rendered html still contains placeholders")
	}
}

func TestAgendaCapsAtFour(t *testing.T) {
	items := []any{"one", "two", "three", "four", "five", "six"}
	html := agendaHTML(items)
	if strings.Contains(html, "five") || strings.Contains(html, "six") {
		t.Error("agenda should cap at four items")
	}
	if got := strings.Count(html, "<tr>"); got != 4 {
		t.Errorf("agenda rows = %d, want 4", got)
	}
}
