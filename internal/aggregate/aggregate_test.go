package aggregate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"facet/internal/core"
	"facet/internal/llm"
)

// mockGenerator returns canned text keyed by a substring of the prompt.
type mockGenerator struct {
	responses map[string]string
	err       error
	prompts   []string
}

func (m *mockGenerator) Generate(_ context.Context, prompt string, _ llm.Options) (string, error) {
	m.prompts = append(m.prompts, prompt)
	if m.err != nil {
		return "", m.err
	}
	for key, response := range m.responses {
		if strings.Contains(prompt, key) {
			return response, nil
		}
	}
	return "", errors.New("no canned response for prompt")
}

func (m *mockGenerator) ModelName() string { return "mock-model" }

func TestGenerateNewsletter(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"newsletter intro":                 "Summer sparkle season is officially here.",
		"'What's Inside'":                  "- 💍 A record-breaking auction\n- 🔥 The trend dividing collectors\n- 📖 Two must-read guides\n- 💎 Guess this famous rock's price",
		"description for a YouTube video":  "A rare blue diamond just smashed every record. Watch to see why.",
		"section about this jewelry piece": "Think you know what this gem fetched?",
	}}

	agg := New(mock)
	content, err := agg.GenerateNewsletter(context.Background(), NewsletterRequest{
		Month: "June",
		NewsOfMonth: VideoInput{
			Title:        "Record Auction Night",
			Description:  "A blue diamond broke records at auction.",
			ThumbnailURL: "https://img.example.com/a.jpg",
			URL:          "https://youtube.com/watch?v=abc",
		},
		BlogArticles: []BlogInput{
			{Title: "Caring for Pearls", URL: "https://blog.example.com/pearls"},
			{Title: "Gold vs Platinum", URL: "https://blog.example.com/gold"},
			{Title: "Third Article", URL: "https://blog.example.com/third"},
		},
		GuessThePrice: PriceInput{
			Title:    "The Hope Diamond",
			Material: "45.52-carat blue diamond",
			FunFact:  "Said to carry a curse.",
		},
		QuickTip: "Store silver in anti-tarnish cloth.",
	})
	if err != nil {
		t.Fatalf("GenerateNewsletter: %v", err)
	}

	if got := content["intro"]; got != "Summer sparkle season is officially here." {
		t.Errorf("intro = %q", got)
	}

	agenda, ok := content["agenda_items"].([]any)
	if !ok || len(agenda) != 4 {
		t.Fatalf("agenda_items = %#v, want 4 items", content["agenda_items"])
	}
	if agenda[0] != "💍 A record-breaking auction" {
		t.Errorf("agenda[0] = %q, want bullet marker stripped", agenda[0])
	}

	nom, ok := content["news_of_month"].(map[string]any)
	if !ok {
		t.Fatalf("news_of_month = %#v", content["news_of_month"])
	}
	if nom["title"] != "Record Auction Night" || nom["video_url"] != "https://youtube.com/watch?v=abc" {
		t.Errorf("news_of_month passthrough fields wrong: %#v", nom)
	}
	if desc, _ := nom["description"].(string); !strings.Contains(desc, "blue diamond") {
		t.Errorf("news_of_month description = %q", desc)
	}

	if _, present := content["trend_alert"]; present {
		t.Error("trend_alert should be absent when no video was selected")
	}

	blogs, ok := content["blog_articles"].([]any)
	if !ok || len(blogs) != 2 {
		t.Fatalf("blog_articles = %#v, want exactly 2", content["blog_articles"])
	}

	gtp, ok := content["guess_the_price"].(map[string]any)
	if !ok {
		t.Fatalf("guess_the_price = %#v", content["guess_the_price"])
	}
	if gtp["question"] != "Think you know what this gem fetched?" {
		t.Errorf("question = %q", gtp["question"])
	}
	if gtp["link"] != "#" {
		t.Errorf("link = %q, want # when no source link", gtp["link"])
	}

	if content["quick_tip"] != "Store silver in anti-tarnish cloth." {
		t.Errorf("quick_tip = %q, want editor's tip used verbatim", content["quick_tip"])
	}
}

func TestGenerateNewsletterFallbacks(t *testing.T) {
	mock := &mockGenerator{err: errors.New("model offline")}

	agg := New(mock)
	content, err := agg.GenerateNewsletter(context.Background(), NewsletterRequest{
		Month: "June",
		NewsOfMonth: VideoInput{
			Title:       "Record Auction Night",
			Description: strings.Repeat("A blue diamond broke records at auction. ", 10),
		},
	})
	if err != nil {
		t.Fatalf("GenerateNewsletter should degrade per slot, got %v", err)
	}

	if got, _ := content["intro"].(string); !strings.Contains(got, "June edition") {
		t.Errorf("intro fallback = %q", got)
	}
	if agenda, _ := content["agenda_items"].([]any); len(agenda) != 4 {
		t.Errorf("agenda fallback should have 4 items, got %#v", content["agenda_items"])
	}
	nom, _ := content["news_of_month"].(map[string]any)
	if desc, _ := nom["description"].(string); desc == "" || len(desc) > 203 {
		t.Errorf("description fallback should truncate the source description, got %q", desc)
	}
	if tip, _ := content["quick_tip"].(string); !strings.Contains(tip, "summer") {
		t.Errorf("quick tip fallback = %q, want seasonal fallback", tip)
	}
}

func TestGenerateNewsletterRequiresGenerator(t *testing.T) {
	agg := New(nil)
	if _, err := agg.GenerateNewsletter(context.Background(), NewsletterRequest{Month: "June"}); !errors.Is(err, llm.ErrUnavailable) {
		t.Errorf("got %v, want ErrUnavailable", err)
	}
}

func TestQuickTip(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"quick jewelry care": "Rinse your rings after a day at the beach. Salt and sunscreen dull the shine.",
	}}

	agg := New(mock)
	tip, imagePrompt, err := agg.QuickTip(context.Background(), "July")
	if err != nil {
		t.Fatalf("QuickTip: %v", err)
	}
	if !strings.Contains(tip, "Rinse your rings") {
		t.Errorf("tip = %q", tip)
	}
	if !strings.Contains(imagePrompt, "summer setting") {
		t.Errorf("image prompt = %q, want seasonal setting", imagePrompt)
	}
	if !strings.Contains(imagePrompt, "travel with jewelry") {
		t.Errorf("image prompt = %q, want first monthly theme", imagePrompt)
	}

	if len(mock.prompts) != 1 {
		t.Fatalf("got %d prompts", len(mock.prompts))
	}
	if !strings.Contains(mock.prompts[0], "Season: summer") {
		t.Errorf("prompt missing season: %q", mock.prompts[0])
	}
}

func TestRewrite(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"Rewrite this content": "Gold is having a moment, and honestly, we get it.",
	}}

	agg := New(mock)
	got, err := agg.Rewrite(context.Background(), "Gold is popular right now.", "witty", "intro")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if got != "Gold is having a moment, and honestly, we get it." {
		t.Errorf("rewritten = %q", got)
	}

	prompt := mock.prompts[0]
	if !strings.Contains(prompt, "Witty and clever") {
		t.Errorf("prompt should expand the tone keyword: %q", prompt)
	}
	if !strings.Contains(prompt, "Max words: 40") {
		t.Errorf("prompt should carry the intro word limit: %q", prompt)
	}

	if _, err := agg.Rewrite(context.Background(), "", "witty", "intro"); err == nil {
		t.Error("expected error for empty content")
	}
}

func TestRewriteEnforcesWordLimit(t *testing.T) {
	long := strings.Repeat("sparkle ", 70)
	mock := &mockGenerator{responses: map[string]string{"Rewrite this content": long}}

	agg := New(mock)
	got, err := agg.Rewrite(context.Background(), "original", "friendly", "quick_tip")
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}
	if words := len(strings.Fields(got)); words > 60 {
		t.Errorf("rewritten has %d words, want at most 60", words)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated rewrite should end with ellipsis, got %q", got)
	}
}

func TestSubjectLines(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"subject lines": "```json\n{\"subject_lines\": [\"June's biggest sparkle moments 💎\", \"Can you guess this price?\"], \"preheaders\": [\"Auction records, trends, and a quick tip\", \"Plus two must-read guides\"]}\n```",
	}}

	agg := New(mock)
	content := core.NewsletterContent{
		"news_of_month": map[string]any{"title": "Record Auction Night"},
		"quick_tip":     "Rinse after swimming.",
	}
	options, err := agg.SubjectLines(context.Background(), content, "June", 2026)
	if err != nil {
		t.Fatalf("SubjectLines: %v", err)
	}
	if len(options.SubjectLines) != 2 || len(options.Preheaders) != 2 {
		t.Fatalf("options = %#v", options)
	}

	prompt := mock.prompts[0]
	if !strings.Contains(prompt, "Video: Record Auction Night") {
		t.Errorf("prompt missing highlight: %q", prompt)
	}
	if !strings.Contains(prompt, "Quick jewelry tip") {
		t.Errorf("prompt missing quick tip highlight: %q", prompt)
	}
}

func TestBrandCheck(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"editorial guidelines": `{"passed": false, "score": 82, "suggestions": [{"section": "intro", "original": "lab grown", "suggested": "lab-grown", "reason": "hyphenate lab-grown", "severity": "error"}]}`,
	}}

	agg := New(mock)
	result, err := agg.BrandCheck(context.Background(), core.NewsletterContent{"intro": "lab grown diamonds are in"})
	if err != nil {
		t.Fatalf("BrandCheck: %v", err)
	}
	if result.Passed || result.Score != 82 {
		t.Errorf("result = %+v", result)
	}
	if len(result.Suggestions) != 1 || result.Suggestions[0].Suggested != "lab-grown" {
		t.Errorf("suggestions = %#v", result.Suggestions)
	}
}

func TestBrandCheckUnstructuredOutput(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"editorial guidelines": "Overall the tone is great, just hyphenate lab-grown throughout.",
	}}

	agg := New(mock)
	result, err := agg.BrandCheck(context.Background(), core.NewsletterContent{"intro": "hello"})
	if err != nil {
		t.Fatalf("BrandCheck should degrade to raw text, got %v", err)
	}
	if result.Raw == "" || len(result.Suggestions) != 0 {
		t.Errorf("result = %+v, want raw-only", result)
	}
}

func TestImagePrompts(t *testing.T) {
	mock := &mockGenerator{responses: map[string]string{
		"text-to-image prompt": "Photorealistic macro shot of a sapphire ring on velvet, warm side lighting.",
	}}

	agg := New(mock)
	prompts, err := agg.ImagePrompts(context.Background(), map[string]SectionContent{
		"news_of_month": {Title: "Record Auction Night", Description: "A blue diamond broke records."},
		"empty_section": {},
	})
	if err != nil {
		t.Fatalf("ImagePrompts: %v", err)
	}
	if len(prompts) != 1 {
		t.Fatalf("prompts = %#v, want empty sections skipped", prompts)
	}
	got := prompts["news_of_month"]
	if got.Title != "Record Auction Night" || !strings.Contains(got.Prompt, "sapphire ring") {
		t.Errorf("prompt = %+v", got)
	}
}

func TestImagePromptsFallback(t *testing.T) {
	mock := &mockGenerator{err: errors.New("model offline")}

	agg := New(mock)
	prompts, err := agg.ImagePrompts(context.Background(), map[string]SectionContent{
		"quick_tip": {Tip: "Rinse after swimming."},
	})
	if err != nil {
		t.Fatalf("ImagePrompts: %v", err)
	}
	got := prompts["quick_tip"]
	if !strings.Contains(got.Prompt, "Photorealistic luxury jewelry photography") {
		t.Errorf("fallback prompt = %q", got.Prompt)
	}
	if got.Title != "Rinse after swimming." {
		t.Errorf("title should fall back to the tip text, got %q", got.Title)
	}
}

func TestSeasonTables(t *testing.T) {
	if got := SeasonFor("December"); got != "winter" {
		t.Errorf("SeasonFor(December) = %q", got)
	}
	if got := SeasonFor("unknown"); got != "winter" {
		t.Errorf("SeasonFor(unknown) = %q, want winter default", got)
	}
	if themes := ThemesFor("June"); themes[0] != "summer jewelry care" {
		t.Errorf("ThemesFor(June) = %v", themes)
	}
	if themes := ThemesFor("nope"); len(themes) != 1 || themes[0] != "jewelry care tips" {
		t.Errorf("ThemesFor(nope) = %v", themes)
	}
}
