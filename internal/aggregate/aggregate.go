// Package aggregate assembles newsletter content from provider records and
// generated text. Each entry point fills one slot or one whole edition; a
// generation failure in any single slot degrades to fallback copy instead of
// failing the run.
package aggregate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"facet/internal/core"
	"facet/internal/llm"
	"facet/internal/logger"
	"facet/internal/textproc"
)

// VideoInput is a selected video feeding a newsletter video slot.
type VideoInput struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
	URL          string `json:"url"`
}

// BlogInput is a selected blog article.
type BlogInput struct {
	Title            string `json:"title"`
	URL              string `json:"url"`
	FeaturedImageURL string `json:"featured_image_url"`
	Excerpt          string `json:"excerpt"`
}

// PriceInput is a selected Guess-the-Price item with its detail fields.
type PriceInput struct {
	Title        string `json:"title"`
	ImageURL     string `json:"image_url"`
	Material     string `json:"material"`
	FoundIn      string `json:"found_in"`
	WhereItLives string `json:"where_it_lives"`
	FunFact      string `json:"fun_fact"`
	SourceLink   string `json:"source_link"`
}

// NewsletterRequest carries the editor's selections for one edition. Intro
// and QuickTip, when set, are used verbatim instead of generated.
type NewsletterRequest struct {
	Month         string      `json:"month"`
	Intro         string      `json:"intro"`
	NewsOfMonth   VideoInput  `json:"news_of_month"`
	TrendAlert    VideoInput  `json:"trend_alert"`
	BlogArticles  []BlogInput `json:"blog_articles"`
	GuessThePrice PriceInput  `json:"guess_the_price"`
	QuickTip      string      `json:"quick_tip"`
}

// Aggregator builds NewsletterContent from inputs plus generated text.
type Aggregator struct {
	gen llm.Generator
	log zerolog.Logger
}

// New builds an Aggregator. The generator may be nil; operations that need
// it then return llm.ErrUnavailable.
func New(gen llm.Generator) *Aggregator {
	return &Aggregator{gen: gen, log: logger.With("aggregate")}
}

// GenerateNewsletter fills every newsletter slot for one edition. Slots the
// editor already filled pass through; the rest are generated, with static
// fallback copy when generation fails.
func (a *Aggregator) GenerateNewsletter(ctx context.Context, req NewsletterRequest) (core.NewsletterContent, error) {
	if a.gen == nil {
		return nil, llm.ErrUnavailable
	}

	content := core.NewsletterContent{}

	content["intro"] = a.intro(ctx, req)
	content["agenda_items"] = a.agenda(ctx, req)

	if req.NewsOfMonth.Title != "" {
		content["news_of_month"] = a.videoSlot(ctx, req.NewsOfMonth)
	}
	if req.TrendAlert.Title != "" {
		content["trend_alert"] = a.videoSlot(ctx, req.TrendAlert)
	}

	blogs := make([]any, 0, 2)
	for i, article := range req.BlogArticles {
		if i == 2 {
			break
		}
		blogs = append(blogs, map[string]any{
			"title":              article.Title,
			"url":                article.URL,
			"featured_image_url": article.FeaturedImageURL,
			"excerpt":            article.Excerpt,
		})
	}
	content["blog_articles"] = blogs

	if req.GuessThePrice.Title != "" {
		content["guess_the_price"] = a.priceSlot(ctx, req.GuessThePrice)
	}

	if req.QuickTip != "" {
		content["quick_tip"] = req.QuickTip
	} else {
		tip, _, err := a.QuickTip(ctx, req.Month)
		if err != nil {
			a.log.Warn().Err(err).Msg("quick tip generation failed, using fallback")
			tip = fmt.Sprintf("Keep your jewelry sparkling this %s!", SeasonFor(req.Month))
		}
		content["quick_tip"] = tip
	}

	return content, nil
}

func (a *Aggregator) intro(ctx context.Context, req NewsletterRequest) string {
	if req.Intro != "" {
		return req.Intro
	}

	var highlights []string
	if req.NewsOfMonth.Title != "" {
		highlights = append(highlights, "News of Month: "+req.NewsOfMonth.Title)
	}
	if req.TrendAlert.Title != "" {
		highlights = append(highlights, "Trend Alert: "+req.TrendAlert.Title)
	}
	if req.GuessThePrice.Title != "" {
		highlights = append(highlights, "Guess the Price: "+req.GuessThePrice.Title)
	}
	joined := strings.Join(highlights, "; ")
	if joined == "" {
		joined = "jewelry news and trends"
	}

	field, err := llm.GenerateField(ctx, a.gen, "intro", introPrompt(req.Month, joined))
	if err != nil {
		a.log.Warn().Err(err).Msg("intro generation failed, using fallback")
		return fmt.Sprintf("Welcome to the %s edition of our newsletter!", req.Month)
	}
	return field.Text
}

func (a *Aggregator) agenda(ctx context.Context, req NewsletterRequest) []any {
	fallback := []any{
		"The latest jewelry news worth knowing",
		"A trend you need to know about",
		"Two must-read blog articles",
		"Can you guess the price of this famous piece?",
	}

	var sections []string
	if req.NewsOfMonth.Title != "" {
		sections = append(sections, "News of Month video: "+req.NewsOfMonth.Title)
	}
	if req.TrendAlert.Title != "" {
		sections = append(sections, "Trend Alert video: "+req.TrendAlert.Title)
	}
	if len(req.BlogArticles) > 0 {
		titles := make([]string, 0, 2)
		for i, article := range req.BlogArticles {
			if i == 2 {
				break
			}
			titles = append(titles, article.Title)
		}
		sections = append(sections, "Blog articles: "+strings.Join(titles, ", "))
	}
	if req.GuessThePrice.Title != "" {
		sections = append(sections, "Guess the Price: "+req.GuessThePrice.Title)
	}

	slot := llm.SlotFor("whats_inside")
	raw, err := a.gen.Generate(ctx, whatsInsidePrompt(sections), llm.Options{
		MaxTokens:   slot.MaxTokens,
		Temperature: slot.Temperature,
	})
	if err != nil {
		a.log.Warn().Err(err).Msg("agenda generation failed, using fallback")
		return fallback
	}

	items := parseBullets(raw, 4)
	if len(items) == 0 {
		return fallback
	}
	return items
}

// parseBullets extracts up to max bullet lines from model output, stripping
// leading list markers.
func parseBullets(raw string, max int) []any {
	var items []any
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			line = strings.TrimSpace(strings.TrimLeft(line, "-* "))
		}
		if len(line) > 5 {
			items = append(items, textproc.MarkdownToHTML(line))
		}
		if len(items) == max {
			break
		}
	}
	return items
}

func (a *Aggregator) videoSlot(ctx context.Context, video VideoInput) map[string]any {
	slot := map[string]any{
		"title":         video.Title,
		"thumbnail_url": video.ThumbnailURL,
		"video_url":     video.URL,
	}

	field, err := llm.GenerateField(ctx, a.gen, "video_description", videoDescriptionPrompt(video.Title, video.Description))
	if err != nil {
		a.log.Warn().Err(err).Str("title", video.Title).Msg("video description generation failed, using source description")
		slot["description"] = textproc.TruncateChars(video.Description, 200)
		return slot
	}
	slot["description"] = field.Text
	return slot
}

func (a *Aggregator) priceSlot(ctx context.Context, item PriceInput) map[string]any {
	question := "Think you know the price?"
	field, err := llm.GenerateField(ctx, a.gen, "gtp_question", priceQuestionPrompt(item.Title, item.Material, item.FunFact))
	if err != nil {
		a.log.Warn().Err(err).Msg("price question generation failed, using fallback")
	} else if field.Text != "" {
		question = field.Text
	}

	link := item.SourceLink
	if link == "" {
		link = "#"
	}

	return map[string]any{
		"title":          item.Title,
		"image_url":      item.ImageURL,
		"material":       item.Material,
		"found_in":       item.FoundIn,
		"where_it_lives": item.WhereItLives,
		"fun_fact":       item.FunFact,
		"question":       question,
		"link":           link,
	}
}

// QuickTip generates a seasonal tip for the month plus an image prompt for
// the tip's illustration.
func (a *Aggregator) QuickTip(ctx context.Context, month string) (tip, imagePrompt string, err error) {
	if a.gen == nil {
		return "", "", llm.ErrUnavailable
	}

	season := SeasonFor(month)
	themes := ThemesFor(month)

	field, err := llm.GenerateField(ctx, a.gen, "quick_tip", quickTipPrompt(month, season, themes))
	if err != nil {
		return "", "", fmt.Errorf("generating quick tip: %w", err)
	}

	imagePrompt = fmt.Sprintf(
		"Photorealistic jewelry care photography, %s setting, elegant flat lay with jewelry cleaning supplies and fine jewelry, soft natural lighting, stock photo quality, %s",
		season, themes[0])
	return field.Text, imagePrompt, nil
}

// Rewrite regenerates one section's text in the requested tone, enforcing
// the section's word limit.
func (a *Aggregator) Rewrite(ctx context.Context, content, tone, section string) (string, error) {
	if a.gen == nil {
		return "", llm.ErrUnavailable
	}
	if content == "" {
		return "", fmt.Errorf("no content to rewrite")
	}

	direction, ok := toneDescriptions[tone]
	if !ok {
		direction = tone
	}
	maxWords, ok := rewriteWordLimits[section]
	if !ok {
		maxWords = generalRewriteLimit
	}

	slot := llm.SlotFor("rewrite")
	raw, err := a.gen.Generate(ctx, rewritePrompt(content, section, direction, maxWords), llm.Options{
		MaxTokens:   slot.MaxTokens,
		Temperature: slot.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("rewriting %s: %w", section, err)
	}
	return textproc.TruncateWords(textproc.Clean(raw), maxWords), nil
}

// SubjectLineOptions pairs candidate subject lines with their preheaders.
type SubjectLineOptions struct {
	SubjectLines []string `json:"subject_lines"`
	Preheaders   []string `json:"preheaders"`
}

// SubjectLines generates candidate subject lines and preheaders from the
// edition's content highlights.
func (a *Aggregator) SubjectLines(ctx context.Context, content core.NewsletterContent, month string, year int) (*SubjectLineOptions, error) {
	if a.gen == nil {
		return nil, llm.ErrUnavailable
	}

	var highlights []string
	if nom, ok := content["news_of_month"].(map[string]any); ok {
		if title, ok := nom["title"].(string); ok && title != "" {
			highlights = append(highlights, "Video: "+title)
		}
	}
	if gtp, ok := content["guess_the_price"].(map[string]any); ok {
		if title, ok := gtp["title"].(string); ok && title != "" {
			highlights = append(highlights, "Guess the Price: "+title)
		}
	}
	if tip, ok := content["quick_tip"].(string); ok && tip != "" {
		highlights = append(highlights, "Quick jewelry tip")
	}
	joined := strings.Join(highlights, "; ")
	if joined == "" {
		joined = "jewelry trends and tips"
	}

	slot := llm.SlotFor("subject_lines")
	raw, err := a.gen.Generate(ctx, subjectLinesPrompt(month, year, joined), llm.Options{
		MaxTokens:   slot.MaxTokens,
		Temperature: slot.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("generating subject lines: %w", err)
	}

	var options SubjectLineOptions
	if err := textproc.ExtractJSON(raw, &options); err != nil {
		return nil, fmt.Errorf("parsing subject lines: %w", err)
	}
	return &options, nil
}

// ImagePrompt is a generated text-to-image prompt for one section.
type ImagePrompt struct {
	Prompt string `json:"prompt"`
	Title  string `json:"title"`
}

// SectionContent is the loose per-section input for image prompt generation.
type SectionContent struct {
	Title       string `json:"title"`
	Tip         string `json:"tip"`
	Content     string `json:"content"`
	Description string `json:"description"`
}

// ImagePrompts generates one image prompt per non-empty section. A failed
// section gets a generic fallback prompt so the caller always has a full set.
func (a *Aggregator) ImagePrompts(ctx context.Context, sections map[string]SectionContent) (map[string]ImagePrompt, error) {
	if a.gen == nil {
		return nil, llm.ErrUnavailable
	}

	prompts := make(map[string]ImagePrompt)
	slot := llm.SlotFor("image_prompt")
	for section, content := range sections {
		title := content.Title
		if title == "" {
			title = content.Tip
		}
		body := content.Content
		if body == "" {
			body = content.Description
		}
		if body == "" {
			body = content.Tip
		}
		if title == "" && body == "" {
			continue
		}

		raw, err := a.gen.Generate(ctx, imagePromptRequest(section, title, body), llm.Options{
			MaxTokens:   slot.MaxTokens,
			Temperature: slot.Temperature,
		})
		if err != nil {
			a.log.Warn().Err(err).Str("section", section).Msg("image prompt generation failed, using fallback")
			prompts[section] = ImagePrompt{
				Prompt: fmt.Sprintf("Photorealistic luxury jewelry photography, elegant display, soft warm lighting, %s, high-end aesthetic", title),
				Title:  title,
			}
			continue
		}
		prompts[section] = ImagePrompt{Prompt: strings.TrimSpace(raw), Title: title}
	}
	return prompts, nil
}

// BrandSuggestion is one proposed edit from the brand check.
type BrandSuggestion struct {
	Section   string `json:"section"`
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
	Reason    string `json:"reason"`
	Severity  string `json:"severity"` // "error" or "warning"
}

// BrandCheckResult is the outcome of reviewing an edition against the
// editorial guidelines. When the model's output cannot be parsed as JSON,
// Raw carries the unparsed review text and the structured fields stay zero.
type BrandCheckResult struct {
	Passed      bool              `json:"passed"`
	Score       int               `json:"score"`
	Suggestions []BrandSuggestion `json:"suggestions"`
	Raw         string            `json:"raw,omitempty"`
}

// BrandCheck reviews the edition's content against the editorial guidelines.
func (a *Aggregator) BrandCheck(ctx context.Context, content core.NewsletterContent) (*BrandCheckResult, error) {
	if a.gen == nil {
		return nil, llm.ErrUnavailable
	}

	encoded, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding content for review: %w", err)
	}

	slot := llm.SlotFor("brand_check")
	raw, err := a.gen.Generate(ctx, brandCheckPrompt(string(encoded)), llm.Options{
		MaxTokens:   slot.MaxTokens,
		Temperature: slot.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("running brand check: %w", err)
	}

	var result BrandCheckResult
	if err := textproc.ExtractJSON(raw, &result); err != nil {
		// An unstructured review is still useful to the editor.
		a.log.Warn().Err(err).Msg("brand check returned unstructured output")
		return &BrandCheckResult{Raw: strings.TrimSpace(raw)}, nil
	}
	return &result, nil
}
