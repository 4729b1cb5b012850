// Package render substitutes assembled newsletter content into the fixed
// HTML email template. Placeholders use the {{NAME}} form; missing content
// falls back to neutral defaults so a partially-filled draft still renders.
package render

import (
	_ "embed"
	"fmt"
	"strings"
	"time"

	"facet/internal/core"
)

//go:embed templates/email.html
var emailTemplate string

// ImageRef points at an uploaded slot image.
type ImageRef struct {
	URL string `json:"url"`
}

// Request carries everything the template needs for one render.
type Request struct {
	Content   core.NewsletterContent `json:"content"`
	Month     string                 `json:"month"`
	Year      int                    `json:"year"`
	Preheader string                 `json:"preheader"`
	Images    map[string]ImageRef    `json:"images"`
}

const maxAgendaItems = 4

// Email renders the consumer newsletter email and returns the final HTML.
func Email(req Request) (string, error) {
	if emailTemplate == "" {
		return "", fmt.Errorf("email template is empty")
	}

	month := req.Month
	if month == "" {
		month = time.Now().Format("January")
	}
	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}
	preheader := req.Preheader
	if preheader == "" {
		preheader = fmt.Sprintf("Your monthly jewelry inspiration - %s %d", month, year)
	}

	r := strings.NewReplacer(buildPairs(req, month, year, preheader)...)
	return r.Replace(emailTemplate), nil
}

func buildPairs(req Request, month string, year int, preheader string) []string {
	content := req.Content
	pairs := []string{
		"{{MONTH}}", month,
		"{{YEAR}}", fmt.Sprintf("%d", year),
		"{{PREHEADER}}", preheader,
		"{{INTRO_TEXT}}", stringAt(content, "intro", fmt.Sprintf("Welcome to the %s edition!", month)),
		"{{AGENDA_ITEMS}}", agendaHTML(listAt(content, "agenda_items")),
		"{{QUICK_TIP_TEXT}}", stringAt(content, "quick_tip", ""),
	}

	pairs = append(pairs, videoPairs("NEWS_MONTH", mapAt(content, "news_of_month"), "News of the Month")...)
	pairs = append(pairs, videoPairs("TREND", mapAt(content, "trend_alert"), "Trend Alert")...)
	pairs = append(pairs, blogPairs(listAt(content, "blog_articles"))...)
	pairs = append(pairs, pricePairs(mapAt(content, "guess_the_price"), req.Images)...)
	pairs = append(pairs, "{{QUICK_TIP_IMAGE_BLOCK}}", quickTipImageHTML(req.Images))
	return pairs
}

func videoPairs(prefix string, video map[string]any, defaultTitle string) []string {
	return []string{
		"{{" + prefix + "_TITLE}}", stringIn(video, "title", defaultTitle),
		"{{" + prefix + "_THUMBNAIL}}", stringIn(video, "thumbnail_url", ""),
		"{{" + prefix + "_DESCRIPTION}}", stringIn(video, "description", ""),
		"{{" + prefix + "_VIDEO_URL}}", stringIn(video, "video_url", "#"),
	}
}

func blogPairs(blogs []any) []string {
	var pairs []string
	for i := 0; i < 2; i++ {
		var blog map[string]any
		if i < len(blogs) {
			blog, _ = blogs[i].(map[string]any)
		}
		n := fmt.Sprintf("%d", i+1)
		pairs = append(pairs,
			"{{BLOG_"+n+"_TITLE}}", stringIn(blog, "title", "Blog Article"),
			"{{BLOG_"+n+"_IMAGE}}", stringIn(blog, "featured_image_url", ""),
			"{{BLOG_"+n+"_URL}}", stringIn(blog, "url", "#"),
		)
	}
	return pairs
}

func pricePairs(gtp map[string]any, images map[string]ImageRef) []string {
	if gtp == nil {
		return []string{
			"{{GTP_TITLE}}", "", "{{GTP_IMAGE}}", "", "{{GTP_MATERIAL}}", "",
			"{{GTP_FOUND_IN}}", "", "{{GTP_WHERE_IT_LIVES}}", "", "{{GTP_FUN_FACT}}", "",
			"{{GTP_QUESTION}}", "", "{{GTP_LINK}}", "",
		}
	}

	// An uploaded slot image overrides whatever URL the content carries.
	image := stringIn(gtp, "image_url", "")
	if ref, ok := images["guess_the_price"]; ok && ref.URL != "" {
		image = ref.URL
	}

	return []string{
		"{{GTP_TITLE}}", stringIn(gtp, "title", "Guess the Price"),
		"{{GTP_IMAGE}}", image,
		"{{GTP_MATERIAL}}", stringIn(gtp, "material", ""),
		"{{GTP_FOUND_IN}}", stringIn(gtp, "found_in", ""),
		"{{GTP_WHERE_IT_LIVES}}", stringIn(gtp, "where_it_lives", ""),
		"{{GTP_FUN_FACT}}", stringIn(gtp, "fun_fact", ""),
		"{{GTP_QUESTION}}", stringIn(gtp, "question", "Think you know the price?"),
		"{{GTP_LINK}}", stringIn(gtp, "link", "#"),
	}
}

func agendaHTML(items []any) string {
	var b strings.Builder
	count := 0
	for _, item := range items {
		if count == maxAgendaItems {
			break
		}
		text, ok := item.(string)
		if !ok {
			text = fmt.Sprintf("%v", item)
		}
		fmt.Fprintf(&b, `<tr>
<td style="padding-bottom: 10px;">
<p style="margin: 0; font-family: Arial, Helvetica, sans-serif; font-size: 16px; line-height: 24px; color: #282e40;">%s</p>
</td>
</tr>`, text)
		count++
	}
	return b.String()
}

func quickTipImageHTML(images map[string]ImageRef) string {
	ref, ok := images["quick_tip"]
	if !ok || ref.URL == "" {
		return ""
	}
	return fmt.Sprintf(`
<table role="presentation" cellspacing="0" cellpadding="0" border="0" width="100%%" style="margin-top: 20px;">
<tr>
<td>
<img src="%s" width="590" alt="Quick Tip" style="width: 100%%; max-width: 590px; height: auto; display: block; border-radius: 6px;">
</td>
</tr>
</table>`, ref.URL)
}

// stringAt reads a string field from newsletter content, falling back when
// the key is absent or not a string.
func stringAt(content core.NewsletterContent, key, fallback string) string {
	return stringIn(map[string]any(content), key, fallback)
}

func stringIn(m map[string]any, key, fallback string) string {
	if m == nil {
		return fallback
	}
	if s, ok := m[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func mapAt(content core.NewsletterContent, key string) map[string]any {
	if content == nil {
		return nil
	}
	m, _ := content[key].(map[string]any)
	return m
}

func listAt(content core.NewsletterContent, key string) []any {
	if content == nil {
		return nil
	}
	list, _ := content[key].([]any)
	return list
}
