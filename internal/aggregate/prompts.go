package aggregate

import (
	"fmt"
	"strings"
)

func introPrompt(month, highlights string) string {
	return fmt.Sprintf(`Write a witty, engaging 1-2 sentence newsletter intro for the %s issue of a consumer jewelry newsletter. The intro should:
- Open with a pop culture reference, seasonal hook, or clever observation
- Tie back to jewelry or the content highlights
- Feel like a fun friend texting, conversational and warm
- Max 40 words
- Do NOT include any label, prefix, or heading like 'Newsletter Intro:', return ONLY the intro text itself

Content highlights this month: %s`, month, highlights)
}

func whatsInsidePrompt(sections []string) string {
	var b strings.Builder
	for _, section := range sections {
		fmt.Fprintf(&b, "- %s\n", section)
	}
	return fmt.Sprintf(`Generate 4 'What's Inside' bullet items for a consumer jewelry newsletter. Each bullet should:
- Start with a relevant emoji
- Tease the section content without giving everything away
- Be one short, catchy line
- Build curiosity

Sections to tease:
%s`, b.String())
}

func videoDescriptionPrompt(title, description string) string {
	return fmt.Sprintf(`Write an 80-word description for a YouTube video to include in a consumer jewelry newsletter.

Video title: %s
Video description: %s

Guidelines:
- 3-4 sentences summarizing the key takeaway
- Consumer-friendly language, no industry jargon
- End with a hook encouraging the reader to watch
- Conversational, engaging tone
- Max 80 words
- Do NOT include any label, prefix, or title like 'Featured Video:', 'Video Description:', or 'News of the Month:', return ONLY the description paragraph`, title, clip(description, 500))
}

func priceQuestionPrompt(title, material, funFact string) string {
	return fmt.Sprintf(`Write a teasing question for a "Guess the Price" section about this jewelry piece.

Item: %s
Material: %s
Fun Fact: %s

Write ONE short, teasing question (max 15 words) that builds suspense about the price.
Examples: "Think you know what this rare gem is worth?", "Can you guess the price tag on this iconic piece?"

Return ONLY the question text.`, title, material, funFact)
}

func quickTipPrompt(month, season string, themes []string) string {
	return fmt.Sprintf(`Write a quick jewelry care or styling tip for the %s issue of a consumer newsletter.

Season: %s
Suggested themes: %s

Guidelines:
- Practical, actionable advice readers can use immediately
- Tied to the current season or upcoming events
- Friendly, helpful tone, like a knowledgeable friend
- 1-2 short paragraphs
- Max 60 words
- Do not use bullet points, flowing prose only
- Do NOT include a title, heading, or label, return ONLY the tip text`, month, season, strings.Join(themes, ", "))
}

func rewritePrompt(content, section, toneDirection string, maxWords int) string {
	return fmt.Sprintf(`Rewrite this content for a consumer jewelry newsletter.

Section: %s
Tone: %s
Max words: %d

Original content:
%s

Guidelines:
- Consumer-friendly language (not B2B)
- Engaging, conversational tone
- Max %d words
- Use serial commas, hyphenate lab-grown, spell out numbers one through nine

Return ONLY the rewritten text, nothing else.`, section, toneDirection, maxWords, content, maxWords)
}

func subjectLinesPrompt(month string, year int, highlights string) string {
	return fmt.Sprintf(`Generate 5 email subject lines AND 5 matching preheader texts for a consumer jewelry newsletter.

Month: %s %d
Key content: %s

Subject Line Guidelines:
- Mix of curiosity-driven, benefit-driven, and playful approaches
- 40-60 characters ideal
- Use emojis sparingly (max 1 per subject line, or none)
- Reference specific content from this issue when possible
- No clickbait

Preheader Guidelines:
- 40-90 characters ideal
- Complement (don't repeat) the subject line
- Each preheader should pair with the corresponding subject line

Return as JSON: {"subject_lines": ["...", ...], "preheaders": ["...", ...]}`, month, year, highlights)
}

func brandCheckPrompt(contentJSON string) string {
	return fmt.Sprintf(`Review this consumer newsletter content against the editorial guidelines.

Check for:
1. Tone: Friendly, fun, engaging (not B2B or overly formal)
2. Serial/Oxford comma usage
3. Em dashes with no spaces
4. Numbers: spell out 1-9, numerals for 10+
5. Percentages use %% symbol
6. Lab-grown is hyphenated
7. Title case on section headers
8. Inclusive language (partner/spouse, singular they)
9. No fear-based insurance language
10. No B2B jargon
11. Word count limits respected

Content to review:
%s

Word count limits:
- Intro: 40 words
- Video descriptions: 80 words each
- Quick Tip: 60 words
- Guess the Price detail fields: 20 words each

Return a JSON object with:
- passed: boolean (true if no issues found)
- score: number (0-100)
- suggestions: array of objects, each with:
  - section: one of 'intro', 'news_of_month', 'trend_alert', 'guess_the_price', 'quick_tip'
  - original: the exact text that needs changing (copy it verbatim from the content)
  - suggested: the corrected replacement text
  - reason: brief explanation of why this change is needed
  - severity: 'error' or 'warning'

IMPORTANT: For each suggestion, 'original' must be an exact substring from the content so it can be found and highlighted.`, clip(contentJSON, 4000))
}

func imagePromptRequest(section, title, body string) string {
	return fmt.Sprintf(`Create a text-to-image prompt for a consumer jewelry newsletter image.

Section: %s
Title: "%s"
Content: "%s..."

Requirements:
- Photorealistic, professional photography style
- Stock photo aesthetic, luxury jewelry photography
- Elegant lighting, warm tones, aspirational feel
- No text overlays in the image
- Clean, well-lit, high-quality imagery
- Consumer-facing aesthetic (not B2B)

Output ONLY the image generation prompt, nothing else.`, section, title, clip(body, 400))
}

func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
