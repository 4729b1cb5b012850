package aggregate

import "strings"

// monthSeason maps a lowercase month name to its editorial season.
var monthSeason = map[string]string{
	"january":   "winter",
	"february":  "winter",
	"march":     "spring",
	"april":     "spring",
	"may":       "spring",
	"june":      "summer",
	"july":      "summer",
	"august":    "summer",
	"september": "fall",
	"october":   "fall",
	"november":  "fall",
	"december":  "winter",
}

// seasonalThemes suggests quick-tip angles per month.
var seasonalThemes = map[string][]string{
	"january":   {"New Year jewelry care reset", "winter storage tips", "post-holiday cleaning"},
	"february":  {"Valentine's Day gift care", "engagement ring maintenance", "winter skin and jewelry"},
	"march":     {"spring cleaning for jewelry", "switching seasonal pieces", "preparing for spring events"},
	"april":     {"spring event jewelry", "rain and jewelry care", "gemstone spotlight"},
	"may":       {"wedding season prep", "Mother's Day jewelry care", "outdoor event tips"},
	"june":      {"summer jewelry care", "beach and pool safety", "wedding jewelry tips"},
	"july":      {"travel with jewelry", "heat and humidity protection", "summer styling"},
	"august":    {"back-to-school jewelry", "late summer care", "jewelry organization"},
	"september": {"fall transition pieces", "Labor Day to layering", "appraisal season reminder"},
	"october":   {"fall jewelry trends", "costume vs. fine jewelry", "Halloween sparkle"},
	"november":  {"holiday shopping prep", "Black Friday jewelry tips", "gift guide insights"},
	"december":  {"holiday party jewelry", "year-end appraisals", "winter protection tips"},
}

// toneDescriptions expands a tone keyword into writing direction for the
// rewrite prompt. Unknown tones pass through verbatim.
var toneDescriptions = map[string]string{
	"friendly":     "Friendly and warm, like texting a knowledgeable friend",
	"witty":        "Witty and clever, with wordplay and pop culture references",
	"informative":  "Informative but engaging, clear and accessible",
	"playful":      "Playful and fun, light-hearted with personality",
	"professional": "Professional but approachable, polished yet warm",
}

// rewriteWordLimits caps rewritten text per section; unknown sections get
// the general limit.
var rewriteWordLimits = map[string]int{
	"intro":                    40,
	"video_description":        80,
	"quick_tip":                60,
	"guess_the_price_question": 30,
}

const generalRewriteLimit = 100

// SeasonFor returns the season for a month name, defaulting to winter.
func SeasonFor(month string) string {
	if season, ok := monthSeason[strings.ToLower(month)]; ok {
		return season
	}
	return "winter"
}

// ThemesFor returns the suggested quick-tip themes for a month.
func ThemesFor(month string) []string {
	if themes, ok := seasonalThemes[strings.ToLower(month)]; ok {
		return themes
	}
	return []string{"jewelry care tips"}
}
