package pricehunt

import (
	"context"
	"errors"
	"fmt"

	"facet/internal/core"
	"facet/internal/llm"
	"facet/internal/textproc"
)

// detailsJSON is the shape the model is asked to return.
type detailsJSON struct {
	Material          string `json:"material"`
	FoundIn           string `json:"found_in"`
	WhereItLives      string `json:"where_it_lives"`
	FunFact           string `json:"fun_fact"`
	SuggestedQuestion string `json:"suggested_question"`
}

// GenerateDetails fills the four-field "Guess the Price" item for a chosen
// piece. Each field is held to its word budget after generation.
func (p *Pipeline) GenerateDetails(ctx context.Context, title, sourceURL, summary string) (*core.PriceItem, error) {
	if p.gen == nil {
		return nil, errors.New("pricehunt: no text generator configured")
	}

	slot := llm.SlotFor("gtp_details")
	prompt := fmt.Sprintf(`You are writing the "Guess the Price" section of a consumer jewelry newsletter.

The piece: %s
Source: %s
What we know: %s

Write the item card as JSON:
{
    "material": "what it is made of (max 15 words)",
    "found_in": "where the materials come from (max 15 words)",
    "where_it_lives": "museum, collection, or owner (max 15 words)",
    "fun_fact": "one surprising fact (max 20 words)",
    "suggested_question": "a teaser question for readers (max 15 words)"
}

Return ONLY the JSON object.`, title, sourceURL, summary)

	raw, err := p.gen.Generate(ctx, prompt, llm.Options{MaxTokens: slot.MaxTokens, Temperature: slot.Temperature})
	if err != nil {
		return nil, err
	}

	var parsed detailsJSON
	if err := textproc.ExtractJSON(raw, &parsed); err != nil {
		return nil, err
	}

	return &core.PriceItem{
		Material:     textproc.TruncateWords(textproc.Clean(parsed.Material), 15),
		FoundIn:      textproc.TruncateWords(textproc.Clean(parsed.FoundIn), 15),
		WhereItLives: textproc.TruncateWords(textproc.Clean(parsed.WhereItLives), 15),
		FunFact:      textproc.TruncateWords(textproc.Clean(parsed.FunFact), 20),
		Question:     textproc.TruncateWords(textproc.Clean(parsed.SuggestedQuestion), 15),
		SourceURL:    sourceURL,
	}, nil
}
