package llm

import (
	"context"

	"github.com/google/uuid"

	"facet/internal/core"
	"facet/internal/textproc"
)

// Slot is the editorial contract for one newsletter slot: a token budget
// for the call, a temperature (higher for creative copy, lower for factual
// checks), and a word limit enforced on the cleaned result.
type Slot struct {
	Name        string
	MaxTokens   int32
	Temperature float32
	MaxWords    int // 0 = unconstrained
}

// Slots maps slot names to their contracts.
var Slots = map[string]Slot{
	"intro":             {Name: "intro", MaxTokens: 150, Temperature: 0.8, MaxWords: 40},
	"whats_inside":      {Name: "whats_inside", MaxTokens: 300, Temperature: 0.8},
	"video_description": {Name: "video_description", MaxTokens: 200, Temperature: 0.6, MaxWords: 80},
	"gtp_question":      {Name: "gtp_question", MaxTokens: 60, Temperature: 0.7, MaxWords: 15},
	"gtp_details":       {Name: "gtp_details", MaxTokens: 400, Temperature: 0.5},
	"quick_tip":         {Name: "quick_tip", MaxTokens: 200, Temperature: 0.7, MaxWords: 60},
	"subject_lines":     {Name: "subject_lines", MaxTokens: 500, Temperature: 0.8},
	"brand_check":       {Name: "brand_check", MaxTokens: 1000, Temperature: 0.3},
	"rewrite":           {Name: "rewrite", MaxTokens: 300, Temperature: 0.7},
	"image_prompt":      {Name: "image_prompt", MaxTokens: 150, Temperature: 0.5},
}

// defaultSlot covers ad-hoc generations with no registered contract.
var defaultSlot = Slot{MaxTokens: 300, Temperature: 0.7}

// SlotFor returns the contract for a slot name, or a permissive default.
func SlotFor(name string) Slot {
	if slot, ok := Slots[name]; ok {
		return slot
	}
	slot := defaultSlot
	slot.Name = name
	return slot
}

// GenerateField runs one slot-bound generation: call the model with the
// slot's budget, strip AI artifacts from the result, then enforce the word
// limit by truncating at a word boundary.
func GenerateField(ctx context.Context, g Generator, slotName, prompt string) (*core.GeneratedField, error) {
	slot := SlotFor(slotName)

	raw, err := g.Generate(ctx, prompt, Options{MaxTokens: slot.MaxTokens, Temperature: slot.Temperature})
	if err != nil {
		return nil, err
	}

	text := textproc.Clean(raw)
	text = textproc.TruncateWords(text, slot.MaxWords)

	return &core.GeneratedField{
		ID:       uuid.NewString(),
		Slot:     slot.Name,
		Text:     text,
		MaxWords: slot.MaxWords,
		Model:    g.ModelName(),
	}, nil
}
