// Package llm wraps the Gemini text-generation API and defines the
// editorial contract each newsletter slot imposes on generated copy.
package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"facet/internal/logger"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

// ErrUnavailable indicates no API key is configured.
var ErrUnavailable = errors.New("llm: client not configured")

// Options tunes one generation call.
type Options struct {
	MaxTokens   int32   // Maximum number of tokens to generate
	Temperature float32 // Temperature for randomness (0.0 to 1.0)
}

// Generator is the text-generation interface the aggregation layer depends
// on.
type Generator interface {
	Generate(ctx context.Context, prompt string, opts Options) (string, error)
	ModelName() string
}

// Client is a Gemini-backed Generator.
type Client struct {
	gClient   *genai.Client
	modelName string
	log       zerolog.Logger
}

// NewClient creates an LLM client. Returns ErrUnavailable when no API key is
// set so the caller can report the text service as down instead of failing
// at the first request.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	if modelName == "" {
		modelName = DefaultModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{
		gClient:   gClient,
		modelName: modelName,
		log:       logger.With("llm"),
	}, nil
}

// ModelName returns the configured model.
func (c *Client) ModelName() string {
	return c.modelName
}

// Generate runs one text-generation call and returns the raw model output.
func (c *Client) Generate(ctx context.Context, prompt string, opts Options) (string, error) {
	contents := []*genai.Content{{
		Parts: []*genai.Part{{Text: prompt}},
		Role:  "user",
	}}

	var config *genai.GenerateContentConfig
	if opts.MaxTokens > 0 || opts.Temperature > 0 {
		config = &genai.GenerateContentConfig{}
		if opts.MaxTokens > 0 {
			config.MaxOutputTokens = opts.MaxTokens
		}
		if opts.Temperature > 0 {
			temp := opts.Temperature
			config.Temperature = &temp
		}
	}

	resp, err := c.gClient.Models.GenerateContent(ctx, c.modelName, contents, config)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	c.log.Debug().Int("prompt_len", len(prompt)).Int("response_len", len(text)).Msg("generated text")
	return text, nil
}
