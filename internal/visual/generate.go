// Package visual generates newsletter images and post-processes them to the
// fixed dimensions each slot expects.
package visual

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"

	"facet/internal/logger"
)

// DefaultModel is used when no image model is configured.
const DefaultModel = "imagen-3.0-generate-002"

// ErrUnavailable indicates no API key is configured.
var ErrUnavailable = errors.New("visual: image client not configured")

// SlotSize returns the target pixel dimensions for a newsletter slot.
func SlotSize(slot string) (width, height int) {
	switch slot {
	case "quick_tip":
		return 490, 300
	case "guess_the_price":
		return 250, 250
	default:
		return 300, 300
	}
}

// SlotAspect returns the generation aspect ratio matching a slot's target
// dimensions.
func SlotAspect(slot string) string {
	if slot == "quick_tip" {
		return "16:9"
	}
	return "1:1"
}

// ImageClient generates images via the Imagen API.
type ImageClient struct {
	gClient *genai.Client
	model   string
	log     zerolog.Logger
}

// NewImageClient creates an image generation client. Returns ErrUnavailable
// when no API key is set.
func NewImageClient(ctx context.Context, apiKey, model string) (*ImageClient, error) {
	if apiKey == "" {
		return nil, ErrUnavailable
	}
	if model == "" {
		model = DefaultModel
	}

	gClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create image client: %w", err)
	}

	return &ImageClient{gClient: gClient, model: model, log: logger.With("visual")}, nil
}

// Generate produces one image for the prompt and returns its raw bytes.
func (c *ImageClient) Generate(ctx context.Context, prompt, aspectRatio string) ([]byte, error) {
	if aspectRatio == "" {
		aspectRatio = "1:1"
	}

	resp, err := c.gClient.Models.GenerateImages(ctx, c.model, prompt, &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    aspectRatio,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate image: %w", err)
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, fmt.Errorf("no image in generation response")
	}

	c.log.Debug().Str("aspect", aspectRatio).Int("bytes", len(resp.GeneratedImages[0].Image.ImageBytes)).Msg("generated image")
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}
