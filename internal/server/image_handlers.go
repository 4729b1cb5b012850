package server

import (
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"time"

	"facet/internal/aggregate"
	"facet/internal/visual"
)

func (s *Server) handleImagePrompts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aggregator == nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	var req struct {
		Sections map[string]aggregate.SectionContent `json:"sections"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	prompts, err := s.deps.Aggregator.ImagePrompts(r.Context(), req.Sections)
	if err != nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"prompts": prompts})
}

// generatedImage is one per-section image generation outcome. A failed
// section keeps its prompt and carries the error instead of failing the
// whole batch.
type generatedImage struct {
	URL    string `json:"url"`
	Prompt string `json:"prompt"`
	Error  string `json:"error,omitempty"`
}

func (s *Server) handleGenerateImages(w http.ResponseWriter, r *http.Request) {
	if s.deps.Images == nil {
		s.respondUnavailable(w, "image generation")
		return
	}

	var req struct {
		Prompts map[string]aggregate.ImagePrompt `json:"prompts"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	images := make(map[string]generatedImage)
	for section, promptData := range req.Prompts {
		if promptData.Prompt == "" {
			continue
		}

		dataURL, err := s.generateSlotImage(r, section, promptData.Prompt)
		if err != nil {
			s.log.Warn().Err(err).Str("section", section).Msg("image generation failed")
			images[section] = generatedImage{Prompt: promptData.Prompt, Error: err.Error()}
			continue
		}
		images[section] = generatedImage{URL: dataURL, Prompt: promptData.Prompt}
	}

	s.respondJSON(w, http.StatusOK, envelope{"images": images})
}

func (s *Server) handleGenerateSingleImage(w http.ResponseWriter, r *http.Request) {
	if s.deps.Images == nil {
		s.respondUnavailable(w, "image generation")
		return
	}

	var req struct {
		Prompt  string `json:"prompt"`
		Section string `json:"section"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Prompt == "" {
		s.respondError(w, http.StatusBadRequest, "prompt is required")
		return
	}
	if req.Section == "" {
		req.Section = "generic"
	}

	dataURL, err := s.generateSlotImage(r, req.Section, req.Prompt)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "generating image: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"image_url": dataURL})
}

// generateSlotImage generates one image at the slot's aspect ratio and
// resizes it to the slot's exact dimensions.
func (s *Server) generateSlotImage(r *http.Request, section, prompt string) (string, error) {
	data, err := s.deps.Images.Generate(r.Context(), prompt, visual.SlotAspect(section))
	if err != nil {
		return "", err
	}

	width, height := visual.SlotSize(section)
	encoded := visual.FitBase64(base64.StdEncoding.EncodeToString(data), width, height)
	return "data:image/png;base64," + encoded, nil
}

func (s *Server) handleResizeImage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ImageURL string `json:"image_url"`
		Width    int    `json:"width"`
		Height   int    `json:"height"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.ImageURL == "" {
		s.respondError(w, http.StatusBadRequest, "image_url is required")
		return
	}
	if req.Width <= 0 {
		req.Width = 300
	}
	if req.Height <= 0 {
		req.Height = 300
	}

	encoded, ok := dataURLPayload(req.ImageURL)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "image_url must be a data: url")
		return
	}

	resized := visual.FitBase64(encoded, req.Width, req.Height)
	s.respondJSON(w, http.StatusOK, envelope{"resized_url": "data:image/png;base64," + resized})
}

func (s *Server) handleUploadImages(w http.ResponseWriter, r *http.Request) {
	if s.deps.Blobs == nil {
		s.respondUnavailable(w, "blob storage")
		return
	}

	var req struct {
		Images map[string]string `json:"images"` // section -> data: url
		Month  string            `json:"month"`
		Year   int               `json:"year"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Images) == 0 {
		s.respondError(w, http.StatusBadRequest, "no images provided")
		return
	}
	if req.Month == "" {
		req.Month = "unknown"
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	timestamp := time.Now().UTC().Format("20060102-150405")
	urls := make(map[string]string)
	for section, dataURL := range req.Images {
		encoded, ok := dataURLPayload(dataURL)
		if !ok {
			continue
		}
		raw, err := base64.StdEncoding.DecodeString(encoded)
		if err != nil {
			s.log.Warn().Str("section", section).Msg("skipping undecodable upload")
			continue
		}

		key := fmt.Sprintf("images/%d/%s/%s-%s.png",
			req.Year, strings.ToLower(req.Month), timestamp, strings.ReplaceAll(section, "_", "-"))
		if err := s.deps.Blobs.Put(r.Context(), key, raw, "image/png"); err != nil {
			s.log.Error().Err(err).Str("section", section).Msg("image upload failed")
			continue
		}

		if s.deps.PublicURL != nil {
			urls[section] = s.deps.PublicURL(key)
		} else {
			urls[section] = key
		}
	}

	s.respondJSON(w, http.StatusOK, envelope{"urls": urls, "count": len(urls)})
}

// dataURLPayload extracts the base64 payload from a data: url. Bare base64
// input passes through unchanged.
func dataURLPayload(input string) (string, bool) {
	if !strings.HasPrefix(input, "data:") {
		return input, true
	}
	_, payload, found := strings.Cut(input, ",")
	if !found || payload == "" {
		return "", false
	}
	return payload, true
}
