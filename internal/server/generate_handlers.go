package server

import (
	"errors"
	"net/http"
	"time"

	"facet/internal/aggregate"
	"facet/internal/core"
	"facet/internal/llm"
	"facet/internal/pricehunt"
)

func (s *Server) handlePriceSearch(w http.ResponseWriter, r *http.Request) {
	if s.deps.Pipeline == nil {
		s.respondUnavailable(w, "search provider")
		return
	}

	var req struct {
		Query  string `json:"query"`
		Expand bool   `json:"expand_search"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		s.respondError(w, http.StatusBadRequest, "query is required")
		return
	}

	results, err := s.deps.Pipeline.Search(r.Context(), req.Query, req.Expand)
	if err != nil {
		if errors.Is(err, pricehunt.ErrUnavailable) {
			s.respondUnavailable(w, "search provider")
			return
		}
		s.respondError(w, http.StatusBadGateway, "searching: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"results": results, "count": len(results)})
}

func (s *Server) handlePriceDetails(w http.ResponseWriter, r *http.Request) {
	if s.deps.Pipeline == nil {
		s.respondUnavailable(w, "search provider")
		return
	}

	var req struct {
		Title   string `json:"title"`
		URL     string `json:"url"`
		Snippet string `json:"snippet"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Title == "" {
		s.respondError(w, http.StatusBadRequest, "title is required")
		return
	}

	details, err := s.deps.Pipeline.GenerateDetails(r.Context(), req.Title, req.URL, req.Snippet)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "generating details: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"details": details})
}

func (s *Server) handleGenerateNewsletter(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aggregator == nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	var req aggregate.NewsletterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Month == "" {
		req.Month = time.Now().Format("January")
	}

	content, err := s.deps.Aggregator.GenerateNewsletter(r.Context(), req)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			s.respondUnavailable(w, "text generation")
			return
		}
		s.respondError(w, http.StatusBadGateway, "generating newsletter: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"generated": content, "month": req.Month})
}

func (s *Server) handleGenerateQuickTip(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aggregator == nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	var req struct {
		Month string `json:"month"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Month == "" {
		req.Month = time.Now().Format("January")
	}

	tip, imagePrompt, err := s.deps.Aggregator.QuickTip(r.Context(), req.Month)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			s.respondUnavailable(w, "text generation")
			return
		}
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"tip": tip, "image_prompt": imagePrompt})
}

func (s *Server) handleRewriteContent(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aggregator == nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	var req struct {
		Content string `json:"content"`
		Tone    string `json:"tone"`
		Section string `json:"section"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Tone == "" {
		req.Tone = "friendly"
	}
	if req.Section == "" {
		req.Section = "general"
	}

	rewritten, err := s.deps.Aggregator.Rewrite(r.Context(), req.Content, req.Tone, req.Section)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			s.respondUnavailable(w, "text generation")
			return
		}
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{
		"rewritten": rewritten,
		"tone":      req.Tone,
		"section":   req.Section,
	})
}

func (s *Server) handleBrandCheck(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aggregator == nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	var req struct {
		Content core.NewsletterContent `json:"content"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result, err := s.deps.Aggregator.BrandCheck(r.Context(), req.Content)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			s.respondUnavailable(w, "text generation")
			return
		}
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"brand_check": result})
}

func (s *Server) handleSubjectLines(w http.ResponseWriter, r *http.Request) {
	if s.deps.Aggregator == nil {
		s.respondUnavailable(w, "text generation")
		return
	}

	var req struct {
		Content core.NewsletterContent `json:"content"`
		Month   string                 `json:"month"`
		Year    int                    `json:"year"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Month == "" {
		req.Month = time.Now().Format("January")
	}
	if req.Year == 0 {
		req.Year = time.Now().Year()
	}

	options, err := s.deps.Aggregator.SubjectLines(r.Context(), req.Content, req.Month, req.Year)
	if err != nil {
		if errors.Is(err, llm.ErrUnavailable) {
			s.respondUnavailable(w, "text generation")
			return
		}
		s.respondError(w, http.StatusBadGateway, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{
		"subject_lines": options.SubjectLines,
		"preheaders":    options.Preheaders,
	})
}
