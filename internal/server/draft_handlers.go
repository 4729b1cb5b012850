package server

import (
	"errors"
	"net/http"

	"facet/internal/core"
	"facet/internal/store"
)

func (s *Server) handleSaveDraft(w http.ResponseWriter, r *http.Request) {
	if s.deps.Drafts == nil {
		s.respondUnavailable(w, "draft storage")
		return
	}

	var draft core.Draft
	if !s.decodeJSON(w, r, &draft) {
		return
	}

	key, err := s.deps.Drafts.Save(r.Context(), draft)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"key": key})
}

func (s *Server) handleListDrafts(w http.ResponseWriter, r *http.Request) {
	if s.deps.Drafts == nil {
		s.respondUnavailable(w, "draft storage")
		return
	}

	names, err := s.deps.Drafts.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "listing drafts: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"drafts": names})
}

func (s *Server) handleLoadDraft(w http.ResponseWriter, r *http.Request) {
	s.loadDraft(w, r, false)
}

func (s *Server) handleLoadPublished(w http.ResponseWriter, r *http.Request) {
	s.loadDraft(w, r, true)
}

func (s *Server) loadDraft(w http.ResponseWriter, r *http.Request, published bool) {
	if s.deps.Drafts == nil {
		s.respondUnavailable(w, "draft storage")
		return
	}

	month, year, editor, ok := draftParams(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "month, year, and editor are required")
		return
	}

	var draft *core.Draft
	var err error
	if published {
		draft, err = s.deps.Drafts.LoadPublished(r.Context(), month, year, editor)
	} else {
		draft, err = s.deps.Drafts.Load(r.Context(), month, year, editor)
	}
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "no draft found")
			return
		}
		s.respondError(w, http.StatusBadGateway, "loading draft: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"draft": draft})
}

func (s *Server) handlePublishDraft(w http.ResponseWriter, r *http.Request) {
	if s.deps.Drafts == nil {
		s.respondUnavailable(w, "draft storage")
		return
	}

	var req struct {
		Month  string `json:"month"`
		Year   string `json:"year"`
		Editor string `json:"editor"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if req.Month == "" || req.Year == "" || req.Editor == "" {
		s.respondError(w, http.StatusBadRequest, "month, year, and editor are required")
		return
	}

	if err := s.deps.Drafts.Publish(r.Context(), req.Month, req.Year, req.Editor); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			s.respondError(w, http.StatusNotFound, "no draft found to publish")
			return
		}
		s.respondError(w, http.StatusBadGateway, "publishing draft: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"published": true})
}

func (s *Server) handleDeleteDraft(w http.ResponseWriter, r *http.Request) {
	if s.deps.Drafts == nil {
		s.respondUnavailable(w, "draft storage")
		return
	}

	month, year, editor, ok := draftParams(r)
	if !ok {
		s.respondError(w, http.StatusBadRequest, "month, year, and editor are required")
		return
	}

	if err := s.deps.Drafts.Delete(r.Context(), month, year, editor); err != nil {
		s.respondError(w, http.StatusBadGateway, "deleting draft: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"deleted": true})
}

func (s *Server) handleListPublished(w http.ResponseWriter, r *http.Request) {
	if s.deps.Drafts == nil {
		s.respondUnavailable(w, "draft storage")
		return
	}

	names, err := s.deps.Drafts.ListPublished(r.Context())
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "listing published: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"published": names})
}

func draftParams(r *http.Request) (month, year, editor string, ok bool) {
	q := r.URL.Query()
	month, year, editor = q.Get("month"), q.Get("year"), q.Get("editor")
	return month, year, editor, month != "" && year != "" && editor != ""
}

func (s *Server) handleListSaved(w http.ResponseWriter, r *http.Request) {
	if s.deps.Saved == nil {
		s.respondUnavailable(w, "saved articles storage")
		return
	}

	items, err := s.deps.Saved.List(r.Context())
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "listing saved articles: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"articles": items, "count": len(items)})
}

func (s *Server) handleAddSaved(w http.ResponseWriter, r *http.Request) {
	if s.deps.Saved == nil {
		s.respondUnavailable(w, "saved articles storage")
		return
	}

	var result core.SearchResult
	if !s.decodeJSON(w, r, &result) {
		return
	}
	if result.URL == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	items, err := s.deps.Saved.Add(r.Context(), result)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "saving article: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"articles": items, "count": len(items)})
}

func (s *Server) handleRemoveSaved(w http.ResponseWriter, r *http.Request) {
	if s.deps.Saved == nil {
		s.respondUnavailable(w, "saved articles storage")
		return
	}

	url := r.URL.Query().Get("url")
	if url == "" {
		s.respondError(w, http.StatusBadRequest, "url is required")
		return
	}

	items, err := s.deps.Saved.Remove(r.Context(), url)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "removing article: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"articles": items, "count": len(items)})
}
