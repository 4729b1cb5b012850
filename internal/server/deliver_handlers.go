package server

import (
	"net/http"

	"facet/internal/deliver"
	"facet/internal/render"
)

func (s *Server) handleRenderEmail(w http.ResponseWriter, r *http.Request) {
	var req render.Request
	if !s.decodeJSON(w, r, &req) {
		return
	}

	html, err := render.Email(req)
	if err != nil {
		s.respondError(w, http.StatusInternalServerError, "rendering template: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{
		"html":  html,
		"month": req.Month,
		"year":  req.Year,
	})
}

func (s *Server) handleSendPreview(w http.ResponseWriter, r *http.Request) {
	if s.deps.Email == nil {
		s.respondUnavailable(w, "email delivery")
		return
	}

	var req struct {
		Recipients []string `json:"recipients"`
		Subject    string   `json:"subject"`
		HTML       string   `json:"html"`
	}
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if len(req.Recipients) == 0 {
		s.respondError(w, http.StatusBadRequest, "recipients are required")
		return
	}
	if req.HTML == "" {
		s.respondError(w, http.StatusBadRequest, "html is required")
		return
	}
	if req.Subject == "" {
		req.Subject = "Newsletter Preview"
	}

	results := s.deps.Email.SendPreview(r.Context(), req.Recipients, req.Subject, req.HTML)
	sent := 0
	for _, result := range results {
		if result.Success {
			sent++
		}
	}

	s.respondJSON(w, http.StatusOK, envelope{
		"results": results,
		"sent":    sent,
		"failed":  len(results) - sent,
	})
}

func (s *Server) handlePushToCRM(w http.ResponseWriter, r *http.Request) {
	if s.deps.CRM == nil {
		s.respondUnavailable(w, "crm")
		return
	}

	var msg deliver.CRMMessage
	if !s.decodeJSON(w, r, &msg) {
		return
	}
	if msg.Name == "" || msg.HTML == "" {
		s.respondError(w, http.StatusBadRequest, "name and html are required")
		return
	}

	id, err := s.deps.CRM.PushMessage(r.Context(), msg)
	if err != nil {
		s.respondError(w, http.StatusBadGateway, "pushing to crm: "+err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, envelope{"message_id": id})
}
