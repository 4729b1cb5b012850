package server

import (
	"encoding/json"
	"net/http"
)

// envelope is the common response shape: success flag plus payload fields.
type envelope map[string]any

// respondJSON writes data with success set true.
func (s *Server) respondJSON(w http.ResponseWriter, status int, data envelope) {
	if data == nil {
		data = envelope{}
	}
	data["success"] = true
	s.write(w, status, data)
}

// respondError writes a failed envelope with a human-readable message.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.write(w, status, envelope{"success": false, "error": message})
}

// respondUnavailable reports a missing adapter dependency.
func (s *Server) respondUnavailable(w http.ResponseWriter, what string) {
	s.respondError(w, http.StatusServiceUnavailable, what+" is not configured")
}

func (s *Server) write(w http.ResponseWriter, status int, data envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error().Err(err).Msg("failed to encode json response")
	}
}

// decodeJSON parses the request body into v, reporting a 400 on failure.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, envelope{"status": "ok"})
}
