// Package api provides HTTP API handlers for the Drishti focus monitor.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/drishti/internal/store"
)

// SessionsHandler handles HTTP requests for session resources.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/sessions, /api/sessions/{id}, /api/sessions/{id}/history
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		// Collection endpoint: /api/sessions
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.list(w, r)
		return
	}

	if id, ok := strings.CutSuffix(path, "/history"); ok {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.history(w, r, id)
		return
	}

	// Item endpoint: /api/sessions/{id}
	id := path
	switch r.Method {
	case http.MethodGet:
		h.get(w, r, id)
	case http.MethodDelete:
		h.delete(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Request and response types

type sessionResponse struct {
	ID                string  `json:"id"`
	StartedAt         string  `json:"started_at"`
	EndedAt           string  `json:"ended_at"`
	FocusedSeconds    float64 `json:"focused_seconds"`
	DistractedSeconds float64 `json:"distracted_seconds"`
	DistractionCount  int     `json:"distraction_count"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type historyRecordResponse struct {
	At    string  `json:"at"`
	Level float64 `json:"level"`
	Mood  string  `json:"mood"`
}

type historyResponse struct {
	Records []historyRecordResponse `json:"records"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a store.Session to a sessionResponse.
func toResponse(s *store.Session) sessionResponse {
	return sessionResponse{
		ID:                s.ID,
		StartedAt:         s.StartedAt.Format(time.RFC3339),
		EndedAt:           s.EndedAt.Format(time.RFC3339),
		FocusedSeconds:    s.FocusedSeconds,
		DistractedSeconds: s.DistractedSeconds,
		DistractionCount:  s.DistractionCount,
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// list handles GET /api/sessions and returns all sessions, newest first.
func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}

	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id} and returns a single session.
func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, toResponse(session))
}

// history handles GET /api/sessions/{id}/history and returns the attention
// samples recorded during the session.
func (h *SessionsHandler) history(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := h.store.Sessions().GetByID(id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	records, err := h.store.Sessions().History(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get history")
		return
	}

	response := historyResponse{
		Records: make([]historyRecordResponse, 0, len(records)),
	}
	for _, rec := range records {
		response.Records = append(response.Records, historyRecordResponse{
			At:    rec.At.Format(time.RFC3339),
			Level: rec.Level,
			Mood:  rec.Mood,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// delete handles DELETE /api/sessions/{id} and removes a session.
func (h *SessionsHandler) delete(w http.ResponseWriter, r *http.Request, id string) {
	err := h.store.Sessions().Delete(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete session")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
