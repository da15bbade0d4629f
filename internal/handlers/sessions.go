package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// ListSessions returns summaries of recently archived focus-group
// sessions, newest first.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.Error(w, http.StatusServiceUnavailable, "session archive not configured")
		return
	}

	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	summaries, err := h.archive.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list sessions")
		h.Error(w, http.StatusInternalServerError, "failed to list sessions")
		return
	}

	h.JSON(w, http.StatusOK, summaries)
}

// GetSession returns an archived session by ID.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	if h.archive == nil {
		h.Error(w, http.StatusServiceUnavailable, "session archive not configured")
		return
	}

	id := chi.URLParam(r, "id")

	result, err := h.archive.GetSession(r.Context(), id)
	if err != nil {
		h.logger.Error().Err(err).Str("session_id", id).Msg("failed to get session")
		h.Error(w, http.StatusInternalServerError, "failed to get session")
		return
	}
	if result == nil {
		h.Error(w, http.StatusNotFound, "session not found")
		return
	}

	h.JSON(w, http.StatusOK, result)
}
