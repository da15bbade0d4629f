package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meshai-labs/meshai/internal/session"
)

// SimpleInteractionRequest represents the simple interaction request.
type SimpleInteractionRequest struct {
	Question string   `json:"question"`
	Personas []string `json:"personas"`
}

// SimpleInteraction asks every requested persona the question once in
// parallel, with no shared discussion context.
func (h *Handler) SimpleInteraction(w http.ResponseWriter, r *http.Request) {
	var req SimpleInteractionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Question == "" || len(req.Personas) == 0 {
		h.Error(w, http.StatusBadRequest, "Question and personas are required")
		return
	}

	result, err := h.orch.SimpleInteraction(r.Context(), req.Question, req.Personas)
	if err != nil {
		if errors.Is(err, session.ErrNoPersonas) {
			h.Error(w, http.StatusBadRequest, "No valid personas found")
			return
		}
		h.logger.Error().Err(err).Msg("simple interaction failed")
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.JSON(w, http.StatusOK, result)
}
