package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/meshai-labs/meshai/internal/models"
	"github.com/meshai-labs/meshai/internal/session"
)

// GroupDiscussionRequest represents the group discussion request. Initial
// reactions are optional; when present they seed the first round's context.
type GroupDiscussionRequest struct {
	Question         string            `json:"question"`
	Personas         []string          `json:"personas"`
	InitialReactions []models.Reaction `json:"initial_reactions,omitempty"`
}

// GroupDiscussion runs a short multi-round exchange between the requested
// personas.
func (h *Handler) GroupDiscussion(w http.ResponseWriter, r *http.Request) {
	var req GroupDiscussionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.Question == "" || len(req.Personas) == 0 {
		h.Error(w, http.StatusBadRequest, "Question and personas are required")
		return
	}

	result, err := h.orch.GroupDiscussion(r.Context(), req.Question, req.Personas, req.InitialReactions)
	if err != nil {
		if errors.Is(err, session.ErrNoPersonas) {
			h.Error(w, http.StatusBadRequest, "No valid personas found")
			return
		}
		h.logger.Error().Err(err).Msg("group discussion failed")
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.JSON(w, http.StatusOK, result)
}
