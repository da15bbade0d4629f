package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/meshai-labs/meshai/internal/session"
)

// FocusGroupRequest represents the focus group simulation request.
type FocusGroupRequest struct {
	CampaignDescription string   `json:"campaign_description"`
	Personas            []string `json:"personas"`
	Goals               []string `json:"goals,omitempty"`
}

// FocusGroup runs the full simulation: initial reactions, discussion
// rounds, and a synthesized summary. Completed sessions are archived in
// the background when an archive is configured.
func (h *Handler) FocusGroup(w http.ResponseWriter, r *http.Request) {
	var req FocusGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if req.CampaignDescription == "" || len(req.Personas) == 0 {
		h.Error(w, http.StatusBadRequest, "Campaign description and personas are required")
		return
	}

	result, err := h.orch.FocusGroup(r.Context(), req.CampaignDescription, req.Personas, req.Goals)
	if err != nil {
		if errors.Is(err, session.ErrNoPersonas) {
			h.Error(w, http.StatusBadRequest, "No valid personas found")
			return
		}
		h.logger.Error().Err(err).Msg("focus group failed")
		h.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	if h.archive != nil {
		go h.archiveSession(result)
	}

	h.JSON(w, http.StatusOK, result)
}

// archiveSession persists a completed session outside the request
// lifecycle. Archive failures are logged, never surfaced.
func (h *Handler) archiveSession(result *session.FocusGroupResult) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.archive.SaveSession(ctx, result); err != nil {
		h.logger.Warn().Err(err).Str("session_id", result.SessionID).
			Msg("failed to archive session")
	}
}
