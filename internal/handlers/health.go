package handlers

import (
	"net/http"
	"time"

	"github.com/meshai-labs/meshai/internal/prompt"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status              string `json:"status"`
	Timestamp           string `json:"timestamp"`
	AnthropicConfigured bool   `json:"anthropic_configured"`
	AgentsLoaded        int    `json:"agents_loaded"`
	TasksLoaded         int    `json:"tasks_loaded"`
}

// Health handles the health check endpoint. AgentsLoaded reports the
// resolvable persona count, TasksLoaded the number of prompt phases.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	count, err := h.repo.Count(r.Context())
	if err != nil {
		h.logger.Warn().Err(err).Msg("persona count failed during health check")
	}

	h.JSON(w, http.StatusOK, HealthResponse{
		Status:              "healthy",
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		AnthropicConfigured: h.gen.Configured(),
		AgentsLoaded:        count,
		TasksLoaded:         len(prompt.Templates),
	})
}
