package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/meshai-labs/meshai/internal/llm"
	"github.com/meshai-labs/meshai/internal/persona"
	"github.com/meshai-labs/meshai/internal/session"
	"github.com/meshai-labs/meshai/internal/store"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	repo    persona.Repository
	orch    *session.Orchestrator
	gen     llm.Generator
	archive *store.RedisArchive // nil when no archive is configured
	logger  zerolog.Logger
}

// NewHandler creates a new Handler. The archive may be nil; session
// retrieval endpoints then report the feature unavailable.
func NewHandler(repo persona.Repository, orch *session.Orchestrator, gen llm.Generator, archive *store.RedisArchive, logger zerolog.Logger) *Handler {
	return &Handler{repo: repo, orch: orch, gen: gen, archive: archive, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}
