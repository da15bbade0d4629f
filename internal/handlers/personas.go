package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/meshai-labs/meshai/internal/models"
	"github.com/meshai-labs/meshai/internal/persona"
)

// PersonaSummary is the catalog listing view of a persona.
type PersonaSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

// CreatePersonaRequest represents the custom persona creation request.
// Behavioral parameters are optional and default to a moderately engaged,
// unbiased participant.
type CreatePersonaRequest struct {
	Name                 string             `json:"name"`
	Description          string             `json:"description"`
	Avatar               string             `json:"avatar,omitempty"`
	PersonalityTraits    map[string]float64 `json:"personality_traits,omitempty"`
	CommunicationStyle   string             `json:"communication_style,omitempty"`
	BackgroundContext    string             `json:"background_context,omitempty"`
	ExpertiseAreas       []string           `json:"expertise_areas,omitempty"`
	SentimentBias        *float64           `json:"sentiment_bias,omitempty"`
	EngagementLevel      *float64           `json:"engagement_level,omitempty"`
	ControversyTolerance *float64           `json:"controversy_tolerance,omitempty"`
}

// UpdatePersonaRequest represents a partial persona update. Only the
// fields present in the request change.
type UpdatePersonaRequest struct {
	Name                 *string            `json:"name,omitempty"`
	Description          *string            `json:"description,omitempty"`
	Avatar               *string            `json:"avatar,omitempty"`
	PersonalityTraits    map[string]float64 `json:"personality_traits,omitempty"`
	CommunicationStyle   *string            `json:"communication_style,omitempty"`
	BackgroundContext    *string            `json:"background_context,omitempty"`
	ExpertiseAreas       []string           `json:"expertise_areas,omitempty"`
	SentimentBias        *float64           `json:"sentiment_bias,omitempty"`
	EngagementLevel      *float64           `json:"engagement_level,omitempty"`
	ControversyTolerance *float64           `json:"controversy_tolerance,omitempty"`
}

// ListPersonas returns the resolvable persona catalog.
func (h *Handler) ListPersonas(w http.ResponseWriter, r *http.Request) {
	personas, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list personas")
		h.Error(w, http.StatusInternalServerError, "failed to list personas")
		return
	}

	summaries := make([]PersonaSummary, len(personas))
	for i, p := range personas {
		summaries[i] = PersonaSummary{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.ShortDescription(),
			Avatar:      p.Avatar,
		}
	}

	h.JSON(w, http.StatusOK, summaries)
}

// GetPersona returns the full persona record.
func (h *Handler) GetPersona(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, persona.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "persona not found")
			return
		}
		h.logger.Error().Err(err).Str("persona_id", id).Msg("failed to get persona")
		h.Error(w, http.StatusInternalServerError, "failed to get persona")
		return
	}

	h.JSON(w, http.StatusOK, p)
}

// CreatePersona creates a custom persona alongside the defaults.
func (h *Handler) CreatePersona(w http.ResponseWriter, r *http.Request) {
	var req CreatePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Description = strings.TrimSpace(req.Description)
	if req.Name == "" || req.Description == "" {
		h.Error(w, http.StatusBadRequest, "Name and description are required")
		return
	}

	p := models.Persona{
		Name:                 req.Name,
		Description:          req.Description,
		Avatar:               req.Avatar,
		PersonalityTraits:    req.PersonalityTraits,
		CommunicationStyle:   req.CommunicationStyle,
		BackgroundContext:    req.BackgroundContext,
		ExpertiseAreas:       req.ExpertiseAreas,
		SentimentBias:        0,
		EngagementLevel:      0.7,
		ControversyTolerance: 0.5,
	}
	if p.Avatar == "" {
		p.Avatar = "👤"
	}
	if req.SentimentBias != nil {
		p.SentimentBias = *req.SentimentBias
	}
	if req.EngagementLevel != nil {
		p.EngagementLevel = *req.EngagementLevel
	}
	if req.ControversyTolerance != nil {
		p.ControversyTolerance = *req.ControversyTolerance
	}

	if err := h.repo.Create(r.Context(), &p); err != nil {
		h.logger.Error().Err(err).Msg("failed to create persona")
		h.Error(w, http.StatusInternalServerError, "failed to create persona")
		return
	}

	h.JSON(w, http.StatusCreated, p)
}

// UpdatePersona applies a partial update to an existing persona. The ID
// and default flag never change.
func (h *Handler) UpdatePersona(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdatePersonaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, persona.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "persona not found")
			return
		}
		h.logger.Error().Err(err).Str("persona_id", id).Msg("failed to load persona for update")
		h.Error(w, http.StatusInternalServerError, "failed to update persona")
		return
	}

	if req.Name != nil {
		p.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if p.Name == "" || p.Description == "" {
		h.Error(w, http.StatusBadRequest, "Name and description are required")
		return
	}
	if req.Avatar != nil {
		p.Avatar = *req.Avatar
	}
	if req.PersonalityTraits != nil {
		p.PersonalityTraits = req.PersonalityTraits
	}
	if req.CommunicationStyle != nil {
		p.CommunicationStyle = *req.CommunicationStyle
	}
	if req.BackgroundContext != nil {
		p.BackgroundContext = *req.BackgroundContext
	}
	if req.ExpertiseAreas != nil {
		p.ExpertiseAreas = req.ExpertiseAreas
	}
	if req.SentimentBias != nil {
		p.SentimentBias = *req.SentimentBias
	}
	if req.EngagementLevel != nil {
		p.EngagementLevel = *req.EngagementLevel
	}
	if req.ControversyTolerance != nil {
		p.ControversyTolerance = *req.ControversyTolerance
	}

	if err := h.repo.Update(r.Context(), p); err != nil {
		h.logger.Error().Err(err).Str("persona_id", id).Msg("failed to update persona")
		h.Error(w, http.StatusInternalServerError, "failed to update persona")
		return
	}

	h.JSON(w, http.StatusOK, p)
}

// DeletePersona removes a custom persona. Default personas are protected:
// the seeded catalog is the product's baseline and deletions of it would
// silently reappear on the next restart's reseed.
func (h *Handler) DeletePersona(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	p, err := h.repo.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, persona.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "persona not found")
			return
		}
		h.logger.Error().Err(err).Str("persona_id", id).Msg("failed to load persona for delete")
		h.Error(w, http.StatusInternalServerError, "failed to delete persona")
		return
	}
	if p.IsDefault {
		h.Error(w, http.StatusBadRequest, "default personas cannot be deleted")
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		if errors.Is(err, persona.ErrNotFound) {
			h.Error(w, http.StatusNotFound, "persona not found")
			return
		}
		h.logger.Error().Err(err).Str("persona_id", id).Msg("failed to delete persona")
		h.Error(w, http.StatusInternalServerError, "failed to delete persona")
		return
	}

	h.JSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
