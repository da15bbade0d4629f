package models

import "strings"

// Persona is a configured simulated participant. Behavioral parameters bias
// the generated text and its sentiment label; presentation fields pass
// through to API responses untouched.
type Persona struct {
	ID                 string             `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Avatar             string             `json:"avatar"`
	PersonalityTraits  map[string]float64 `json:"personality_traits,omitempty"`
	CommunicationStyle string             `json:"communication_style,omitempty"`
	BackgroundContext  string             `json:"background_context,omitempty"`
	ExpertiseAreas     []string           `json:"expertise_areas,omitempty"`

	// SentimentBias is in [-1, 1]; EngagementLevel and ControversyTolerance
	// are in [0, 1].
	SentimentBias        float64 `json:"sentiment_bias"`
	EngagementLevel      float64 `json:"engagement_level"`
	ControversyTolerance float64 `json:"controversy_tolerance"`

	IsDefault bool `json:"is_default,omitempty"`
}

// CanonicalID normalizes a persona identifier to its canonical form:
// lowercase with hyphens. Underscore variants of the same ID resolve to the
// same persona.
func CanonicalID(id string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(id)), "_", "-")
}

// ShortDescription returns the catalog form of the description, truncated
// to 100 characters.
func (p *Persona) ShortDescription() string {
	if len(p.Description) <= 100 {
		return p.Description
	}
	return p.Description[:100] + "..."
}
