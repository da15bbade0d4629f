package models

// Message is one persona turn in a discussion transcript. Round 0 is
// reserved for initial reactions; discussion rounds start at 1.
type Message struct {
	ID             string `json:"id"` // ULID
	PersonaID      string `json:"persona_id"`
	PersonaName    string `json:"persona_name"`
	Avatar         string `json:"avatar"`
	Content        string `json:"content"`
	Sentiment      string `json:"sentiment"`
	SentimentScore int    `json:"sentiment_score"`
	Timestamp      string `json:"timestamp"` // RFC3339 UTC
	Round          int    `json:"round"`
}

// Reaction is a single persona's answer to a standalone question.
type Reaction struct {
	PersonaID      string `json:"persona_id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Reaction       string `json:"reaction"`
	Sentiment      string `json:"sentiment"`
	SentimentScore int    `json:"sentiment_score"`
}

// InitialReaction is a focus-group opening reaction. Unlike a standalone
// Reaction it is Message-like: the author serializes as persona_name, and
// it carries per-persona satisfaction metrics derived from the sentiment
// score.
type InitialReaction struct {
	PersonaID      string  `json:"persona_id"`
	PersonaName    string  `json:"persona_name"`
	Avatar         string  `json:"avatar"`
	Reaction       string  `json:"reaction"`
	Sentiment      string  `json:"sentiment"`
	SentimentScore int     `json:"sentiment_score"`
	NPSScore       int     `json:"nps_score"`
	CSATScore      float64 `json:"csat_score"`
}
