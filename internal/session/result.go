package session

import "github.com/meshai-labs/meshai/internal/models"

// SimpleResult is the response body of a simple interaction.
type SimpleResult struct {
	Question  string            `json:"question"`
	Reactions []models.Reaction `json:"reactions"`
	Timestamp string            `json:"timestamp"`
}

// DiscussionResult is the response body of a group discussion.
type DiscussionResult struct {
	Question           string           `json:"question"`
	DiscussionMessages []models.Message `json:"discussion_messages"`
	Timestamp          string           `json:"timestamp"`
}

// SentimentInterval snapshots group sentiment after one discussion round.
type SentimentInterval struct {
	Round             int            `json:"round"`
	OverallSentiment  float64        `json:"overall_sentiment"`
	PersonaSentiments map[string]int `json:"per_persona_sentiment"`
	Timestamp         string         `json:"timestamp"`
}

// FinalSummary aggregates a focus-group session.
type FinalSummary struct {
	OverallSentiment float64  `json:"overall_sentiment"`
	SentimentShift   float64  `json:"sentiment_shift"`
	KeyInsights      []string `json:"key_insights"`
	Recommendations  []string `json:"recommendations"`
	SummaryText      string   `json:"summary_text"`
}

// OverallMetrics are the headline satisfaction numbers for a session,
// averaged over the initial reactions and rounded to one decimal.
type OverallMetrics struct {
	NPS          float64 `json:"nps"`
	CSAT         float64 `json:"csat"`
	AvgSentiment float64 `json:"avg_sentiment"`
}

// FocusGroupResult is the full output of a focus-group simulation.
type FocusGroupResult struct {
	SessionID           string                   `json:"session_id"`
	CampaignDescription string                   `json:"campaign_description"`
	SessionGoals        []string                 `json:"session_goals,omitempty"`
	InitialReactions    []models.InitialReaction `json:"initial_reactions"`
	DiscussionMessages  []models.Message         `json:"discussion_messages"`
	SentimentIntervals  []SentimentInterval      `json:"sentiment_intervals"`
	FinalSummary        FinalSummary             `json:"final_summary"`
	OverallMetrics      OverallMetrics           `json:"overall_metrics"`
	Timestamp           string                   `json:"timestamp"`
}
