// Package meshai provides a client for the meshai focus group API.
package meshai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client is a meshai API client.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewClient creates a new client. Simulation endpoints block for the whole
// session, so the default timeout is generous.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 5 * time.Minute},
	}
}

// doRequest performs an HTTP request and unwraps the API error envelope.
func (c *Client) doRequest(method, path string, body []byte) ([]byte, error) {
	req, err := http.NewRequest(method, c.BaseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		json.Unmarshal(respBody, &errResp)
		return nil, fmt.Errorf("meshai error %d: %s", resp.StatusCode, errResp.Error)
	}

	return respBody, nil
}

// Persona is a catalog entry.
type Persona struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Avatar      string `json:"avatar"`
}

// ListPersonas lists the resolvable persona catalog.
func (c *Client) ListPersonas() ([]Persona, error) {
	respBody, err := c.doRequest("GET", "/api/personas", nil)
	if err != nil {
		return nil, err
	}

	var personas []Persona
	if err := json.Unmarshal(respBody, &personas); err != nil {
		return nil, err
	}
	return personas, nil
}

// Reaction is one persona's response to a question or campaign.
type Reaction struct {
	PersonaID      string `json:"persona_id"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Reaction       string `json:"reaction"`
	Sentiment      string `json:"sentiment"`
	SentimentScore int    `json:"sentiment_score"`
}

// SimpleInteractionResponse is the response from a simple interaction.
type SimpleInteractionResponse struct {
	Question  string     `json:"question"`
	Reactions []Reaction `json:"reactions"`
	Timestamp string     `json:"timestamp"`
}

// SimpleInteraction asks every persona the question once.
func (c *Client) SimpleInteraction(question string, personas []string) (*SimpleInteractionResponse, error) {
	req := struct {
		Question string   `json:"question"`
		Personas []string `json:"personas"`
	}{question, personas}
	body, _ := json.Marshal(req)

	respBody, err := c.doRequest("POST", "/api/simple-interaction", body)
	if err != nil {
		return nil, err
	}

	var resp SimpleInteractionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Message is one discussion transcript entry.
type Message struct {
	ID             string `json:"id"`
	PersonaID      string `json:"persona_id"`
	PersonaName    string `json:"persona_name"`
	Avatar         string `json:"avatar"`
	Content        string `json:"content"`
	Sentiment      string `json:"sentiment"`
	SentimentScore int    `json:"sentiment_score"`
	Timestamp      string `json:"timestamp"`
	Round          int    `json:"round"`
}

// GroupDiscussionResponse is the response from a group discussion.
type GroupDiscussionResponse struct {
	Question           string    `json:"question"`
	DiscussionMessages []Message `json:"discussion_messages"`
	Timestamp          string    `json:"timestamp"`
}

// GroupDiscussion runs a short multi-round exchange.
func (c *Client) GroupDiscussion(question string, personas []string) (*GroupDiscussionResponse, error) {
	req := struct {
		Question string   `json:"question"`
		Personas []string `json:"personas"`
	}{question, personas}
	body, _ := json.Marshal(req)

	respBody, err := c.doRequest("POST", "/api/group-discussion", body)
	if err != nil {
		return nil, err
	}

	var resp GroupDiscussionResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// FocusGroupResponse is the full focus group session result.
type FocusGroupResponse struct {
	SessionID           string          `json:"session_id"`
	CampaignDescription string          `json:"campaign_description"`
	InitialReactions    json.RawMessage `json:"initial_reactions"`
	DiscussionMessages  []Message       `json:"discussion_messages"`
	SentimentIntervals  json.RawMessage `json:"sentiment_intervals"`
	FinalSummary        struct {
		OverallSentiment float64  `json:"overall_sentiment"`
		SentimentShift   float64  `json:"sentiment_shift"`
		KeyInsights      []string `json:"key_insights"`
		Recommendations  []string `json:"recommendations"`
		SummaryText      string   `json:"summary_text"`
	} `json:"final_summary"`
	OverallMetrics struct {
		NPS          float64 `json:"nps"`
		CSAT         float64 `json:"csat"`
		AvgSentiment float64 `json:"avg_sentiment"`
	} `json:"overall_metrics"`
	Timestamp string `json:"timestamp"`
}

// FocusGroup runs the full simulation.
func (c *Client) FocusGroup(campaign string, personas, goals []string) (*FocusGroupResponse, error) {
	req := struct {
		CampaignDescription string   `json:"campaign_description"`
		Personas            []string `json:"personas"`
		Goals               []string `json:"goals,omitempty"`
	}{campaign, personas, goals}
	body, _ := json.Marshal(req)

	respBody, err := c.doRequest("POST", "/api/focus-group", body)
	if err != nil {
		return nil, err
	}

	var resp FocusGroupResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Health is the server health report.
type Health struct {
	Status              string `json:"status"`
	Timestamp           string `json:"timestamp"`
	AnthropicConfigured bool   `json:"anthropic_configured"`
	AgentsLoaded        int    `json:"agents_loaded"`
	TasksLoaded         int    `json:"tasks_loaded"`
}

// GetHealth fetches the server health report.
func (c *Client) GetHealth() (*Health, error) {
	respBody, err := c.doRequest("GET", "/api/health", nil)
	if err != nil {
		return nil, err
	}

	var h Health
	if err := json.Unmarshal(respBody, &h); err != nil {
		return nil, err
	}
	return &h, nil
}
