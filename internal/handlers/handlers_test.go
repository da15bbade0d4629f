package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/meshai-labs/meshai/internal/persona"
	"github.com/meshai-labs/meshai/internal/session"
)

type stubGenerator struct {
	reply      string
	configured bool
}

func (s *stubGenerator) Generate(context.Context, string) (string, error) {
	return s.reply, nil
}

func (s *stubGenerator) Configured() bool { return s.configured }

func newTestHandler(t *testing.T) *Handler {
	t.Helper()

	repo, err := persona.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	gen := &stubGenerator{reply: "Sounds like a great idea.", configured: true}
	orch := session.New(repo, gen, zerolog.Nop(), session.Config{FocusRounds: 1, GroupRounds: 1})
	return NewHandler(repo, orch, gen, nil, zerolog.Nop())
}

func newTestRouter(t *testing.T) (*chi.Mux, *Handler) {
	t.Helper()

	h := newTestHandler(t)
	r := chi.NewRouter()
	r.Get("/api/health", h.Health)
	r.Post("/api/simple-interaction", h.SimpleInteraction)
	r.Post("/api/group-discussion", h.GroupDiscussion)
	r.Post("/api/focus-group", h.FocusGroup)
	r.Get("/api/personas", h.ListPersonas)
	r.Post("/api/personas", h.CreatePersona)
	r.Get("/api/personas/{id}", h.GetPersona)
	r.Put("/api/personas/{id}", h.UpdatePersona)
	r.Delete("/api/personas/{id}", h.DeletePersona)
	r.Get("/api/sessions", h.ListSessions)
	r.Get("/api/sessions/{id}", h.GetSession)
	return r, h
}

func doJSON(t *testing.T, r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSimpleInteractionEmptyPersonas(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/simple-interaction",
		`{"question":"Is this good?","personas":[]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["error"] != "Question and personas are required" {
		t.Errorf("error = %q, want %q", body["error"], "Question and personas are required")
	}
}

func TestSimpleInteractionUnknownPersonas(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/simple-interaction",
		`{"question":"Is this good?","personas":["nobody-here"]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No valid personas found") {
		t.Errorf("body = %s, want no-valid-personas error", w.Body.String())
	}
}

func TestSimpleInteractionSuccess(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/simple-interaction",
		`{"question":"Is this good?","personas":["tech-enthusiast","price-sensitive"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var res struct {
		Question  string `json:"question"`
		Reactions []struct {
			PersonaID string `json:"persona_id"`
			Reaction  string `json:"reaction"`
			Sentiment string `json:"sentiment"`
		} `json:"reactions"`
		Timestamp string `json:"timestamp"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(res.Reactions) != 2 {
		t.Fatalf("got %d reactions, want 2", len(res.Reactions))
	}
	if res.Reactions[0].Sentiment != "positive" {
		t.Errorf("sentiment = %q, want positive", res.Reactions[0].Sentiment)
	}
	if res.Timestamp == "" {
		t.Error("timestamp is empty")
	}
}

func TestFocusGroupMissingCampaign(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/focus-group",
		`{"personas":["tech-enthusiast"]}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Campaign description and personas are required") {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestFocusGroupSuccess(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/focus-group",
		`{"campaign_description":"A new eco product line","personas":["tech-enthusiast","eco-conscious"],"goals":["gauge appeal"]}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", w.Code, w.Body.String())
	}

	var res struct {
		SessionID          string                   `json:"session_id"`
		InitialReactions   []map[string]interface{} `json:"initial_reactions"`
		DiscussionMessages []map[string]interface{} `json:"discussion_messages"`
		SentimentIntervals []map[string]interface{} `json:"sentiment_intervals"`
		OverallMetrics     struct {
			NPS  float64 `json:"nps"`
			CSAT float64 `json:"csat"`
		} `json:"overall_metrics"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.SessionID == "" {
		t.Error("session_id is empty")
	}
	if len(res.InitialReactions) != 2 {
		t.Errorf("got %d initial reactions, want 2", len(res.InitialReactions))
	}
	if len(res.DiscussionMessages) != 2 {
		t.Errorf("got %d messages, want 2 (1 round, 2 personas)", len(res.DiscussionMessages))
	}
	if res.OverallMetrics.NPS == 0 {
		t.Error("overall_metrics.nps missing")
	}
}

func TestGroupDiscussionValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/group-discussion", `{"question":"","personas":["tech-enthusiast"]}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestListPersonas(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/personas", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var personas []PersonaSummary
	if err := json.Unmarshal(w.Body.Bytes(), &personas); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(personas) != 10 {
		t.Errorf("got %d personas, want 10 defaults", len(personas))
	}
	for _, p := range personas {
		if p.ID == "" || p.Name == "" {
			t.Errorf("catalog entry missing fields: %+v", p)
		}
		if len(p.Description) > 103 {
			t.Errorf("description not truncated: %d chars", len(p.Description))
		}
	}
}

func TestGetPersona(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/personas/tech-enthusiast", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var p struct {
		ID              string             `json:"id"`
		Traits          map[string]float64 `json:"personality_traits"`
		EngagementLevel float64            `json:"engagement_level"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "tech-enthusiast" {
		t.Errorf("id = %q", p.ID)
	}
	if len(p.Traits) == 0 {
		t.Error("full record should include personality traits")
	}

	w = doJSON(t, r, "GET", "/api/personas/not-a-persona", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown persona status = %d, want 404", w.Code)
	}
}

func TestCreatePersona(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/personas",
		`{"name":"Budget Traveler","description":"Always hunting for deals on flights and stays."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}

	var p struct {
		ID                   string  `json:"id"`
		EngagementLevel      float64 `json:"engagement_level"`
		ControversyTolerance float64 `json:"controversy_tolerance"`
		SentimentBias        float64 `json:"sentiment_bias"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.ID != "budget-traveler" {
		t.Errorf("id = %q, want budget-traveler", p.ID)
	}
	if p.EngagementLevel != 0.7 || p.ControversyTolerance != 0.5 || p.SentimentBias != 0 {
		t.Errorf("behavioral defaults = %v/%v/%v, want 0.7/0.5/0",
			p.EngagementLevel, p.ControversyTolerance, p.SentimentBias)
	}

	// The new persona is immediately resolvable.
	w = doJSON(t, r, "POST", "/api/simple-interaction",
		`{"question":"Worth it?","personas":["budget-traveler"]}`)
	if w.Code != http.StatusOK {
		t.Errorf("new persona not resolvable: %d", w.Code)
	}
}

func TestCreatePersonaValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/personas", `{"name":"  ","description":"x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", w.Code)
	}
}

func TestUpdatePersona(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/personas",
		`{"name":"Budget Traveler","description":"Always hunting for deals on flights and stays."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "PUT", "/api/personas/budget-traveler",
		`{"description":"Splurges occasionally, but only after a spreadsheet.","sentiment_bias":-0.2}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", w.Code, w.Body.String())
	}

	// The update is durable, not just echoed.
	w = doJSON(t, r, "GET", "/api/personas/budget-traveler", "")
	var p struct {
		Name          string  `json:"name"`
		Description   string  `json:"description"`
		SentimentBias float64 `json:"sentiment_bias"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &p); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if p.Name != "Budget Traveler" {
		t.Errorf("name = %q, partial update should keep untouched fields", p.Name)
	}
	if !strings.Contains(p.Description, "spreadsheet") {
		t.Errorf("description = %q, want updated text", p.Description)
	}
	if p.SentimentBias != -0.2 {
		t.Errorf("sentiment_bias = %v, want -0.2", p.SentimentBias)
	}

	w = doJSON(t, r, "PUT", "/api/personas/not-a-persona", `{"name":"Ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("unknown persona status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, "PUT", "/api/personas/budget-traveler", `{"name":"  "}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("blank name status = %d, want 400", w.Code)
	}
}

func TestDeletePersona(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/personas",
		`{"name":"Budget Traveler","description":"Always hunting for deals on flights and stays."}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "DELETE", "/api/personas/budget-traveler", "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, want 200: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, "GET", "/api/personas/budget-traveler", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("deleted persona status = %d, want 404", w.Code)
	}

	w = doJSON(t, r, "DELETE", "/api/personas/budget-traveler", "")
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}

	// The seeded catalog is protected.
	w = doJSON(t, r, "DELETE", "/api/personas/tech-enthusiast", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("default persona delete status = %d, want 400", w.Code)
	}
}

func TestSessionsUnavailableWithoutArchive(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/sessions", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}

	w = doJSON(t, r, "GET", "/api/sessions/some-id", "")
	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", w.Code)
	}
}

func TestHealth(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "GET", "/api/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var res HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Status != "healthy" {
		t.Errorf("status = %q", res.Status)
	}
	if !res.AnthropicConfigured {
		t.Error("anthropic_configured = false, stub reports configured")
	}
	if res.AgentsLoaded != 10 {
		t.Errorf("agents_loaded = %d, want 10", res.AgentsLoaded)
	}
	if res.TasksLoaded == 0 {
		t.Error("tasks_loaded = 0")
	}
}

func TestInvalidJSONBody(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, "POST", "/api/simple-interaction", `{not json`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
