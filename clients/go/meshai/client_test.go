package meshai

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSimpleInteraction(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/simple-interaction" {
			t.Errorf("path = %q", r.URL.Path)
		}
		var req struct {
			Question string   `json:"question"`
			Personas []string `json:"personas"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Question != "Worth buying?" || len(req.Personas) != 1 {
			t.Errorf("request = %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"question":"Worth buying?","reactions":[{"persona_id":"tech-enthusiast","reaction":"Yes","sentiment":"positive","sentiment_score":1}],"timestamp":"2026-01-01T00:00:00Z"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	resp, err := c.SimpleInteraction("Worth buying?", []string{"tech-enthusiast"})
	if err != nil {
		t.Fatalf("SimpleInteraction: %v", err)
	}
	if len(resp.Reactions) != 1 || resp.Reactions[0].Sentiment != "positive" {
		t.Errorf("reactions = %+v", resp.Reactions)
	}
}

func TestErrorEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Question and personas are required"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.SimpleInteraction("", nil)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "400") || !strings.Contains(err.Error(), "Question and personas are required") {
		t.Errorf("err = %v", err)
	}
}

func TestListPersonas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/personas" || r.Method != "GET" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"tech-enthusiast","name":"Tech Enthusiast","description":"Loves gadgets","avatar":"🤓"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	personas, err := c.ListPersonas()
	if err != nil {
		t.Fatalf("ListPersonas: %v", err)
	}
	if len(personas) != 1 || personas[0].ID != "tech-enthusiast" {
		t.Errorf("personas = %+v", personas)
	}
}

func TestGetHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"healthy","anthropic_configured":true,"agents_loaded":10,"tasks_loaded":5}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	h, err := c.GetHealth()
	if err != nil {
		t.Fatalf("GetHealth: %v", err)
	}
	if h.Status != "healthy" || h.AgentsLoaded != 10 {
		t.Errorf("health = %+v", h)
	}
}
