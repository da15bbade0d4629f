package session

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshai-labs/meshai/internal/models"
	"github.com/meshai-labs/meshai/internal/persona"
	"github.com/meshai-labs/meshai/internal/sentiment"
)

// stubGenerator routes each prompt through a caller-supplied function.
type stubGenerator struct {
	fn func(ctx context.Context, prompt string) (string, error)
}

func (s *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return s.fn(ctx, prompt)
}

func (s *stubGenerator) Configured() bool { return true }

func testRepo(t *testing.T) persona.Repository {
	t.Helper()
	repo, err := persona.NewFileRepository(t.TempDir())
	if err != nil {
		t.Fatalf("new repo: %v", err)
	}
	return repo
}

func newTestOrchestrator(t *testing.T, gen *stubGenerator, cfg Config) *Orchestrator {
	t.Helper()
	return New(testRepo(t), gen, zerolog.Nop(), cfg)
}

func TestSimpleInteractionScoresReactions(t *testing.T) {
	gen := &stubGenerator{fn: func(_ context.Context, p string) (string, error) {
		if strings.Contains(p, "Tech Enthusiast") {
			return "This is great and wonderful.", nil
		}
		return "It seems expensive and disappointing to me.", nil
	}}
	o := newTestOrchestrator(t, gen, Config{})

	res, err := o.SimpleInteraction(context.Background(), "What do you think?",
		[]string{"tech-enthusiast", "price-sensitive"})
	if err != nil {
		t.Fatalf("SimpleInteraction: %v", err)
	}
	if len(res.Reactions) != 2 {
		t.Fatalf("got %d reactions, want 2", len(res.Reactions))
	}
	if res.Reactions[0].PersonaID != "tech-enthusiast" {
		t.Fatalf("reaction order not preserved: %q first", res.Reactions[0].PersonaID)
	}
	if res.Reactions[0].Sentiment != sentiment.Positive || res.Reactions[0].SentimentScore != 2 {
		t.Errorf("first reaction = %s/%d, want positive/2",
			res.Reactions[0].Sentiment, res.Reactions[0].SentimentScore)
	}
	if res.Reactions[1].Sentiment != sentiment.Negative || res.Reactions[1].SentimentScore != -2 {
		t.Errorf("second reaction = %s/%d, want negative/-2",
			res.Reactions[1].Sentiment, res.Reactions[1].SentimentScore)
	}
}

func TestSimpleInteractionFallbackOnFailure(t *testing.T) {
	gen := &stubGenerator{fn: func(context.Context, string) (string, error) {
		return "", errors.New("provider down")
	}}
	o := newTestOrchestrator(t, gen, Config{})

	res, err := o.SimpleInteraction(context.Background(), "Is this useful?",
		[]string{"tech-enthusiast"})
	if err != nil {
		t.Fatalf("SimpleInteraction: %v", err)
	}
	want := "I'd like to think more about this question: Is this useful?"
	if res.Reactions[0].Reaction != want {
		t.Errorf("fallback = %q, want %q", res.Reactions[0].Reaction, want)
	}
	if res.Reactions[0].Sentiment != sentiment.Neutral || res.Reactions[0].SentimentScore != 0 {
		t.Errorf("fallback sentiment = %s/%d, want neutral/0",
			res.Reactions[0].Sentiment, res.Reactions[0].SentimentScore)
	}
}

func TestSimpleInteractionNoValidPersonas(t *testing.T) {
	gen := &stubGenerator{fn: func(context.Context, string) (string, error) {
		t.Fatal("generator should not be called")
		return "", nil
	}}
	o := newTestOrchestrator(t, gen, Config{})

	_, err := o.SimpleInteraction(context.Background(), "q", []string{"nobody", "no-one"})
	if !errors.Is(err, ErrNoPersonas) {
		t.Fatalf("err = %v, want ErrNoPersonas", err)
	}
}

func TestFocusGroupMessageCountAndFallback(t *testing.T) {
	// Persona 2 fails in round 2 only. Every other call succeeds, so the
	// session still produces a full transcript with one fallback message.
	gen := &stubGenerator{fn: func(_ context.Context, p string) (string, error) {
		if strings.Contains(p, "Round 2:") && strings.Contains(p, "You are Price-Sensitive Shopper.") {
			return "", errors.New("timeout")
		}
		return "I love this, it sounds amazing.", nil
	}}
	o := newTestOrchestrator(t, gen, Config{FocusRounds: 3})

	res, err := o.FocusGroup(context.Background(), "A new subscription service",
		[]string{"tech-enthusiast", "price-sensitive", "eco-conscious"}, nil)
	if err != nil {
		t.Fatalf("FocusGroup: %v", err)
	}

	if len(res.InitialReactions) != 3 {
		t.Fatalf("got %d initial reactions, want 3", len(res.InitialReactions))
	}
	if len(res.DiscussionMessages) != 9 {
		t.Fatalf("got %d discussion messages, want 9", len(res.DiscussionMessages))
	}
	if len(res.SentimentIntervals) != 3 {
		t.Fatalf("got %d intervals, want 3", len(res.SentimentIntervals))
	}

	var fallbacks []models.Message
	for _, m := range res.DiscussionMessages {
		if m.Content == fallbackFocusRound {
			fallbacks = append(fallbacks, m)
		}
	}
	if len(fallbacks) != 1 {
		t.Fatalf("got %d fallback messages, want exactly 1", len(fallbacks))
	}
	fb := fallbacks[0]
	if fb.PersonaID != "price-sensitive" || fb.Round != 2 {
		t.Errorf("fallback from %s round %d, want price-sensitive round 2", fb.PersonaID, fb.Round)
	}
	if fb.Sentiment != sentiment.Neutral || fb.SentimentScore != 0 {
		t.Errorf("fallback sentiment = %s/%d, want neutral/0", fb.Sentiment, fb.SentimentScore)
	}

	if res.SessionID == "" {
		t.Error("session ID is empty")
	}
	if res.FinalSummary.SummaryText == "" {
		t.Error("summary text is empty")
	}
}

func TestFocusGroupOrderingUnderParallelCalls(t *testing.T) {
	// Responses for later personas complete first; output must still
	// follow selection order within every round.
	gen := &stubGenerator{fn: func(_ context.Context, p string) (string, error) {
		switch {
		case strings.Contains(p, "You are Tech Enthusiast."):
			time.Sleep(30 * time.Millisecond)
		case strings.Contains(p, "You are Price-Sensitive Shopper."):
			time.Sleep(10 * time.Millisecond)
		}
		return "Sounds interesting.", nil
	}}
	o := newTestOrchestrator(t, gen, Config{FocusRounds: 2})

	ids := []string{"tech-enthusiast", "price-sensitive", "eco-conscious"}
	res, err := o.FocusGroup(context.Background(), "A gadget launch", ids, nil)
	if err != nil {
		t.Fatalf("FocusGroup: %v", err)
	}

	for i, r := range res.InitialReactions {
		if r.PersonaID != ids[i] {
			t.Errorf("initial reaction %d from %s, want %s", i, r.PersonaID, ids[i])
		}
	}
	for i, m := range res.DiscussionMessages {
		want := ids[i%len(ids)]
		if m.PersonaID != want {
			t.Errorf("message %d from %s, want %s", i, m.PersonaID, want)
		}
		wantRound := i/len(ids) + 1
		if m.Round != wantRound {
			t.Errorf("message %d round %d, want %d", i, m.Round, wantRound)
		}
	}
}

func TestFocusGroupNPSAndCSAT(t *testing.T) {
	gen := &stubGenerator{fn: func(context.Context, string) (string, error) {
		// Three positive keywords, zero negative: score 3.
		return "This is great, amazing and wonderful.", nil
	}}
	o := newTestOrchestrator(t, gen, Config{FocusRounds: 1})

	res, err := o.FocusGroup(context.Background(), "A product", []string{"tech-enthusiast"}, nil)
	if err != nil {
		t.Fatalf("FocusGroup: %v", err)
	}

	r := res.InitialReactions[0]
	if r.NPSScore != 8 {
		t.Errorf("NPS = %d, want 8", r.NPSScore)
	}
	if r.CSATScore != 4.5 {
		t.Errorf("CSAT = %v, want 4.5", r.CSATScore)
	}
	if res.OverallMetrics.NPS != 8 || res.OverallMetrics.CSAT != 4.5 || res.OverallMetrics.AvgSentiment != 3 {
		t.Errorf("overall metrics = %+v, want NPS 8, CSAT 4.5, avg 3", res.OverallMetrics)
	}
}

func TestFinalSummaryShiftWithoutBaseline(t *testing.T) {
	// No initial reactions and no intervals must not divide by zero.
	fs := buildFinalSummary(nil, nil, nil, "text", 0)
	if fs.SentimentShift != 0 {
		t.Errorf("shift = %v, want 0", fs.SentimentShift)
	}
	if fs.OverallSentiment != 0 {
		t.Errorf("overall = %v, want 0", fs.OverallSentiment)
	}
	if len(fs.KeyInsights) != 3 || len(fs.Recommendations) != 3 {
		t.Errorf("insights/recommendations = %d/%d, want 3/3",
			len(fs.KeyInsights), len(fs.Recommendations))
	}
}

func TestFinalSummaryShiftAndTone(t *testing.T) {
	initial := []models.InitialReaction{
		{PersonaID: "a", Sentiment: sentiment.Neutral, SentimentScore: 0},
		{PersonaID: "b", Sentiment: sentiment.Neutral, SentimentScore: 0},
	}
	discussion := []models.Message{
		{PersonaID: "a", SentimentScore: 2, Round: 1},
		{PersonaID: "b", SentimentScore: 2, Round: 1},
	}
	intervals := []SentimentInterval{
		{Round: 1, OverallSentiment: 2},
	}

	fs := buildFinalSummary(initial, discussion, intervals, "text", 2)
	if fs.SentimentShift != 2 {
		t.Errorf("shift = %v, want 2", fs.SentimentShift)
	}
	if fs.OverallSentiment != 1 {
		t.Errorf("overall = %v, want 1", fs.OverallSentiment)
	}
	if fs.KeyInsights[0] != "Overall sentiment: Positive" {
		t.Errorf("tone insight = %q", fs.KeyInsights[0])
	}
	if fs.KeyInsights[1] != "Sentiment improved during discussion" {
		t.Errorf("trend insight = %q", fs.KeyInsights[1])
	}
}

func TestGroupDiscussionSeedsInitialReactions(t *testing.T) {
	var sawSeed atomic.Bool
	gen := &stubGenerator{fn: func(_ context.Context, p string) (string, error) {
		// Round 1 prompts for the second persona should carry the first
		// persona's seeded reaction in the recent-comments block.
		if strings.Contains(p, "Round 1:") && strings.Contains(p, "I already shared my view") {
			sawSeed.Store(true)
		}
		return "Fair point.", nil
	}}
	o := newTestOrchestrator(t, gen, Config{GroupRounds: 2})

	initial := []models.Reaction{
		{PersonaID: "tech-enthusiast", Name: "Tech Enthusiast", Reaction: "I already shared my view"},
	}
	res, err := o.GroupDiscussion(context.Background(), "Should we launch?",
		[]string{"tech-enthusiast", "price-sensitive"}, initial)
	if err != nil {
		t.Fatalf("GroupDiscussion: %v", err)
	}

	if len(res.DiscussionMessages) != 4 {
		t.Fatalf("got %d messages, want 4", len(res.DiscussionMessages))
	}
	if !sawSeed.Load() {
		t.Error("seeded initial reaction never appeared in a round prompt")
	}
	for _, m := range res.DiscussionMessages {
		if m.Round < 1 || m.Round > 2 {
			t.Errorf("message round %d outside 1..2", m.Round)
		}
		if m.ID == "" || m.Timestamp == "" {
			t.Errorf("message missing ID or timestamp: %+v", m)
		}
	}
}

func TestFocusGroupResultWireShape(t *testing.T) {
	gen := &stubGenerator{fn: func(context.Context, string) (string, error) {
		return "This is great.", nil
	}}
	o := newTestOrchestrator(t, gen, Config{FocusRounds: 1})

	res, err := o.FocusGroup(context.Background(), "A product", []string{"tech-enthusiast"}, nil)
	if err != nil {
		t.Fatalf("FocusGroup: %v", err)
	}

	data, err := json.Marshal(res)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	body := string(data)

	for _, key := range []string{
		`"per_persona_sentiment"`,
		`"persona_name"`,
		`"nps_score"`,
		`"csat_score"`,
		`"sentiment_intervals"`,
	} {
		if !strings.Contains(body, key) {
			t.Errorf("serialized result missing %s", key)
		}
	}
	if strings.Contains(body, `"persona_sentiments"`) {
		t.Error("interval map serialized under the wrong key")
	}
	if strings.Contains(body, `"name":"Tech Enthusiast"`) {
		t.Error("initial reaction author serialized as name, want persona_name")
	}
}

func TestOverallMetricsEmpty(t *testing.T) {
	m := buildOverallMetrics(nil)
	if m.NPS != 5 || m.CSAT != 3 || m.AvgSentiment != 0 {
		t.Errorf("empty metrics = %+v, want neutral midpoints", m)
	}
}
