// Package session drives the multi-phase persona pipeline: initial
// reactions, discussion rounds with a rolling context window, and a final
// synthesized summary. The flow is linear with no retries between phases.
// Failures are contained at the single-persona-call level and replaced with
// fallback content, so a partial provider outage degrades a session instead
// of aborting it.
package session

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/meshai-labs/meshai/internal/llm"
	"github.com/meshai-labs/meshai/internal/metrics"
	"github.com/meshai-labs/meshai/internal/models"
	"github.com/meshai-labs/meshai/internal/persona"
	"github.com/meshai-labs/meshai/internal/prompt"
	"github.com/meshai-labs/meshai/internal/sentiment"
)

// ErrNoPersonas reports that none of the requested persona IDs resolved.
// Partial resolution is not an error; empty resolution fails the request.
var ErrNoPersonas = errors.New("no valid personas found")

// Fallback content substituted when a single generation call fails.
const (
	fallbackSimplePrefix = "I'd like to think more about this question: "
	fallbackInitial      = "I'd like to learn more about this campaign before sharing my thoughts."
	fallbackGroupRound   = "I need more time to consider this aspect of the question."
	fallbackFocusRound   = "I'm still processing the information from this round."
	fallbackSummary      = "Summary generation encountered an error."
)

// Config holds orchestration parameters.
type Config struct {
	// FocusRounds is the number of focus-group discussion rounds.
	FocusRounds int
	// GroupRounds is the number of rounds in the lighter group-discussion
	// flow.
	GroupRounds int
}

// Orchestrator resolves personas and runs the discussion flows. All state
// is request-scoped; the orchestrator itself is safe for concurrent use.
type Orchestrator struct {
	repo   persona.Repository
	gen    llm.Generator
	logger zerolog.Logger
	cfg    Config
}

// New creates an orchestrator. Zero round counts fall back to the
// defaults: 3 focus-group rounds, 2 group-discussion rounds.
func New(repo persona.Repository, gen llm.Generator, logger zerolog.Logger, cfg Config) *Orchestrator {
	if cfg.FocusRounds <= 0 {
		cfg.FocusRounds = 3
	}
	if cfg.GroupRounds <= 0 {
		cfg.GroupRounds = 2
	}
	return &Orchestrator{repo: repo, gen: gen, logger: logger, cfg: cfg}
}

// generation is the explicit outcome of one persona call: text or error,
// never both.
type generation struct {
	Text string
	Err  error
}

// fanOut issues one generation call per prompt in parallel and returns
// outcomes index-aligned with the input. Output order is therefore persona-
// selection order, never completion order.
func (o *Orchestrator) fanOut(ctx context.Context, phase string, prompts []string) []generation {
	results := make([]generation, len(prompts))
	var wg sync.WaitGroup

	for i := range prompts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			start := time.Now()
			text, err := o.gen.Generate(ctx, prompts[i])
			metrics.GenerationDuration.Observe(time.Since(start).Seconds())
			metrics.GenerationsTotal.WithLabelValues(phase).Inc()
			if err != nil {
				metrics.GenerationFailures.WithLabelValues(phase).Inc()
			}
			results[i] = generation{Text: text, Err: err}
		}(i)
	}

	wg.Wait()
	return results
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func newMessageID() string {
	return ulid.Make().String()
}

// SimpleInteraction asks each persona the question once, with no shared
// transcript.
func (o *Orchestrator) SimpleInteraction(ctx context.Context, question string, personaIDs []string) (*SimpleResult, error) {
	personas, err := o.repo.Resolve(ctx, personaIDs)
	if err != nil {
		return nil, err
	}
	if len(personas) == 0 {
		return nil, ErrNoPersonas
	}

	prompts := make([]string, len(personas))
	for i := range personas {
		prompts[i] = prompt.Simple(&personas[i], question)
	}

	gens := o.fanOut(ctx, prompt.PhaseSimple, prompts)

	reactions := make([]models.Reaction, len(personas))
	for i, p := range personas {
		r := models.Reaction{
			PersonaID: p.ID,
			Name:      p.Name,
			Avatar:    p.Avatar,
			Sentiment: sentiment.Neutral,
		}
		if gens[i].Err != nil {
			o.logger.Warn().Err(gens[i].Err).Str("persona_id", p.ID).
				Msg("generation failed, using fallback reaction")
			r.Reaction = fallbackSimplePrefix + question
		} else {
			r.Reaction = gens[i].Text
			r.Sentiment, r.SentimentScore = sentiment.Keyword(gens[i].Text)
		}
		reactions[i] = r
	}

	metrics.SessionsTotal.WithLabelValues("simple").Inc()

	return &SimpleResult{
		Question:  question,
		Reactions: reactions,
		Timestamp: now(),
	}, nil
}

// GroupDiscussion runs a short multi-round exchange around a question.
// Provided initial reactions seed the rolling context as round-zero
// entries; they are not echoed back in the result.
func (o *Orchestrator) GroupDiscussion(ctx context.Context, question string, personaIDs []string, initial []models.Reaction) (*DiscussionResult, error) {
	personas, err := o.repo.Resolve(ctx, personaIDs)
	if err != nil {
		return nil, err
	}
	if len(personas) == 0 {
		return nil, ErrNoPersonas
	}

	transcript := make([]models.Message, 0, len(initial)+len(personas)*o.cfg.GroupRounds)
	for _, r := range initial {
		transcript = append(transcript, models.Message{
			PersonaID:   models.CanonicalID(r.PersonaID),
			PersonaName: r.Name,
			Content:     r.Reaction,
			Round:       0,
		})
	}

	var discussion []models.Message
	for round := 1; round <= o.cfg.GroupRounds; round++ {
		msgs := o.runRound(ctx, personas, round, fallbackGroupRound, prompt.PhaseGroupRound,
			func(p *models.Persona) string {
				recent := prompt.Window(transcript, p.ID, prompt.GroupWindow)
				return prompt.GroupRound(p, question, recent, round)
			})
		discussion = append(discussion, msgs...)
		transcript = append(transcript, msgs...)
	}

	metrics.SessionsTotal.WithLabelValues("discussion").Inc()

	return &DiscussionResult{
		Question:           question,
		DiscussionMessages: discussion,
		Timestamp:          now(),
	}, nil
}

// runRound fans one discussion round out across all personas and scores
// the results. The transcript is frozen when the round's prompts are
// built, so calls within a round are independent.
func (o *Orchestrator) runRound(ctx context.Context, personas []models.Persona, round int, fallback, phase string, buildPrompt func(*models.Persona) string) []models.Message {
	prompts := make([]string, len(personas))
	for i := range personas {
		prompts[i] = buildPrompt(&personas[i])
	}

	gens := o.fanOut(ctx, phase, prompts)

	msgs := make([]models.Message, len(personas))
	for i, p := range personas {
		m := models.Message{
			ID:          newMessageID(),
			PersonaID:   p.ID,
			PersonaName: p.Name,
			Avatar:      p.Avatar,
			Sentiment:   sentiment.Neutral,
			Timestamp:   now(),
			Round:       round,
		}
		if gens[i].Err != nil {
			o.logger.Warn().Err(gens[i].Err).Str("persona_id", p.ID).Int("round", round).
				Msg("generation failed, using fallback message")
			m.Content = fallback
		} else {
			m.Content = gens[i].Text
			m.Sentiment, m.SentimentScore = sentiment.Keyword(gens[i].Text)
		}
		msgs[i] = m
		metrics.MessagesProduced.Inc()
	}
	return msgs
}

// FocusGroup runs the full simulation: initial reactions, discussion
// rounds with sentiment snapshots, and a synthesized summary.
func (o *Orchestrator) FocusGroup(ctx context.Context, campaign string, personaIDs []string, goals []string) (*FocusGroupResult, error) {
	personas, err := o.repo.Resolve(ctx, personaIDs)
	if err != nil {
		return nil, err
	}
	if len(personas) == 0 {
		return nil, ErrNoPersonas
	}

	// Phase 1: initial reactions, no transcript context.
	prompts := make([]string, len(personas))
	for i := range personas {
		prompts[i] = prompt.Initial(&personas[i], campaign, goals)
	}
	gens := o.fanOut(ctx, prompt.PhaseInitial, prompts)

	initial := make([]models.InitialReaction, len(personas))
	for i, p := range personas {
		r := models.InitialReaction{
			PersonaID:   p.ID,
			PersonaName: p.Name,
			Avatar:      p.Avatar,
			Sentiment:   sentiment.Neutral,
		}
		if gens[i].Err != nil {
			o.logger.Warn().Err(gens[i].Err).Str("persona_id", p.ID).
				Msg("initial reaction failed, using fallback")
			r.Reaction = fallbackInitial
		} else {
			r.Reaction = gens[i].Text
			r.Sentiment, r.SentimentScore = sentiment.Keyword(gens[i].Text)
		}
		r.NPSScore = clampInt(5+r.SentimentScore, 0, 10)
		r.CSATScore = clampFloat(3+float64(r.SentimentScore)/2, 1, 5)
		initial[i] = r
	}

	// Phase 2: discussion rounds with a sentiment snapshot after each.
	var discussion []models.Message
	intervals := make([]SentimentInterval, 0, o.cfg.FocusRounds)

	for round := 1; round <= o.cfg.FocusRounds; round++ {
		transcript := discussion
		msgs := o.runRound(ctx, personas, round, fallbackFocusRound, prompt.PhaseFocusRound,
			func(p *models.Persona) string {
				recent := prompt.Window(transcript, p.ID, prompt.FocusWindow)
				return prompt.FocusRound(p, campaign, goals, recent, round)
			})
		discussion = append(discussion, msgs...)

		perPersona := make(map[string]int, len(msgs))
		total := 0
		for _, m := range msgs {
			perPersona[m.PersonaID] = m.SentimentScore
			total += m.SentimentScore
		}
		overall := 0.0
		if len(msgs) > 0 {
			overall = float64(total) / float64(len(msgs))
		}
		intervals = append(intervals, SentimentInterval{
			Round:             round,
			OverallSentiment:  overall,
			PersonaSentiments: perPersona,
			Timestamp:         now(),
		})
	}

	// Phase 3: the first selected persona synthesizes the whole session.
	summaryText := fallbackSummary
	summaryPrompt := prompt.Summary(&personas[0], campaign, initial, discussion)
	if text, err := o.gen.Generate(ctx, summaryPrompt); err != nil {
		metrics.GenerationsTotal.WithLabelValues(prompt.PhaseSummary).Inc()
		metrics.GenerationFailures.WithLabelValues(prompt.PhaseSummary).Inc()
		o.logger.Warn().Err(err).Str("persona_id", personas[0].ID).
			Msg("summary generation failed, using fallback")
	} else {
		metrics.GenerationsTotal.WithLabelValues(prompt.PhaseSummary).Inc()
		summaryText = text
	}

	result := &FocusGroupResult{
		SessionID:           uuid.NewString(),
		CampaignDescription: campaign,
		SessionGoals:        goals,
		InitialReactions:    initial,
		DiscussionMessages:  discussion,
		SentimentIntervals:  intervals,
		FinalSummary:        buildFinalSummary(initial, discussion, intervals, summaryText, len(personas)),
		OverallMetrics:      buildOverallMetrics(initial),
		Timestamp:           now(),
	}

	metrics.SessionsTotal.WithLabelValues("focus_group").Inc()
	return result, nil
}

// buildFinalSummary computes the aggregate sentiment figures and templated
// insights for a completed session.
func buildFinalSummary(initial []models.InitialReaction, discussion []models.Message, intervals []SentimentInterval, summaryText string, personaCount int) FinalSummary {
	total := 0
	count := 0
	for _, r := range initial {
		total += r.SentimentScore
		count++
	}
	for _, m := range discussion {
		total += m.SentimentScore
		count++
	}
	overall := 0.0
	if count > 0 {
		overall = float64(total) / float64(count)
	}

	// Shift is final-round sentiment minus the initial-reaction mean. With
	// no initial reactions or no rounds there is no meaningful baseline,
	// so the shift is zero rather than a division error.
	shift := 0.0
	if len(initial) > 0 && len(intervals) > 0 {
		initialTotal := 0
		for _, r := range initial {
			initialTotal += r.SentimentScore
		}
		initialMean := float64(initialTotal) / float64(len(initial))
		shift = intervals[len(intervals)-1].OverallSentiment - initialMean
	}

	tone := "Neutral"
	if overall > 0.2 {
		tone = "Positive"
	} else if overall < -0.2 {
		tone = "Negative"
	}

	trend := "remained stable"
	if shift > 0.1 {
		trend = "improved"
	} else if shift < -0.1 {
		trend = "declined"
	}

	return FinalSummary{
		OverallSentiment: overall,
		SentimentShift:   shift,
		KeyInsights: []string{
			fmt.Sprintf("Overall sentiment: %s", tone),
			fmt.Sprintf("Sentiment %s during discussion", trend),
			fmt.Sprintf("Engaged %d personas in %d discussion points", personaCount, len(discussion)),
		},
		Recommendations: []string{
			"Consider the feedback from different persona perspectives",
			"Address concerns raised during the discussion",
			"Leverage positive aspects highlighted by personas",
		},
		SummaryText: summaryText,
	}
}

// buildOverallMetrics averages the per-reaction satisfaction numbers,
// rounded to one decimal. An empty session reports the neutral midpoints.
func buildOverallMetrics(initial []models.InitialReaction) OverallMetrics {
	if len(initial) == 0 {
		return OverallMetrics{NPS: 5, CSAT: 3, AvgSentiment: 0}
	}

	var nps, csat, sent float64
	for _, r := range initial {
		nps += float64(r.NPSScore)
		csat += r.CSATScore
		sent += float64(r.SentimentScore)
	}
	n := float64(len(initial))
	return OverallMetrics{
		NPS:          round1(nps / n),
		CSAT:         round1(csat / n),
		AvgSentiment: round1(sent / n),
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
