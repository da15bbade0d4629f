// Package prompt builds the text prompts sent to the generation provider.
// Builders are pure: identical inputs always produce identical prompt
// strings. Length limits are the provider's concern, not ours.
package prompt

import (
	"fmt"
	"sort"
	"strings"

	"github.com/meshai-labs/meshai/internal/models"
)

// Transcript context window sizes. Focus-group rounds see a wider slice of
// the discussion than the lighter group-discussion flow.
const (
	FocusWindow = 6
	GroupWindow = 3
)

// Profile renders a persona as descriptive sentences: identity, background,
// communication style, trait descriptors, and behavioral tendencies.
func Profile(p *models.Persona) string {
	parts := []string{
		fmt.Sprintf("You are %s.", p.Name),
		fmt.Sprintf("Description: %s", p.Description),
	}

	if p.BackgroundContext != "" {
		parts = append(parts, fmt.Sprintf("Background: %s", p.BackgroundContext))
	}
	if p.CommunicationStyle != "" {
		parts = append(parts, fmt.Sprintf("Communication Style: %s", p.CommunicationStyle))
	}
	if traits := formatTraits(p.PersonalityTraits); traits != "" {
		parts = append(parts, fmt.Sprintf("Personality Traits: %s", traits))
	}
	if behavioral := behavioralContext(p); behavioral != "" {
		parts = append(parts, behavioral)
	}

	return strings.Join(parts, " ")
}

// formatTraits renders trait values as coarse descriptors. Values in
// [0.3, 0.4] intentionally produce no descriptor. Trait names are sorted so
// the rendering is deterministic.
func formatTraits(traits map[string]float64) string {
	if len(traits) == 0 {
		return ""
	}

	names := make([]string, 0, len(traits))
	for name := range traits {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []string
	for _, name := range names {
		v := traits[name]
		switch {
		case v > 0.7:
			out = append(out, "very "+name)
		case v > 0.4:
			out = append(out, "moderately "+name)
		case v < 0.3:
			out = append(out, "not very "+name)
		}
	}
	return strings.Join(out, ", ")
}

// behavioralContext turns the behavioral parameters into tendency
// sentences. Each parameter has a dead zone that contributes nothing.
func behavioralContext(p *models.Persona) string {
	var parts []string

	if p.SentimentBias > 0.3 {
		parts = append(parts, "You tend to be optimistic and positive in your responses.")
	} else if p.SentimentBias < -0.3 {
		parts = append(parts, "You tend to be more critical and skeptical in your responses.")
	}

	if p.EngagementLevel > 0.7 {
		parts = append(parts, "You are highly engaged and enthusiastic in discussions.")
	} else if p.EngagementLevel < 0.3 {
		parts = append(parts, "You are more reserved and measured in your participation.")
	}

	if p.ControversyTolerance > 0.7 {
		parts = append(parts, "You're comfortable with controversial topics and debates.")
	} else if p.ControversyTolerance < 0.3 {
		parts = append(parts, "You prefer to avoid controversial topics when possible.")
	}

	return strings.Join(parts, " ")
}

// instructions is the closing directive of every prompt, with length
// guidance keyed off the persona's engagement level.
func instructions(p *models.Persona) string {
	parts := []string{
		fmt.Sprintf("Respond as %s.", p.Name),
		"Stay true to your personality traits and background.",
		"Keep your response natural and conversational.",
	}

	if p.EngagementLevel > 0.7 {
		parts = append(parts, "Feel free to elaborate and share detailed thoughts.")
	} else if p.EngagementLevel < 0.3 {
		parts = append(parts, "Keep your response concise and to the point.")
	}

	return strings.Join(parts, " ")
}

// Window returns at most the last n transcript entries with the acting
// persona's own messages removed, preserving chronological order. The slice
// is taken before filtering, so a window never reaches further back to
// replace excluded entries.
func Window(transcript []models.Message, excludePersonaID string, n int) []models.Message {
	start := len(transcript) - n
	if start < 0 {
		start = 0
	}

	var out []models.Message
	for _, m := range transcript[start:] {
		if m.PersonaID != excludePersonaID {
			out = append(out, m)
		}
	}
	return out
}

// renderTranscript renders messages as "{persona_name}: {content}" lines.
func renderTranscript(messages []models.Message) string {
	lines := make([]string, len(messages))
	for i, m := range messages {
		lines[i] = fmt.Sprintf("%s: %s", m.PersonaName, m.Content)
	}
	return strings.Join(lines, "\n")
}

func goalsLine(goals []string) string {
	if len(goals) == 0 {
		return "General feedback"
	}
	return strings.Join(goals, ", ")
}

// Simple builds the prompt for a one-shot question with no transcript.
func Simple(p *models.Persona, question string) string {
	return strings.Join([]string{
		Profile(p),
		fmt.Sprintf(Templates[PhaseSimple], question),
		instructions(p),
	}, "\n")
}

// Initial builds the focus-group opening prompt: campaign and goals, no
// transcript context.
func Initial(p *models.Persona, campaign string, goals []string) string {
	return strings.Join([]string{
		Profile(p),
		fmt.Sprintf("Campaign: %s", campaign),
		fmt.Sprintf("Goals: %s", goalsLine(goals)),
		Templates[PhaseInitial],
		instructions(p),
	}, "\n")
}

// FocusRound builds a focus-group discussion-round prompt with the rolling
// transcript window.
func FocusRound(p *models.Persona, campaign string, goals []string, recent []models.Message, round int) string {
	parts := []string{
		Profile(p),
		fmt.Sprintf("Campaign: %s", campaign),
		fmt.Sprintf("Goals: %s", goalsLine(goals)),
	}

	if len(recent) > 0 {
		parts = append(parts, "Previous discussion:\n"+renderTranscript(recent))
	} else {
		parts = append(parts, "This is the start of the discussion.")
	}

	parts = append(parts,
		fmt.Sprintf(Templates[PhaseFocusRound], round),
		instructions(p),
	)
	return strings.Join(parts, "\n")
}

// GroupRound builds a group-discussion prompt around a standalone question.
func GroupRound(p *models.Persona, question string, recent []models.Message, round int) string {
	parts := []string{
		Profile(p),
		fmt.Sprintf("Question: %s", question),
	}

	if len(recent) > 0 {
		parts = append(parts, "Previous discussion:\n"+renderTranscript(recent))
	} else {
		parts = append(parts, "This is the start of the discussion.")
	}

	parts = append(parts,
		fmt.Sprintf(Templates[PhaseGroupRound], round),
		instructions(p),
	)
	return strings.Join(parts, "\n")
}

// Summary asks one persona to synthesize the entire accumulated session.
func Summary(p *models.Persona, campaign string, initial []models.InitialReaction, discussion []models.Message) string {
	var sb strings.Builder
	sb.WriteString("Initial Reactions:\n")
	for _, r := range initial {
		fmt.Fprintf(&sb, "%s: %s\n", r.PersonaName, r.Reaction)
	}
	sb.WriteString("\nDiscussion Messages:\n")
	for _, m := range discussion {
		fmt.Fprintf(&sb, "Round %d - %s: %s\n", m.Round, m.PersonaName, m.Content)
	}

	return strings.Join([]string{
		Profile(p),
		fmt.Sprintf("Campaign: %s", campaign),
		"Full discussion so far:\n" + sb.String(),
		Templates[PhaseSummary],
		instructions(p),
	}, "\n")
}
