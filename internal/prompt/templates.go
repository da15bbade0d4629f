package prompt

// Phase names for the prompt templates the pipeline can issue.
const (
	PhaseSimple     = "simple_interaction"
	PhaseInitial    = "initial_reaction"
	PhaseGroupRound = "group_discussion"
	PhaseFocusRound = "focus_group_discussion"
	PhaseSummary    = "summary_synthesis"
)

// Templates maps each phase to its core instruction line. The builders
// assemble their prompts from these entries, so the registry is the single
// source for the task surface (the health endpoint reports its size).
var Templates = map[string]string{
	PhaseSimple:     "Please respond to: %s",
	PhaseInitial:    "What is your initial reaction to this campaign?",
	PhaseGroupRound: "Round %d: Please share your thoughts and respond to others' comments.",
	PhaseFocusRound: "Round %d: Please share your thoughts and respond to others' comments.",
	PhaseSummary:    "Synthesize the session: summarize the overall reception, the main points of agreement and disagreement, and what the group's feedback means for this campaign.",
}
