// Package sentiment scores generated persona responses. Three policies
// exist; the keyword policy is the one the pipeline applies to every
// transcript message. BiasOnly and Combined are kept for callers that have
// no response text or want bias-weighted float scores.
package sentiment

import "strings"

// Sentiment labels.
const (
	Positive = "positive"
	Neutral  = "neutral"
	Negative = "negative"
)

var positiveWords = []string{
	"great", "excellent", "amazing", "wonderful", "fantastic", "love",
	"brilliant", "outstanding", "perfect", "impressive", "innovative",
	"exciting", "valuable", "effective", "successful",
}

var negativeWords = []string{
	"terrible", "awful", "horrible", "hate", "disgusting", "worst",
	"disappointing", "useless", "failed", "broken", "concerning",
	"problematic", "challenging", "difficult", "expensive",
}

// Keyword labels text by keyword majority. Each list word counts once if it
// appears anywhere in the text, case-insensitively. The score is the count
// difference capped at ±5. Persona bias is not applied.
func Keyword(text string) (string, int) {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	switch {
	case pos > neg:
		return Positive, min(5, pos-neg)
	case neg > pos:
		return Negative, max(-5, -(neg - pos))
	default:
		return Neutral, 0
	}
}

// BiasOnly labels a turn from the persona's static sentiment bias alone,
// ignoring content. Biases in [-0.2, 0.2] are neutral.
func BiasOnly(bias float64) (string, int) {
	switch {
	case bias > 0.2:
		return Positive, 1
	case bias < -0.2:
		return Negative, -1
	default:
		return Neutral, 0
	}
}

// Combined mixes keyword majority with persona bias into a float score in
// [-1, 1]: a ±0.3 base plus 0.1 per keyword of majority, shifted by half
// the bias.
func Combined(text string, bias float64) (string, float64) {
	lower := strings.ToLower(text)

	var pos, neg int
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			pos++
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			neg++
		}
	}

	var base float64
	switch {
	case pos > neg:
		base = 0.3 + 0.1*float64(pos-neg)
	case neg > pos:
		base = -0.3 - 0.1*float64(neg-pos)
	}

	score := base + 0.5*bias
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}

	label := Neutral
	if score > 0 {
		label = Positive
	} else if score < 0 {
		label = Negative
	}
	return label, score
}
