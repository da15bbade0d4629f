package sentiment

import "testing"

func TestKeywordMajority(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		label string
		score int
	}{
		{"two positive", "This is great and wonderful.", Positive, 2},
		{"one negative", "Frankly, a disappointing result", Negative, -1},
		{"tie is neutral", "great but expensive", Neutral, 0},
		{"no keywords", "I have no strong opinion on this.", Neutral, 0},
		{"empty", "", Neutral, 0},
		{"case insensitive", "GREAT! Absolutely BRILLIANT!", Positive, 2},
		{"positive cap at five", "great excellent amazing wonderful fantastic love brilliant", Positive, 5},
		{"negative cap at five", "terrible awful horrible hate disgusting worst disappointing", Negative, -5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, score := Keyword(tt.text)
			if label != tt.label || score != tt.score {
				t.Fatalf("Keyword(%q) = (%s, %d), want (%s, %d)", tt.text, label, score, tt.label, tt.score)
			}
		})
	}
}

func TestKeywordCountsEachWordOnce(t *testing.T) {
	// Repetition of a single list word does not stack.
	label, score := Keyword("great great great")
	if label != Positive || score != 1 {
		t.Fatalf("got (%s, %d), want (positive, 1)", label, score)
	}
}

func TestBiasOnlyThresholds(t *testing.T) {
	tests := []struct {
		bias  float64
		label string
		score int
	}{
		{0.5, Positive, 1},
		{0.21, Positive, 1},
		{0.2, Neutral, 0},
		{0.0, Neutral, 0},
		{-0.2, Neutral, 0},
		{-0.21, Negative, -1},
		{-1.0, Negative, -1},
	}

	for _, tt := range tests {
		label, score := BiasOnly(tt.bias)
		if label != tt.label || score != tt.score {
			t.Fatalf("BiasOnly(%v) = (%s, %d), want (%s, %d)", tt.bias, label, score, tt.label, tt.score)
		}
	}
}

func closeTo(got, want float64) bool {
	d := got - want
	return d < 1e-9 && d > -1e-9
}

func TestCombinedBaseAndBias(t *testing.T) {
	// One positive keyword, no bias: 0.3 + 0.1.
	label, score := Combined("this is great", 0)
	if label != Positive || !closeTo(score, 0.4) {
		t.Fatalf("got (%s, %v), want (positive, 0.4)", label, score)
	}

	// Strong negative bias flips a mildly positive text.
	label, score = Combined("this is great", -1)
	if label != Negative {
		t.Fatalf("got label %s, want negative", label)
	}
	if !closeTo(score, -0.1) {
		t.Fatalf("got score %v, want -0.1", score)
	}
}

func TestCombinedClamps(t *testing.T) {
	_, score := Combined("great excellent amazing wonderful fantastic love brilliant outstanding perfect", 1)
	if score != 1 {
		t.Fatalf("got %v, want clamp to 1", score)
	}

	_, score = Combined("terrible awful horrible hate disgusting worst disappointing useless failed", -1)
	if score != -1 {
		t.Fatalf("got %v, want clamp to -1", score)
	}
}
