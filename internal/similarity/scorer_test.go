package similarity

import "testing"

func TestScore_Bounds(t *testing.T) {
	pairs := [][2]string{
		{"the quick brown fox", "the quick brown fox"},
		{"the quick brown fox", "a slow green turtle"},
		{"one two three", ""},
		{"", "something"},
		{"short", "a very much longer text that shares nothing with the original at all"},
	}
	for _, p := range pairs {
		s := Score(p[0], p[1])
		if s < 0 || s > 1 {
			t.Errorf("Score(%q, %q) = %f, out of [0,1]", p[0], p[1], s)
		}
	}
}

func TestScore_IdenticalText(t *testing.T) {
	texts := []string{
		"Hello world.",
		"It was the best of times, it was the worst of times.",
		"One.",
	}
	for _, text := range texts {
		if s := Score(text, text); s != 1.0 {
			t.Errorf("Score(x, x) = %f for %q, want 1.0", s, text)
		}
	}
}

func TestScore_EmptyInputs(t *testing.T) {
	if s := Score("", ""); s != 0 {
		t.Errorf("Score of empty pair = %f, want 0", s)
	}
	if s := Score("text", ""); s != 0 {
		t.Errorf("Score against empty simplified = %f, want 0", s)
	}
}

func TestScore_SimilarBeatsUnrelated(t *testing.T) {
	original := "The captain steered the ship through the narrow channel at dawn."
	similar := "The captain steered the ship through the narrow channel in the morning."
	unrelated := "Bananas are yellow and monkeys enjoy eating them every single day."

	if Score(original, similar) <= Score(original, unrelated) {
		t.Error("a near-copy should score higher than unrelated text")
	}
}

func TestScore_LengthPenalty(t *testing.T) {
	original := "The storm arrived suddenly over the mountains."
	same := "The storm arrived suddenly over the mountains tonight."
	bloated := original + " " + "Additional padding sentences follow. More words. Even more words here. And yet more filler to inflate the output far beyond the original length."

	if Score(original, same) <= Score(original, bloated) {
		t.Error("a much longer output should be penalized")
	}
}

func TestConceptPreservation_SubstringMatch(t *testing.T) {
	// An original word embedded in a longer simplified word still counts.
	s := conceptPreservation("storms gather quickly", "the storms are gathering quickly")
	if s != 1.0 {
		t.Errorf("conceptPreservation = %f, want 1.0 via substring matches", s)
	}
}

func TestSentenceCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"One. Two. Three.", 3},
		{"What?! Really?", 2},
		{"no terminator", 1},
	}
	for _, tt := range tests {
		if got := sentenceCount(tt.text); got != tt.want {
			t.Errorf("sentenceCount(%q) = %d, want %d", tt.text, got, tt.want)
		}
	}
}
