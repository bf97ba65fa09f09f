// Package similarity scores how much of an original text survives in its
// simplified rendering. The composite score gates acceptance for modern-era
// text; archaic eras bypass the gate entirely.
package similarity

import (
	"regexp"
	"strings"
)

// Sub-score weights. They sum to 1.0 so the composite lands in [0,1] before
// clamping.
const (
	conceptWeight    = 0.40
	overlapWeight    = 0.25
	lengthWeight     = 0.20
	structuralWeight = 0.15
)

const (
	importantWordMinLen = 5 // concept preservation considers words longer than 4 chars
	overlapWordMinLen   = 3 // word overlap considers words longer than 2 chars
)

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Score computes a composite similarity in [0,1] between the original and
// simplified text:
//
//	0.40 concept preservation: important original words found (substring match)
//	0.25 word overlap: original words literally present in the simplified set
//	0.20 length ratio: min/max of character lengths
//	0.15 structural ratio: min/max of sentence counts
//
// Score(x, x) == 1.0 for any non-empty x. A perfect score on byte-identical
// input is a pipeline failure signal, not a success; callers must check
// identity separately.
func Score(original, simplified string) float64 {
	if original == "" || simplified == "" {
		return 0
	}

	score := conceptWeight*conceptPreservation(original, simplified) +
		overlapWeight*wordOverlap(original, simplified) +
		lengthWeight*ratio(len(original), len(simplified)) +
		structuralWeight*ratio(sentenceCount(original), sentenceCount(simplified))

	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// conceptPreservation returns the fraction of important original words that
// appear in the simplified text, counting substring matches so inflections
// still get credit ("walk" matches "walking").
func conceptPreservation(original, simplified string) float64 {
	simplifiedLower := strings.ToLower(simplified)

	var total, found int
	for _, w := range tokenize(original) {
		if len(w) < importantWordMinLen {
			continue
		}
		total++
		if strings.Contains(simplifiedLower, w) {
			found++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(found) / float64(total)
}

// wordOverlap returns the fraction of original words literally present in the
// simplified word set.
func wordOverlap(original, simplified string) float64 {
	set := make(map[string]struct{})
	for _, w := range tokenize(simplified) {
		set[w] = struct{}{}
	}

	var total, found int
	for _, w := range tokenize(original) {
		if len(w) < overlapWordMinLen {
			continue
		}
		total++
		if _, ok := set[w]; ok {
			found++
		}
	}
	if total == 0 {
		return 1
	}
	return float64(found) / float64(total)
}

// tokenize lowercases and strips surrounding punctuation from every word.
func tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		w := strings.Trim(f, `.,;:!?"'()[]-—“”‘’`)
		if w != "" {
			words = append(words, w)
		}
	}
	return words
}

func sentenceCount(text string) int {
	n := len(sentenceEnd.FindAllStringIndex(text, -1))
	if n == 0 {
		return 1
	}
	return n
}

func ratio(a, b int) float64 {
	if a <= 0 || b <= 0 {
		return 0
	}
	if a > b {
		a, b = b, a
	}
	return float64(a) / float64(b)
}
