// Package era classifies source text into a historical/linguistic register.
// The detected era drives both prompt selection and similarity-gate thresholds.
package era

import (
	"regexp"
	"strings"

	"github.com/readlite/readlite/internal/types"
)

// sampleSize bounds how much of the text is scanned. Register signals show up
// in the opening paragraphs; scanning whole books buys nothing.
const sampleSize = 2000

// Lexical signals per era, matched case-insensitively against the sample.
// Each match adds one point to the era's score.
var (
	earlyModernSignals = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(thou|thee|thy|thine)\b`),
		regexp.MustCompile(`(?i)\b(hath|doth|didst|wouldst|shouldst|couldst)\b`),
		regexp.MustCompile(`(?i)\b(hast|art|wilt|shalt|saith|goeth|cometh|maketh|knoweth)\b`),
		regexp.MustCompile(`(?i)\b(wherefore|whence|hither|thither|prithee|forsooth)\b`),
		regexp.MustCompile(`(?i)\b(nay|yea|ere|oft|anon)\b`),
	}

	victorianSignals = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(whilst|amongst|amidst|upon)\b`),
		regexp.MustCompile(`(?i)\b(endeavour|colour|honour|favour|parlour|labour)\b`),
		regexp.MustCompile(`(?i)\b(gentleman|gentlemen|ladyship|lordship|countenance)\b`),
		regexp.MustCompile(`(?i)\b(exceedingly|scarcely|presently|directly|exceeding)\b`),
		regexp.MustCompile(`(?i)\b(drawing-room|carriage|governess|parsonage|chaperone)\b`),
	}

	american19cSignals = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(ain't|warn't|hain't|'bout|'nough|reckon)\b`),
		regexp.MustCompile(`(?i)\b(y'all|yonder|feller|mighty|powerful)\b`),
		regexp.MustCompile(`(?i)\bgwyne\b|\bdasn't\b|\bsivilize\b`),
		regexp.MustCompile(`(?i)\b\w+in'\b`),
	}
)

// sentence terminators used for the mean-sentence-length signal.
var sentenceSplit = regexp.MustCompile(`[.!?]+`)

// Long mean sentence length is characteristic of pre-modern prose. Values are
// words per sentence.
const (
	longSentenceMean     = 30.0
	veryLongSentenceMean = 40.0
)

// Detect classifies text into an era. Deterministic for a fixed input: the
// strictly highest score wins, ties fall through a fixed priority order
// (early-modern, then victorian, then american-19c), and a zero score for
// every era defaults to modern.
func Detect(text string) types.Era {
	sample := text
	if len(sample) > sampleSize {
		sample = sample[:sampleSize]
	}

	scores := map[types.Era]int{
		types.EraEarlyModern: countSignals(sample, earlyModernSignals),
		types.EraVictorian:   countSignals(sample, victorianSignals),
		types.EraAmerican19c: countSignals(sample, american19cSignals),
	}

	switch mean := meanSentenceLength(sample); {
	case mean >= veryLongSentenceMean:
		scores[types.EraEarlyModern]++
		scores[types.EraVictorian] += 2
	case mean >= longSentenceMean:
		scores[types.EraVictorian]++
	}

	// Fixed priority order doubles as the tie-break.
	best := types.EraModern
	bestScore := 0
	for _, e := range []types.Era{types.EraEarlyModern, types.EraVictorian, types.EraAmerican19c} {
		if scores[e] > bestScore {
			best = e
			bestScore = scores[e]
		}
	}
	return best
}

func countSignals(sample string, signals []*regexp.Regexp) int {
	n := 0
	for _, re := range signals {
		n += len(re.FindAllStringIndex(sample, -1))
	}
	return n
}

// meanSentenceLength returns the average number of words per sentence in the
// sample, or 0 when the sample has no sentence terminators.
func meanSentenceLength(sample string) float64 {
	sentences := sentenceSplit.Split(sample, -1)
	var total, count int
	for _, s := range sentences {
		words := len(strings.Fields(s))
		if words == 0 {
			continue
		}
		total += words
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(total) / float64(count)
}
