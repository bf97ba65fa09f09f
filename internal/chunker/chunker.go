// Package chunker splits full book text into index-ordered chunks.
//
// One chunker configuration must feed every consumer of a book's chunks.
// Display and audio generation historically used different chunk sizes, which
// produced misaligned text/audio pairs; deriving both from the same Split call
// is how that stays fixed.
package chunker

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/readlite/readlite/internal/types"
)

// ErrInvalidInput is returned when the source text is empty or whitespace-only.
var ErrInvalidInput = errors.New("invalid input text")

// DefaultMaxChunkSize is the default window size in words.
const DefaultMaxChunkSize = 300

// DefaultOverlapSize is the default number of trailing words repeated at the
// start of the next chunk for context continuity.
const DefaultOverlapSize = 0

// Options configures a Split call.
type Options struct {
	MaxChunkSize      int  // window size in words
	OverlapSize       int  // trailing words repeated in the next chunk
	PreserveSentences bool // move boundaries to the nearest sentence terminator
}

// DefaultOptions returns the chunker configuration used for both reading
// display and audio generation.
func DefaultOptions() Options {
	return Options{
		MaxChunkSize:      DefaultMaxChunkSize,
		OverlapSize:       DefaultOverlapSize,
		PreserveSentences: true,
	}
}

// span is a word's byte range within the source text.
type span struct {
	start, end int
}

// Split chunks fullText into windows of at most MaxChunkSize words with
// zero-based contiguous indices. Chunk text is sliced from the original, so
// intra-chunk whitespace and punctuation survive untouched.
func Split(bookID, fullText string, opts Options) ([]types.Chunk, error) {
	if strings.TrimSpace(fullText) == "" {
		return nil, fmt.Errorf("%w: book %s has no text", ErrInvalidInput, bookID)
	}
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = DefaultMaxChunkSize
	}
	if opts.OverlapSize < 0 {
		opts.OverlapSize = 0
	}
	if opts.OverlapSize >= opts.MaxChunkSize {
		opts.OverlapSize = opts.MaxChunkSize / 4
	}

	words := wordSpans(fullText)

	var chunks []types.Chunk
	start := 0
	for start < len(words) {
		end := start + opts.MaxChunkSize
		if end > len(words) {
			end = len(words)
		} else if opts.PreserveSentences {
			end = nearestSentenceEnd(fullText, words, start, end)
		}

		text := fullText[words[start].start:words[end-1].end]
		chunks = append(chunks, types.Chunk{
			Index:     len(chunks),
			Text:      text,
			WordCount: end - start,
		})

		if end == len(words) {
			break
		}
		next := end - opts.OverlapSize
		if next <= start {
			next = start + 1
		}
		start = next
	}

	return chunks, nil
}

// wordSpans returns the byte range of every whitespace-delimited token.
func wordSpans(text string) []span {
	var spans []span
	inWord := false
	start := 0
	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				spans = append(spans, span{start, i})
				inWord = false
			}
		} else if !inWord {
			start = i
			inWord = true
		}
	}
	if inWord {
		spans = append(spans, span{start, len(text)})
	}
	return spans
}

// nearestSentenceEnd moves the exclusive word boundary `end` to the closest
// sentence terminator, searching forward and backward symmetrically. A
// boundary never moves at or behind `start+1`, so progress is guaranteed even
// for a chunk-sized run of terminator-free text.
func nearestSentenceEnd(text string, words []span, start, end int) int {
	for dist := 0; dist < len(words); dist++ {
		fwd := end + dist
		if fwd <= len(words) && endsSentence(text, words[fwd-1]) {
			return fwd
		}
		back := end - dist
		if back > start+1 && endsSentence(text, words[back-1]) {
			return back
		}
		if fwd > len(words) && back <= start+1 {
			break
		}
	}
	return end
}

// endsSentence reports whether the word closes a sentence. Trailing quotes and
// brackets after the terminator still count: `said."` ends a sentence.
func endsSentence(text string, w span) bool {
	word := strings.TrimRight(text[w.start:w.end], `"')]`+"”’")
	return strings.HasSuffix(word, ".") || strings.HasSuffix(word, "!") || strings.HasSuffix(word, "?")
}
