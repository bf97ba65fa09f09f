// Package types defines the core data model shared across the simplification
// pipeline: CEFR levels, detected eras, chunks, and simplification results.
package types

import (
	"fmt"
	"strings"
)

// CEFRLevel is a Common European Framework of Reference reading level.
// Levels are ordered A1 < A2 < B1 < B2 < C1 < C2.
type CEFRLevel string

const (
	LevelA1 CEFRLevel = "A1"
	LevelA2 CEFRLevel = "A2"
	LevelB1 CEFRLevel = "B1"
	LevelB2 CEFRLevel = "B2"
	LevelC1 CEFRLevel = "C1"
	LevelC2 CEFRLevel = "C2"
)

// AllLevels lists every CEFR level in ascending proficiency order.
var AllLevels = []CEFRLevel{LevelA1, LevelA2, LevelB1, LevelB2, LevelC1, LevelC2}

// ParseLevel converts a string like "a1" or "B2" into a CEFRLevel.
func ParseLevel(s string) (CEFRLevel, error) {
	level := CEFRLevel(strings.ToUpper(strings.TrimSpace(s)))
	for _, l := range AllLevels {
		if level == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown CEFR level: %q", s)
}

// Ordinal returns the zero-based position of the level (A1=0 .. C2=5),
// or -1 for an unknown level.
func (l CEFRLevel) Ordinal() int {
	for i, level := range AllLevels {
		if l == level {
			return i
		}
	}
	return -1
}

// Era is the detected historical/linguistic register of a source text.
type Era string

const (
	EraEarlyModern Era = "early-modern"
	EraVictorian   Era = "victorian"
	EraAmerican19c Era = "american-19c"
	EraModern      Era = "modern"
)

// IsArchaic reports whether the era predates modern English. Archaic eras
// bypass the similarity gate: low lexical similarity to the original is the
// goal of modernization, not a defect.
func (e Era) IsArchaic() bool {
	switch e {
	case EraEarlyModern, EraVictorian, EraAmerican19c:
		return true
	}
	return false
}

// Quality labels the acceptance outcome of a simplification.
type Quality string

const (
	QualityExcellent  Quality = "excellent"  // modern era, score >= 0.95
	QualityGood       Quality = "good"       // modern era, score >= 0.90
	QualityAcceptable Quality = "acceptable" // modern era, score >= threshold
	QualityModernized Quality = "modernized" // archaic era, gate bypassed
	QualityFailed     Quality = "failed"     // attempt budget exhausted
)

// Chunk is a contiguous, index-ordered slice of book text. Indices are
// zero-based and contiguous within a book; the same chunking must feed both
// the reading display and audio generation.
type Chunk struct {
	Index     int    `json:"index"`
	Text      string `json:"text"`
	WordCount int    `json:"word_count"`
}

// SimplificationAttempt records one model call made by the retry controller.
type SimplificationAttempt struct {
	Level           CEFRLevel `json:"level"`
	ChunkIndex      int       `json:"chunk_index"`
	AttemptNumber   int       `json:"attempt_number"`
	Temperature     float64   `json:"temperature"`
	OutputText      string    `json:"output_text"`
	SimilarityScore float64   `json:"similarity_score"`
	PromptHash      string    `json:"prompt_hash,omitempty"`
}

// SimplificationResult is the durable output of the pipeline, unique per
// (book, level, chunk). Exhausted attempts still produce a result carrying
// the best-effort output tagged QualityFailed so the caller can decide policy.
type SimplificationResult struct {
	BookID         string    `json:"book_id"`
	Level          CEFRLevel `json:"level"`
	ChunkIndex     int       `json:"chunk_index"`
	SimplifiedText string    `json:"simplified_text"`
	QualityScore   float64   `json:"quality_score"`
	Quality        Quality   `json:"quality"`
	Era            Era       `json:"era"`
	Attempts       int       `json:"attempts"`
}
