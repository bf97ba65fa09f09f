// Package prompts builds simplification instructions from embedded templates.
//
// Two templates exist: one for modern source text and one for archaic text
// that needs modernization before leveling. Both are parameterized by a
// per-level instruction table whose aggressiveness increases as the CEFR
// level decreases (A1 is the most aggressive rewrite, C2 barely touches the
// text). Each built prompt embeds the source text exactly once and ends with
// a return-only-text directive so downstream parsing stays trivial.
package prompts

// LevelSpec holds the simplification parameters for one CEFR level.
type LevelSpec struct {
	// MaxSentenceWords caps sentence length in the rewritten text.
	MaxSentenceWords int

	// VocabularySize is the size of the common-word vocabulary the model is
	// told to prefer.
	VocabularySize int

	// Instructions is the level-specific guidance block.
	Instructions string
}

// promptData is the template execution context.
type promptData struct {
	Level            string
	EraName          string
	Instructions     string
	MaxSentenceWords int
	VocabularySize   int
	Text             string
}
