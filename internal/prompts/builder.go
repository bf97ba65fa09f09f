package prompts

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/readlite/readlite/internal/types"
)

//go:embed templates/modern.tmpl
var modernTemplate string

//go:embed templates/archaic.tmpl
var archaicTemplate string

var (
	modernTmpl  = template.Must(template.New("modern").Parse(modernTemplate))
	archaicTmpl = template.Must(template.New("archaic").Parse(archaicTemplate))
)

// levelSpecs maps each CEFR level to its simplification parameters.
// Aggressiveness decreases as proficiency increases.
var levelSpecs = map[types.CEFRLevel]LevelSpec{
	types.LevelA1: {
		MaxSentenceWords: 8,
		VocabularySize:   500,
		Instructions: "Rewrite for absolute beginners. Use only simple present and past tense. " +
			"One idea per sentence. Replace every difficult word with an everyday one, " +
			"even if some nuance is lost.",
	},
	types.LevelA2: {
		MaxSentenceWords: 10,
		VocabularySize:   1000,
		Instructions: "Rewrite for elementary learners. Use simple tenses and common connectors " +
			"(and, but, because). Replace idioms and figurative language with plain statements.",
	},
	types.LevelB1: {
		MaxSentenceWords: 15,
		VocabularySize:   2000,
		Instructions: "Rewrite for intermediate learners. Everyday vocabulary, straightforward " +
			"sentence structure. Explain or replace culture-specific references.",
	},
	types.LevelB2: {
		MaxSentenceWords: 20,
		VocabularySize:   3000,
		Instructions: "Rewrite for upper-intermediate learners. Keep some sentence variety, but " +
			"simplify dense clauses and uncommon vocabulary.",
	},
	types.LevelC1: {
		MaxSentenceWords: 25,
		VocabularySize:   5000,
		Instructions: "Lightly adapt for advanced learners. Simplify only rare vocabulary and " +
			"the most convoluted sentences. Preserve the author's style.",
	},
	types.LevelC2: {
		MaxSentenceWords: 35,
		VocabularySize:   8000,
		Instructions: "Minimal intervention for near-native readers. Only modernize dated usage " +
			"and clarify genuinely obscure constructions. Preserve the author's style.",
	},
}

// eraNames maps archaic eras to the register name used in the prompt.
var eraNames = map[types.Era]string{
	types.EraEarlyModern: "early modern (Shakespearean-era)",
	types.EraVictorian:   "Victorian-era",
	types.EraAmerican19c: "19th-century American vernacular",
}

// LevelSpecFor returns the simplification parameters for a level.
func LevelSpecFor(level types.CEFRLevel) (LevelSpec, bool) {
	spec, ok := levelSpecs[level]
	return spec, ok
}

// Build renders the simplification prompt for a (level, era) pair around the
// chunk text. The text is embedded exactly once.
func Build(level types.CEFRLevel, era types.Era, text string) (string, error) {
	spec, ok := levelSpecs[level]
	if !ok {
		return "", fmt.Errorf("no prompt parameters for level %q", level)
	}

	data := promptData{
		Level:            string(level),
		Instructions:     spec.Instructions,
		MaxSentenceWords: spec.MaxSentenceWords,
		VocabularySize:   spec.VocabularySize,
		Text:             text,
	}

	tmpl := modernTmpl
	if era.IsArchaic() {
		tmpl = archaicTmpl
		data.EraName = eraNames[era]
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", tmpl.Name(), err)
	}
	return sb.String(), nil
}
