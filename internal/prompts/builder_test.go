package prompts

import (
	"strings"
	"testing"

	"github.com/readlite/readlite/internal/types"
)

func TestBuild_EmbedsTextOnce(t *testing.T) {
	text := "MARKER-7f3a the original passage MARKER-7f3a-end"
	for _, era := range []types.Era{types.EraModern, types.EraVictorian} {
		prompt, err := Build(types.LevelB1, era, text)
		if err != nil {
			t.Fatalf("Build(%v): %v", era, err)
		}
		if got := strings.Count(prompt, text); got != 1 {
			t.Errorf("era %v: text embedded %d times, want 1", era, got)
		}
	}
}

func TestBuild_ReturnOnlyDirective(t *testing.T) {
	for _, era := range []types.Era{types.EraModern, types.EraEarlyModern} {
		prompt, err := Build(types.LevelA2, era, "Some text.")
		if err != nil {
			t.Fatalf("Build(%v): %v", era, err)
		}
		if !strings.Contains(prompt, "Return only the") {
			t.Errorf("era %v: prompt missing return-only directive", era)
		}
		if !strings.Contains(prompt, "Do not add commentary") {
			t.Errorf("era %v: prompt missing no-commentary directive", era)
		}
	}
}

func TestBuild_ArchaicTemplateSelection(t *testing.T) {
	tests := []struct {
		era     types.Era
		eraName string
		archaic bool
	}{
		{types.EraEarlyModern, "early modern", true},
		{types.EraVictorian, "Victorian", true},
		{types.EraAmerican19c, "19th-century American", true},
		{types.EraModern, "", false},
	}
	for _, tt := range tests {
		prompt, err := Build(types.LevelB2, tt.era, "Some text.")
		if err != nil {
			t.Fatalf("Build(%v): %v", tt.era, err)
		}
		if tt.archaic {
			if !strings.Contains(prompt, tt.eraName) {
				t.Errorf("era %v: prompt does not name the %q register", tt.era, tt.eraName)
			}
		} else {
			for _, name := range eraNames {
				if strings.Contains(prompt, name) {
					t.Errorf("modern prompt mentions archaic register %q", name)
				}
			}
		}
	}
}

func TestBuild_LevelAggressiveness(t *testing.T) {
	a1, err := Build(types.LevelA1, types.EraModern, "Some text.")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := Build(types.LevelC2, types.EraModern, "Some text.")
	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(a1, "8 words") {
		t.Error("A1 prompt missing its sentence length limit")
	}
	if !strings.Contains(c2, "35 words") {
		t.Error("C2 prompt missing its sentence length limit")
	}
	if !strings.Contains(a1, "500") || !strings.Contains(c2, "8000") {
		t.Error("prompts missing vocabulary sizes")
	}
	if !strings.Contains(c2, "Preserve the author's style") {
		t.Error("C2 prompt should instruct preserving the author's style")
	}
}

func TestBuild_UnknownLevel(t *testing.T) {
	if _, err := Build(types.CEFRLevel("z9"), types.EraModern, "text"); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestLevelSpecFor(t *testing.T) {
	for _, level := range types.AllLevels {
		spec, ok := LevelSpecFor(level)
		if !ok {
			t.Errorf("no spec for level %s", level)
			continue
		}
		if spec.MaxSentenceWords <= 0 || spec.VocabularySize <= 0 {
			t.Errorf("level %s has empty parameters: %+v", level, spec)
		}
	}

	// Limits must grow monotonically with proficiency.
	for i := 1; i < len(types.AllLevels); i++ {
		lo, _ := LevelSpecFor(types.AllLevels[i-1])
		hi, _ := LevelSpecFor(types.AllLevels[i])
		if hi.MaxSentenceWords < lo.MaxSentenceWords {
			t.Errorf("%s allows shorter sentences than %s", types.AllLevels[i], types.AllLevels[i-1])
		}
		if hi.VocabularySize < lo.VocabularySize {
			t.Errorf("%s allows smaller vocabulary than %s", types.AllLevels[i], types.AllLevels[i-1])
		}
	}
}

func TestExtractVariables(t *testing.T) {
	tmpl := "Level {{.Level}}: rewrite {{ .Text }} using {{.Level}} rules"
	got := ExtractVariables(tmpl)
	want := []string{"Level", "Text"}
	if len(got) != len(want) {
		t.Fatalf("ExtractVariables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ExtractVariables()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTemplates_SingleTextVariable(t *testing.T) {
	for name, tmpl := range map[string]string{"modern": modernTemplate, "archaic": archaicTemplate} {
		if got := strings.Count(tmpl, "{{.Text}}"); got != 1 {
			t.Errorf("%s template references .Text %d times, want 1", name, got)
		}
	}
}

func TestHashText(t *testing.T) {
	a := HashText("prompt one")
	b := HashText("prompt two")
	if a == b {
		t.Error("different prompts hashed identically")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
	if a != HashText("prompt one") {
		t.Error("hash is not stable")
	}
}
