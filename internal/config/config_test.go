package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"
)

func TestResolveEnvVars(t *testing.T) {
	t.Setenv("READLITE_TEST_KEY", "sk-12345")

	tests := []struct {
		in   string
		want string
	}{
		{"${READLITE_TEST_KEY}", "sk-12345"},
		{"prefix-${READLITE_TEST_KEY}-suffix", "prefix-sk-12345-suffix"},
		{"no vars here", "no vars here"},
		{"", ""},
		{"${READLITE_UNSET_VAR_XYZ}", ""},
	}
	for _, tt := range tests {
		if got := ResolveEnvVars(tt.in); got != tt.want {
			t.Errorf("ResolveEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	llm, ok := cfg.GetLLMProvider(cfg.Defaults.LLMProvider)
	if !ok {
		t.Fatalf("default LLM provider %q not configured", cfg.Defaults.LLMProvider)
	}
	if !llm.Enabled || llm.Type != "openrouter" {
		t.Errorf("default LLM provider = %+v", llm)
	}
	if !strings.Contains(llm.APIKey, "${") {
		t.Errorf("default API key %q should be an env reference, not a literal", llm.APIKey)
	}

	tts, ok := cfg.GetTTSProvider(cfg.Defaults.TTSProvider)
	if !ok {
		t.Fatalf("default TTS provider %q not configured", cfg.Defaults.TTSProvider)
	}
	if tts.Speed <= 0 || tts.Speed > 4.0 {
		t.Errorf("default TTS speed %f out of range", tts.Speed)
	}

	opts := cfg.ChunkerOptions()
	if opts.MaxChunkSize <= 0 {
		t.Errorf("default chunker options = %+v", opts)
	}
	if !opts.PreserveSentences {
		t.Error("sentence preservation should default on")
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "# readlite configuration") {
		t.Error("written config missing header comment")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid yaml: %v", err)
	}
	if _, ok := cfg.LLMProviders["openrouter"]; !ok {
		t.Errorf("round-tripped config missing openrouter: %+v", cfg.LLMProviders)
	}
	if cfg.Pipeline.MaxChunkSize != DefaultConfig().Pipeline.MaxChunkSize {
		t.Errorf("round-tripped chunk size %d", cfg.Pipeline.MaxChunkSize)
	}
}
