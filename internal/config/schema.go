package config

import (
	"github.com/readlite/readlite/internal/chunker"
	"github.com/readlite/readlite/internal/simplify"
)

// Config holds readlite configuration.
// Stored at: ~/.readlite/config.yaml
type Config struct {
	LLMProviders map[string]LLMProviderCfg `mapstructure:"llm_providers" yaml:"llm_providers"`
	TTSProviders map[string]TTSProviderCfg `mapstructure:"tts_providers" yaml:"tts_providers"`
	Pipeline     PipelineCfg               `mapstructure:"pipeline" yaml:"pipeline"`
	Defaults     DefaultsCfg               `mapstructure:"defaults" yaml:"defaults"`
}

// LLMProviderCfg configures a text-generation provider.
type LLMProviderCfg struct {
	Type      string `mapstructure:"type" yaml:"type"`             // "openrouter"
	Model     string `mapstructure:"model" yaml:"model"`           // Model name
	APIKey    string `mapstructure:"api_key" yaml:"api_key"`       // Supports ${ENV_VAR} syntax
	RateLimit int    `mapstructure:"rate_limit" yaml:"rate_limit"` // Requests per minute
	Enabled   bool   `mapstructure:"enabled" yaml:"enabled"`
}

// TTSProviderCfg configures a text-to-speech provider.
type TTSProviderCfg struct {
	Type    string  `mapstructure:"type" yaml:"type"`       // "openai"
	Model   string  `mapstructure:"model" yaml:"model"`     // "tts-1", "tts-1-hd"
	Voice   string  `mapstructure:"voice" yaml:"voice"`     // "nova", "onyx", ...
	Speed   float64 `mapstructure:"speed" yaml:"speed"`     // 0.25-4.0
	APIKey  string  `mapstructure:"api_key" yaml:"api_key"` // Supports ${ENV_VAR} syntax
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
}

// PipelineCfg configures chunking and the simplification loop. One chunker
// configuration serves both display and audio so their chunk boundaries never
// diverge.
type PipelineCfg struct {
	MaxChunkSize      int  `mapstructure:"max_chunk_size" yaml:"max_chunk_size"`           // words per chunk
	OverlapSize       int  `mapstructure:"overlap_size" yaml:"overlap_size"`               // words repeated across chunks
	PreserveSentences bool `mapstructure:"preserve_sentences" yaml:"preserve_sentences"`
	MaxTokens         int  `mapstructure:"max_tokens" yaml:"max_tokens"` // completion budget per chunk
}

// DefaultsCfg specifies default provider selections.
type DefaultsCfg struct {
	LLMProvider string `mapstructure:"llm_provider" yaml:"llm_provider"`
	TTSProvider string `mapstructure:"tts_provider" yaml:"tts_provider"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		LLMProviders: map[string]LLMProviderCfg{
			"openrouter": {
				Type:      "openrouter",
				Model:     "anthropic/claude-3.5-haiku",
				APIKey:    "${OPENROUTER_API_KEY}",
				RateLimit: 5,
				Enabled:   true,
			},
		},
		TTSProviders: map[string]TTSProviderCfg{
			"openai": {
				Type:    "openai",
				Model:   "tts-1",
				Voice:   "nova",
				Speed:   0.9,
				APIKey:  "${OPENAI_API_KEY}",
				Enabled: true,
			},
		},
		Pipeline: PipelineCfg{
			MaxChunkSize:      chunker.DefaultMaxChunkSize,
			OverlapSize:       chunker.DefaultOverlapSize,
			PreserveSentences: true,
			MaxTokens:         simplify.DefaultMaxTokens,
		},
		Defaults: DefaultsCfg{
			LLMProvider: "openrouter",
			TTSProvider: "openai",
		},
	}
}

// ChunkerOptions converts the pipeline section to chunker options.
func (c *Config) ChunkerOptions() chunker.Options {
	return chunker.Options{
		MaxChunkSize:      c.Pipeline.MaxChunkSize,
		OverlapSize:       c.Pipeline.OverlapSize,
		PreserveSentences: c.Pipeline.PreserveSentences,
	}
}

// GetLLMProvider returns an LLM provider config by name.
func (c *Config) GetLLMProvider(name string) (LLMProviderCfg, bool) {
	cfg, ok := c.LLMProviders[name]
	return cfg, ok
}

// GetTTSProvider returns a TTS provider config by name.
func (c *Config) GetTTSProvider(name string) (TTSProviderCfg, bool) {
	cfg, ok := c.TTSProviders[name]
	return cfg, ok
}
