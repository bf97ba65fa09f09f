// Package providers contains the external model clients: text generation for
// simplification and text-to-speech for chunk audio. Clients make exactly one
// upstream call per request; the retry controller owns the attempt schedule,
// so transport errors surface immediately as *ProviderError.
package providers

import (
	"context"
	"time"
)

// TextGenerator is the boundary to a text-generation model.
type TextGenerator interface {
	// Generate sends a single completion request. It must not retry
	// transport failures; those belong to the retry controller.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error)

	// Name returns the provider identifier (e.g. "openrouter").
	Name() string
}

// TTSProvider converts text to audio.
type TTSProvider interface {
	// Synthesize renders text as audio.
	Synthesize(ctx context.Context, req *TTSRequest) (*TTSResult, error)

	// Name returns the provider identifier (e.g. "openai").
	Name() string
}

// GenerateRequest is a single text-generation call.
type GenerateRequest struct {
	Prompt      string        `json:"prompt"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Model       string        `json:"model,omitempty"` // provider default if empty
	RequestID   string        `json:"-"`               // generated if empty
	Timeout     time.Duration `json:"-"`
}

// GenerateResult is the response from a text-generation call.
type GenerateResult struct {
	Text string `json:"text"`

	// Token usage and cost
	PromptTokens     int     `json:"prompt_tokens"`
	CompletionTokens int     `json:"completion_tokens"`
	TotalTokens      int     `json:"total_tokens"`
	CostUSD          float64 `json:"cost_usd"`

	// Provider info
	Provider  string `json:"provider"`
	ModelUsed string `json:"model_used"`

	// Request tracking
	RequestID     string        `json:"request_id"`
	ExecutionTime time.Duration `json:"execution_time"`
}

// TTSRequest is a single speech synthesis call.
type TTSRequest struct {
	Text   string `json:"text"`
	Voice  string `json:"voice,omitempty"`  // provider default if empty
	Format string `json:"format,omitempty"` // "mp3" (default), "opus", "wav"
}

// TTSResult is the response from a speech synthesis call.
type TTSResult struct {
	Audio         []byte        `json:"-"`
	Format        string        `json:"format"`
	DurationMS    int           `json:"duration_ms"` // estimated
	CharCount     int           `json:"char_count"`
	CostUSD       float64       `json:"cost_usd"`
	ExecutionTime time.Duration `json:"execution_time"`
}
