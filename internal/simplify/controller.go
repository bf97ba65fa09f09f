// Package simplify runs the quality-gated simplification loop: build one
// prompt per (level, era, chunk), call the model on a bounded temperature
// schedule, score the output against the original, and accept, retry, or
// exhaust.
package simplify

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/readlite/readlite/internal/prompts"
	"github.com/readlite/readlite/internal/providers"
	"github.com/readlite/readlite/internal/similarity"
	"github.com/readlite/readlite/internal/types"
)

// Controller drives the bounded attempt loop for one chunk. A run moves
// Pending -> Attempting -> {Accepted, Exhausted}; Attempting loops back on
// itself while budget remains. The loop is explicit and bounded, replacing
// the retry-via-recursion the batch scripts used to do.
type Controller struct {
	generator providers.TextGenerator
	logger    *slog.Logger

	// OnAttempt, when set, observes every attempt (accepted or not) for
	// recording. Must not block.
	OnAttempt func(types.SimplificationAttempt)
}

// NewController creates a retry controller around a text generator.
func NewController(generator providers.TextGenerator, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		generator: generator,
		logger:    logger.With("component", "simplify"),
	}
}

// Input is one unit of simplification work.
type Input struct {
	BookID    string
	Level     types.CEFRLevel
	Era       types.Era
	Chunk     types.Chunk
	Prompt    string
	MaxTokens int
	Model     string
}

// Run executes the attempt loop. It always returns a usable result: when the
// budget is exhausted the last attempt's output (or the original text, if
// every call failed) comes back tagged QualityFailed alongside the error.
func (c *Controller) Run(ctx context.Context, in Input) (*types.SimplificationResult, error) {
	threshold := ThresholdFor(in.Era, in.Level)
	promptHash := prompts.HashText(in.Prompt)

	result := &types.SimplificationResult{
		BookID:     in.BookID,
		Level:      in.Level,
		ChunkIndex: in.Chunk.Index,
		Era:        in.Era,
	}

	var lastOutput string
	var lastScore float64
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		temperature := TemperatureFor(in.Era, in.Level, attempt)

		gen, err := c.generator.Generate(ctx, &providers.GenerateRequest{
			Prompt:      in.Prompt,
			Temperature: temperature,
			MaxTokens:   in.MaxTokens,
			Model:       in.Model,
		})
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = err
			c.logger.Warn("provider call failed",
				"book", in.BookID, "level", in.Level, "chunk", in.Chunk.Index,
				"attempt", attempt, "error", err)
			continue
		}

		output := strings.TrimSpace(gen.Text)
		score := similarity.Score(in.Chunk.Text, output)
		lastOutput, lastScore, lastErr = output, score, nil

		if c.OnAttempt != nil {
			c.OnAttempt(types.SimplificationAttempt{
				Level:           in.Level,
				ChunkIndex:      in.Chunk.Index,
				AttemptNumber:   attempt,
				Temperature:     temperature,
				OutputText:      output,
				SimilarityScore: score,
				PromptHash:      promptHash,
			})
		}

		// A byte-identical echo of the input means the transformation did
		// not happen. Always a failed attempt, even for archaic eras where
		// the gate itself is bypassed.
		if output == strings.TrimSpace(in.Chunk.Text) {
			c.logger.Warn("model returned input unchanged",
				"book", in.BookID, "level", in.Level, "chunk", in.Chunk.Index,
				"attempt", attempt)
			continue
		}

		// Archaic bypass: for pre-modern source text, low similarity to the
		// original is the goal. Accept the first real response.
		if in.Era.IsArchaic() {
			result.SimplifiedText = output
			result.QualityScore = score
			result.Quality = types.QualityModernized
			result.Attempts = attempt + 1
			return result, nil
		}

		if score >= threshold {
			result.SimplifiedText = output
			result.QualityScore = score
			result.Quality = qualityLabel(score)
			result.Attempts = attempt + 1
			return result, nil
		}

		c.logger.Info("similarity gate failed",
			"book", in.BookID, "level", in.Level, "chunk", in.Chunk.Index,
			"attempt", attempt, "score", score, "threshold", threshold)
	}

	// Exhausted: best-effort output, tagged failed, so the caller decides
	// whether to persist, retry later, or fall back to the original.
	result.Quality = types.QualityFailed
	result.Attempts = maxRetries + 1
	result.QualityScore = lastScore
	result.SimplifiedText = lastOutput
	if lastOutput == "" {
		result.SimplifiedText = in.Chunk.Text
	}

	if lastErr != nil {
		return result, fmt.Errorf("all %d attempts failed: %w", maxRetries+1, lastErr)
	}
	return result, nil
}

// qualityLabel maps a passing modern-era score to its label.
func qualityLabel(score float64) types.Quality {
	switch {
	case score >= 0.95:
		return types.QualityExcellent
	case score >= 0.90:
		return types.QualityGood
	default:
		return types.QualityAcceptable
	}
}
