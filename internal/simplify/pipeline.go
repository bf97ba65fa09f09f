package simplify

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/readlite/readlite/internal/chunker"
	"github.com/readlite/readlite/internal/era"
	"github.com/readlite/readlite/internal/prompts"
	"github.com/readlite/readlite/internal/providers"
	"github.com/readlite/readlite/internal/types"
)

// DefaultMaxTokens bounds completion length per chunk.
const DefaultMaxTokens = 2048

// Pipeline wires the full simplification flow for a book: detect era once,
// chunk once, then run each (level, chunk) unit through the retry controller.
type Pipeline struct {
	controller *Controller
	logger     *slog.Logger

	MaxTokens int
	Model     string
}

// NewPipeline creates a pipeline around a text generator.
func NewPipeline(generator providers.TextGenerator, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		controller: NewController(generator, logger),
		logger:     logger.With("component", "pipeline"),
		MaxTokens:  DefaultMaxTokens,
	}
}

// OnAttempt forwards an attempt observer to the controller.
func (p *Pipeline) OnAttempt(fn func(types.SimplificationAttempt)) {
	p.controller.OnAttempt = fn
}

// Book is a prepared source text: era detected once, chunked once. Both the
// reading display and audio generation must consume these same chunks.
type Book struct {
	ID     string
	Era    types.Era
	Chunks []types.Chunk
}

// Prepare detects the era of fullText and chunks it with the given options.
func Prepare(bookID, fullText string, opts chunker.Options) (*Book, error) {
	chunks, err := chunker.Split(bookID, fullText, opts)
	if err != nil {
		return nil, err
	}
	return &Book{
		ID:     bookID,
		Era:    era.Detect(fullText),
		Chunks: chunks,
	}, nil
}

// SimplifyChunk runs one (level, chunk) unit: build the prompt, then drive
// the bounded attempt loop. The returned result is always usable; a non-nil
// error alongside it means every attempt hit a provider failure.
func (p *Pipeline) SimplifyChunk(ctx context.Context, book *Book, level types.CEFRLevel, chunk types.Chunk) (*types.SimplificationResult, error) {
	prompt, err := prompts.Build(level, book.Era, chunk.Text)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}

	p.logger.Debug("simplifying chunk",
		"book", book.ID, "level", level, "chunk", chunk.Index,
		"era", book.Era, "words", chunk.WordCount)

	return p.controller.Run(ctx, Input{
		BookID:    book.ID,
		Level:     level,
		Era:       book.Era,
		Chunk:     chunk,
		Prompt:    prompt,
		MaxTokens: p.MaxTokens,
		Model:     p.Model,
	})
}
