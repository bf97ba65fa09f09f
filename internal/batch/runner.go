// Package batch drives the pipeline over whole books: strictly sequential,
// one (level, chunk) unit at a time, pacing requests to stay inside the
// provider quota and skipping units that already have a stored result.
package batch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/readlite/readlite/internal/simplify"
	"github.com/readlite/readlite/internal/storage"
	"github.com/readlite/readlite/internal/types"
)

const (
	// DefaultSkipDelay paces units whose result is already stored.
	DefaultSkipDelay = 1 * time.Second

	// DefaultCallDelay paces units that hit the model, holding the run to
	// roughly 5 requests/minute.
	DefaultCallDelay = 12 * time.Second
)

// Runner executes a simplification run for one book across levels.
type Runner struct {
	pipeline *simplify.Pipeline
	store    *storage.Store
	logger   *slog.Logger

	SkipDelay time.Duration
	CallDelay time.Duration
}

// NewRunner creates a batch runner.
func NewRunner(pipeline *simplify.Pipeline, store *storage.Store, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		pipeline:  pipeline,
		store:     store,
		logger:    logger.With("component", "batch"),
		SkipDelay: DefaultSkipDelay,
		CallDelay: DefaultCallDelay,
	}
}

// Summary reports what a run did.
type Summary struct {
	BookID    string    `json:"book_id"`
	Era       types.Era `json:"era"`
	Levels    int       `json:"levels"`
	Units     int       `json:"units"`
	Processed int       `json:"processed"`
	Skipped   int       `json:"skipped"`
	Failed    int       `json:"failed"`
}

// Run processes every (level, chunk) unit of the book in order. A cancelled
// context stops the run at the next unit boundary; completed units are
// already persisted, so re-running resumes where it left off.
func (r *Runner) Run(ctx context.Context, book *simplify.Book, levels []types.CEFRLevel) (*Summary, error) {
	summary := &Summary{
		BookID: book.ID,
		Era:    book.Era,
		Levels: len(levels),
		Units:  len(levels) * len(book.Chunks),
	}

	r.logger.Info("starting run",
		"book", book.ID, "era", book.Era,
		"levels", len(levels), "chunks", len(book.Chunks))

	for _, level := range levels {
		for _, chunk := range book.Chunks {
			if err := ctx.Err(); err != nil {
				return summary, err
			}

			cached, err := r.store.HasResult(ctx, book.ID, level, chunk.Index)
			if err != nil {
				return summary, err
			}
			if cached {
				summary.Skipped++
				r.logger.Debug("skipping cached unit", "book", book.ID, "level", level, "chunk", chunk.Index)
				if err := r.pause(ctx, r.SkipDelay); err != nil {
					return summary, err
				}
				continue
			}

			result, err := r.pipeline.SimplifyChunk(ctx, book, level, chunk)
			if err != nil && result == nil {
				return summary, fmt.Errorf("unit %s/%s/%d: %w", book.ID, level, chunk.Index, err)
			}
			if result.Quality == types.QualityFailed {
				summary.Failed++
			}
			summary.Processed++

			// Persist even failed results: the best-effort output is still
			// useful, and HasResult ignores failed rows so a later run
			// retries them.
			if err := r.store.SaveResult(ctx, result); err != nil {
				return summary, err
			}

			r.logger.Info("unit done",
				"book", book.ID, "level", level, "chunk", chunk.Index,
				"quality", result.Quality, "score", result.QualityScore,
				"attempts", result.Attempts)

			if err := r.pause(ctx, r.CallDelay); err != nil {
				return summary, err
			}
		}
	}

	r.logger.Info("run complete",
		"book", book.ID, "processed", summary.Processed,
		"skipped", summary.Skipped, "failed", summary.Failed)
	return summary, nil
}

func (r *Runner) pause(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
