package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/readlite/readlite/internal/api"
	"github.com/readlite/readlite/internal/batch"
	"github.com/readlite/readlite/internal/simplify"
	"github.com/readlite/readlite/internal/storage"
	"github.com/readlite/readlite/internal/types"
)

var simplifyLevels []string

var simplifyCmd = &cobra.Command{
	Use:   "simplify <book-id>",
	Short: "Simplify a fetched book across CEFR levels",
	Long: `Run the simplification pipeline for a previously fetched book.

The book's era is detected once and its text chunked once; each (level, chunk)
unit then goes through the quality-gated retry loop and is upserted into the
results database. Units that already have a stored result are skipped, so an
interrupted run resumes where it left off.

Examples:
  readlite simplify 1342                  # all six levels
  readlite simplify 1342 --levels a1,a2   # beginner levels only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID := args[0]

		h, cfg, err := setup()
		if err != nil {
			return err
		}
		logger := newLogger()

		raw, err := os.ReadFile(h.BookTextPath(bookID))
		if err != nil {
			return fmt.Errorf("book %s not fetched yet: %w", bookID, err)
		}

		levels, err := parseLevels(simplifyLevels)
		if err != nil {
			return err
		}

		book, err := simplify.Prepare(bookID, string(raw), cfg.ChunkerOptions())
		if err != nil {
			return err
		}

		generator, model, err := newGenerator(cfg)
		if err != nil {
			return err
		}

		store, err := storage.Open(h.DatabasePath())
		if err != nil {
			return err
		}
		defer store.Close()

		pipeline := simplify.NewPipeline(generator, logger)
		pipeline.Model = model
		if cfg.Pipeline.MaxTokens > 0 {
			pipeline.MaxTokens = cfg.Pipeline.MaxTokens
		}
		pipeline.OnAttempt(func(a types.SimplificationAttempt) {
			if err := store.RecordAttempt(context.Background(), bookID, a); err != nil {
				logger.Warn("failed to record attempt", "error", err)
			}
		})

		runner := batch.NewRunner(pipeline, store, logger)
		summary, err := runner.Run(cmd.Context(), book, levels)
		if err != nil {
			return err
		}

		return api.Output(summary)
	},
}

// parseLevels converts --levels values into CEFR levels, defaulting to all
// six.
func parseLevels(raw []string) ([]types.CEFRLevel, error) {
	if len(raw) == 0 {
		return types.AllLevels, nil
	}
	levels := make([]types.CEFRLevel, 0, len(raw))
	for _, s := range raw {
		l, err := types.ParseLevel(s)
		if err != nil {
			return nil, err
		}
		levels = append(levels, l)
	}
	return levels, nil
}

func init() {
	simplifyCmd.Flags().StringSliceVar(&simplifyLevels, "levels", nil, "CEFR levels to process (default: all)")
}
