package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/readlite/readlite/internal/api"
	"github.com/readlite/readlite/internal/providers"
	"github.com/readlite/readlite/internal/storage"
	"github.com/readlite/readlite/internal/types"
)

var audioLevel string

// audioSummary reports generated audio for one run.
type audioSummary struct {
	BookID    string          `json:"book_id"`
	Level     types.CEFRLevel `json:"level"`
	Generated int             `json:"generated"`
	Skipped   int             `json:"skipped"`
	CostUSD   float64         `json:"cost_usd"`
}

var audioCmd = &cobra.Command{
	Use:   "audio <book-id>",
	Short: "Generate chunk audio for a simplified book",
	Long: `Generate per-chunk TTS audio for a book's simplified text at one CEFR level.

Audio uses the chunk boundaries stored with the simplification results, so the
reading display and the audio always line up. Chunks without an accepted
result are skipped.

Example:
  readlite audio 1342 --level a2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bookID := args[0]

		h, cfg, err := setup()
		if err != nil {
			return err
		}
		logger := newLogger()

		level, err := types.ParseLevel(audioLevel)
		if err != nil {
			return err
		}

		store, err := storage.Open(h.DatabasePath())
		if err != nil {
			return err
		}
		defer store.Close()

		results, err := store.ListResults(cmd.Context(), bookID, level)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			return fmt.Errorf("no simplification results for book %s at level %s; run simplify first", bookID, level)
		}

		tts, err := newTTS(cfg)
		if err != nil {
			return err
		}

		summary := audioSummary{BookID: bookID, Level: level}
		for _, res := range results {
			if res.Quality == types.QualityFailed {
				summary.Skipped++
				logger.Warn("skipping failed chunk", "book", bookID, "level", level, "chunk", res.ChunkIndex)
				continue
			}

			out, err := tts.Synthesize(cmd.Context(), &providers.TTSRequest{Text: res.SimplifiedText})
			if err != nil {
				return fmt.Errorf("chunk %d: %w", res.ChunkIndex, err)
			}

			path := h.ChunkAudioPath(bookID, string(level), res.ChunkIndex)
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(path, out.Audio, 0o644); err != nil {
				return err
			}

			summary.Generated++
			summary.CostUSD += out.CostUSD
			logger.Info("generated audio",
				"book", bookID, "level", level, "chunk", res.ChunkIndex,
				"bytes", len(out.Audio), "duration_ms", out.DurationMS)
		}

		return api.Output(summary)
	},
}

func init() {
	audioCmd.Flags().StringVar(&audioLevel, "level", "", "CEFR level to generate audio for (required)")
	_ = audioCmd.MarkFlagRequired("level")
}
