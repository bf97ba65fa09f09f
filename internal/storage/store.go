// Package storage persists simplification results and attempt history in a
// local SQLite database. Results are unique per (book, level, chunk) with
// upsert semantics: re-running a unit overwrites the previous row instead of
// duplicating it.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/readlite/readlite/internal/types"
)

// ErrNotFound is returned when no result exists for a key.
var ErrNotFound = errors.New("result not found")

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS results (
	book_id         TEXT    NOT NULL,
	level           TEXT    NOT NULL,
	chunk_index     INTEGER NOT NULL,
	simplified_text TEXT    NOT NULL,
	quality_score   REAL    NOT NULL,
	quality         TEXT    NOT NULL,
	era             TEXT    NOT NULL,
	attempts        INTEGER NOT NULL,
	updated_at      TEXT    NOT NULL,
	PRIMARY KEY (book_id, level, chunk_index)
);

CREATE TABLE IF NOT EXISTS attempts (
	id               TEXT PRIMARY KEY,
	book_id          TEXT    NOT NULL,
	level            TEXT    NOT NULL,
	chunk_index      INTEGER NOT NULL,
	attempt_number   INTEGER NOT NULL,
	temperature      REAL    NOT NULL,
	output_text      TEXT    NOT NULL,
	similarity_score REAL    NOT NULL,
	prompt_hash      TEXT    NOT NULL,
	created_at       TEXT    NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_attempts_unit
	ON attempts (book_id, level, chunk_index);
`

// Open opens (creating if needed) the results database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// SQLite allows one writer; the pipeline is sequential anyway.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveResult upserts a result keyed by (book_id, level, chunk_index).
func (s *Store) SaveResult(ctx context.Context, res *types.SimplificationResult) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO results
			(book_id, level, chunk_index, simplified_text, quality_score, quality, era, attempts, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (book_id, level, chunk_index) DO UPDATE SET
			simplified_text = excluded.simplified_text,
			quality_score   = excluded.quality_score,
			quality         = excluded.quality,
			era             = excluded.era,
			attempts        = excluded.attempts,
			updated_at      = excluded.updated_at`,
		res.BookID, string(res.Level), res.ChunkIndex, res.SimplifiedText,
		res.QualityScore, string(res.Quality), string(res.Era), res.Attempts,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("saving result %s/%s/%d: %w", res.BookID, res.Level, res.ChunkIndex, err)
	}
	return nil
}

// GetResult fetches one result, or ErrNotFound.
func (s *Store) GetResult(ctx context.Context, bookID string, level types.CEFRLevel, chunkIndex int) (*types.SimplificationResult, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT book_id, level, chunk_index, simplified_text, quality_score, quality, era, attempts
		FROM results
		WHERE book_id = ? AND level = ? AND chunk_index = ?`,
		bookID, string(level), chunkIndex)

	var res types.SimplificationResult
	err := row.Scan(&res.BookID, &res.Level, &res.ChunkIndex, &res.SimplifiedText,
		&res.QualityScore, &res.Quality, &res.Era, &res.Attempts)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s/%d", ErrNotFound, bookID, level, chunkIndex)
	}
	if err != nil {
		return nil, fmt.Errorf("reading result: %w", err)
	}
	return &res, nil
}

// HasResult reports whether a non-failed result exists for the key. Failed
// results do not count as cached work; re-running should replace them.
func (s *Store) HasResult(ctx context.Context, bookID string, level types.CEFRLevel, chunkIndex int) (bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM results
		WHERE book_id = ? AND level = ? AND chunk_index = ? AND quality != ?`,
		bookID, string(level), chunkIndex, string(types.QualityFailed))

	var n int
	if err := row.Scan(&n); err != nil {
		return false, fmt.Errorf("checking result: %w", err)
	}
	return n > 0, nil
}

// ListResults returns all results for a (book, level) in chunk order.
func (s *Store) ListResults(ctx context.Context, bookID string, level types.CEFRLevel) ([]types.SimplificationResult, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT book_id, level, chunk_index, simplified_text, quality_score, quality, era, attempts
		FROM results
		WHERE book_id = ? AND level = ?
		ORDER BY chunk_index`,
		bookID, string(level))
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	defer rows.Close()

	var results []types.SimplificationResult
	for rows.Next() {
		var res types.SimplificationResult
		if err := rows.Scan(&res.BookID, &res.Level, &res.ChunkIndex, &res.SimplifiedText,
			&res.QualityScore, &res.Quality, &res.Era, &res.Attempts); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		results = append(results, res)
	}
	return results, rows.Err()
}

// RecordAttempt appends one attempt to the history table. The prompt hash
// links the attempt to the exact prompt text that produced it.
func (s *Store) RecordAttempt(ctx context.Context, bookID string, a types.SimplificationAttempt) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO attempts
			(id, book_id, level, chunk_index, attempt_number, temperature, output_text, similarity_score, prompt_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.New().String(), bookID, string(a.Level), a.ChunkIndex, a.AttemptNumber,
		a.Temperature, a.OutputText, a.SimilarityScore, a.PromptHash,
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("recording attempt: %w", err)
	}
	return nil
}

// CountAttempts returns the attempt history size for one unit.
func (s *Store) CountAttempts(ctx context.Context, bookID string, level types.CEFRLevel, chunkIndex int) (int, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM attempts
		WHERE book_id = ? AND level = ? AND chunk_index = ?`,
		bookID, string(level), chunkIndex)

	var n int
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("counting attempts: %w", err)
	}
	return n, nil
}
