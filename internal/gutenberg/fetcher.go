// Package gutenberg fetches public-domain book text from Project Gutenberg.
// The fetcher is the only network boundary in front of the pipeline; it hands
// back a plain string with the Gutenberg header/footer boilerplate removed.
package gutenberg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/time/rate"
)

const DefaultBaseURL = "https://www.gutenberg.org"

// ErrNotFound is returned when no plain-text edition exists for the ID.
var ErrNotFound = errors.New("book not found")

// Candidate URL layouts, tried in order. Gutenberg hosts plain text under a
// couple of path schemes depending on the book's age.
var pathLayouts = []string{
	"/cache/epub/%s/pg%s.txt",
	"/files/%s/%s-0.txt",
	"/files/%s/%s.txt",
}

// Fetcher downloads book text with polite pacing and transport retries.
type Fetcher struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

// Config configures a Fetcher.
type Config struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64 // polite crawl rate against the mirror
	Logger            *slog.Logger
}

// NewFetcher creates a Gutenberg fetcher.
func NewFetcher(cfg Config) *Fetcher {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 1.0
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Fetcher{
		baseURL: cfg.BaseURL,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		logger:  logger.With("component", "gutenberg"),
	}
}

// Fetch downloads the plain-text edition of a book by its Gutenberg ID and
// strips the license boilerplate. Transient failures (5xx, network) are
// retried; a 404 moves on to the next path layout.
func (f *Fetcher) Fetch(ctx context.Context, bookID string) (string, error) {
	var lastErr error
	for _, layout := range pathLayouts {
		url := f.baseURL + fmt.Sprintf(layout, bookID, bookID)

		text, err := f.fetchURL(ctx, url)
		if err == nil {
			return StripBoilerplate(text), nil
		}
		if errors.Is(err, ErrNotFound) {
			lastErr = err
			continue
		}
		return "", err
	}
	return "", fmt.Errorf("no plain-text edition for book %s: %w", bookID, lastErr)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) (string, error) {
	var body string

	err := retry.Do(
		func() error {
			if err := f.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := f.client.Do(req)
			if err != nil {
				return fmt.Errorf("request failed: %w", err)
			}
			defer resp.Body.Close()

			switch {
			case resp.StatusCode == http.StatusNotFound:
				return retry.Unrecoverable(ErrNotFound)
			case resp.StatusCode >= 500:
				return fmt.Errorf("server error (status %d)", resp.StatusCode)
			case resp.StatusCode != http.StatusOK:
				return retry.Unrecoverable(fmt.Errorf("unexpected status %d", resp.StatusCode))
			}

			data, err := io.ReadAll(resp.Body)
			if err != nil {
				return fmt.Errorf("reading body: %w", err)
			}
			body = string(data)
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(2*time.Second),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			f.logger.Warn("retrying fetch", "url", url, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return "", err
	}
	return body, nil
}

// Boilerplate markers. The phrasing varies across editions ("THE PROJECT
// GUTENBERG EBOOK", "THIS PROJECT GUTENBERG EBOOK"), so match loosely.
var (
	startMarker = regexp.MustCompile(`(?m)^\*\*\* ?START OF.*\*\*\*\s*$`)
	endMarker   = regexp.MustCompile(`(?m)^\*\*\* ?END OF.*\*\*\*\s*$`)
)

// StripBoilerplate removes the Gutenberg license header and footer, leaving
// only the book text. Text without markers passes through unchanged.
func StripBoilerplate(text string) string {
	if loc := startMarker.FindStringIndex(text); loc != nil {
		text = text[loc[1]:]
	}
	if loc := endMarker.FindStringIndex(text); loc != nil {
		text = text[:loc[0]]
	}
	return strings.TrimSpace(text)
}
