package gutenberg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

const bookBody = `The Project Gutenberg eBook of Pride and Prejudice

This ebook is for the use of anyone anywhere in the United States.

*** START OF THE PROJECT GUTENBERG EBOOK PRIDE AND PREJUDICE ***

It is a truth universally acknowledged, that a single man in possession
of a good fortune, must be in want of a wife.

*** END OF THE PROJECT GUTENBERG EBOOK PRIDE AND PREJUDICE ***

Updated editions will replace the previous one.`

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStripBoilerplate(t *testing.T) {
	got := StripBoilerplate(bookBody)
	if !strings.HasPrefix(got, "It is a truth universally acknowledged") {
		t.Errorf("header not stripped: %q", got[:50])
	}
	if strings.Contains(got, "PROJECT GUTENBERG") {
		t.Errorf("boilerplate survived: %q", got)
	}
	if strings.Contains(got, "Updated editions") {
		t.Errorf("footer not stripped: %q", got)
	}
}

func TestStripBoilerplate_NoMarkers(t *testing.T) {
	text := "Plain text with no markers at all."
	if got := StripBoilerplate(text); got != text {
		t.Errorf("StripBoilerplate() = %q, want unchanged", got)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/cache/epub/1342/pg1342.txt" {
			fmt.Fprint(w, bookBody)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Logger: discardLogger()})
	text, err := f.Fetch(context.Background(), "1342")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(text, "It is a truth") {
		t.Errorf("unexpected text: %q", text[:40])
	}
}

func TestFetch_LayoutFallback(t *testing.T) {
	// Older books only exist under /files/<id>/<id>-0.txt; the first layout
	// 404s and the fetcher must move on.
	var paths []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		if r.URL.Path == "/files/76/76-0.txt" {
			fmt.Fprint(w, bookBody)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := NewFetcher(Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Logger: discardLogger()})
	if _, err := f.Fetch(context.Background(), "76"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(paths) != 2 {
		t.Errorf("server saw paths %v, want cache layout then files layout", paths)
	}
}

func TestFetch_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	f := NewFetcher(Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Logger: discardLogger()})
	_, err := f.Fetch(context.Background(), "999999999")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound", err)
	}
}

func TestFetch_RetriesServerError(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			http.Error(w, "temporarily down", http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, bookBody)
	}))
	defer srv.Close()

	f := NewFetcher(Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Logger: discardLogger()})
	text, err := f.Fetch(context.Background(), "1342")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls.Load() != 2 {
		t.Errorf("server saw %d calls, want a retry after the 503", calls.Load())
	}
	if !strings.HasPrefix(text, "It is a truth") {
		t.Errorf("unexpected text after retry: %q", text[:40])
	}
}

func TestFetch_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, bookBody)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	f := NewFetcher(Config{BaseURL: srv.URL, RequestsPerSecond: 1000, Logger: discardLogger()})
	if _, err := f.Fetch(ctx, "1342"); err == nil {
		t.Error("expected error from cancelled context")
	}
}
