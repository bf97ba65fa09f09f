package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func openRouterServer(t *testing.T, calls *atomic.Int64, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Authorization = %q", got)
		}
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestOpenRouterGenerate(t *testing.T) {
	var calls atomic.Int64
	srv := openRouterServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		var req openRouterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decoding request: %v", err)
		}
		if req.Temperature != 0.6 {
			t.Errorf("temperature = %f, want 0.6", req.Temperature)
		}
		if len(req.Messages) != 1 || req.Messages[0].Content != "Simplify this." {
			t.Errorf("messages = %+v", req.Messages)
		}

		resp := openRouterResponse{ID: "gen-1", Model: req.Model}
		resp.Choices = make([]openRouterChoice, 1)
		resp.Choices[0].Message.Content = "Simplified text."
		resp.Usage.PromptTokens = 10
		resp.Usage.CompletionTokens = 5
		resp.Usage.TotalTokens = 15
		json.NewEncoder(w).Encode(resp)
	})

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	res, err := client.Generate(context.Background(), &GenerateRequest{
		Prompt:      "Simplify this.",
		Temperature: 0.6,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Text != "Simplified text." {
		t.Errorf("Text = %q", res.Text)
	}
	if res.TotalTokens != 15 {
		t.Errorf("TotalTokens = %d, want 15", res.TotalTokens)
	}
	if res.Provider != OpenRouterName {
		t.Errorf("Provider = %q", res.Provider)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want 1", calls.Load())
	}
}

func TestOpenRouterGenerate_SingleShotOnServerError(t *testing.T) {
	// One Generate call is one upstream request: a 500 must come back as an
	// error without any internal retry.
	var calls atomic.Int64
	srv := openRouterServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var pe *ProviderError
	if !errors.As(err, &pe) {
		t.Fatalf("error %T is not a ProviderError", err)
	}
	if pe.StatusCode != http.StatusInternalServerError {
		t.Errorf("StatusCode = %d, want 500", pe.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want exactly 1", calls.Load())
	}
}

func TestOpenRouterGenerate_RateLimited(t *testing.T) {
	var calls atomic.Int64
	srv := openRouterServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})
	if err == nil {
		t.Fatal("expected error")
	}
	var rle *RateLimitError
	if !errors.As(err, &rle) {
		t.Fatalf("error %v does not wrap RateLimitError", err)
	}
	if rle.RetryAfter.Seconds() != 30 {
		t.Errorf("RetryAfter = %v, want 30s", rle.RetryAfter)
	}
	if calls.Load() != 1 {
		t.Errorf("server saw %d calls, want exactly 1", calls.Load())
	}
	if status := client.LimiterStatus(); status.TokensAvailable != 0 {
		t.Errorf("limiter has %d tokens after a 429, want 0", status.TokensAvailable)
	}
}

func TestOpenRouterGenerate_APIErrorBody(t *testing.T) {
	var calls atomic.Int64
	srv := openRouterServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"code": 400, "message": "bad model"},
		})
	})

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})
	if err == nil || !IsProviderError(err) {
		t.Fatalf("expected provider error, got %v", err)
	}
}

func TestOpenRouterGenerate_NoChoices(t *testing.T) {
	var calls atomic.Int64
	srv := openRouterServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(openRouterResponse{ID: "gen-1", Model: "m"})
	})

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	_, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"})
	if err == nil || !IsProviderError(err) {
		t.Fatalf("expected provider error for empty choices, got %v", err)
	}
}

func TestOpenRouterGenerate_DefaultModel(t *testing.T) {
	var calls atomic.Int64
	var gotModel string
	srv := openRouterServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		var req openRouterRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotModel = req.Model

		resp := openRouterResponse{Model: req.Model}
		resp.Choices = make([]openRouterChoice, 1)
		resp.Choices[0].Message.Content = "ok"
		json.NewEncoder(w).Encode(resp)
	})

	client := NewOpenRouterClient(OpenRouterConfig{APIKey: "test-key", BaseURL: srv.URL})
	if _, err := client.Generate(context.Background(), &GenerateRequest{Prompt: "x"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotModel != "anthropic/claude-3.5-haiku" {
		t.Errorf("model = %q, want the default", gotModel)
	}
}
