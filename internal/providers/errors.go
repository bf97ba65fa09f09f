package providers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ProviderError wraps any failure of an upstream model call: network errors,
// auth failures, rate limits, malformed responses. The retry controller
// treats all of them as one consumed attempt.
type ProviderError struct {
	Provider   string
	StatusCode int // 0 when the failure happened before an HTTP response
	Message    string
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s error (status %d): %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// IsProviderError reports whether err is (or wraps) a ProviderError.
func IsProviderError(err error) bool {
	var pe *ProviderError
	return errors.As(err, &pe)
}

// RateLimitError signals a 429 from the upstream provider, carrying the
// server-advised wait when one was given.
type RateLimitError struct {
	Message    string
	RetryAfter time.Duration
	StatusCode int
}

func (e *RateLimitError) Error() string { return e.Message }

// parseRetryAfter interprets a Retry-After header value as either seconds or
// an HTTP date.
func parseRetryAfter(v string) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := time.Parse(time.RFC1123, v); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}
