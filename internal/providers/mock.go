package providers

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"
)

const MockGeneratorName = "mock"

// MockGenerator is a TextGenerator for testing.
type MockGenerator struct {
	// Configurable behavior
	Latency      time.Duration
	ShouldFail   bool
	FailAfter    int // fail after N requests (0 = never)
	ResponseText string

	// ResponseFunc, when set, computes the response from the request and the
	// 1-based call number. Overrides ResponseText.
	ResponseFunc func(req *GenerateRequest, call int64) (string, error)

	// State
	requestCount atomic.Int64
	temperatures []float64
}

// NewMockGenerator creates a mock generator with sensible defaults.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{
		ResponseText: "mock response",
	}
}

// Name returns the client identifier.
func (c *MockGenerator) Name() string {
	return MockGeneratorName
}

// Generate returns the configured mock response.
func (c *MockGenerator) Generate(ctx context.Context, req *GenerateRequest) (*GenerateResult, error) {
	start := time.Now()
	count := c.requestCount.Add(1)
	c.temperatures = append(c.temperatures, req.Temperature)

	if c.ShouldFail {
		return nil, &ProviderError{Provider: MockGeneratorName, Message: "mock generator configured to fail"}
	}
	if c.FailAfter > 0 && int(count) > c.FailAfter {
		return nil, &ProviderError{
			Provider: MockGeneratorName,
			Message:  fmt.Sprintf("mock generator failed after %d requests", c.FailAfter),
		}
	}

	if c.Latency > 0 {
		select {
		case <-time.After(c.Latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	text := c.ResponseText
	if c.ResponseFunc != nil {
		var err error
		text, err = c.ResponseFunc(req, count)
		if err != nil {
			return nil, &ProviderError{Provider: MockGeneratorName, Message: err.Error(), Err: err}
		}
	}

	promptTokens := len(req.Prompt) / 4
	completionTokens := len(text) / 4

	return &GenerateResult{
		Text:             text,
		PromptTokens:     promptTokens,
		CompletionTokens: completionTokens,
		TotalTokens:      promptTokens + completionTokens,
		CostUSD:          0.001,
		Provider:         MockGeneratorName,
		ModelUsed:        req.Model,
		RequestID:        fmt.Sprintf("mock-%d", count),
		ExecutionTime:    time.Since(start),
	}, nil
}

// RequestCount returns the number of requests made.
func (c *MockGenerator) RequestCount() int64 {
	return c.requestCount.Load()
}

// Temperatures returns the temperature of every request, in call order.
func (c *MockGenerator) Temperatures() []float64 {
	return c.temperatures
}

// Reset clears the request counter and temperature log.
func (c *MockGenerator) Reset() {
	c.requestCount.Store(0)
	c.temperatures = nil
}

var _ TextGenerator = (*MockGenerator)(nil)
