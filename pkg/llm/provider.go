package llm

import (
	"context"
	"errors"
)

// ErrUnavailable normalizes every transport-level completion failure:
// connection refused, request timeout, or a non-success HTTP status.
// Callers branch on this one error kind, never on provider specifics.
var ErrUnavailable = errors.New("completion provider unavailable")

// Option allows optional parameters like Temperature and MaxTokens.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	Structured  bool   // Hint that the response must be a JSON document
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(n int) Option {
	return func(o *Options) {
		o.MaxTokens = n
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

// WithStructuredOutput asks providers that support it to force JSON output.
// Providers without the capability ignore the hint; the extraction chain
// downstream copes either way.
func WithStructuredOutput() Option {
	return func(o *Options) {
		o.Structured = true
	}
}

// Provider is the contract for any text-completion backend. Exactly one
// provider is selected at startup by the factory; call sites never branch
// on the concrete implementation.
type Provider interface {
	// Complete sends a single prompt and returns the raw response text.
	Complete(ctx context.Context, prompt string, options ...Option) (string, error)

	// Ping verifies the backend is reachable and the configured model is
	// available. Best-effort: hosted providers may only check reachability.
	Ping(ctx context.Context) error

	// Name identifies the provider for logs and health reporting.
	Name() string

	// ModelName reports the configured default model.
	ModelName() string
}
