package llm

import (
	"context"
)

// Result is the provider-agnostic generation outcome. Context carries the
// rolling context token for providers that support chaining (Ollama); it is
// nil for stateless providers.
type Result struct {
	Text    string
	Context []int
}

// Option allows optional sampling parameters and per-call model overrides.
type Option func(*Options)

type Options struct {
	Model       string
	Temperature float64
	TopP        float64
	Context     []int
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithTopP(topP float64) Option {
	return func(o *Options) {
		o.TopP = topP
	}
}

// WithContext threads a rolling context token from a previous turn into the
// next call. Only honored by the local provider.
func WithContext(token []int) Option {
	return func(o *Options) {
		o.Context = token
	}
}

func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// Provider defines the contract for any text-generation backend. No retry
// policy lives here: only callers know what a valid completion looks like.
type Provider interface {
	Generate(ctx context.Context, prompt string, opts ...Option) (*Result, error)
}
