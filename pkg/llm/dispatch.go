package llm

import (
	"context"
	"strings"
)

// Family identifies which backend adapter serves a model hint.
type Family int

const (
	FamilyOllama Family = iota
	FamilyDeepSeek
)

func (f Family) String() string {
	if f == FamilyDeepSeek {
		return "deepseek"
	}
	return "ollama"
}

const deepSeekPrefix = "deepseek"

// Classify maps a model hint to a backend family. The mapping is a pure
// function of the hint so backend choice stays deterministic and testable:
// hints in the deepseek model family route remote, everything else
// (including the empty hint) routes to the local Ollama adapter.
func Classify(model string) Family {
	if strings.HasPrefix(strings.ToLower(strings.TrimSpace(model)), deepSeekPrefix) {
		return FamilyDeepSeek
	}
	return FamilyOllama
}

// Router dispatches generation requests across the configured adapters.
type Router struct {
	local        Provider
	remote       Provider
	defaultModel string
}

func NewRouter(local, remote Provider, defaultModel string) *Router {
	return &Router{
		local:        local,
		remote:       remote,
		defaultModel: defaultModel,
	}
}

var _ Provider = &Router{}

func (r *Router) Generate(ctx context.Context, prompt string, opts ...Option) (*Result, error) {
	options := applyOptions(opts)

	model := options.Model
	if model == "" {
		model = r.defaultModel
	}
	opts = append(opts, WithModel(model))

	if Classify(model) == FamilyDeepSeek {
		return r.remote.Generate(ctx, prompt, opts...)
	}
	return r.local.Generate(ctx, prompt, opts...)
}
