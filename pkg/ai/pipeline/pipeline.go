// Package pipeline provides the generate-validate-fallback loop shared by
// every drill generator. A generator composes one prompt, asks the backend
// for completions up to a bound, validates each raw completion, and degrades
// to a deterministic artifact when the bound is exhausted. A broken drill
// experience is worse than a synthetic one, so callers never see a raw
// parse or validation failure.
package pipeline

import (
	"context"
)

// GenerateFunc produces one raw completion. Stochastic sampling means
// repeated calls with the same prompt can yield different text.
type GenerateFunc func(ctx context.Context) (string, error)

// BuildFunc validates a raw completion and builds the typed artifact.
type BuildFunc[T any] func(raw string) (T, error)

// FallbackFunc constructs the deterministic artifact from whatever raw text
// the last attempt produced (possibly empty).
type FallbackFunc[T any] func(lastRaw string) T

// Generate runs gen up to attempts times, passing each completion through
// build. The first artifact that builds cleanly wins. When every attempt
// fails (transport or structure), the fallback constructor decides the
// result and degraded is true.
//
// The only error returned is the context's own: an abandoned request should
// not burn further backend calls on a response nobody will read.
func Generate[T any](
	ctx context.Context,
	attempts int,
	gen GenerateFunc,
	build BuildFunc[T],
	fallback FallbackFunc[T],
) (T, bool, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	lastRaw := ""
	for i := 0; i < attempts; i++ {
		if err := ctx.Err(); err != nil {
			return zero, false, err
		}

		raw, err := gen(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return zero, false, ctx.Err()
			}
			continue
		}
		lastRaw = raw

		artifact, err := build(raw)
		if err == nil {
			return artifact, false, nil
		}
	}

	return fallback(lastRaw), true, nil
}
