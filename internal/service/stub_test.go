package service

import (
	"context"
	"sync"

	"ai-speechcoach-be/pkg/llm"
)

// stubProvider replays scripted completions in order. When the script runs
// out the last entry repeats; a non-nil err fails every call.
type stubProvider struct {
	mu      sync.Mutex
	script  []string
	err     error
	calls   int
	prompts []string
	opts    []llm.Options
}

func (p *stubProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.calls++
	p.prompts = append(p.prompts, prompt)

	var options llm.Options
	for _, opt := range opts {
		opt(&options)
	}
	p.opts = append(p.opts, options)

	if p.err != nil {
		return nil, p.err
	}

	idx := p.calls - 1
	if idx >= len(p.script) {
		idx = len(p.script) - 1
	}
	text := ""
	if idx >= 0 {
		text = p.script[idx]
	}
	return &llm.Result{Text: text}, nil
}

type nopLogger struct{}

func (nopLogger) Debug(module, message string, details map[string]interface{}) {}
func (nopLogger) Info(module, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module, message string, details map[string]interface{})  {}
func (nopLogger) Error(module, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                  { return nil }
