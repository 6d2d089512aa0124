package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/pkg/llm"
)

func TestGenerate(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("path = %q, want /api/generate", r.URL.Path)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Model != "mistral" {
			t.Errorf("model = %q, want mistral", req.Model)
		}
		if req.Stream {
			t.Error("stream must be false")
		}
		if req.Options == nil || req.Options.Temperature != 0.5 || req.Options.TopP != 0.9 {
			t.Errorf("options = %+v", req.Options)
		}
		if len(req.Context) != 2 {
			t.Errorf("context = %v, want [7 8]", req.Context)
		}

		json.NewEncoder(w).Encode(generateResponse{
			Model:    req.Model,
			Response: "a completion",
			Context:  []int{1, 2, 3},
			Done:     true,
		})
	}))
	defer backend.Close()

	p := NewProvider(backend.URL, "mistral", 5*time.Second)
	result, err := p.Generate(context.Background(), "say something",
		llm.WithTemperature(0.5),
		llm.WithTopP(0.9),
		llm.WithContext([]int{7, 8}),
	)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if result.Text != "a completion" {
		t.Errorf("Text = %q", result.Text)
	}
	if len(result.Context) != 3 {
		t.Errorf("Context = %v, want the rolling token", result.Context)
	}
}

func TestGenerateOmitsOptionsWhenUnset(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if _, present := raw["options"]; present {
			t.Error("options must be omitted when no sampling parameters are given")
		}
		if _, present := raw["context"]; present {
			t.Error("context must be omitted when empty")
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer backend.Close()

	p := NewProvider(backend.URL, "mistral", 5*time.Second)
	if _, err := p.Generate(context.Background(), "hi"); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerateModelOverride(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model != "llama3" {
			t.Errorf("model = %q, want override llama3", req.Model)
		}
		json.NewEncoder(w).Encode(generateResponse{Response: "ok", Done: true})
	}))
	defer backend.Close()

	p := NewProvider(backend.URL, "mistral", 5*time.Second)
	if _, err := p.Generate(context.Background(), "hi", llm.WithModel("llama3")); err != nil {
		t.Fatalf("Generate: %v", err)
	}
}

func TestGenerateUpstreamError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "model not found"}`, http.StatusNotFound)
	}))
	defer backend.Close()

	p := NewProvider(backend.URL, "mistral", 5*time.Second)
	_, err := p.Generate(context.Background(), "hi")
	if apperrors.KindOf(err) != apperrors.KindUpstream {
		t.Errorf("kind = %v, want upstream", apperrors.KindOf(err))
	}
}

func TestGenerateConnectionFailure(t *testing.T) {
	p := NewProvider("http://127.0.0.1:1", "mistral", time.Second)
	_, err := p.Generate(context.Background(), "hi")
	if apperrors.KindOf(err) != apperrors.KindUpstream {
		t.Errorf("kind = %v, want upstream", apperrors.KindOf(err))
	}
}
