package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/pkg/llm"
)

type Provider struct {
	BaseURL   string
	ModelName string
	Client    *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(baseURL, modelName string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Provider{
		BaseURL:   baseURL,
		ModelName: modelName,
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// --- Request/Response structs (internal to this package) ---

type generateRequest struct {
	Model   string           `json:"model"`
	Prompt  string           `json:"prompt"`
	Stream  bool             `json:"stream"`
	Options *generateOptions `json:"options,omitempty"`
	Context []int            `json:"context,omitempty"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
}

type generateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Context  []int  `json:"context"`
	Done     bool   `json:"done"`
}

// Generate posts a non-streaming completion request to /api/generate and
// returns the response text together with the rolling context token.
func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Result, error) {
	options := &llm.Options{}
	for _, opt := range opts {
		opt(options)
	}

	model := p.ModelName
	if options.Model != "" {
		model = options.Model
	}

	reqPayload := generateRequest{
		Model:   model,
		Prompt:  prompt,
		Stream:  false,
		Context: options.Context,
	}
	if options.Temperature > 0 || options.TopP > 0 {
		reqPayload.Options = &generateOptions{
			Temperature: options.Temperature,
			TopP:        options.TopP,
		}
	}

	payloadBytes, err := json.Marshal(reqPayload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := p.BaseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payloadBytes))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("ollama request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("read ollama response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Upstream(
			fmt.Sprintf("ollama error: status %d, body: %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	var genResp generateResponse
	if err := json.Unmarshal(bodyBytes, &genResp); err != nil {
		return nil, apperrors.Upstream("unmarshal ollama response", err)
	}

	return &llm.Result{
		Text:    genResp.Response,
		Context: genResp.Context,
	}, nil
}
