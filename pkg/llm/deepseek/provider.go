package deepseek

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

// Provider calls the DeepSeek hosted API over its OpenAI-compatible chat
// endpoint. The remote backend is stateless per call, so results never carry
// a context token.
type Provider struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

var _ llm.Provider = &Provider{}

func NewProvider(apiKey, baseURL, model string, timeout time.Duration) *Provider {
	if baseURL == "" {
		baseURL = "https://api.deepseek.com"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Provider{
		apiKey:  apiKey,
		baseURL: baseURL,
		model:   model,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	TopP        float64       `json:"top_p"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (p *Provider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (*llm.Result, error) {
	if p.apiKey == "" {
		// Fail fast before any network traffic.
		return nil, apperrors.Configuration("DEEPSEEK_API_KEY not set")
	}

	options := &llm.Options{
		Temperature: 0.6,
		TopP:        0.9,
	}
	for _, opt := range opts {
		opt(options)
	}
	if options.Temperature <= 0 {
		options.Temperature = 0.6
	}
	if options.TopP <= 0 {
		options.TopP = 0.9
	}

	model := p.model
	if options.Model != "" {
		model = options.Model
	}

	reqBody := chatRequest{
		Model:       model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		Temperature: options.Temperature,
		TopP:        options.TopP,
		Stream:      false,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/chat/completions", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", p.apiKey))

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("deepseek request failed", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Upstream(
			fmt.Sprintf("deepseek error: status %d, body: %s", resp.StatusCode, string(bodyBytes)), nil)
	}

	var chatResp chatResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, apperrors.Upstream("unmarshal deepseek response", err)
	}
	if chatResp.Error != nil {
		return nil, apperrors.Upstream(fmt.Sprintf("deepseek api error: %s", chatResp.Error.Message), nil)
	}
	if len(chatResp.Choices) == 0 {
		return nil, apperrors.Upstream("empty choices from deepseek api", nil)
	}

	return &llm.Result{
		Text:    chatResp.Choices[0].Message.Content,
		Context: nil,
	}, nil
}
