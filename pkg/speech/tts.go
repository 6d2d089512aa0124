package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"ai-speechcoach-be/internal/pkg/apperrors"
)

// SynthesisRequest mirrors the synthesis backend's contract field for field.
type SynthesisRequest struct {
	Text        string  `json:"text"`
	Speaker     int     `json:"speaker"`
	LengthScale float64 `json:"length_scale"`
	NoiseScale  float64 `json:"noise_scale"`
	NoiseWidth  float64 `json:"noise_w"`
	Volume      float64 `json:"volume"`
}

// Audio is the synthesized result: a mono 16-bit PCM container plus the
// content type reported by the backend.
type Audio struct {
	Data        []byte
	ContentType string
}

// Synthesizer streams synthesis results through unchanged.
type Synthesizer interface {
	Synthesize(ctx context.Context, req SynthesisRequest) (*Audio, error)
}

type TTSClient struct {
	baseURL string
	client  *http.Client
}

var _ Synthesizer = &TTSClient{}

func NewTTSClient(baseURL string, timeout time.Duration) *TTSClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &TTSClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *TTSClient) Synthesize(ctx context.Context, synthReq SynthesisRequest) (*Audio, error) {
	payload, err := json.Marshal(synthReq)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	url := c.baseURL + "/synthesize"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("tts request failed", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("read tts response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Upstream(
			fmt.Sprintf("tts error: status %d, body: %s", resp.StatusCode, string(data)), nil)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "audio/wav"
	}

	return &Audio{
		Data:        data,
		ContentType: contentType,
	}, nil
}
