// Package speech holds the pass-through clients for the speech-to-text and
// speech-synthesis backends. The orchestrator performs no recognition or
// synthesis itself; it forwards media unchanged and surfaces backend errors
// as upstream failures.
package speech

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"ai-speechcoach-be/internal/pkg/apperrors"
)

// Transcriber forwards raw audio to the recognition backend and returns its
// JSON report ({language, duration, full text, timed segments}) untouched.
type Transcriber interface {
	Transcribe(ctx context.Context, filename, contentType string, audio []byte) ([]byte, error)
}

type ASRClient struct {
	baseURL string
	client  *http.Client
}

var _ Transcriber = &ASRClient{}

func NewASRClient(baseURL string, timeout time.Duration) *ASRClient {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ASRClient{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *ASRClient) Transcribe(ctx context.Context, filename, contentType string, audio []byte) ([]byte, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	header := make(map[string][]string)
	header["Content-Disposition"] = []string{
		fmt.Sprintf(`form-data; name="audio"; filename=%q`, filename),
	}
	header["Content-Type"] = []string{contentType}

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create multipart field: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("write audio payload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	url := c.baseURL + "/transcribe"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, apperrors.Upstream("asr request failed", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperrors.Upstream("read asr response", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.Upstream(
			fmt.Sprintf("asr error: status %d, body: %s", resp.StatusCode, string(respBody)), nil)
	}

	return respBody, nil
}
