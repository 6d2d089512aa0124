package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/serverutils"
)

type stubSessionService struct {
	sessions map[string]*dto.SessionInfo
}

func newStubSessionService() *stubSessionService {
	return &stubSessionService{sessions: map[string]*dto.SessionInfo{}}
}

func (s *stubSessionService) Create(ctx context.Context, request *dto.SessionCreateRequest) (*dto.SessionInfo, error) {
	mode := request.Mode
	if mode == "" {
		mode = "fluency"
	}
	info := &dto.SessionInfo{SessionID: "sess-1", Mode: mode}
	s.sessions[info.SessionID] = info
	return info, nil
}

func (s *stubSessionService) Get(ctx context.Context, sessionID string) (*dto.SessionInfo, error) {
	info, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NotFound("session not found")
	}
	return info, nil
}

func (s *stubSessionService) SetMode(ctx context.Context, sessionID string, request *dto.SessionUpdateRequest) (*dto.SessionInfo, error) {
	info, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NotFound("session not found")
	}
	info.Mode = request.Mode
	return info, nil
}

func (s *stubSessionService) Chat(ctx context.Context, sessionID string, request *dto.SessionChatRequest) (*dto.SessionChatResponse, error) {
	info, ok := s.sessions[sessionID]
	if !ok {
		return nil, apperrors.NotFound("session not found")
	}
	info.Turns++
	return &dto.SessionChatResponse{
		SessionID: sessionID,
		Mode:      info.Mode,
		Response:  "stub reply",
		Turns:     info.Turns,
	}, nil
}

func newSessionTestApp(svc *stubSessionService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	api := app.Group("/api")
	NewSessionController(svc).RegisterRoutes(api)
	return app
}

func TestSessionEndpoints(t *testing.T) {
	app := newSessionTestApp(newStubSessionService())

	// Create
	req := httptest.NewRequest("POST", "/api/sessions/", strings.NewReader(`{"user_id": "u1"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var created dto.SessionInfo
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	assert.Equal(t, "sess-1", created.SessionID)
	assert.Equal(t, "fluency", created.Mode)

	// Chat
	body, _ := json.Marshal(dto.SessionChatRequest{Prompt: "hello"})
	req = httptest.NewRequest("POST", "/api/sessions/sess-1/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var chat dto.SessionChatResponse
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&chat))
	assert.Equal(t, 1, chat.Turns)
	assert.Equal(t, "stub reply", chat.Response)

	// Update mode
	req = httptest.NewRequest("PATCH", "/api/sessions/sess-1", strings.NewReader(`{"mode": "review"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Get
	req = httptest.NewRequest("GET", "/api/sessions/sess-1", nil)
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var info dto.SessionInfo
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(&info))
	assert.Equal(t, "review", info.Mode)
	assert.Equal(t, 1, info.Turns)
}

func TestSessionNotFoundMapsTo404(t *testing.T) {
	app := newSessionTestApp(newStubSessionService())

	req := httptest.NewRequest("GET", "/api/sessions/missing", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	body, _ := json.Marshal(dto.SessionChatRequest{Prompt: "hello"})
	req = httptest.NewRequest("POST", "/api/sessions/missing/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestSessionValidationErrors(t *testing.T) {
	app := newSessionTestApp(newStubSessionService())

	// Unknown mode on create
	req := httptest.NewRequest("POST", "/api/sessions/", strings.NewReader(`{"user_id": "u1", "mode": "turbo"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Empty prompt on chat
	req = httptest.NewRequest("POST", "/api/sessions/sess-1/chat", strings.NewReader(`{"prompt": ""}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	// Malformed body on update
	req = httptest.NewRequest("PATCH", "/api/sessions/sess-1", strings.NewReader(`{`))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
