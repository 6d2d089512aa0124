package service

import (
	"context"
	"fmt"

	"ai-speechcoach-be/internal/constant"
	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/internal/repository/memory"
	"ai-speechcoach-be/pkg/llm"
	"ai-speechcoach-be/pkg/store"
)

type ISessionService interface {
	Create(ctx context.Context, request *dto.SessionCreateRequest) (*dto.SessionInfo, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionInfo, error)
	SetMode(ctx context.Context, sessionID string, request *dto.SessionUpdateRequest) (*dto.SessionInfo, error)
	Chat(ctx context.Context, sessionID string, request *dto.SessionChatRequest) (*dto.SessionChatResponse, error)
}

type sessionService struct {
	repo   *memory.SessionRepository
	local  llm.Provider
	logger logger.ILogger
}

func NewSessionService(repo *memory.SessionRepository, local llm.Provider, log logger.ILogger) ISessionService {
	return &sessionService{
		repo:   repo,
		local:  local,
		logger: log,
	}
}

func sessionInfo(s store.Session) *dto.SessionInfo {
	return &dto.SessionInfo{
		SessionID: s.ID,
		Mode:      string(s.Mode),
		Turns:     len(s.Turns),
	}
}

func (s *sessionService) Create(ctx context.Context, request *dto.SessionCreateRequest) (*dto.SessionInfo, error) {
	session := s.repo.Create(request.UserID, store.ParseMode(request.Mode))
	s.logger.Info("session", "created", map[string]interface{}{"session_id": session.ID, "mode": string(session.Mode)})
	return sessionInfo(session), nil
}

func (s *sessionService) Get(ctx context.Context, sessionID string) (*dto.SessionInfo, error) {
	session, found := s.repo.Get(sessionID)
	if !found {
		return nil, apperrors.NotFound("session not found")
	}
	return sessionInfo(session), nil
}

func (s *sessionService) SetMode(ctx context.Context, sessionID string, request *dto.SessionUpdateRequest) (*dto.SessionInfo, error) {
	session, found, err := s.repo.Mutate(sessionID, func(session *store.Session) error {
		session.Mode = store.ParseMode(request.Mode)
		return nil
	})
	if !found {
		return nil, apperrors.NotFound("session not found")
	}
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// Chat runs one turn against the local backend with the session's rolling
// context token. The whole read-generate-record sequence runs inside the
// per-session lock so concurrent turns on the same session serialize and the
// context token is never read stale.
func (s *sessionService) Chat(ctx context.Context, sessionID string, request *dto.SessionChatRequest) (*dto.SessionChatResponse, error) {
	var responseText string

	session, found, err := s.repo.Mutate(sessionID, func(session *store.Session) error {
		composed := fmt.Sprintf("%s\nUser: %s", constant.ModeInstruction(session.Mode), request.Prompt)

		opts := []llm.Option{
			llm.WithModel(request.Model),
			llm.WithContext(session.Context),
		}
		if request.Options.Temperature != nil {
			opts = append(opts, llm.WithTemperature(*request.Options.Temperature))
		}
		if request.Options.TopP != nil {
			opts = append(opts, llm.WithTopP(*request.Options.TopP))
		}

		result, err := s.local.Generate(ctx, composed, opts...)
		if err != nil {
			return err
		}

		responseText = result.Text
		session.Context = result.Context
		session.Turns = append(session.Turns, store.Turn{
			Prompt:   request.Prompt,
			Response: result.Text,
		})
		return nil
	})
	if !found {
		return nil, apperrors.NotFound("session not found")
	}
	if err != nil {
		return nil, err
	}

	return &dto.SessionChatResponse{
		SessionID: session.ID,
		Mode:      string(session.Mode),
		Response:  responseText,
		Turns:     len(session.Turns),
	}, nil
}
