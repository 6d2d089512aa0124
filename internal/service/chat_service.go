package service

import (
	"context"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/pkg/llm"
)

type IChatService interface {
	Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error)
}

type chatService struct {
	local llm.Provider
}

// NewChatService builds the raw chat pass-through. Raw chat always targets
// the local backend; there is no fallback for it, so upstream errors surface
// to the caller.
func NewChatService(local llm.Provider) IChatService {
	return &chatService{local: local}
}

func (s *chatService) Chat(ctx context.Context, request *dto.ChatRequest) (*dto.ChatResponse, error) {
	opts := []llm.Option{llm.WithModel(request.Model)}
	if request.Options.Temperature != nil {
		opts = append(opts, llm.WithTemperature(*request.Options.Temperature))
	}
	if request.Options.TopP != nil {
		opts = append(opts, llm.WithTopP(*request.Options.TopP))
	}

	result, err := s.local.Generate(ctx, request.Prompt, opts...)
	if err != nil {
		return nil, err
	}

	return &dto.ChatResponse{
		Response: result.Text,
		Context:  result.Context,
	}, nil
}
