package service

import (
	"context"
	"fmt"
	"strings"

	"ai-speechcoach-be/internal/constant"
	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/pkg/ai/pipeline"
	"ai-speechcoach-be/pkg/ai/structured"
	"ai-speechcoach-be/pkg/llm"
)

const (
	reviewFallbackOpening = "Hey, can I ask your take on this topic?"
	reviewEmptyOpening    = "I'd like your thoughts on this."
	reviewEmptyReply      = "Could you share a quick response so we can continue?"
)

type IReviewService interface {
	Start(ctx context.Context, request *dto.ReviewStartRequest) (*dto.ReviewStartResponse, error)
	Turn(ctx context.Context, request *dto.ReviewTurnRequest) (*dto.ReviewTurnReply, error)
}

type reviewService struct {
	provider llm.Provider
	logger   logger.ILogger
}

func NewReviewService(provider llm.Provider, log logger.ILogger) IReviewService {
	return &reviewService{
		provider: provider,
		logger:   log,
	}
}

// Start opens a guided review dialog with an agent line on the theme.
func (s *reviewService) Start(ctx context.Context, request *dto.ReviewStartRequest) (*dto.ReviewStartResponse, error) {
	difficulty := constant.NormalizeDifficulty(request.Difficulty)

	var b strings.Builder
	b.WriteString(`Return JSON ONLY: {"opening": "one agent line, 8-14 words"}. `)
	b.WriteString("Start a role-play dialog on the given theme. Sound like a real person, not a narrator. ")
	fmt.Fprintf(&b, "Theme/context: %s. Tone: %s. Language: en.", request.Theme, constant.ReviewTone(difficulty))

	opening, degraded, err := pipeline.Generate(ctx, 1,
		func(ctx context.Context) (string, error) {
			result, err := s.provider.Generate(ctx, b.String(),
				llm.WithModel(request.Model),
				llm.WithTemperature(0.6),
				llm.WithTopP(0.9),
			)
			if err != nil {
				return "", err
			}
			return result.Text, nil
		},
		func(raw string) (string, error) {
			var payload struct {
				Opening string `json:"opening"`
			}
			if err := structured.Extract(raw, &payload); err != nil {
				return "", err
			}
			return strings.TrimSpace(payload.Opening), nil
		},
		func(string) string {
			return reviewFallbackOpening
		},
	)
	if err != nil {
		return nil, err
	}
	if degraded {
		s.logger.Warn("review", "opening degraded to canned line", map[string]interface{}{"theme": request.Theme})
	}
	if opening == "" {
		opening = reviewEmptyOpening
	}

	return &dto.ReviewStartResponse{Opening: opening}, nil
}

// Turn returns the next agent line. Conversational state lives entirely in
// the caller-supplied history; each turn replays the visible history plus
// the teacher persona and the latest learner reply.
func (s *reviewService) Turn(ctx context.Context, request *dto.ReviewTurnRequest) (*dto.ReviewTurnReply, error) {
	historyLines := make([]string, 0, len(request.History))
	for _, msg := range request.History {
		if msg.Content == "" {
			continue
		}
		historyLines = append(historyLines, fmt.Sprintf("%s: %s", capitalize(msg.Role), msg.Content))
	}
	history := strings.Join(historyLines, "\n")
	if history == "" {
		history = "Agent: (start the dialog)"
	}

	latest := strings.TrimSpace(request.UserReply)
	s.logger.Info("review", "turn", map[string]interface{}{"attempt": request.Attempt})

	var b strings.Builder
	b.WriteString(constant.ReviewPersona)
	b.WriteString("\n\nConversation so far (exclude the latest reply):\n")
	b.WriteString(history)
	fmt.Fprintf(&b, "\n\nLatest user reply:\nUser: %s\n\n", latest)
	b.WriteString("Respond with the next agent line only.")

	result, err := s.provider.Generate(ctx, b.String(),
		llm.WithModel(request.Model),
		llm.WithTemperature(0.4),
		llm.WithTopP(0.9),
	)
	if err != nil {
		return nil, err
	}

	reply := strings.TrimSpace(result.Text)
	if reply == "" {
		reply = reviewEmptyReply
	}

	return &dto.ReviewTurnReply{Reply: reply}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
