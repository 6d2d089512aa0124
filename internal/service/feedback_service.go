package service

import (
	"context"
	"strings"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/pkg/llm"
)

const maxRerecordTargets = 5

type IFeedbackService interface {
	Report(ctx context.Context, request *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
}

type feedbackService struct {
	local  llm.Provider
	logger logger.ILogger
}

func NewFeedbackService(local llm.Provider, log logger.ILogger) IFeedbackService {
	return &feedbackService{
		local:  local,
		logger: log,
	}
}

// Report produces a layered feedback report on a full transcript: sentence
// chunks for re-reading, grammar notes, prosody notes, and up to five
// phrases worth re-recording.
func (s *feedbackService) Report(ctx context.Context, request *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	chunks := []string{}
	for _, part := range strings.Split(request.Transcript, ".") {
		if clean := strings.TrimSpace(part); clean != "" {
			chunks = append(chunks, clean)
		}
	}

	grammarNotes, err := s.askLines(ctx, "用中文提供语法反馈（条列）：\n"+request.Transcript)
	if err != nil {
		return nil, err
	}
	prosodyNotes, err := s.askLines(ctx, "用中文列出两点语调或发音改进建议：\n"+request.Transcript)
	if err != nil {
		return nil, err
	}
	rerecordTargets, err := s.askLines(ctx, "用中文列出最多五个需要重录的短语：\n"+request.Transcript)
	if err != nil {
		return nil, err
	}
	if len(rerecordTargets) > maxRerecordTargets {
		rerecordTargets = rerecordTargets[:maxRerecordTargets]
	}

	return &dto.FeedbackResponse{
		Chunks:          chunks,
		GrammarNotes:    grammarNotes,
		ProsodyNotes:    prosodyNotes,
		RerecordTargets: rerecordTargets,
	}, nil
}

func (s *feedbackService) askLines(ctx context.Context, prompt string) ([]string, error) {
	result, err := s.local.Generate(ctx, prompt)
	if err != nil {
		return nil, err
	}
	lines := []string{}
	for _, line := range strings.Split(result.Text, "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
