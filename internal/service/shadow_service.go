package service

import (
	"context"
	"fmt"
	"strings"

	"ai-speechcoach-be/internal/constant"
	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/pkg/llm"
)

const shadowFallbackSentence = "Let's try a quick line together."

type IShadowService interface {
	Start(ctx context.Context, request *dto.ShadowStartRequest) (*dto.ShadowStartResponse, error)
	Feedback(ctx context.Context, request *dto.ShadowFeedbackRequest) (*dto.ShadowFeedbackResponse, error)
}

type shadowService struct {
	provider llm.Provider
	local    llm.Provider
	logger   logger.ILogger
}

// NewShadowService wires the dispatching provider for drill starts and the
// local adapter for feedback, which always runs against the local backend.
func NewShadowService(provider, local llm.Provider, log logger.ILogger) IShadowService {
	return &shadowService{
		provider: provider,
		local:    local,
		logger:   log,
	}
}

// Start returns a short sentence for shadowing based on theme and
// difficulty. The completion is free text in a two-line Sentence:/Cue:
// format; when the marker is absent the whole text is the sentence.
func (s *shadowService) Start(ctx context.Context, request *dto.ShadowStartRequest) (*dto.ShadowStartResponse, error) {
	difficulty := constant.NormalizeDifficulty(request.Difficulty)

	var b strings.Builder
	b.WriteString("You are writing one natural spoken line for a brief dialogue. ")
	b.WriteString("Sound like a real participant in the theme context (no narration). ")
	fmt.Fprintf(&b, "Keep it %s. ", constant.ShadowStyle(difficulty))
	fmt.Fprintf(&b, "Theme/context hint: %s. ", request.Theme)
	if request.AnchorPhrase != "" {
		fmt.Fprintf(&b, "Use this as the base idea and keep a similar vibe: %s. ", request.AnchorPhrase)
	}
	fmt.Fprintf(&b, "Difficulty label: %s. ", difficulty)
	b.WriteString("Respond in English. Format exactly:\nSentence: <line>\nCue: <short stage cue like tone/speed>")

	result, err := s.provider.Generate(ctx, b.String(), llm.WithModel(request.Model))
	if err != nil {
		return nil, err
	}

	sentence, cue := parseShadowLine(result.Text)
	if sentence == "" {
		s.logger.Warn("shadow", "empty completion, using fallback sentence", nil)
		sentence = shadowFallbackSentence
	}

	return &dto.ShadowStartResponse{
		Sentence: sentence,
		Cue:      cue,
	}, nil
}

func parseShadowLine(raw string) (sentence, cue string) {
	text := strings.TrimSpace(raw)
	sentence = text

	switch {
	case strings.Contains(text, "Sentence:"):
		for _, line := range strings.Split(text, "\n") {
			lower := strings.ToLower(line)
			if strings.HasPrefix(lower, "sentence:") {
				sentence = strings.TrimSpace(line[len("sentence:"):])
			}
			if strings.HasPrefix(lower, "cue:") {
				cue = strings.TrimSpace(line[len("cue:"):])
			}
		}
	case strings.Contains(text, "Cue:"):
		parts := strings.SplitN(text, "Cue:", 2)
		sentence = strings.TrimSpace(parts[0])
		cue = strings.TrimSpace(parts[1])
	}
	return sentence, cue
}

// Feedback compares the learner's transcript with the reference line and
// surfaces the backend's prose verdict directly: feedback is inherently
// unstructured, so no validation or retry applies.
func (s *shadowService) Feedback(ctx context.Context, request *dto.ShadowFeedbackRequest) (*dto.ShadowFeedbackResponse, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "参考句子: %s\n用户转写: %s\n", request.Reference, request.Transcript)
	b.WriteString("对比参考句与转写，只指出词汇/语法/语义不一致之处；如果无差异，明确说明“朗读正确，无明显错误”。")
	b.WriteString("不要建议替换正确的词或添加新词，不要口语化改写。")
	b.WriteString("仅额外给一条发声建议（发音/节奏/重音），避免冗长。精简回答。")

	result, err := s.local.Generate(ctx, b.String(),
		llm.WithTemperature(0.2),
		llm.WithTopP(0.9),
	)
	if err != nil {
		return nil, err
	}

	return &dto.ShadowFeedbackResponse{
		Feedback: strings.TrimSpace(result.Text),
	}, nil
}
