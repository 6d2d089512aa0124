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

const defaultCardCount = 3

type IThemeService interface {
	Resolve(ctx context.Context, request *dto.ThemeRequest) (*dto.ThemeResponse, error)
}

type themeService struct {
	provider llm.Provider
	logger   logger.ILogger
}

func NewThemeService(provider llm.Provider, log logger.ILogger) IThemeService {
	return &themeService{
		provider: provider,
		logger:   log,
	}
}

// Resolve summarizes the learner's theme into an intent line and derives a
// set of anchor phrase cards across difficulty levels.
func (s *themeService) Resolve(ctx context.Context, request *dto.ThemeRequest) (*dto.ThemeResponse, error) {
	language := constant.NormalizeLanguage(request.Language)
	count := request.Count
	if count <= 0 {
		count = defaultCardCount
	}

	// The intent summary is always requested in English so downstream
	// anchors stay consistent.
	var intentPrompt string
	if language == "zh" {
		intentPrompt = "Summarize the following (Chinese) theme in English, and describe a practice scenario or role: " +
			request.Theme
	} else {
		intentPrompt = "Summarize the learning intent in English in one sentence and provide a context " +
			"or persona for practice: " + request.Theme
	}

	intent := request.Theme
	intentResult, err := s.provider.Generate(ctx, intentPrompt,
		llm.WithModel(request.Model),
		llm.WithTemperature(0.3),
		llm.WithTopP(0.9),
	)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.Warn("theme", "intent summary degraded to raw theme", map[string]interface{}{"error": err.Error()})
	} else if text := strings.TrimSpace(intentResult.Text); text != "" {
		intent = text
	}

	anchorPrompt := composeAnchorPrompt(intent, count)

	cards, degraded, err := pipeline.Generate(ctx, 1,
		func(ctx context.Context) (string, error) {
			result, err := s.provider.Generate(ctx, anchorPrompt,
				llm.WithModel(request.Model),
				llm.WithTemperature(0.8),
				llm.WithTopP(0.9),
			)
			if err != nil {
				return "", err
			}
			return result.Text, nil
		},
		func(raw string) ([]dto.PhraseCard, error) {
			return parsePhraseCards(raw, count)
		},
		func(string) []dto.PhraseCard {
			return []dto.PhraseCard{}
		},
	)
	if err != nil {
		return nil, err
	}
	if degraded {
		s.logger.Warn("theme", "anchor cards degraded to empty list", map[string]interface{}{"theme": request.Theme})
	}

	return &dto.ThemeResponse{
		Language:    language,
		Theme:       request.Theme,
		PhraseCards: cards,
		Intent:      intent,
	}, nil
}

func composeAnchorPrompt(intent string, count int) string {
	var b strings.Builder
	b.WriteString(`Return JSON ONLY: {"anchors": [{"difficulty": "easy|medium|hard|expert", `)
	b.WriteString(`"phrase": "natural spoken line, 6-12 words, no numbering, no the word 'phrase'", `)
	b.WriteString(`"translation": "omit this field", `)
	b.WriteString(`"cue": "specific delivery hint like 'slow and polite', 'warm and upbeat', 'brisk and concise' (avoid generic 'context hint')"} ...]}. `)
	b.WriteString("Keep the scenario aligned to the given theme and make each phrase distinct. ")
	b.WriteString("Avoid food/drink ordering or coffee requests unless the theme explicitly demands it. ")
	b.WriteString("Do not output anchors about buying/making/ordering coffee or drinks; focus on conversational moves only. ")
	b.WriteString("Spread across different social moves (greeting, quick status, offer help, ask opinion, share update) so anchors do not repeat the same intent. ")
	fmt.Fprintf(&b, "Theme: %s. Language: en. Provide %d anchors with varied difficulty. ", intent, count)
	b.WriteString("Example anchors (adapt to the theme, not necessarily coffee): ")
	b.WriteString(`{"difficulty": "easy", "phrase": "Need a quick update before the meeting", "cue": "calm and clear"}, `)
	b.WriteString(`{"difficulty": "hard", "phrase": "Could you summarize yesterday's decisions quickly?", "cue": "brisk and concise"}`)
	return b.String()
}

type anchorPayload struct {
	Anchors []anchorItem `json:"anchors"`
}

type anchorItem struct {
	Difficulty  string `json:"difficulty"`
	Phrase      string `json:"phrase"`
	Translation string `json:"translation"`
	Cue         string `json:"cue"`
}

// parsePhraseCards keeps a card only when its phrase is non-empty and does
// not echo the literal word "phrase" back from the instructions. Missing or
// hint-like cues are repaired from the difficulty cue table.
func parsePhraseCards(raw string, count int) ([]dto.PhraseCard, error) {
	var payload anchorPayload
	if err := structured.Extract(raw, &payload); err != nil {
		return nil, err
	}

	anchors := payload.Anchors
	if len(anchors) > count {
		anchors = anchors[:count]
	}

	cards := make([]dto.PhraseCard, 0, len(anchors))
	for _, item := range anchors {
		phrase := strings.TrimSpace(item.Phrase)
		if phrase == "" || strings.Contains(strings.ToLower(phrase), "phrase") {
			continue
		}
		cue := strings.TrimSpace(item.Cue)
		if cue == "" || strings.Contains(strings.ToLower(cue), "hint") {
			cue = constant.FallbackCue(item.Difficulty)
		}
		cards = append(cards, dto.PhraseCard{
			Phrase:     phrase,
			Cue:        cue,
			Difficulty: item.Difficulty,
		})
	}
	return cards, nil
}
