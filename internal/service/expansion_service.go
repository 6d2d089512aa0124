package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ai-speechcoach-be/internal/constant"
	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/pkg/ai/pipeline"
	"ai-speechcoach-be/pkg/ai/structured"
	"ai-speechcoach-be/pkg/llm"
)

const expansionFallbackSeed = "I missed my train this morning."

var expansionFallbackScaffolds = []string{
	"Add when/where it happened",
	"Add a cause with because",
	"Add what you did next with so",
}

// defaultScaffolds pads any short scaffold list up to the difficulty count.
var defaultScaffolds = []string{
	"Add who you were with",
	"Add a reason with because",
	"Add a result with so",
	"Add feeling/tone with although",
}

var errEmptySeed = errors.New("expansion seed is empty")

type IExpansionService interface {
	Start(ctx context.Context, request *dto.ExpansionStartRequest) (*dto.ExpansionStartResponse, error)
	Feedback(ctx context.Context, request *dto.ExpansionFeedbackRequest) (*dto.ExpansionFeedbackResponse, error)
}

type expansionService struct {
	local  llm.Provider
	logger logger.ILogger
}

// NewExpansionService builds the expansion drill generator. Expansion always
// runs against the local backend.
func NewExpansionService(local llm.Provider, log logger.ILogger) IExpansionService {
	return &expansionService{
		local:  local,
		logger: log,
	}
}

// Start returns a seed sentence and scaffolds for expansion drills. Single
// attempt; any failure substitutes the fixed seed and canned scaffolds.
func (s *expansionService) Start(ctx context.Context, request *dto.ExpansionStartRequest) (*dto.ExpansionStartResponse, error) {
	difficulty := constant.NormalizeDifficulty(request.Difficulty)
	scaffoldCount := constant.ScaffoldCount(difficulty)

	var b strings.Builder
	b.WriteString(`Return JSON ONLY: {"seed": "6-10 word spoken line, first-person", `)
	b.WriteString(`"scaffolds": ["short guidance for adding detail or connectors"]}. `)
	b.WriteString("Seed should be a natural spoken line, not narration, tied to the theme. ")
	b.WriteString("Scaffolds guide the learner to expand with who/when/where and connectors ")
	b.WriteString("(because, so, although, and, with). Use concrete cues like ")
	b.WriteString(`"Add when/where with 'when/while'" or "Add result with 'so'". `)
	fmt.Fprintf(&b, "Provide exactly %d scaffolds. ", scaffoldCount)
	fmt.Fprintf(&b, "Theme hint: %s. ", request.Theme)
	if request.AnchorPhrase != "" {
		fmt.Fprintf(&b, "Keep scenario/tone aligned with this anchor: %s. ", request.AnchorPhrase)
	}
	fmt.Fprintf(&b, "Difficulty: %s. Language: en.", difficulty)

	artifact, degraded, err := pipeline.Generate(ctx, 1,
		func(ctx context.Context) (string, error) {
			result, err := s.local.Generate(ctx, b.String(),
				llm.WithTemperature(0.65),
				llm.WithTopP(0.9),
			)
			if err != nil {
				return "", err
			}
			return result.Text, nil
		},
		func(raw string) (*dto.ExpansionStartResponse, error) {
			return parseExpansion(raw, scaffoldCount)
		},
		func(string) *dto.ExpansionStartResponse {
			return &dto.ExpansionStartResponse{
				Seed:      expansionFallbackSeed,
				Scaffolds: padScaffolds(truncateScaffolds(expansionFallbackScaffolds, scaffoldCount), scaffoldCount),
			}
		},
	)
	if err != nil {
		return nil, err
	}
	if degraded {
		s.logger.Warn("expansion", "seed degraded to canned artifact", map[string]interface{}{"theme": request.Theme})
	}
	return artifact, nil
}

type expansionPayload struct {
	Seed      string `json:"seed"`
	Scaffolds []any  `json:"scaffolds"`
}

func parseExpansion(raw string, scaffoldCount int) (*dto.ExpansionStartResponse, error) {
	var payload expansionPayload
	if err := structured.Extract(raw, &payload); err != nil {
		return nil, err
	}

	seed := strings.TrimSpace(payload.Seed)
	if seed == "" {
		return nil, errEmptySeed
	}

	scaffolds := make([]string, 0, scaffoldCount)
	for _, item := range payload.Scaffolds {
		if len(scaffolds) == scaffoldCount {
			break
		}
		if text := strings.TrimSpace(fmt.Sprintf("%v", item)); text != "" {
			scaffolds = append(scaffolds, text)
		}
	}

	return &dto.ExpansionStartResponse{
		Seed:      seed,
		Scaffolds: padScaffolds(scaffolds, scaffoldCount),
	}, nil
}

func truncateScaffolds(scaffolds []string, count int) []string {
	if len(scaffolds) > count {
		return scaffolds[:count]
	}
	return scaffolds
}

// padScaffolds fills up to count from the default pool without duplicating
// an existing entry and never exceeding the required count.
func padScaffolds(scaffolds []string, count int) []string {
	for _, candidate := range defaultScaffolds {
		if len(scaffolds) >= count {
			break
		}
		exists := false
		for _, have := range scaffolds {
			if have == candidate {
				exists = true
				break
			}
		}
		if !exists {
			scaffolds = append(scaffolds, candidate)
		}
	}
	return scaffolds
}

// Feedback judges whether the learner expanded beyond the seed with clear
// connectors and added detail, and pulls an improved variant line from the
// response when one is present.
func (s *expansionService) Feedback(ctx context.Context, request *dto.ExpansionFeedbackRequest) (*dto.ExpansionFeedbackResponse, error) {
	language := constant.NormalizeLanguage(request.TargetLanguage)

	scaffoldLines := make([]string, 0, len(request.Scaffolds))
	for _, scaffold := range request.Scaffolds {
		scaffoldLines = append(scaffoldLines, "- "+scaffold)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Seed idea: %s\nLearner transcript: %s\nExpansion goals:\n%s\n",
		request.Seed, request.Transcript, strings.Join(scaffoldLines, "\n"))
	b.WriteString("Judge if the learner expanded beyond the seed with clear connectors and ")
	b.WriteString("added detail. Give 3 concise bullet notes: 1 strength, 2 fixes ")
	b.WriteString("(connectors, coherence, grammar). Then offer one improved variant in ")
	b.WriteString("natural spoken English (14-22 words) following the goals.")
	if language == "zh" {
		b.WriteString("\nReturn the feedback bullets in Chinese. The improved example line should stay in English.")
	}

	result, err := s.local.Generate(ctx, b.String(),
		llm.WithTemperature(0.35),
		llm.WithTopP(0.9),
	)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(result.Text)
	return &dto.ExpansionFeedbackResponse{
		Feedback:        text,
		ImprovedVariant: extractVariantLine(text),
	}, nil
}

// extractVariantLine scans from the bottom for the example line: the last
// bullet-stripped line long enough to be a spoken sentence.
func extractVariantLine(text string) string {
	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		clean := strings.TrimSpace(strings.Trim(strings.TrimSpace(lines[i]), "-•"))
		if len(strings.Fields(clean)) >= 6 {
			return clean
		}
	}
	return ""
}
