package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"ai-speechcoach-be/internal/constant"
	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/logger"
	"ai-speechcoach-be/pkg/ai/pipeline"
	"ai-speechcoach-be/pkg/ai/structured"
	"ai-speechcoach-be/pkg/llm"
)

// substitutionAttempts bounds generation for a drill: one call plus one
// resample of the identical prompt (stochastic sampling differs by run).
const substitutionAttempts = 2

var bracketPattern = regexp.MustCompile(`\[([^\]]+)\]`)

var errDrillShape = errors.New("drill does not satisfy the slot/bracket contract")

type ISubstitutionService interface {
	Start(ctx context.Context, request *dto.SubstitutionStartRequest) (*dto.SubstitutionStartResponse, error)
	Feedback(ctx context.Context, request *dto.SubstitutionFeedbackRequest) (*dto.SubstitutionFeedbackResponse, error)
}

type substitutionService struct {
	provider llm.Provider
	local    llm.Provider
	logger   logger.ILogger
}

func NewSubstitutionService(provider, local llm.Provider, log logger.ILogger) ISubstitutionService {
	return &substitutionService{
		provider: provider,
		local:    local,
		logger:   log,
	}
}

// Start produces a base sentence with bracketed substitution slots. The
// label set in the slot list and the bracketed placeholders in the sentence
// must be in bijection, and the slot count must match the difficulty policy
// exactly; otherwise the drill is unusable for the client-side exercise.
func (s *substitutionService) Start(ctx context.Context, request *dto.SubstitutionStartRequest) (*dto.SubstitutionStartResponse, error) {
	difficulty := constant.NormalizeDifficulty(request.Difficulty)
	slotCount := constant.SlotCount(difficulty)
	optionCount := constant.OptionCount(difficulty)

	prompt := composeDrillPrompt(request.Theme, request.AnchorPhrase, difficulty, slotCount, optionCount)

	drill, degraded, err := pipeline.Generate(ctx, substitutionAttempts,
		func(ctx context.Context) (string, error) {
			result, err := s.provider.Generate(ctx, prompt,
				llm.WithModel(request.Model),
				llm.WithTemperature(0.5),
				llm.WithTopP(0.9),
			)
			if err != nil {
				return "", err
			}
			return result.Text, nil
		},
		func(raw string) (*dto.SubstitutionStartResponse, error) {
			return parseDrill(raw, slotCount)
		},
		func(lastRaw string) *dto.SubstitutionStartResponse {
			return synthesizeDrill(lastRaw, slotCount)
		},
	)
	if err != nil {
		return nil, err
	}
	if degraded {
		s.logger.Warn("substitution", "drill degraded to synthetic artifact", map[string]interface{}{
			"theme":      request.Theme,
			"difficulty": string(difficulty),
		})
	}
	return drill, nil
}

func composeDrillPrompt(theme, anchor string, difficulty constant.Difficulty, slotCount, optionCount int) string {
	var b strings.Builder
	b.WriteString("Generate exactly ONE short dialog line (6-12 words), first-person, spoken (no narration). ")
	fmt.Fprintf(&b, "Provide exactly %d substitution slots. Each slot must have %d options. ", slotCount, optionCount)
	b.WriteString("Return JSON ONLY with keys: base_sentence (string), slots (array of {label, options[]} ). ")
	b.WriteString("Slots must correspond to words/phrases present in the base_sentence (nouns/verbs/adjectives typical of the theme). ")
	b.WriteString(`In the base_sentence, mark each slot with square brackets using the slot LABEL only (e.g., "I need a [drink] right now"). `)
	b.WriteString("The slot label inside brackets must match the slot label in JSON. Options must grammatically replace that placeholder verbatim; do NOT bracket a different phrase. ")
	b.WriteString("Do not add slots unrelated to the sentence. ")
	fmt.Fprintf(&b, "Theme hint: %s. ", theme)
	if anchor != "" {
		fmt.Fprintf(&b, "Base it on this anchor and keep scenario/tense similar: %s. ", anchor)
	}
	fmt.Fprintf(&b, "Difficulty: %s. Language: en. ", difficulty)
	b.WriteString(`Example: {"base_sentence": "Could I get a small [drink] to go?", "slots": [{"label": "drink", "options": ["latte","americano","tea"]}]}`)
	return b.String()
}

type drillPayload struct {
	BaseSentence string      `json:"base_sentence"`
	Slots        []drillSlot `json:"slots"`
}

type drillSlot struct {
	Label   string `json:"label"`
	Type    string `json:"type"`
	Options []any  `json:"options"`
}

func (d drillSlot) toSlot() (dto.SubstitutionSlot, bool) {
	label := d.Label
	if label == "" {
		label = d.Type
	}
	if label == "" {
		return dto.SubstitutionSlot{}, false
	}
	options := make([]string, 0, len(d.Options))
	for _, o := range d.Options {
		options = append(options, fmt.Sprintf("%v", o))
	}
	return dto.SubstitutionSlot{Label: label, Options: options}, true
}

// bracketLabels returns the bracketed placeholders in order of appearance.
func bracketLabels(sentence string) []string {
	matches := bracketPattern.FindAllStringSubmatch(sentence, -1)
	labels := make([]string, 0, len(matches))
	for _, m := range matches {
		labels = append(labels, m[1])
	}
	return labels
}

func parseDrill(raw string, slotCount int) (*dto.SubstitutionStartResponse, error) {
	var payload drillPayload
	if err := structured.Extract(raw, &payload); err != nil {
		return nil, err
	}

	sentence := strings.TrimSpace(payload.BaseSentence)
	if sentence == "" {
		return nil, errDrillShape
	}

	slots := make([]dto.SubstitutionSlot, 0, len(payload.Slots))
	seen := make(map[string]bool)
	for _, item := range payload.Slots {
		slot, ok := item.toSlot()
		if !ok {
			continue
		}
		if seen[slot.Label] {
			return nil, errDrillShape
		}
		seen[slot.Label] = true
		slots = append(slots, slot)
	}
	if len(slots) != slotCount {
		return nil, errDrillShape
	}

	// Bijection: every emitted label has exactly one bracketed occurrence
	// in the sentence and no stray placeholders exist.
	placeholders := bracketLabels(sentence)
	if len(placeholders) != slotCount {
		return nil, errDrillShape
	}
	used := make(map[string]bool)
	for _, label := range placeholders {
		if used[label] || !seen[label] {
			return nil, errDrillShape
		}
		used[label] = true
	}

	return &dto.SubstitutionStartResponse{
		BaseSentence: sentence,
		Slots:        slots,
	}, nil
}

// synthesizeDrill builds the deterministic fallback drill: salvage whatever
// labels and options the last completion carried, manufacture the rest, and
// normalize the sentence so the label/bracket bijection holds regardless of
// how broken the input was.
func synthesizeDrill(lastRaw string, slotCount int) *dto.SubstitutionStartResponse {
	sentence := ""
	parsedOptions := make(map[string][]string)

	var payload drillPayload
	if err := structured.Extract(lastRaw, &payload); err == nil {
		sentence = strings.TrimSpace(payload.BaseSentence)
		for _, item := range payload.Slots {
			if slot, ok := item.toSlot(); ok && len(slot.Options) > 0 {
				parsedOptions[slot.Label] = slot.Options
			}
		}
	} else if line := firstLine(lastRaw); line != "" {
		sentence = line
	}

	// Label set: salvaged bracket labels first, then manufactured slotN
	// names, to exactly slotCount entries.
	labels := make([]string, 0, slotCount)
	seen := make(map[string]bool)
	for _, label := range bracketLabels(sentence) {
		if seen[label] || len(labels) == slotCount {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	for i := 1; len(labels) < slotCount; i++ {
		label := fmt.Sprintf("slot%d", i)
		if seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}

	if sentence == "" {
		sentence = fmt.Sprintf("I need a [%s] right now.", labels[0])
	}

	// Keep the first occurrence of each accepted label, unbracket anything
	// else, then append placeholders that are still missing.
	kept := make(map[string]bool)
	sentence = bracketPattern.ReplaceAllStringFunc(sentence, func(match string) string {
		label := match[1 : len(match)-1]
		if seen[label] && !kept[label] {
			kept[label] = true
			return match
		}
		return label
	})
	for _, label := range labels {
		if !kept[label] {
			sentence += fmt.Sprintf(" [%s]", label)
		}
	}

	slots := make([]dto.SubstitutionSlot, 0, slotCount)
	for _, label := range labels {
		options := parsedOptions[label]
		if len(options) == 0 {
			options = []string{"option1", "option2", "option3"}
		}
		slots = append(slots, dto.SubstitutionSlot{Label: label, Options: options})
	}

	return &dto.SubstitutionStartResponse{
		BaseSentence: sentence,
		Slots:        slots,
	}
}

func firstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// Feedback evaluates a substitution attempt against the provided slots only.
func (s *substitutionService) Feedback(ctx context.Context, request *dto.SubstitutionFeedbackRequest) (*dto.SubstitutionFeedbackResponse, error) {
	language := constant.NormalizeLanguage(request.TargetLanguage)

	slotLines := make([]string, 0, len(request.Slots))
	for _, slot := range request.Slots {
		slotLines = append(slotLines, fmt.Sprintf("- %s: %s", slot.Label, strings.Join(slot.Options, ", ")))
	}

	var b strings.Builder
	if language == "zh" {
		fmt.Fprintf(&b, "基准句: %s\n学习者转写: %s\n可替换槽位:\n%s\n",
			request.BaseSentence, request.Transcript, strings.Join(slotLines, "\n"))
		b.WriteString("仅根据给定槽位检查：是否使用了提供的选项并保持时态语法？不要引入槽位之外的新词。")
		b.WriteString("用中文给2条简短改进建议，并给出一个使用不同已提供选项的示例句。")
	} else {
		fmt.Fprintf(&b, "Base sentence: %s\nLearner transcript: %s\nSubstitution slots:\n%s\n",
			request.BaseSentence, request.Transcript, strings.Join(slotLines, "\n"))
		b.WriteString("Check against the slots only: did the learner use the provided options and keep tense/grammar? ")
		b.WriteString("Do not suggest new words outside the options. ")
		b.WriteString("Give 2 short bullet fixes (slot usage or grammar) and propose one next variant using different provided options.")
	}

	result, err := s.local.Generate(ctx, b.String(),
		llm.WithTemperature(0.3),
		llm.WithTopP(0.9),
	)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(result.Text)
	return &dto.SubstitutionFeedbackResponse{
		Feedback:    text,
		NextVariant: extractVariantLine(text),
	}, nil
}
