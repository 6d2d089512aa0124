package constant

import "strings"

// Difficulty drives the tone/length/slot-count/option-count policy tables
// consulted by every generator.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// NormalizeDifficulty is case-insensitive; unrecognized values (including
// the empty hint) collapse to medium.
func NormalizeDifficulty(raw string) Difficulty {
	switch Difficulty(strings.ToLower(strings.TrimSpace(raw))) {
	case DifficultyEasy:
		return DifficultyEasy
	case DifficultyHard:
		return DifficultyHard
	case DifficultyExpert:
		return DifficultyExpert
	case DifficultyMedium:
		return DifficultyMedium
	default:
		return DifficultyMedium
	}
}

// NormalizeLanguage accepts en/zh case-insensitively; anything else is en.
func NormalizeLanguage(raw string) string {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if lang == "zh" {
		return "zh"
	}
	return "en"
}

var slotCounts = map[Difficulty]int{
	DifficultyEasy:   1,
	DifficultyMedium: 2,
	DifficultyHard:   3,
	DifficultyExpert: 4,
}

var optionCounts = map[Difficulty]int{
	DifficultyEasy:   3,
	DifficultyMedium: 3,
	DifficultyHard:   4,
	DifficultyExpert: 5,
}

var scaffoldCounts = map[Difficulty]int{
	DifficultyEasy:   2,
	DifficultyMedium: 3,
	DifficultyHard:   4,
	DifficultyExpert: 4,
}

// SlotCount returns how many substitution slots a drill of this difficulty
// must carry.
func SlotCount(d Difficulty) int {
	if n, ok := slotCounts[d]; ok {
		return n
	}
	return slotCounts[DifficultyMedium]
}

// OptionCount returns how many interchangeable options each slot carries.
func OptionCount(d Difficulty) int {
	if n, ok := optionCounts[d]; ok {
		return n
	}
	return optionCounts[DifficultyMedium]
}

// ScaffoldCount returns how many expansion scaffolds to provide.
func ScaffoldCount(d Difficulty) int {
	if n, ok := scaffoldCounts[d]; ok {
		return n
	}
	return scaffoldCounts[DifficultyMedium]
}

var shadowStyles = map[Difficulty]string{
	DifficultyEasy:   "simple, short, friendly, polite, 6-10 words",
	DifficultyMedium: "everyday tone, concise, 8-12 words",
	DifficultyHard:   "denser info, brisk delivery, 10-14 words",
	DifficultyExpert: "fast-paced, confident, 12-16 words, natural collocations",
}

// ShadowStyle describes the sentence register requested for shadowing.
func ShadowStyle(d Difficulty) string {
	if s, ok := shadowStyles[d]; ok {
		return s
	}
	return shadowStyles[DifficultyMedium]
}

var reviewTones = map[Difficulty]string{
	DifficultyEasy:   "warm, short, concrete",
	DifficultyMedium: "friendly, concise, everyday tone",
	DifficultyHard:   "brisk, slightly challenging",
	DifficultyExpert: "concise, probing, assumes background knowledge",
}

// ReviewTone describes the agent voice for guided review dialogs.
func ReviewTone(d Difficulty) string {
	if s, ok := reviewTones[d]; ok {
		return s
	}
	return reviewTones[DifficultyMedium]
}

var fallbackCues = map[Difficulty]string{
	DifficultyEasy:   "Delivery: slow and polite",
	DifficultyMedium: "Delivery: clear and upbeat",
	DifficultyHard:   "Delivery: brisk and concise",
	DifficultyExpert: "Delivery: confident and fast",
}

// FallbackCue replaces a missing or low-quality delivery cue on a phrase
// card. The default covers cards whose difficulty label is itself garbage.
func FallbackCue(raw string) string {
	if cue, ok := fallbackCues[Difficulty(strings.ToLower(strings.TrimSpace(raw)))]; ok {
		return cue
	}
	return "Delivery: clear and polite"
}
