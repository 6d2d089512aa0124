package dto

type ThemeRequest struct {
	Language   string `json:"language"`
	Theme      string `json:"theme" validate:"required"`
	Difficulty string `json:"difficulty"`
	Count      int    `json:"count" validate:"omitempty,min=1,max=10"`
	Model      string `json:"model"`
}

type PhraseCard struct {
	Phrase      string `json:"phrase"`
	Translation string `json:"translation,omitempty"`
	Cue         string `json:"cue,omitempty"`
	Difficulty  string `json:"difficulty,omitempty"`
}

type ThemeResponse struct {
	Language    string       `json:"language"`
	Theme       string       `json:"theme"`
	PhraseCards []PhraseCard `json:"phrase_cards"`
	Intent      string       `json:"intent"`
}

type ShadowStartRequest struct {
	Theme        string `json:"theme" validate:"required"`
	Difficulty   string `json:"difficulty"`
	Language     string `json:"language"`
	AnchorPhrase string `json:"anchor_phrase"`
	Model        string `json:"model"`
}

type ShadowStartResponse struct {
	Sentence string `json:"sentence"`
	Cue      string `json:"cue,omitempty"`
}

type ShadowFeedbackRequest struct {
	Reference      string          `json:"reference" validate:"required"`
	Transcript     string          `json:"transcript" validate:"required"`
	TargetLanguage string          `json:"target_language"`
	Options        SamplingOptions `json:"options"`
}

type ShadowFeedbackResponse struct {
	Feedback string `json:"feedback"`
}

type SubstitutionSlot struct {
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

type SubstitutionStartRequest struct {
	Theme        string `json:"theme" validate:"required"`
	Difficulty   string `json:"difficulty"`
	Language     string `json:"language"`
	AnchorPhrase string `json:"anchor_phrase"`
	Model        string `json:"model"`
}

type SubstitutionStartResponse struct {
	BaseSentence string             `json:"base_sentence"`
	Slots        []SubstitutionSlot `json:"slots"`
}

type SubstitutionFeedbackRequest struct {
	BaseSentence   string             `json:"base_sentence" validate:"required"`
	Transcript     string             `json:"transcript" validate:"required"`
	Slots          []SubstitutionSlot `json:"slots"`
	TargetLanguage string             `json:"target_language"`
	Options        SamplingOptions    `json:"options"`
}

type SubstitutionFeedbackResponse struct {
	Feedback    string `json:"feedback"`
	NextVariant string `json:"next_variant,omitempty"`
}

type ExpansionStartRequest struct {
	Theme        string `json:"theme" validate:"required"`
	Difficulty   string `json:"difficulty"`
	Language     string `json:"language"`
	AnchorPhrase string `json:"anchor_phrase"`
	Model        string `json:"model"`
}

type ExpansionStartResponse struct {
	Seed      string   `json:"seed"`
	Scaffolds []string `json:"scaffolds"`
}

type ExpansionFeedbackRequest struct {
	Seed           string          `json:"seed" validate:"required"`
	Transcript     string          `json:"transcript" validate:"required"`
	Scaffolds      []string        `json:"scaffolds"`
	TargetLanguage string          `json:"target_language"`
	Options        SamplingOptions `json:"options"`
}

type ExpansionFeedbackResponse struct {
	Feedback        string `json:"feedback"`
	ImprovedVariant string `json:"improved_variant,omitempty"`
}

type ConversationMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ReviewStartRequest struct {
	Theme      string `json:"theme" validate:"required"`
	Difficulty string `json:"difficulty"`
	Language   string `json:"language"`
	Model      string `json:"model"`
}

type ReviewStartResponse struct {
	Opening string `json:"opening"`
}

type ReviewTurnRequest struct {
	Theme      string                `json:"theme"`
	Difficulty string                `json:"difficulty"`
	Language   string                `json:"language"`
	History    []ConversationMessage `json:"history"`
	UserReply  string                `json:"user_reply" validate:"required"`
	Attempt    int                   `json:"attempt" validate:"omitempty,min=1"`
	Model      string                `json:"model"`
	Options    SamplingOptions       `json:"options"`
}

type ReviewTurnReply struct {
	Reply string `json:"reply"`
}

type FeedbackRequest struct {
	Transcript     string           `json:"transcript" validate:"required"`
	Segments       []map[string]any `json:"segments"`
	TargetLanguage string           `json:"target_language"`
}

type FeedbackResponse struct {
	Chunks          []string `json:"chunks"`
	GrammarNotes    []string `json:"grammar_notes"`
	ProsodyNotes    []string `json:"prosody_notes"`
	RerecordTargets []string `json:"rerecord_targets"`
}
