package dto

// SamplingOptions are the caller-tunable generation knobs. Pointers so that
// "absent" and "zero" stay distinguishable; drills that pin their own
// sampling ignore these.
type SamplingOptions struct {
	Temperature *float64 `json:"temperature"`
	TopP        *float64 `json:"top_p"`
}

type ChatRequest struct {
	Prompt  string          `json:"prompt" validate:"required"`
	Model   string          `json:"model"`
	Options SamplingOptions `json:"options"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Context  []int  `json:"context"`
}
