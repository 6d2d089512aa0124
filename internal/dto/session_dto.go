package dto

type SessionCreateRequest struct {
	UserID string `json:"user_id"`
	Mode   string `json:"mode" validate:"omitempty,oneof=fluency review"`
}

type SessionUpdateRequest struct {
	Mode string `json:"mode" validate:"required,oneof=fluency review"`
}

type SessionInfo struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Turns     int    `json:"turns"`
}

type SessionChatRequest struct {
	Prompt  string          `json:"prompt" validate:"required"`
	Model   string          `json:"model"`
	Options SamplingOptions `json:"options"`
}

type SessionChatResponse struct {
	SessionID string `json:"session_id"`
	Mode      string `json:"mode"`
	Response  string `json:"response"`
	Turns     int    `json:"turns"`
}
