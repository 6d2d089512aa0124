package store

// Mode selects the coaching style applied to session chat turns.
type Mode string

const (
	ModeFluency Mode = "fluency"
	ModeReview  Mode = "review"
)

// ParseMode normalizes a client-supplied mode string. Anything that is not
// an exact known mode falls back to fluency.
func ParseMode(raw string) Mode {
	if Mode(raw) == ModeReview {
		return ModeReview
	}
	return ModeFluency
}

// Turn is one prompt/response exchange. Turns are append-only and never
// edited after being recorded.
type Turn struct {
	Prompt   string `json:"prompt"`
	Response string `json:"response"`
}

// Session is the in-memory conversation state for one learner. Context holds
// the rolling context token returned by the local generation backend; it is
// nil until the first turn and after any remote-backend turn.
type Session struct {
	ID      string `json:"id"`
	UserID  string `json:"user_id"`
	Mode    Mode   `json:"mode"`
	Turns   []Turn `json:"turns"`
	Context []int  `json:"context"`
}

// Clone returns a deep copy so callers never hold a reference into the
// repository-owned session.
func (s *Session) Clone() Session {
	out := *s
	if s.Turns != nil {
		out.Turns = make([]Turn, len(s.Turns))
		copy(out.Turns, s.Turns)
	}
	if s.Context != nil {
		out.Context = make([]int, len(s.Context))
		copy(out.Context, s.Context)
	}
	return out
}
