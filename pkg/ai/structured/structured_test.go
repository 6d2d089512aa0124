package structured

import (
	"errors"
	"testing"
)

func TestExtract(t *testing.T) {
	type payload struct {
		Seed string `json:"seed"`
	}

	tests := []struct {
		name     string
		raw      string
		wantSeed string
		wantErr  bool
	}{
		{
			name:     "bare JSON",
			raw:      `{"seed": "I missed my train."}`,
			wantSeed: "I missed my train.",
		},
		{
			name:     "fenced JSON",
			raw:      "```json\n{\"seed\": \"I missed my train.\"}\n```",
			wantSeed: "I missed my train.",
		},
		{
			name:     "fenced without language tag",
			raw:      "```\n{\"seed\": \"ok\"}\n```",
			wantSeed: "ok",
		},
		{
			name:     "JSON embedded in prose",
			raw:      "Sure! Here is the drill you asked for:\n{\"seed\": \"ok\"}\nHope that helps.",
			wantSeed: "ok",
		},
		{
			name:     "leading and trailing whitespace",
			raw:      "\n\n  {\"seed\": \"ok\"}  \n",
			wantSeed: "ok",
		},
		{
			name:    "empty input",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only",
			raw:     "   \n\t ",
			wantErr: true,
		},
		{
			name:    "no braces at all",
			raw:     "I cannot produce JSON right now.",
			wantErr: true,
		},
		{
			name:    "braces but invalid JSON",
			raw:     "{seed: broken}",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got payload
			err := Extract(tt.raw, &got)

			if tt.wantErr {
				if !errors.Is(err, ErrNoStructure) {
					t.Fatalf("Extract(%q) error = %v, want ErrNoStructure", tt.raw, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Extract(%q) unexpected error: %v", tt.raw, err)
			}
			if got.Seed != tt.wantSeed {
				t.Errorf("Seed = %q, want %q", got.Seed, tt.wantSeed)
			}
		})
	}
}

func TestExtractOutermostBraces(t *testing.T) {
	// The substring scan must span outermost braces, not the first pair.
	raw := `prefix {"outer": {"inner": 1}} suffix`
	var got map[string]any
	if err := Extract(raw, &got); err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if _, ok := got["outer"]; !ok {
		t.Errorf("expected key 'outer' in %v", got)
	}
}
