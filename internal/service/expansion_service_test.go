package service

import (
	"context"
	"errors"
	"testing"

	"ai-speechcoach-be/internal/dto"
)

func TestExpansionStartHappyPath(t *testing.T) {
	local := &stubProvider{script: []string{
		`{"seed": "I missed the bus on my way to work.", "scaffolds": ["Add when it happened", "Add a cause with because", "Add what you did next"]}`,
	}}
	svc := NewExpansionService(local, nopLogger{})

	resp, err := svc.Start(context.Background(), &dto.ExpansionStartRequest{
		Theme:      "commuting",
		Difficulty: "medium",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resp.Seed != "I missed the bus on my way to work." {
		t.Errorf("Seed = %q", resp.Seed)
	}
	if len(resp.Scaffolds) != 3 {
		t.Errorf("scaffolds = %d, want 3", len(resp.Scaffolds))
	}
}

func TestExpansionStartScaffoldBounds(t *testing.T) {
	tests := []struct {
		name       string
		difficulty string
		raw        string
		wantCount  int
	}{
		{
			name:       "too many scaffolds truncated",
			difficulty: "easy",
			raw:        `{"seed": "ok line here", "scaffolds": ["a", "b", "c", "d", "e"]}`,
			wantCount:  2,
		},
		{
			name:       "too few scaffolds padded",
			difficulty: "expert",
			raw:        `{"seed": "ok line here", "scaffolds": ["only one"]}`,
			wantCount:  4,
		},
		{
			name:       "no scaffolds at all padded from pool",
			difficulty: "medium",
			raw:        `{"seed": "ok line here", "scaffolds": []}`,
			wantCount:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			local := &stubProvider{script: []string{tt.raw}}
			svc := NewExpansionService(local, nopLogger{})

			resp, err := svc.Start(context.Background(), &dto.ExpansionStartRequest{
				Theme:      "daily life",
				Difficulty: tt.difficulty,
			})
			if err != nil {
				t.Fatalf("Start: %v", err)
			}
			if len(resp.Scaffolds) != tt.wantCount {
				t.Errorf("scaffolds = %d, want %d (%v)", len(resp.Scaffolds), tt.wantCount, resp.Scaffolds)
			}

			seen := make(map[string]bool)
			for _, s := range resp.Scaffolds {
				if seen[s] {
					t.Errorf("duplicate scaffold %q", s)
				}
				seen[s] = true
			}
		})
	}
}

func TestExpansionStartEmptySeedDegrades(t *testing.T) {
	// A structurally valid payload with an empty seed is unusable and must
	// fall back to the canned artifact.
	local := &stubProvider{script: []string{`{"seed": "", "scaffolds": ["a", "b", "c"]}`}}
	svc := NewExpansionService(local, nopLogger{})

	resp, err := svc.Start(context.Background(), &dto.ExpansionStartRequest{
		Theme:      "daily life",
		Difficulty: "medium",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resp.Seed != "I missed my train this morning." {
		t.Errorf("Seed = %q, want canned seed", resp.Seed)
	}
	if len(resp.Scaffolds) != 3 {
		t.Errorf("scaffolds = %d, want 3", len(resp.Scaffolds))
	}
	if local.calls != 1 {
		t.Errorf("local calls = %d, want 1 (no resampling)", local.calls)
	}
}

func TestExpansionStartBackendFailureDegrades(t *testing.T) {
	local := &stubProvider{err: errors.New("backend unavailable")}
	svc := NewExpansionService(local, nopLogger{})

	resp, err := svc.Start(context.Background(), &dto.ExpansionStartRequest{
		Theme:      "daily life",
		Difficulty: "expert",
	})
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if resp.Seed == "" {
		t.Error("empty seed in fallback")
	}
	if len(resp.Scaffolds) != 4 {
		t.Errorf("scaffolds = %d, want 4 for expert", len(resp.Scaffolds))
	}
}

func TestExpansionFeedbackVariantExtraction(t *testing.T) {
	local := &stubProvider{script: []string{
		"- Strength: good connector use\n- Fix: watch the past tense\n- Fix: add a place detail\n" +
			"Improved: I missed my train this morning because the alarm never rang, so I took a taxi.",
	}}
	svc := NewExpansionService(local, nopLogger{})

	resp, err := svc.Feedback(context.Background(), &dto.ExpansionFeedbackRequest{
		Seed:       "I missed my train this morning.",
		Transcript: "I missed my train because alarm",
		Scaffolds:  []string{"Add a cause with because"},
	})
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if resp.Feedback == "" {
		t.Error("empty feedback")
	}
	if resp.ImprovedVariant == "" {
		t.Error("no improved variant extracted")
	}
	if got := local.opts[0].Temperature; got != 0.35 {
		t.Errorf("temperature = %v, want 0.35", got)
	}
}

func TestExpansionFeedbackShortLinesYieldNoVariant(t *testing.T) {
	local := &stubProvider{script: []string{"Good.\nNice try."}}
	svc := NewExpansionService(local, nopLogger{})

	resp, err := svc.Feedback(context.Background(), &dto.ExpansionFeedbackRequest{
		Seed:       "seed",
		Transcript: "transcript",
	})
	if err != nil {
		t.Fatalf("Feedback: %v", err)
	}
	if resp.ImprovedVariant != "" {
		t.Errorf("ImprovedVariant = %q, want empty", resp.ImprovedVariant)
	}
}
