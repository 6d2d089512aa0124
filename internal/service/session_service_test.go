package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/repository/memory"
)

func newSessionService(local *stubProvider) ISessionService {
	repo := memory.NewSessionRepository(time.Hour)
	return NewSessionService(repo, local, nopLogger{})
}

func TestSessionLifecycle(t *testing.T) {
	local := &stubProvider{script: []string{"reply one", "reply two", "reply three"}}
	svc := newSessionService(local)

	created, err := svc.Create(context.Background(), &dto.SessionCreateRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Mode != "fluency" {
		t.Errorf("default mode = %q, want fluency", created.Mode)
	}

	for i := 1; i <= 3; i++ {
		resp, err := svc.Chat(context.Background(), created.SessionID, &dto.SessionChatRequest{
			Prompt: "tell me something",
		})
		if err != nil {
			t.Fatalf("Chat %d: %v", i, err)
		}
		if resp.Turns != i {
			t.Errorf("turn count after chat %d = %d", i, resp.Turns)
		}
	}

	info, err := svc.Get(context.Background(), created.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if info.Turns != 3 {
		t.Errorf("Turns = %d, want 3", info.Turns)
	}
}

func TestSessionSetModePreservesTurns(t *testing.T) {
	local := &stubProvider{script: []string{"ok"}}
	svc := newSessionService(local)

	created, _ := svc.Create(context.Background(), &dto.SessionCreateRequest{UserID: "u1"})
	if _, err := svc.Chat(context.Background(), created.SessionID, &dto.SessionChatRequest{Prompt: "hi"}); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	info, err := svc.SetMode(context.Background(), created.SessionID, &dto.SessionUpdateRequest{Mode: "review"})
	if err != nil {
		t.Fatalf("SetMode: %v", err)
	}
	if info.Mode != "review" {
		t.Errorf("Mode = %q, want review", info.Mode)
	}
	if info.Turns != 1 {
		t.Errorf("Turns = %d, want 1 (mode switch must not drop history)", info.Turns)
	}
}

func TestSessionChatComposesModeInstruction(t *testing.T) {
	local := &stubProvider{script: []string{"ok"}}
	svc := newSessionService(local)

	created, _ := svc.Create(context.Background(), &dto.SessionCreateRequest{UserID: "u1", Mode: "review"})
	if _, err := svc.Chat(context.Background(), created.SessionID, &dto.SessionChatRequest{Prompt: "my answer"}); err != nil {
		t.Fatalf("Chat: %v", err)
	}

	prompt := local.prompts[0]
	if !strings.Contains(prompt, "User: my answer") {
		t.Errorf("composed prompt missing user line:\n%s", prompt)
	}
	if !strings.Contains(strings.ToLower(prompt), "reviewer") {
		t.Errorf("review mode instruction missing from prompt:\n%s", prompt)
	}
}

func TestSessionNotFound(t *testing.T) {
	svc := newSessionService(&stubProvider{})

	if _, err := svc.Get(context.Background(), "missing"); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("Get kind = %v, want not found", apperrors.KindOf(err))
	}
	if _, err := svc.SetMode(context.Background(), "missing", &dto.SessionUpdateRequest{Mode: "review"}); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("SetMode kind = %v, want not found", apperrors.KindOf(err))
	}
	if _, err := svc.Chat(context.Background(), "missing", &dto.SessionChatRequest{Prompt: "hi"}); apperrors.KindOf(err) != apperrors.KindNotFound {
		t.Errorf("Chat kind = %v, want not found", apperrors.KindOf(err))
	}
}

func TestSessionChatBackendFailureRecordsNothing(t *testing.T) {
	local := &stubProvider{err: errors.New("connection refused")}
	repo := memory.NewSessionRepository(time.Hour)
	svc := NewSessionService(repo, local, nopLogger{})

	created, _ := svc.Create(context.Background(), &dto.SessionCreateRequest{UserID: "u1"})
	if _, err := svc.Chat(context.Background(), created.SessionID, &dto.SessionChatRequest{Prompt: "hi"}); err == nil {
		t.Fatal("want error when the backend fails")
	}

	info, err := svc.Get(context.Background(), created.SessionID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if info.Turns != 0 {
		t.Errorf("Turns = %d after failed chat, want 0", info.Turns)
	}
}

func TestSessionChatSamplingOptions(t *testing.T) {
	local := &stubProvider{script: []string{"ok"}}
	svc := newSessionService(local)

	temp := 0.9
	topP := 0.5
	created, _ := svc.Create(context.Background(), &dto.SessionCreateRequest{UserID: "u1"})
	_, err := svc.Chat(context.Background(), created.SessionID, &dto.SessionChatRequest{
		Prompt:  "hi",
		Options: dto.SamplingOptions{Temperature: &temp, TopP: &topP},
	})
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}

	if got := local.opts[0].Temperature; got != 0.9 {
		t.Errorf("temperature = %v, want 0.9", got)
	}
	if got := local.opts[0].TopP; got != 0.5 {
		t.Errorf("topP = %v, want 0.5", got)
	}
}
