package service

import (
	"context"
	"testing"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/pkg/speech"
)

type captureSynthesizer struct {
	got speech.SynthesisRequest
}

func (c *captureSynthesizer) Synthesize(ctx context.Context, req speech.SynthesisRequest) (*speech.Audio, error) {
	c.got = req
	return &speech.Audio{Data: []byte("x"), ContentType: "audio/wav"}, nil
}

type nopTranscriber struct{}

func (nopTranscriber) Transcribe(ctx context.Context, filename, contentType string, audio []byte) ([]byte, error) {
	return []byte(`{}`), nil
}

func TestSynthesizeAppliesBackendDefaults(t *testing.T) {
	tts := &captureSynthesizer{}
	svc := NewSpeechService(nopTranscriber{}, tts)

	_, err := svc.Synthesize(context.Background(), &dto.SynthesizeRequest{Text: "hello"})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if tts.got.LengthScale != 1.0 {
		t.Errorf("LengthScale = %v, want 1.0", tts.got.LengthScale)
	}
	if tts.got.NoiseScale != 0.667 {
		t.Errorf("NoiseScale = %v, want 0.667", tts.got.NoiseScale)
	}
	if tts.got.NoiseWidth != 0.8 {
		t.Errorf("NoiseWidth = %v, want 0.8", tts.got.NoiseWidth)
	}
	if tts.got.Volume != 1.0 {
		t.Errorf("Volume = %v, want 1.0", tts.got.Volume)
	}
}

func TestSynthesizeKeepsExplicitKnobs(t *testing.T) {
	tts := &captureSynthesizer{}
	svc := NewSpeechService(nopTranscriber{}, tts)

	_, err := svc.Synthesize(context.Background(), &dto.SynthesizeRequest{
		Text:        "hello",
		Speaker:     3,
		LengthScale: 1.4,
		NoiseScale:  0.2,
		NoiseWidth:  0.5,
		Volume:      0.7,
	})
	if err != nil {
		t.Fatalf("Synthesize: %v", err)
	}

	if tts.got.Speaker != 3 || tts.got.LengthScale != 1.4 || tts.got.NoiseScale != 0.2 ||
		tts.got.NoiseWidth != 0.5 || tts.got.Volume != 0.7 {
		t.Errorf("forwarded request = %+v", tts.got)
	}
}
