package service

import (
	"context"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/pkg/speech"
)

type ISpeechService interface {
	Transcribe(ctx context.Context, filename, contentType string, audio []byte) ([]byte, error)
	Synthesize(ctx context.Context, request *dto.SynthesizeRequest) (*speech.Audio, error)
}

// speechService is boundary glue only: media goes through unmodified in both
// directions and backend errors surface as gateway failures.
type speechService struct {
	asr speech.Transcriber
	tts speech.Synthesizer
}

func NewSpeechService(asr speech.Transcriber, tts speech.Synthesizer) ISpeechService {
	return &speechService{
		asr: asr,
		tts: tts,
	}
}

func (s *speechService) Transcribe(ctx context.Context, filename, contentType string, audio []byte) ([]byte, error) {
	return s.asr.Transcribe(ctx, filename, contentType, audio)
}

func (s *speechService) Synthesize(ctx context.Context, request *dto.SynthesizeRequest) (*speech.Audio, error) {
	// Unset knobs take the synthesis backend's documented defaults.
	if request.LengthScale == 0 {
		request.LengthScale = 1.0
	}
	if request.NoiseScale == 0 {
		request.NoiseScale = 0.667
	}
	if request.NoiseWidth == 0 {
		request.NoiseWidth = 0.8
	}
	if request.Volume == 0 {
		request.Volume = 1.0
	}

	return s.tts.Synthesize(ctx, speech.SynthesisRequest{
		Text:        request.Text,
		Speaker:     request.Speaker,
		LengthScale: request.LengthScale,
		NoiseScale:  request.NoiseScale,
		NoiseWidth:  request.NoiseWidth,
		Volume:      request.Volume,
	})
}
