package controller

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/serverutils"
	"ai-speechcoach-be/internal/service"
)

type ISpeechController interface {
	RegisterRoutes(r fiber.Router)
	Transcribe(ctx *fiber.Ctx) error
	Synthesize(ctx *fiber.Ctx) error
}

type speechController struct {
	service service.ISpeechService
}

func NewSpeechController(service service.ISpeechService) ISpeechController {
	return &speechController{service: service}
}

func (c *speechController) RegisterRoutes(r fiber.Router) {
	r.Post("/transcribe", c.Transcribe)
	r.Post("/synthesize", c.Synthesize)
}

// Transcribe forwards the uploaded audio to the recognition backend and
// returns its JSON untouched.
func (c *speechController) Transcribe(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("audio")
	if err != nil {
		return apperrors.Validation("audio file is required")
	}
	if fileHeader.Filename == "" {
		return apperrors.Validation("audio file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return apperrors.Validation("audio file could not be read")
	}
	defer file.Close()

	audio, err := io.ReadAll(file)
	if err != nil {
		return apperrors.Validation("audio file could not be read")
	}

	report, err := c.service.Transcribe(ctx.Context(), fileHeader.Filename, fileHeader.Header.Get("Content-Type"), audio)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return ctx.Send(report)
}

// Synthesize forwards the synthesis request and streams the audio bytes
// back with the backend's content type.
func (c *speechController) Synthesize(ctx *fiber.Ctx) error {
	var request dto.SynthesizeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	audio, err := c.service.Synthesize(ctx.Context(), &request)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, audio.ContentType)
	return ctx.Send(audio.Data)
}
