package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/serverutils"
	"ai-speechcoach-be/internal/service"
)

type IExerciseController interface {
	RegisterRoutes(r fiber.Router)
	ResolveTheme(ctx *fiber.Ctx) error
	ShadowStart(ctx *fiber.Ctx) error
	ShadowFeedback(ctx *fiber.Ctx) error
	SubstitutionStart(ctx *fiber.Ctx) error
	SubstitutionFeedback(ctx *fiber.Ctx) error
	ExpansionStart(ctx *fiber.Ctx) error
	ExpansionFeedback(ctx *fiber.Ctx) error
	TranscriptFeedback(ctx *fiber.Ctx) error
}

type exerciseController struct {
	themes        service.IThemeService
	shadow        service.IShadowService
	substitution  service.ISubstitutionService
	expansion     service.IExpansionService
	transcription service.IFeedbackService
}

func NewExerciseController(
	themes service.IThemeService,
	shadow service.IShadowService,
	substitution service.ISubstitutionService,
	expansion service.IExpansionService,
	transcription service.IFeedbackService,
) IExerciseController {
	return &exerciseController{
		themes:        themes,
		shadow:        shadow,
		substitution:  substitution,
		expansion:     expansion,
		transcription: transcription,
	}
}

func (c *exerciseController) RegisterRoutes(r fiber.Router) {
	r.Post("/themes", c.ResolveTheme)
	r.Post("/shadow/start", c.ShadowStart)
	r.Post("/shadow/feedback", c.ShadowFeedback)
	r.Post("/substitution/start", c.SubstitutionStart)
	r.Post("/substitution/feedback", c.SubstitutionFeedback)
	r.Post("/expansion/start", c.ExpansionStart)
	r.Post("/expansion/feedback", c.ExpansionFeedback)
	r.Post("/feedback", c.TranscriptFeedback)
}

func (c *exerciseController) ResolveTheme(ctx *fiber.Ctx) error {
	var request dto.ThemeRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.themes.Resolve(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) ShadowStart(ctx *fiber.Ctx) error {
	var request dto.ShadowStartRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.shadow.Start(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) ShadowFeedback(ctx *fiber.Ctx) error {
	var request dto.ShadowFeedbackRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.shadow.Feedback(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) SubstitutionStart(ctx *fiber.Ctx) error {
	var request dto.SubstitutionStartRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.substitution.Start(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) SubstitutionFeedback(ctx *fiber.Ctx) error {
	var request dto.SubstitutionFeedbackRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.substitution.Feedback(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) ExpansionStart(ctx *fiber.Ctx) error {
	var request dto.ExpansionStartRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.expansion.Start(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) ExpansionFeedback(ctx *fiber.Ctx) error {
	var request dto.ExpansionFeedbackRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.expansion.Feedback(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *exerciseController) TranscriptFeedback(ctx *fiber.Ctx) error {
	var request dto.FeedbackRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.transcription.Report(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
