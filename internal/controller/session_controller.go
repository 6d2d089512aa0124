package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/serverutils"
	"ai-speechcoach-be/internal/service"
)

type ISessionController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	Get(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Chat(ctx *fiber.Ctx) error
}

type sessionController struct {
	service service.ISessionService
}

func NewSessionController(service service.ISessionService) ISessionController {
	return &sessionController{service: service}
}

func (c *sessionController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/sessions")
	h.Post("/", c.Create)
	h.Get("/:id", c.Get)
	h.Patch("/:id", c.Update)
	h.Post("/:id/chat", c.Chat)
}

func (c *sessionController) Create(ctx *fiber.Ctx) error {
	var request dto.SessionCreateRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Get(ctx *fiber.Ctx) error {
	res, err := c.service.Get(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Update(ctx *fiber.Ctx) error {
	var request dto.SessionUpdateRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.service.SetMode(ctx.Context(), ctx.Params("id"), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *sessionController) Chat(ctx *fiber.Ctx) error {
	var request dto.SessionChatRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.Context(), ctx.Params("id"), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
