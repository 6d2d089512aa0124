package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/serverutils"
	"ai-speechcoach-be/internal/service"
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	Chat(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	r.Post("/chat", c.Chat)
}

func (c *chatController) Chat(ctx *fiber.Ctx) error {
	var request dto.ChatRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.service.Chat(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
