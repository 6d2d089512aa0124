package controller

import (
	"github.com/gofiber/fiber/v2"

	"ai-speechcoach-be/internal/dto"
	"ai-speechcoach-be/internal/pkg/apperrors"
	"ai-speechcoach-be/internal/pkg/serverutils"
	"ai-speechcoach-be/internal/service"
)

type IReviewController interface {
	RegisterRoutes(r fiber.Router)
	Start(ctx *fiber.Ctx) error
	Turn(ctx *fiber.Ctx) error
}

type reviewController struct {
	service service.IReviewService
}

func NewReviewController(service service.IReviewService) IReviewController {
	return &reviewController{service: service}
}

func (c *reviewController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/review")
	h.Post("/start", c.Start)
	h.Post("/turn", c.Turn)
}

func (c *reviewController) Start(ctx *fiber.Ctx) error {
	var request dto.ReviewStartRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.service.Start(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}

func (c *reviewController) Turn(ctx *fiber.Ctx) error {
	var request dto.ReviewTurnRequest
	if err := ctx.BodyParser(&request); err != nil {
		return apperrors.Validation("invalid request body")
	}
	if request.Attempt == 0 {
		request.Attempt = 1
	}
	if err := serverutils.ValidateStruct(&request); err != nil {
		return err
	}

	res, err := c.service.Turn(ctx.Context(), &request)
	if err != nil {
		return err
	}
	return ctx.JSON(res)
}
