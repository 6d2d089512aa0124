package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"ai-speechcoach-be/internal/pkg/apperrors"
)

// ErrorHandlerMiddleware maps service errors to HTTP responses in one place
// so controllers can simply return them.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Code, fiberErr.Message))
		}

		status := apperrors.HTTPStatus(err)
		return ctx.Status(status).JSON(ErrorResponse(status, err.Error()))
	}
}
