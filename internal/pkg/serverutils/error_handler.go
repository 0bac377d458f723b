package serverutils

import (
	"github.com/gofiber/fiber/v2"

	"study-assistant-be/internal/apperror"
)

// ErrorHandlerMiddleware converts service errors into the JSON error
// envelope. Typed apperror values keep their code; anything else is an
// internal error with the detail hidden from the client.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		if fiberErr, ok := err.(*fiber.Error); ok {
			return ctx.Status(fiberErr.Code).JSON(
				ErrorResponse(string(apperror.CodeInternal), fiberErr.Message),
			)
		}

		status := apperror.HTTPStatus(err)
		code := apperror.CodeOf(err)
		message := err.Error()
		if code == apperror.CodeInternal || code == apperror.CodeStore {
			message = "Internal server error."
		}

		return ctx.Status(status).JSON(ErrorResponse(string(code), message))
	}
}
