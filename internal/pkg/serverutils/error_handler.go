package serverutils

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandlerMiddleware recovers from handler panics so a bad request
// cannot take the server down, and normalizes fiber errors into the
// APIError envelope.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[PANIC] %s %s: %v", ctx.Method(), ctx.Path(), r)
				_ = ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, "Internal server error"))
			}
		}()

		err := ctx.Next()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				return ctx.Status(fe.Code).JSON(ErrorResponse(fe.Code, fe.Message))
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(500, err.Error()))
		}
		return nil
	}
}
