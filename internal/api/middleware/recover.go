package middleware

import (
	"log/slog"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"

	"github.com/saturnino-fabrica-de-software/acquaint/internal/domain"
)

// Recover turns a panic in a later handler into a logged 500 INTERNAL_ERROR
func Recover(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			r := recover()
			if r == nil {
				return
			}

			attrs := []any{
				slog.Any("panic", r),
				slog.String("path", c.Path()),
				slog.String("method", c.Method()),
				slog.String("stack", string(debug.Stack())),
			}
			if id, ok := c.Locals("requestid").(string); ok {
				attrs = append(attrs, slog.String("request_id", id))
			}
			logger.Error("panic recovered", attrs...)

			_ = c.Status(domain.ErrInternal.StatusCode).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    domain.ErrInternal.Code,
					"message": domain.ErrInternal.Message,
				},
			})
		}()
		return c.Next()
	}
}
