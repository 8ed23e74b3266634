package middleware

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
)

const loggerKey = "logger"

// RequestContext gives every request a context that is cancelled when the
// handler chain returns or the timeout passes, whichever comes first.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		c.SetUserContext(ctx)
		return c.Next()
	}
}

// RequestLogger stores a logger tagged with the request id in c.Locals.
// It must run after the requestid middleware.
func RequestLogger(base *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		l := base
		if id, ok := c.Locals("requestid").(string); ok && id != "" {
			l = base.With("request_id", id)
		}
		c.Locals(loggerKey, l)
		return c.Next()
	}
}

// Logger returns the request logger, or slog.Default outside RequestLogger.
func Logger(c *fiber.Ctx) *slog.Logger {
	if l, ok := c.Locals(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
