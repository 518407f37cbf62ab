package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Offers-api/pkg/logger"
)

// RequestLogger escribe una línea por petición. El nivel depende del status:
// 5xx error, 4xx warn, resto info. user_id se lee después de c.Next(), cuando
// AuthMiddleware ya lo dejó en Locals.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}

		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error()
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev = ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start))
		if uid := GetUserID(c); uid != "" {
			ev = ev.Str("user_id", uid)
		}
		if err != nil {
			ev = ev.Err(err)
		}
		ev.Msg("request")
		return err
	}
}
