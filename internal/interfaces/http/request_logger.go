package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/stock-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// RequestLogger registra cada petición con zerolog y alimenta las métricas (si m != nil).
// Las respuestas 5xx se loguean en nivel error junto con el error original.
func RequestLogger(log *logger.Logger, m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()
		if chainErr != nil {
			// Deja que el ErrorHandler de fiber fije el status antes de leerlo.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		elapsed := time.Since(start)
		status := c.Response().StatusCode()
		route := c.Route().Path

		if m != nil {
			m.ObserveRequest(c.Method(), route, status, elapsed)
			if code, ok := c.Locals(LocalErrorCode).(string); ok && code != "" {
				m.ObserveFailure(code)
			}
		}

		event := log.Info()
		if status >= fiber.StatusInternalServerError {
			event = log.Error()
			if err, ok := c.Locals(LocalError).(error); ok {
				event = event.Err(err)
			} else if chainErr != nil {
				event = event.Err(chainErr)
			}
		} else if status >= fiber.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("request_id", c.GetRespHeader(fiber.HeaderXRequestID)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("user_id", GetUserID(c)).
			Msg("http request")
		return nil
	}
}

// RequestID asigna X-Request-ID a cada respuesta.
func RequestID() fiber.Handler {
	return requestid.New()
}
