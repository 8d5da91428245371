package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/humble-crm/pkg/logger"
)

const (
	// HeaderRequestID cabecera de correlación.
	HeaderRequestID = "X-Request-ID"

	localRequestID = "request_id"
	localLogger    = "logger"
)

// RequestID reutiliza el X-Request-ID entrante o genera uno nuevo.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(HeaderRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		c.Locals(localRequestID, id)
		c.Set(HeaderRequestID, id)
		return c.Next()
	}
}

// AccessLog registra cada petición con método, ruta, status, latencia y request id.
// Deja en Locals un sublogger con el request id para los handlers.
func AccessLog(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	base := log.Component("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals(localRequestID).(string)
		reqLog := base.With("request_id", reqID)
		c.Locals(localLogger, reqLog)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de fiber fije el status antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := reqLog.Info()
		if status >= fiber.StatusInternalServerError {
			ev = reqLog.Error()
		}
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("request")
		return nil
	}
}

// RequestLogger logger de la petición; Nop si AccessLog no está montado.
func RequestLogger(c *fiber.Ctx) *logger.Logger {
	if l, ok := c.Locals(localLogger).(*logger.Logger); ok {
		return l
	}
	return logger.Nop()
}
