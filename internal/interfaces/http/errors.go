package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain"
)

// requestError error de la petición detectado en el handler (cuerpo, query o path).
type requestError struct {
	code    string
	message string
}

func (e *requestError) Error() string { return e.message }

func invalidBody() error { return &requestError{code: "INVALID_BODY", message: "cuerpo inválido"} }

func invalidParam(message string) error {
	return &requestError{code: "VALIDATION", message: message}
}

// statusFor traduce un error de dominio a status HTTP y código.
func statusFor(err error) (int, string) {
	var re *requestError
	switch {
	case errors.As(err, &re):
		return fiber.StatusBadRequest, re.code
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrBackendUnavailable):
		return fiber.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"
	case errors.Is(err, domain.ErrUpstream):
		return fiber.StatusBadGateway, "BACKEND_ERROR"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// respondError escribe el ErrorResponse y registra el fallo.
// Lecturas fallidas van a Warn; mutaciones fallidas a Error. Los 4xx quedan en Debug.
func respondError(c *fiber.Ctx, err error) error {
	status, code := statusFor(err)

	log := RequestLogger(c)
	ev := log.Debug()
	if status >= fiber.StatusInternalServerError {
		if c.Method() == fiber.MethodGet {
			ev = log.Warn()
		} else {
			ev = log.Error()
		}
	}
	ev.Err(err).Str("code", code).Int("status", status).Msg("petición fallida")

	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}
