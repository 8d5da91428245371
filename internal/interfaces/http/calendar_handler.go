package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/calendar"
	"github.com/jhoicas/humble-crm/internal/application/dto"
)

// CalendarHandler calendario unificado y citas del CRM.
type CalendarHandler struct {
	uc     *calendar.UseCase
	poller *calendar.UpcomingPoller
}

// NewCalendarHandler construye el handler. poller puede ser nil: se consulta en cada petición.
func NewCalendarHandler(uc *calendar.UseCase, poller *calendar.UpcomingPoller) *CalendarHandler {
	return &CalendarHandler{uc: uc, poller: poller}
}

// Events godoc
// @Summary      Eventos de citas y Google Calendar
// @Tags         calendar
// @Produce      json
// @Success      200  {object}  dto.CalendarEventsResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/calendar/events [get]
func (h *CalendarHandler) Events(c *fiber.Ctx) error {
	out, err := h.uc.Events(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Upcoming GET /api/calendar/upcoming
func (h *CalendarHandler) Upcoming(c *fiber.Ctx) error {
	get := h.uc.Upcoming
	if h.poller != nil {
		get = h.poller.Upcoming
	}
	events, err := get(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(orEmpty(events))
}

// CreateAppointment godoc
// @Summary      Crear cita
// @Tags         calendar
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAppointmentRequest  true  "tipo, inicio y cliente opcional"
// @Success      201   {object}  entity.Appointment
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/appointments [post]
func (h *CalendarHandler) CreateAppointment(c *fiber.Ctx) error {
	var in dto.CreateAppointmentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	a, err := h.uc.CreateAppointment(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	h.refresh(c)
	return c.Status(fiber.StatusCreated).JSON(a)
}

// UpdateAppointment PATCH /api/appointments/:id
func (h *CalendarHandler) UpdateAppointment(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateAppointmentRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	a, err := h.uc.UpdateAppointment(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	h.refresh(c)
	return c.JSON(a)
}

// DeleteEvent DELETE /api/calendar/events/:id — solo citas del CRM ("appt-12").
func (h *CalendarHandler) DeleteEvent(c *fiber.Ctx) error {
	if err := h.uc.DeleteEvent(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	h.refresh(c)
	return c.SendStatus(fiber.StatusNoContent)
}

// refresh adelanta el siguiente tick del poller tras una escritura.
func (h *CalendarHandler) refresh(c *fiber.Ctx) {
	if h.poller == nil {
		return
	}
	if err := h.poller.Refresh(c.UserContext()); err != nil {
		RequestLogger(c).Debug().Err(err).Msg("refresco de próximas citas pospuesto")
	}
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
