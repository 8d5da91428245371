package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dashboard"
)

// DashboardHandler panel principal.
type DashboardHandler struct {
	uc *dashboard.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *dashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetSummary godoc
// @Summary      Resumen del panel
// @Description  Recordatorios, citas de hoy, clientes inactivos, últimas órdenes y tareas abiertas.
// @Description  Un widget cuya fuente falla queda vacío y se anota en warnings.
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetSummary(c.UserContext()))
}
