package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/portal"
	"github.com/jhoicas/humble-crm/internal/domain"
)

// PortalHandler vista del cliente autenticado.
type PortalHandler struct {
	uc *portal.UseCase
}

// NewPortalHandler construye el handler.
func NewPortalHandler(uc *portal.UseCase) *PortalHandler {
	return &PortalHandler{uc: uc}
}

// Me GET /portal/me — datos, facturas y trabajos del cliente del token.
func (h *PortalHandler) Me(c *fiber.Ctx) error {
	id := GetCustomerID(c)
	if id <= 0 {
		return respondError(c, domain.ErrForbidden)
	}
	out, err := h.uc.Overview(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
