package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dropship"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// DropShipHandler tarjetas de órdenes drop-ship.
type DropShipHandler struct {
	uc    *dropship.UseCase
	views *viewstate.UseCase
}

// NewDropShipHandler construye el handler.
func NewDropShipHandler(uc *dropship.UseCase, views *viewstate.UseCase) *DropShipHandler {
	return &DropShipHandler{uc: uc, views: views}
}

// List godoc
// @Summary      Órdenes drop-ship con puntos de estado
// @Tags         drop-ship
// @Produce      json
// @Success      200  {array}  dto.DropShipCard
// @Router       /api/drop-ship [get]
func (h *DropShipHandler) List(c *fiber.Ctx) error {
	expanded, err := h.views.Expanded(c.UserContext(), GetSubject(c), entity.ScreenDropShip)
	if err != nil {
		return respondError(c, err)
	}
	cards, err := h.uc.List(c.UserContext(), expanded)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cards)
}
