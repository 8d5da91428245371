package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/orders"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// OrderHandler maneja las peticiones HTTP de órdenes.
type OrderHandler struct {
	uc    *orders.UseCase
	views *viewstate.UseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(uc *orders.UseCase, views *viewstate.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc, views: views}
}

// List godoc
// @Summary      Listar órdenes (sin INCOMPLETE)
// @Tags         orders
// @Produce      json
// @Param        q          query  string  false  "búsqueda"
// @Param        page       query  int     false  "página"
// @Param        page_size  query  int     false  "20, 50 o 100"
// @Param        sort       query  string  false  "date, customer, total, status"
// @Param        order      query  string  false  "asc o desc"
// @Success      200  {object}  dto.ListResponse[dto.OrderRow]
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	state, expanded, err := listState(c, h.views, entity.ScreenOrders, orders.Spec.Sortable)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.uc.List(c.UserContext(), state.Query())
	if err != nil {
		return respondError(c, err)
	}
	state = remember(c, h.views, entity.ScreenOrders, state, page.TotalPages)
	return c.JSON(dto.NewListResponse(page, state, expanded))
}

// Export GET /api/orders/export
func (h *OrderHandler) Export(c *fiber.Ctx) error {
	state, _, err := listState(c, h.views, entity.ScreenOrders, orders.Spec.Sortable)
	if err != nil {
		return respondError(c, err)
	}
	file, err := h.uc.Export(c.UserContext(), state.Query())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Attachment("orders.xlsx")
	return c.Send(file)
}

// Get GET /api/orders/:id — detalle con checklist.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	detail, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// PDF GET /api/orders/:id/pdf
func (h *OrderHandler) PDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	file, name, err := h.uc.PDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Attachment(name)
	return c.Send(file)
}
