package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/customers"
	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

const mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// CustomerHandler maneja las peticiones HTTP de clientes.
type CustomerHandler struct {
	uc    *customers.UseCase
	views *viewstate.UseCase
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *customers.UseCase, views *viewstate.UseCase) *CustomerHandler {
	return &CustomerHandler{uc: uc, views: views}
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Produce      json
// @Param        q            query  string  false  "búsqueda"
// @Param        page         query  int     false  "página"
// @Param        page_size    query  int     false  "20, 50 o 100"
// @Param        sort         query  string  false  "name, email, source, orders"
// @Param        order        query  string  false  "asc o desc"
// @Param        with_orders  query  bool    false  "solo clientes con órdenes"
// @Success      200  {object}  dto.ListResponse[dto.CustomerRow]
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	state, expanded, err := listState(c, h.views, entity.ScreenCustomers, customers.Spec.Sortable)
	if err != nil {
		return respondError(c, err)
	}
	page, err := h.uc.List(c.UserContext(), customers.Query{
		Query:          state.Query(),
		WithOrdersOnly: parseBoolQuery(c, "with_orders"),
	})
	if err != nil {
		return respondError(c, err)
	}
	state = remember(c, h.views, entity.ScreenCustomers, state, page.TotalPages)
	return c.JSON(dto.NewListResponse(page, state, expanded))
}

// Suggest GET /api/customers/suggest?q=ana
func (h *CustomerHandler) Suggest(c *fiber.Ctx) error {
	out, err := h.uc.Suggest(c.UserContext(), c.Query("q"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export GET /api/customers/export — XLSX con todas las filas filtradas y ordenadas.
func (h *CustomerHandler) Export(c *fiber.Ctx) error {
	state, _, err := listState(c, h.views, entity.ScreenCustomers, customers.Spec.Sortable)
	if err != nil {
		return respondError(c, err)
	}
	file, err := h.uc.Export(c.UserContext(), customers.Query{
		Query:          state.Query(),
		WithOrdersOnly: parseBoolQuery(c, "with_orders"),
	})
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, mimeXLSX)
	c.Attachment("customers.xlsx")
	return c.Send(file)
}

// Get GET /api/customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	customer, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}

// FindOrCreate POST /api/customers/find-or-create
func (h *CustomerHandler) FindOrCreate(c *fiber.Ctx) error {
	var in dto.FindOrCreateCustomerRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	customer, created, err := h.uc.FindOrCreate(c.UserContext(), in.Name, in.Email, in.Phone)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(dto.FindOrCreateCustomerResponse{Customer: *customer, Created: created})
}

// Update PATCH /api/customers/:id — notas y vehículo.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.UpdateCustomerRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	customer, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(customer)
}
