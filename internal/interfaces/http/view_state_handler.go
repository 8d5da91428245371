package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain"
	"github.com/jhoicas/humble-crm/internal/domain/listing"
)

// ViewStateHandler estado de vista por pantalla del usuario autenticado.
type ViewStateHandler struct {
	uc *viewstate.UseCase
}

// NewViewStateHandler construye el handler.
func NewViewStateHandler(uc *viewstate.UseCase) *ViewStateHandler {
	return &ViewStateHandler{uc: uc}
}

// ViewStateResponse estado del listado y filas abiertas.
type ViewStateResponse struct {
	Screen   string        `json:"screen"`
	State    listing.State `json:"state"`
	Expanded []string      `json:"expanded"`
}

// Get GET /api/view-state/:screen
func (h *ViewStateHandler) Get(c *fiber.Ctx) error {
	screen, err := screenParam(c)
	if err != nil {
		return respondError(c, err)
	}
	owner := GetSubject(c)
	state, err := h.uc.ListState(c.UserContext(), owner, screen)
	if err != nil {
		return respondError(c, err)
	}
	expanded, err := h.uc.Expanded(c.UserContext(), owner, screen)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(ViewStateResponse{Screen: screen, State: state, Expanded: orEmpty(expanded)})
}

// Save godoc
// @Summary      Guardar estado del listado
// @Tags         view-state
// @Accept       json
// @Produce      json
// @Param        screen  path  string                    true  "customers, orders, service_jobs, drop_ship"
// @Param        body    body  dto.SaveListStateRequest  true  "búsqueda, página, tamaño y orden"
// @Success      200  {object}  listing.State
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/view-state/{screen} [put]
func (h *ViewStateHandler) Save(c *fiber.Ctx) error {
	screen, err := screenParam(c)
	if err != nil {
		return respondError(c, err)
	}
	var in dto.SaveListStateRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	state, err := h.uc.SaveListState(c.UserContext(), GetSubject(c), screen, listing.State{
		Search:    in.Search,
		Page:      in.Page,
		PageSize:  in.PageSize,
		SortField: in.SortField,
		SortDesc:  in.SortDesc,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(state)
}

// Toggle POST /api/view-state/:screen/toggle/:id
func (h *ViewStateHandler) Toggle(c *fiber.Ctx) error {
	screen, err := screenParam(c)
	if err != nil {
		return respondError(c, err)
	}
	id := c.Params("id")
	open, err := h.uc.Toggle(c.UserContext(), GetSubject(c), screen, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToggleResponse{ID: id, Expanded: open})
}

func screenParam(c *fiber.Ctx) (string, error) {
	screen := c.Params("screen")
	if !viewstate.IsKnownScreen(screen) {
		return "", domain.ErrNotFound
	}
	return screen, nil
}
