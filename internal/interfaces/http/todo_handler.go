package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/todo"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
)

// TodoHandler lista de pendientes del taller.
type TodoHandler struct {
	store *todo.Store
}

// NewTodoHandler construye el handler.
func NewTodoHandler(store *todo.Store) *TodoHandler {
	return &TodoHandler{store: store}
}

// List godoc
// @Summary      Tareas activas y completadas
// @Tags         todos
// @Produce      json
// @Success      200  {object}  dto.TaskListResponse
// @Router       /api/todos [get]
func (h *TodoHandler) List(c *fiber.Ctx) error {
	// si el backend no responde se sirve la última lista cargada
	if err := h.store.Hydrate(c.UserContext()); err != nil {
		RequestLogger(c).Warn().Err(err).Msg("tareas servidas desde memoria")
	}
	return c.JSON(h.response(nil))
}

// Create POST /api/todos
func (h *TodoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := bind(c, &in); err != nil {
		return respondError(c, err)
	}
	tasks, err := h.store.Add(c.UserContext(), in.Text)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(h.response(tasks))
}

// Toggle PUT /api/todos/:id/toggle
func (h *TodoHandler) Toggle(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tasks, err := h.store.Toggle(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.response(tasks))
}

// Delete DELETE /api/todos/:id
func (h *TodoHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	tasks, err := h.store.Delete(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.response(tasks))
}

func (h *TodoHandler) response(tasks []entity.Task) dto.TaskListResponse {
	if tasks == nil {
		return dto.TaskListResponse{Active: h.store.Active(), Completed: h.store.Completed()}
	}
	out := dto.TaskListResponse{Active: []entity.Task{}, Completed: []entity.Task{}}
	for _, t := range tasks {
		if t.Done {
			out.Completed = append(out.Completed, t)
		} else {
			out.Active = append(out.Active, t)
		}
	}
	return out
}
