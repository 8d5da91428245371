package dto

import "github.com/jhoicas/humble-crm/internal/domain/entity"

// DashboardTile acceso directo del panel principal.
type DashboardTile struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Path  string `json:"path"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard.
// Cada widget es independiente: si su fuente falla queda vacío y se anota en Warnings.
type DashboardSummaryDTO struct {
	Reminders         []string                  `json:"reminders"`
	TodayAppointments []entity.TodayAppointment `json:"today_appointments"`
	InactiveCustomers []entity.InactiveCustomer `json:"inactive_customers"`
	LatestOrders      []entity.LatestOrder      `json:"latest_orders"`
	OpenTasks         int                       `json:"open_tasks"`
	Upcoming          []entity.CalendarEvent    `json:"upcoming"`
	Tiles             []DashboardTile           `json:"tiles"`
	Warnings          []string                  `json:"warnings,omitempty"`
}

// DropShipCard tarjeta de una orden drop-ship con sus puntos de estado.
type DropShipCard struct {
	entity.DropShipOrder
	Dots     []string `json:"dots"`
	Overflow int      `json:"overflow"`
	Expanded bool     `json:"expanded"`
}

// TaskListResponse tareas separadas en activas y completadas.
type TaskListResponse struct {
	Active    []entity.Task `json:"active"`
	Completed []entity.Task `json:"completed"`
}

// CreateTaskRequest POST /api/todos.
type CreateTaskRequest struct {
	Text string `json:"text" validate:"required,max=500"`
}
