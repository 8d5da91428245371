// Package dashboard arma el panel principal: recordatorios, citas de hoy, clientes
// inactivos, últimas órdenes, tareas abiertas y próximas citas.
package dashboard

import (
	"context"
	"fmt"

	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/domain/entity"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/pkg/logger"
)

const (
	inactiveDays = 14 // días sin contacto para considerar inactivo a un cliente
	latestOrders = 5  // órdenes en el widget de últimas órdenes
)

// Tiles accesos directos del panel, en orden de aparición.
var Tiles = []dto.DashboardTile{
	{Key: "customers", Label: "Customers", Path: "/customers"},
	{Key: "orders", Label: "Orders", Path: "/orders"},
	{Key: "todo", Label: "To-Do", Path: "/todo"},
	{Key: "calendar", Label: "Calendar", Path: "/calendar"},
	{Key: "service", Label: "Service", Path: "/service-jobs"},
	{Key: "drop_ship", Label: "Drop Ship", Path: "/drop-ship"},
}

// LatestOrders fuente de las últimas órdenes.
type LatestOrders interface {
	Latest(ctx context.Context, limit int) ([]entity.LatestOrder, error)
}

// OpenTasks fuente del contador de tareas abiertas (el store en memoria).
type OpenTasks interface {
	OpenCount() int
}

// Upcoming fuente de próximas citas.
type Upcoming interface {
	Upcoming(ctx context.Context) ([]entity.CalendarEvent, error)
}

// UseCase genera el resumen del panel.
//
// Cada widget consulta su propia fuente; un widget que falla queda vacío y se
// informa en Warnings sin afectar a los demás.
type UseCase struct {
	appts     repository.AppointmentRepository
	customers repository.CustomerRepository
	orders    LatestOrders
	tasks     OpenTasks
	upcoming  Upcoming
	log       *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	appts repository.AppointmentRepository,
	customers repository.CustomerRepository,
	orders LatestOrders,
	tasks OpenTasks,
	upcoming Upcoming,
	log *logger.Logger,
) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		appts:     appts,
		customers: customers,
		orders:    orders,
		tasks:     tasks,
		upcoming:  upcoming,
		log:       log.Component("dashboard"),
	}
}

// GetSummary construye el DashboardSummaryDTO.
//
// Cinco llamadas en paralelo:
//  1. Reminders  → Reminders
//  2. Today      → TodayAppointments
//  3. Inactive   → InactiveCustomers (14 días)
//  4. Latest     → LatestOrders (5)
//  5. Upcoming   → Upcoming
//
// El contador de tareas sale del store local, sin E/S.
func (uc *UseCase) GetSummary(ctx context.Context) *dto.DashboardSummaryDTO {
	// ── Goroutines para paralelizar las consultas al backend ──────────────────
	type remindersResult struct {
		items []string
		err   error
	}
	type todayResult struct {
		items []entity.TodayAppointment
		err   error
	}
	type inactiveResult struct {
		items []entity.InactiveCustomer
		err   error
	}
	type latestResult struct {
		items []entity.LatestOrder
		err   error
	}
	type upcomingResult struct {
		items []entity.CalendarEvent
		err   error
	}

	remindersCh := make(chan remindersResult, 1)
	todayCh := make(chan todayResult, 1)
	inactiveCh := make(chan inactiveResult, 1)
	latestCh := make(chan latestResult, 1)
	upcomingCh := make(chan upcomingResult, 1)

	go func() {
		items, err := uc.appts.Reminders(ctx)
		remindersCh <- remindersResult{items, err}
	}()
	go func() {
		items, err := uc.appts.Today(ctx)
		todayCh <- todayResult{items, err}
	}()
	go func() {
		items, err := uc.customers.Inactive(ctx, inactiveDays)
		inactiveCh <- inactiveResult{items, err}
	}()
	go func() {
		items, err := uc.orders.Latest(ctx, latestOrders)
		latestCh <- latestResult{items, err}
	}()
	go func() {
		if uc.upcoming == nil {
			upcomingCh <- upcomingResult{}
			return
		}
		items, err := uc.upcoming.Upcoming(ctx)
		upcomingCh <- upcomingResult{items, err}
	}()

	reminders := <-remindersCh
	today := <-todayCh
	inactive := <-inactiveCh
	latest := <-latestCh
	upcoming := <-upcomingCh

	// ── Construir DTO ──────────────────────────────────────────────────────────
	out := &dto.DashboardSummaryDTO{
		Reminders:         orEmpty(reminders.items),
		TodayAppointments: orEmpty(today.items),
		InactiveCustomers: orEmpty(inactive.items),
		LatestOrders:      orEmpty(latest.items),
		Upcoming:          orEmpty(upcoming.items),
		Tiles:             Tiles,
	}
	if uc.tasks != nil {
		out.OpenTasks = uc.tasks.OpenCount()
	}

	uc.degrade(out, "reminders", reminders.err)
	uc.degrade(out, "today_appointments", today.err)
	uc.degrade(out, "inactive_customers", inactive.err)
	uc.degrade(out, "latest_orders", latest.err)
	uc.degrade(out, "upcoming", upcoming.err)
	return out
}

func (uc *UseCase) degrade(out *dto.DashboardSummaryDTO, widget string, err error) {
	if err == nil {
		return
	}
	uc.log.Warn().Err(err).Str("widget", widget).Msg("widget del dashboard sin datos")
	out.Warnings = append(out.Warnings, fmt.Sprintf("%s: %v", widget, err))
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
