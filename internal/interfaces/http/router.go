package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/humble-crm/internal/application/auth"
	"github.com/jhoicas/humble-crm/internal/application/calendar"
	"github.com/jhoicas/humble-crm/internal/application/customers"
	"github.com/jhoicas/humble-crm/internal/application/dashboard"
	"github.com/jhoicas/humble-crm/internal/application/dropship"
	"github.com/jhoicas/humble-crm/internal/application/orders"
	"github.com/jhoicas/humble-crm/internal/application/portal"
	"github.com/jhoicas/humble-crm/internal/application/servicejobs"
	"github.com/jhoicas/humble-crm/internal/application/todo"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	CustomerUC   *customers.UseCase
	OrderUC      *orders.UseCase
	ServiceJobUC *servicejobs.UseCase
	CalendarUC   *calendar.UseCase
	Upcoming     *calendar.UpcomingPoller
	Todos        *todo.Store
	DropShipUC   *dropship.UseCase
	DashboardUC  *dashboard.UseCase
	ViewStateUC  *viewstate.UseCase
	PortalUC     *portal.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	authHandler := NewAuthHandler(deps.AuthUC)

	// Portal de clientes
	portalGroup := app.Group("/portal")
	portalGroup.Post("/login", authHandler.PortalLogin)
	portalHandler := NewPortalHandler(deps.PortalUC)
	portalGroup.Get("/me", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleCustomer), portalHandler.Me)

	api := app.Group("/api")

	// Auth (público)
	api.Post("/auth/login", authHandler.AdminLogin)

	// Panel (requiere Bearer Token de admin)
	admin := api.Group("/", AuthMiddleware(deps.JWTSecret), RequireRole(jwt.RoleAdmin))

	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.ViewStateUC)
	customerGroup := admin.Group("/customers")
	customerGroup.Get("/", customerHandler.List)
	customerGroup.Get("/suggest", customerHandler.Suggest)
	customerGroup.Get("/export", customerHandler.Export)
	customerGroup.Post("/find-or-create", customerHandler.FindOrCreate)
	customerGroup.Get("/:id", customerHandler.Get)
	customerGroup.Patch("/:id", customerHandler.Update)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.ViewStateUC)
	orderGroup := admin.Group("/orders")
	orderGroup.Get("/", orderHandler.List)
	orderGroup.Get("/export", orderHandler.Export)
	orderGroup.Get("/:id", orderHandler.Get)
	orderGroup.Get("/:id/pdf", orderHandler.PDF)

	jobHandler := NewServiceJobHandler(deps.ServiceJobUC, deps.ViewStateUC)
	jobs := admin.Group("/service-jobs")
	jobs.Get("/", jobHandler.List)
	jobs.Post("/", jobHandler.Create)
	jobs.Get("/:id", jobHandler.Get)
	jobs.Patch("/:id", jobHandler.Update)
	jobs.Delete("/:id", jobHandler.Delete)
	jobs.Post("/:id/updates", jobHandler.AddUpdate)
	jobs.Delete("/:id/updates/:updateId", jobHandler.DeleteUpdate)
	jobs.Post("/:id/parts", jobHandler.AddPart)
	jobs.Delete("/:id/parts/:partId", jobHandler.DeletePart)
	jobs.Post("/:id/photos", jobHandler.UploadPhoto)
	jobs.Post("/:id/generate-invoice", jobHandler.GenerateInvoice)

	calendarHandler := NewCalendarHandler(deps.CalendarUC, deps.Upcoming)
	admin.Get("/calendar/events", calendarHandler.Events)
	admin.Get("/calendar/upcoming", calendarHandler.Upcoming)
	admin.Delete("/calendar/events/:id", calendarHandler.DeleteEvent)
	admin.Post("/appointments", calendarHandler.CreateAppointment)
	admin.Patch("/appointments/:id", calendarHandler.UpdateAppointment)

	todoHandler := NewTodoHandler(deps.Todos)
	todos := admin.Group("/todos")
	todos.Get("/", todoHandler.List)
	todos.Post("/", todoHandler.Create)
	todos.Put("/:id/toggle", todoHandler.Toggle)
	todos.Delete("/:id", todoHandler.Delete)

	admin.Get("/drop-ship", NewDropShipHandler(deps.DropShipUC, deps.ViewStateUC).List)
	admin.Get("/dashboard", NewDashboardHandler(deps.DashboardUC).GetSummary)

	viewHandler := NewViewStateHandler(deps.ViewStateUC)
	views := admin.Group("/view-state")
	views.Get("/:screen", viewHandler.Get)
	views.Put("/:screen", viewHandler.Save)
	views.Post("/:screen/toggle/:id", viewHandler.Toggle)
}
