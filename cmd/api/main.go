package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/humble-crm/internal/application/auth"
	"github.com/jhoicas/humble-crm/internal/application/calendar"
	"github.com/jhoicas/humble-crm/internal/application/customers"
	"github.com/jhoicas/humble-crm/internal/application/dashboard"
	"github.com/jhoicas/humble-crm/internal/application/dropship"
	"github.com/jhoicas/humble-crm/internal/application/dto"
	"github.com/jhoicas/humble-crm/internal/application/orders"
	"github.com/jhoicas/humble-crm/internal/application/portal"
	"github.com/jhoicas/humble-crm/internal/application/servicejobs"
	"github.com/jhoicas/humble-crm/internal/application/todo"
	"github.com/jhoicas/humble-crm/internal/application/viewstate"
	"github.com/jhoicas/humble-crm/internal/domain/repository"
	"github.com/jhoicas/humble-crm/internal/infrastructure/backend"
	"github.com/jhoicas/humble-crm/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/humble-crm/internal/infrastructure/pdf"
	"github.com/jhoicas/humble-crm/internal/infrastructure/postgres"
	"github.com/jhoicas/humble-crm/internal/infrastructure/rediscache"
	"github.com/jhoicas/humble-crm/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/humble-crm/internal/interfaces/http"
	"github.com/jhoicas/humble-crm/pkg/config"
	"github.com/jhoicas/humble-crm/pkg/logger"
)

const (
	photoBodyLimit = 25 * 1024 * 1024
	swaggerFile    = "./docs/swagger.json"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Backend REST: fuente de verdad
	client := backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout())
	customerRepo := backend.NewCustomerRepo(client)
	orderRepo := backend.NewOrderRepo(client)
	jobRepo := backend.NewServiceJobRepo(client)
	apptRepo := backend.NewAppointmentRepo(client)
	taskRepo := backend.NewTaskRepo(client)
	dropShipRepo := backend.NewDropShipRepo(client)

	// Estado de vistas: PostgreSQL si hay base configurada, si no en memoria
	var viewRepo repository.ViewStateRepository = memory.NewViewStateRepo()
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, log); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		viewRepo = postgres.NewViewStateRepository(pool)
	} else {
		log.Warn().Msg("sin base de datos: el estado de vistas se pierde al reiniciar")
	}

	// Google Calendar, con caché Redis opcional
	var external repository.ExternalCalendar = backend.NewGoogleCalendar(client)
	if cfg.Redis.URL != "" {
		rdb, err := rediscache.NewClient(ctx, cfg.Redis.URL)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, calendario sin caché")
		} else {
			defer rdb.Close()
			external = rediscache.NewCalendarCache(external, rediscache.NewRedisStore(rdb), cfg.Redis.CalendarTTL(), log)
		}
	}

	exporter := xlsx.NewExporter()
	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.App.ShopName)

	customerUC := customers.NewUseCase(customerRepo, exporter)
	orderUC := orders.NewUseCase(orderRepo, pdfGenerator, exporter)
	jobUC := servicejobs.NewUseCase(jobRepo, customerRepo, customerUC, log)
	calendarUC := calendar.NewUseCase(apptRepo, external, customerRepo, calendar.Config{
		UpcomingDays:  cfg.Calendar.UpcomingDays,
		UpcomingLimit: cfg.Calendar.UpcomingLimit,
	})
	poller := calendar.NewUpcomingPoller(calendarUC, cfg.Calendar.PollInterval(), log)
	go poller.Run(ctx)

	todos := todo.NewStore(taskRepo, log)
	if err := todos.Hydrate(ctx); err != nil {
		log.Warn().Err(err).Msg("tareas vacías hasta el próximo refresco")
	}

	dashboardUC := dashboard.NewUseCase(apptRepo, customerRepo, orderUC, todos, poller, log)
	authUC := auth.NewAuthUseCase(cfg.Admin.PasswordHash, backend.NewPortalAuth(client), auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Admin.PasswordHash == "" {
		log.Warn().Msg("ADMIN_PASSWORD_HASH vacío: login del panel deshabilitado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    photoBodyLimit,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(dto.ErrorResponse{Code: "HTTP_" + strconv.Itoa(code), Message: err.Error()})
		},
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  cfg.HTTP.AllowedOrigins,
		AllowHeaders:  "Origin, Content-Type, Accept, Authorization, " + httpRouter.HeaderRequestID,
		ExposeHeaders: "Content-Disposition, " + httpRouter.HeaderRequestID,
	}))
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.AccessLog(log))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Humble CRM API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		CustomerUC:   customerUC,
		OrderUC:      orderUC,
		ServiceJobUC: jobUC,
		CalendarUC:   calendarUC,
		Upcoming:     poller,
		Todos:        todos,
		DropShipUC:   dropship.NewUseCase(dropShipRepo),
		DashboardUC:  dashboardUC,
		ViewStateUC:  viewstate.NewUseCase(viewRepo, cfg.List.DefaultPageSize),
		PortalUC:     portal.NewUseCase(customerUC, orderUC, jobUC),
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
