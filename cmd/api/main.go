package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	_ "github.com/jhoicas/Logistica-bff/docs"
	"github.com/jhoicas/Logistica-bff/internal/application/assignment"
	"github.com/jhoicas/Logistica-bff/internal/application/cachesync"
	"github.com/jhoicas/Logistica-bff/internal/application/querykey"
	"github.com/jhoicas/Logistica-bff/internal/application/session"
	"github.com/jhoicas/Logistica-bff/internal/application/usecase"
	"github.com/jhoicas/Logistica-bff/internal/domain/repository"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/backend"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/Logistica-bff/internal/infrastructure/pdf"
	"github.com/jhoicas/Logistica-bff/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Logistica-bff/internal/interfaces/http"
	"github.com/jhoicas/Logistica-bff/pkg/config"
	"github.com/jhoicas/Logistica-bff/pkg/logger"
)

// @title                       Logística BFF
// @version                     1.0
// @description                 Asignaciones y visibilidad por rol para el panel de bodegas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
		Tenant:  cfg.App.Tenant,
	})
	log.Info().Str("env", cfg.App.Env).Str("backend", cfg.Backend.BaseURL).Msg("iniciando aplicación")

	// ctx se cancela con SIGINT/SIGTERM; de él cuelgan la suscripción y el apagado.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rdb, err := cache.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer rdb.Close()

	// Bitácora de mutaciones: opcional, solo si hay base de datos configurada.
	var journal repository.MutationJournal
	if cfg.DB.Enabled() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de la bitácora")
		}
		journal = postgres.NewJournalRepository(pool, cfg.App.Tenant)
	} else {
		log.Warn().Msg("sin base de datos: la bitácora de mutaciones queda deshabilitada")
	}

	keys := querykey.NewBuilder(cfg.App.Tenant)
	sync := cachesync.NewSynchronizer(cache.NewQueryCache(rdb), keys, cfg.Cache.TTL, journal, log.Component("cachesync"))

	// Sesión: credenciales en Redis y session-expired por Pub/Sub entre instancias.
	events := cache.NewSessionEvents(rdb, cfg.App.Tenant, log.Component("session-events"))
	sessions := session.NewManager(
		cache.NewSessionStore(rdb, keys, cfg.Session.TTL),
		events,
		session.Config{
			GraceWindow:   cfg.Session.GraceWindow,
			RedirectDelay: cfg.Session.RedirectDelay,
			LoginPath:     cfg.Session.LoginPath,
		},
		log.Component("session"),
	)
	go func() {
		if err := events.Subscribe(ctx, sessions.MarkExpired); err != nil {
			log.Error().Err(err).Msg("suscripción a session-expired finalizada")
		}
	}()

	client := backend.NewClient(cfg.Backend, log.Component("backend"))
	client.OnUnauthorized(func(ctx context.Context, subject, path string) {
		sessions.HandleUnauthorized(ctx, subject, path)
	})

	areaRepo := backend.NewAreaRepository(client)
	userRepo := backend.NewUserRepository(client)
	warehouseRepo := backend.NewWarehouseRepository(client)
	boxRepo := backend.NewBoxRepository(client)

	catalog := usecase.NewCatalog(areaRepo, userRepo, warehouseRepo, sync, log.Component("catalog"))
	assignUC := assignment.NewUseCase(areaRepo, warehouseRepo, sync)

	sessionUC := usecase.NewSessionUseCase(catalog, sessions, sync, log.Component("session"))
	areaUC := usecase.NewAreaUseCase(catalog, areaRepo, assignUC, sync, log.Component("areas"))
	userUC := usecase.NewUserUseCase(
		catalog, userRepo,
		backend.NewAssignmentHistoryRepository(client),
		backend.NewEnablementHistoryRepository(client),
		assignUC, sync, log.Component("users"),
	)
	warehouseUC := usecase.NewWarehouseUseCase(catalog, warehouseRepo, assignUC, sync, log.Component("warehouses"))
	boxUC := usecase.NewBoxUseCase(catalog, boxRepo, sync, log.Component("boxes"))
	auditUC := usecase.NewAuditUseCase(backend.NewAuditLogRepository(client), journal, sync, log.Component("audit"))
	dashboardUC := usecase.NewDashboardUseCase(catalog)

	// PDF: historial de asignaciones y etiquetas QR de cajas
	reportUC := usecase.NewReportUseCase(catalog, userUC, boxUC, infrapdf.NewGenerator(cfg.App.Tenant))

	// Los lotes y los PDF esperan al backend, la escritura no puede cortar antes que él.
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Backend.Timeout + 15*time.Second,
		IdleTimeout:  time.Minute,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// /docs sirve el swagger.json registrado por el paquete docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Logística BFF",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		if err := rdb.Ping(c.UserContext()).Err(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "redis": err.Error()})
		}
		return c.JSON(fiber.Map{"status": "ok", "tenant": cfg.App.Tenant})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SessionUC:   sessionUC,
		AreaUC:      areaUC,
		UserUC:      userUC,
		WarehouseUC: warehouseUC,
		BoxUC:       boxUC,
		AuditUC:     auditUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		Sessions:    sessions,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("fiber dejó de escuchar")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("apagando: se cierran conexiones abiertas")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado de fiber incompleto")
	}
	log.Info().Msg("logistica-bff detenido")
}
