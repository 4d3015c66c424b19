package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appalert "github.com/jhoicas/stocksync-api/internal/application/alert"
	appsync "github.com/jhoicas/stocksync-api/internal/application/sync"
	"github.com/jhoicas/stocksync-api/internal/application/usecase"
	"github.com/jhoicas/stocksync-api/internal/infrastructure/email"
	"github.com/jhoicas/stocksync-api/internal/infrastructure/finale"
	"github.com/jhoicas/stocksync-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stocksync-api/internal/interfaces/http"
	"github.com/jhoicas/stocksync-api/pkg/config"
	"github.com/jhoicas/stocksync-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	vendorRepo := postgres.NewVendorRepository(pool)
	orderRepo := postgres.NewPurchaseOrderRepository(pool)
	syncLogRepo := postgres.NewSyncLogRepository(pool)
	alertRepo := postgres.NewAlertRepository(pool)
	settingsRepo := postgres.NewSettingsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Salida hacia Finale: un único cliente con throttle compartido por todas
	// las corridas, para que el techo de 2 req/s sea global al proceso.
	rateLimited := finale.NewRateLimitedClient(log, finale.RateLimitOptions{
		PerSecond:   cfg.Sync.RatePerSecond,
		MaxAttempts: cfg.Sync.MaxAttempts,
		Timeout:     time.Duration(cfg.Sync.HTTPTimeoutSec) * time.Second,
	})
	gateway := finale.NewClient(rateLimited, log, finale.ClientOptions{})

	mailer := email.NewGomailMailer(cfg.SMTP)
	notifier := appalert.NewNotifier(alertRepo, mailer, log, appalert.Options{})

	locks := appsync.NewRunLockRegistry(time.Duration(cfg.Sync.LockTTLMinutes) * time.Minute)
	syncUC := appsync.NewUseCase(
		settingsRepo, itemRepo, vendorRepo, orderRepo, syncLogRepo,
		gateway, notifier, locks, log,
		appsync.Options{BatchSize: cfg.Sync.BatchSize},
	)

	itemUC := usecase.NewItemUseCase(itemRepo)
	vendorUC := usecase.NewVendorUseCase(vendorRepo)
	orderUC := usecase.NewPurchaseOrderUseCase(orderRepo, txRunner)
	settingsUC := usecase.NewSettingsUseCase(settingsRepo)
	alertUC := usecase.NewAlertUseCase(alertRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60, // trigger de sync responde al terminar la corrida
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "StockSync API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		SyncUC:     syncUC,
		ItemUC:     itemUC,
		VendorUC:   vendorUC,
		OrderUC:    orderUC,
		SettingsUC: settingsUC,
		AlertUC:    alertUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
