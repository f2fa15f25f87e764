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

	"github.com/agroconserva/trazabilidad-api/internal/application/auth"
	"github.com/agroconserva/trazabilidad-api/internal/application/batch"
	"github.com/agroconserva/trazabilidad-api/internal/application/ports"
	"github.com/agroconserva/trazabilidad-api/internal/application/production"
	"github.com/agroconserva/trazabilidad-api/internal/application/quality"
	"github.com/agroconserva/trazabilidad-api/internal/application/shipment"
	"github.com/agroconserva/trazabilidad-api/internal/application/trace"
	"github.com/agroconserva/trazabilidad-api/internal/application/usecase"
	"github.com/agroconserva/trazabilidad-api/internal/infrastructure/notary"
	"github.com/agroconserva/trazabilidad-api/internal/infrastructure/postgres"
	httpRouter "github.com/agroconserva/trazabilidad-api/internal/interfaces/http"
	"github.com/agroconserva/trazabilidad-api/pkg/config"
	"github.com/agroconserva/trazabilidad-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
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

	batchRepo := postgres.NewBatchRepository(pool)
	stockRepo := postgres.NewProductStockRepository(pool)
	eventRepo := postgres.NewTraceabilityEventRepository(pool)
	shipmentRepo := postgres.NewShipmentRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	locationRepo := postgres.NewLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	var notarySink = func() ports.NotarySink {
		if cfg.Notary.URL == "" {
			log.Info().Msg("notarización deshabilitada (NOTARY_URL vacío)")
			return notary.NewDisabled()
		}
		return notary.NewClient(cfg.Notary.URL, time.Duration(cfg.Notary.TimeoutSeconds)*time.Second, log)
	}()

	batchUC := batch.NewUseCase(txRunner, batchRepo, productRepo, notarySink, log)
	productionUC := production.NewUseCase(txRunner, productRepo, notarySink, log)
	qualityUC := quality.NewUseCase(txRunner, productRepo, notarySink, log)
	shipmentUC := shipment.NewUseCase(txRunner, batchRepo, shipmentRepo, customerRepo, productRepo, notarySink, log)
	traceUC := trace.NewUseCase(eventRepo)
	stockUC := usecase.NewStockUseCase(stockRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Trazabilidad API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		BatchUC:      batchUC,
		ProductionUC: productionUC,
		QualityUC:    qualityUC,
		ShipmentUC:   shipmentUC,
		TraceUC:      traceUC,
		StockUC:      stockUC,
		ProductUC:    productUC,
		SupplierUC:   supplierUC,
		CustomerUC:   customerUC,
		LocationUC:   locationUC,
		AuthUC:       authUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
