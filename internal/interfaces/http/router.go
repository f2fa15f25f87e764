package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/agroconserva/trazabilidad-api/internal/application/auth"
	"github.com/agroconserva/trazabilidad-api/internal/application/batch"
	"github.com/agroconserva/trazabilidad-api/internal/application/production"
	"github.com/agroconserva/trazabilidad-api/internal/application/quality"
	"github.com/agroconserva/trazabilidad-api/internal/application/shipment"
	"github.com/agroconserva/trazabilidad-api/internal/application/trace"
	"github.com/agroconserva/trazabilidad-api/internal/application/usecase"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	BatchUC      *batch.UseCase
	ProductionUC *production.UseCase
	QualityUC    *quality.UseCase
	ShipmentUC   *shipment.UseCase
	TraceUC      *trace.UseCase
	StockUC      *usecase.StockUseCase
	ProductUC    *usecase.ProductUseCase
	SupplierUC   *usecase.SupplierUseCase
	CustomerUC   *usecase.CustomerUseCase
	LocationUC   *usecase.LocationUseCase
	AuthUC       *auth.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Lotes (protegido). /approved va antes de /:id.
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC, deps.TraceUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/approved", shipmentHandler.ApprovedBatches)
	batches.Get("/:id", batchHandler.GetByID)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", RequireRole(entity.RoleAdmin), batchHandler.Delete)

	// Producción (protegido)
	productionHandler := NewProductionHandler(deps.ProductionUC)
	protected.Post("/production", productionHandler.Create)

	// Calidad (protegido, solo rol calidad o admin)
	qualityHandler := NewQualityHandler(deps.QualityUC)
	protected.Post("/quality", RequireRole(entity.RoleCalidad, entity.RoleAdmin), qualityHandler.Create)

	// Expediciones y trazabilidad (protegido)
	shipments := protected.Group("/shipments")
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/", shipmentHandler.List)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Get("/:id/trace", shipmentHandler.Trace)

	// Stock de materia prima (protegido)
	stockHandler := NewStockHandler(deps.StockUC)
	protected.Get("/stock", stockHandler.List)
	protected.Post("/stock/recompute", RequireRole(entity.RoleAdmin), stockHandler.Recompute)

	// Maestros (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", RequireRole(entity.RoleAdmin), productHandler.Delete)

	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Delete("/:id", RequireRole(entity.RoleAdmin), supplierHandler.Delete)

	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Delete("/:id", RequireRole(entity.RoleAdmin), customerHandler.Delete)

	locations := protected.Group("/locations")
	locationHandler := NewLocationHandler(deps.LocationUC)
	locations.Post("/", locationHandler.Create)
	locations.Get("/", locationHandler.List)
	locations.Delete("/:id", RequireRole(entity.RoleAdmin), locationHandler.Delete)
}
