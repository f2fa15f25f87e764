package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	appbatch "github.com/agroconserva/trazabilidad-api/internal/application/batch"
	"github.com/agroconserva/trazabilidad-api/internal/application/production"
	"github.com/agroconserva/trazabilidad-api/internal/application/quality"
	"github.com/agroconserva/trazabilidad-api/internal/application/shipment"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// Ensure TxRunner implements los puertos de transacción de cada caso de uso.
var _ appbatch.TxRunner = (*TxRunner)(nil)
var _ production.TxRunner = (*TxRunner)(nil)
var _ quality.TxRunner = (*TxRunner)(nil)
var _ shipment.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL, pasando
// repositorios atados a la tx. Commit si el callback devuelve nil, Rollback
// en cualquier otro caso: lote, stock, registros y eventos nunca quedan
// mutuamente inconsistentes.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

func (r *TxRunner) run(ctx context.Context, fn func(tx Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunBatch transacción para el ciclo de vida de lotes (alta, edición, borrado en cascada).
func (r *TxRunner) RunBatch(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	stockRepo repository.ProductStockRepository,
	eventRepo repository.TraceabilityEventRepository,
	historyRepo repository.BatchHistoryRepository,
	prodRepo repository.ProductionRecordRepository,
	qualityRepo repository.QualityCheckRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(
			NewBatchRepository(tx),
			NewProductStockRepository(tx),
			NewTraceabilityEventRepository(tx),
			NewBatchHistoryRepository(tx),
			NewProductionRecordRepository(tx),
			NewQualityCheckRepository(tx),
		)
	})
}

// RunProduction transacción para consolidaciones de producción.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	stockRepo repository.ProductStockRepository,
	prodRepo repository.ProductionRecordRepository,
	eventRepo repository.TraceabilityEventRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(
			NewBatchRepository(tx),
			NewProductStockRepository(tx),
			NewProductionRecordRepository(tx),
			NewTraceabilityEventRepository(tx),
		)
	})
}

// RunQuality transacción para decisiones de calidad.
func (r *TxRunner) RunQuality(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	qualityRepo repository.QualityCheckRepository,
	eventRepo repository.TraceabilityEventRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(
			NewBatchRepository(tx),
			NewQualityCheckRepository(tx),
			NewTraceabilityEventRepository(tx),
		)
	})
}

// RunShipment transacción para expediciones.
func (r *TxRunner) RunShipment(ctx context.Context, fn func(
	batchRepo repository.BatchRepository,
	stockRepo repository.ProductStockRepository,
	shipmentRepo repository.ShipmentRepository,
	eventRepo repository.TraceabilityEventRepository,
) error) error {
	return r.run(ctx, func(tx Querier) error {
		return fn(
			NewBatchRepository(tx),
			NewProductStockRepository(tx),
			NewShipmentRepository(tx),
			NewTraceabilityEventRepository(tx),
		)
	})
}
