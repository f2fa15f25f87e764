package batch

import (
	"context"

	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que lote, stock, historial y
// eventos de trazabilidad muten de forma atómica.
type TxRunner interface {
	RunBatch(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		eventRepo repository.TraceabilityEventRepository,
		historyRepo repository.BatchHistoryRepository,
		prodRepo repository.ProductionRecordRepository,
		qualityRepo repository.QualityCheckRepository,
	) error) error
}
