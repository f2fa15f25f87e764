package production

import (
	"context"

	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta la consolidación de producción como una transacción:
// crear registro + mutar N lotes de entrada + escribir eventos es todo o nada.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		prodRepo repository.ProductionRecordRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error) error
}
