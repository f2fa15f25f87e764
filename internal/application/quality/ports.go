package quality

import (
	"context"

	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta la decisión de calidad como una transacción:
// control + cambio de estado del lote + evento CALIDAD, todo o nada.
type TxRunner interface {
	RunQuality(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		qualityRepo repository.QualityCheckRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error) error
}
