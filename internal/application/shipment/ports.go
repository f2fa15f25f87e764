package shipment

import (
	"context"

	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// TxRunner ejecuta la expedición como una transacción: mutación del lote +
// decremento de stock (si aplica) + evento EXPEDICION, todo o nada.
type TxRunner interface {
	RunShipment(ctx context.Context, fn func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		shipmentRepo repository.ShipmentRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error) error
}
