package repository

import (
	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// ProductStockRepository define el puerto para el stock agregado de materia prima
// por (organización, producto, unidad). Las mutaciones van siempre dentro de la
// transacción del lote que las origina.
type ProductStockRepository interface {
	Get(organizationID, productID, unit string) (*entity.ProductStock, error)
	// ApplyDelta aplica un incremento o decremento en una sola sentencia:
	// crea la fila si no existe y suma el delta de forma atómica, sin lost
	// updates entre escritores concurrentes (incluida la primera escritura
	// de un par producto/unidad).
	ApplyDelta(organizationID, productID, unit string, delta decimal.Decimal) error
	List(organizationID string) ([]*entity.ProductStock, error)
	// Recompute recalcula el stock desde cero sumando los lotes en RECEPCION.
	// Verificación de consistencia del mantenimiento incremental.
	Recompute(organizationID string) ([]*entity.ProductStock, error)
}
