package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// BatchRepository define el puerto de persistencia para lotes.
// Se usa dentro de transacciones para garantizar consistencia lote/stock/eventos.
type BatchRepository interface {
	Create(batch *entity.Batch) error
	GetByID(id string) (*entity.Batch, error)
	// GetByIDForUpdate bloquea la fila del lote (SELECT FOR UPDATE) durante
	// la secuencia validar-y-decrementar de consolidación y expedición.
	GetByIDForUpdate(id string) (*entity.Batch, error)
	GetByCode(organizationID, code string) (*entity.Batch, error)
	Update(batch *entity.Batch) error
	Delete(id string) error
	ListByStatus(organizationID, status string, limit, offset int) ([]*entity.Batch, error)
	// ListApproved devuelve lotes APROBADO con cantidad > 0, opcionalmente
	// filtrados por producto. El orden FEFO lo aplica el caso de uso.
	ListApproved(organizationID, productID string) ([]*entity.Batch, error)
}
