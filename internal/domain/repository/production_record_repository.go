package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// ProductionRecordRepository define el puerto para registros de consolidación
// y sus líneas de manifiesto (relación uno-a-muchos).
type ProductionRecordRepository interface {
	Create(record *entity.ProductionRecord) error
	GetByID(id string) (*entity.ProductionRecord, error)
	ListByOutputBatch(outputBatchID string) ([]*entity.ProductionRecord, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.ProductionRecord, error)
	// DeleteByOutputBatch elimina los registros cuya salida es el lote indicado
	// (cascada del borrado administrativo de lotes).
	DeleteByOutputBatch(outputBatchID string) error
}
