package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// QualityCheckRepository define el puerto para controles de calidad.
type QualityCheckRepository interface {
	Create(check *entity.QualityCheck) error
	GetByID(id string) (*entity.QualityCheck, error)
	ListByBatch(batchID string) ([]*entity.QualityCheck, error)
	DeleteByBatch(batchID string) error
}
