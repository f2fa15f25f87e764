package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// BatchHistoryRepository define el puerto para el historial de cambios de un lote.
type BatchHistoryRepository interface {
	Create(history *entity.BatchHistory) error
	ListByBatch(batchID string) ([]*entity.BatchHistory, error)
	DeleteByBatch(batchID string) error
}
