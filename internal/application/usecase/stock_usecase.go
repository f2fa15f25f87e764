package usecase

import (
	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// StockUseCase consultas sobre el stock agregado de materia prima.
type StockUseCase struct {
	repo repository.ProductStockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.ProductStockRepository) *StockUseCase {
	return &StockUseCase{repo: repo}
}

// List devuelve el stock por (producto, unidad) de la organización.
func (uc *StockUseCase) List(organizationID string) ([]dto.StockRow, error) {
	stocks, err := uc.repo.List(organizationID)
	if err != nil {
		return nil, err
	}
	return toStockRows(stocks), nil
}

// Recompute recalcula el stock desde los lotes en RECEPCION. Existe para la
// verificación de consistencia del mantenimiento incremental (auditoría).
func (uc *StockUseCase) Recompute(organizationID string) ([]dto.StockRow, error) {
	stocks, err := uc.repo.Recompute(organizationID)
	if err != nil {
		return nil, err
	}
	return toStockRows(stocks), nil
}

func toStockRows(stocks []*entity.ProductStock) []dto.StockRow {
	rows := make([]dto.StockRow, 0, len(stocks))
	for _, s := range stocks {
		rows = append(rows, dto.StockRow{
			ProductID: s.ProductID,
			Unit:      s.Unit,
			Quantity:  s.Quantity,
			UpdatedAt: s.UpdatedAt,
		})
	}
	return rows
}
