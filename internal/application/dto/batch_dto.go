package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// CreateBatchRequest entrada para crear un lote (recepción de materia prima,
// o salida de etapa cuando Status viene explícito).
type CreateBatchRequest struct {
	Code           string          `json:"code" validate:"required,min=1,max=100"`
	ProductID      string          `json:"product_id" validate:"required"`
	SupplierID     *string         `json:"supplier_id,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	Unit           string          `json:"unit" validate:"required"`
	Temperature    *float64        `json:"temperature,omitempty"`
	TruckPlate     *string         `json:"truck_plate,omitempty"`
	DeliveryNote   *string         `json:"delivery_note,omitempty"`
	LocationID     *string         `json:"location_id,omitempty"`
	Status         string          `json:"status,omitempty"` // vacío = RECEPCION
	ManufacturedAt *time.Time      `json:"manufactured_at,omitempty"`
	ExpiresAt      *time.Time      `json:"expires_at,omitempty"`
	ArrivedAt      *time.Time      `json:"arrived_at,omitempty"`
}

// UpdateBatchRequest entrada para editar un lote. Campos nil = sin cambio.
type UpdateBatchRequest struct {
	ProductID    *string          `json:"product_id,omitempty"`
	Quantity     *decimal.Decimal `json:"quantity,omitempty"`
	Unit         *string          `json:"unit,omitempty"`
	Status       *string          `json:"status,omitempty"`
	LocationID   *string          `json:"location_id,omitempty"`
	Temperature  *float64         `json:"temperature,omitempty"`
	TruckPlate   *string          `json:"truck_plate,omitempty"`
	DeliveryNote *string          `json:"delivery_note,omitempty"`
	ExpiresAt    *time.Time       `json:"expires_at,omitempty"`
	Notes        string           `json:"notes,omitempty"`
}

// BatchResponse salida de un lote.
type BatchResponse struct {
	ID              string          `json:"id"`
	Code            string          `json:"code"`
	ProductID       string          `json:"product_id"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	InitialQuantity decimal.Decimal `json:"initial_quantity"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	Status          string          `json:"status"`
	LocationID      *string         `json:"location_id,omitempty"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`
	ArrivedAt       time.Time       `json:"arrived_at"`
	ProcessedAt     *time.Time      `json:"processed_at,omitempty"`
	DaysToExpiry    int             `json:"days_to_expiry"`
}

// NewBatchResponse mapea la entidad a su DTO de salida.
func NewBatchResponse(b *entity.Batch, now time.Time) BatchResponse {
	return BatchResponse{
		ID:              b.ID,
		Code:            b.Code,
		ProductID:       b.ProductID,
		SupplierID:      b.SupplierID,
		InitialQuantity: b.InitialQuantity,
		Quantity:        b.Quantity,
		Unit:            b.Unit,
		Status:          b.Status,
		LocationID:      b.LocationID,
		ExpiresAt:       b.ExpiresAt,
		ArrivedAt:       b.ArrivedAt,
		ProcessedAt:     b.ProcessedAt,
		DaysToExpiry:    b.DaysToExpiry(now),
	}
}
