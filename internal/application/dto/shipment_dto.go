package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateShipmentRequest body para POST /api/shipments.
type CreateShipmentRequest struct {
	CustomerID   string          `json:"customer_id" validate:"required"`
	BatchID      string          `json:"batch_id" validate:"required"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit" validate:"required"`
	TruckPlate   *string         `json:"truck_plate,omitempty"`
	DeliveryNote *string         `json:"delivery_note,omitempty"`
	ProcessedAt  *time.Time      `json:"processed_at,omitempty"`
}

// ShipmentResponse salida de una expedición.
type ShipmentResponse struct {
	ID            string          `json:"id"`
	CustomerID    string          `json:"customer_id"`
	BatchID       string          `json:"batch_id"`
	BatchCode     string          `json:"batch_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	DeliveryNote  *string         `json:"delivery_note,omitempty"`
	BatchStatus   string          `json:"batch_status"`   // APROBADO si parcial, EXPEDIDO si total
	BatchQuantity decimal.Decimal `json:"batch_quantity"` // restante en el lote
	ProcessedAt   time.Time       `json:"processed_at"`
}

// StockRow fila del stock agregado de materia prima.
type StockRow struct {
	ProductID string          `json:"product_id"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UpdatedAt time.Time       `json:"updated_at"`
}
