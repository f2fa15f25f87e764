package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shipment es una línea de expedición: un lote (total o parcial) hacia un cliente.
type Shipment struct {
	ID             string
	OrganizationID string
	CustomerID     string
	BatchID        string
	BatchCode      string
	Quantity       decimal.Decimal
	Unit           string
	TruckPlate     *string
	DeliveryNote   *string // único por organización
	ProcessedAt    time.Time
	CreatedAt      time.Time
	CreatedBy      string
}
