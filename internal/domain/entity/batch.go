package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un lote.
// RECEPCION → ASADO → PELADO → ENVASADO → ESTERILIZADO → {APROBADO|RETENIDO|BLOQUEADO} → EXPEDIDO
const (
	StatusRecepcion    = "RECEPCION"
	StatusAsado        = "ASADO"
	StatusPelado       = "PELADO"
	StatusEnvasado     = "ENVASADO"
	StatusEsterilizado = "ESTERILIZADO"
	StatusAprobado     = "APROBADO"
	StatusRetenido     = "RETENIDO"
	StatusBloqueado    = "BLOQUEADO"
	StatusExpedido     = "EXPEDIDO"
)

// NoExpirySentinel ordena al final los lotes sin fecha de caducidad en el ranking FEFO.
const NoExpirySentinel = 999999

// Batch representa un lote físico de producción.
// Quantity es la cantidad restante; InitialQuantity la recibida o producida.
// Invariante: 0 <= Quantity <= InitialQuantity.
type Batch struct {
	ID              string
	OrganizationID  string
	Code            string // único por organización
	ProductID       string
	SupplierID      *string
	InitialQuantity decimal.Decimal
	Quantity        decimal.Decimal
	Unit            string // kg, ud, caja...
	Temperature     *float64
	TruckPlate      *string
	DeliveryNote    *string
	LocationID      *string
	Status          string
	ManufacturedAt  *time.Time
	ExpiresAt       *time.Time
	ArrivedAt       time.Time
	ProcessedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DaysToExpiry calcula los días hasta caducidad (redondeo hacia arriba).
// Sin fecha de caducidad devuelve NoExpirySentinel para que el lote ordene último en FEFO.
func (b *Batch) DaysToExpiry(now time.Time) int {
	if b.ExpiresAt == nil {
		return NoExpirySentinel
	}
	days := b.ExpiresAt.Sub(now).Hours() / 24
	return int(math.Ceil(days))
}

// IsValidStatus verifica que el estado pertenece al enum del ciclo de vida.
func IsValidStatus(status string) bool {
	switch status {
	case StatusRecepcion, StatusAsado, StatusPelado, StatusEnvasado,
		StatusEsterilizado, StatusAprobado, StatusRetenido, StatusBloqueado, StatusExpedido:
		return true
	}
	return false
}
