package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductStock es el stock agregado de materia prima por (organización, producto, unidad).
// Derivado de la suma de lotes en estado RECEPCION; se actualiza con deltas incrementales
// dentro de la misma transacción que muta el lote, y debe coincidir en todo momento con
// el recálculo completo (invariante verificable).
type ProductStock struct {
	OrganizationID string
	ProductID      string
	Unit           string
	Quantity       decimal.Decimal
	UpdatedAt      time.Time
}
