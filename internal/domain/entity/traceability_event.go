package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento de trazabilidad, uno por acción de dominio.
const (
	EventRecepcion    = "RECEPCION"
	EventAsado        = "ASADO"
	EventPelado       = "PELADO"
	EventEnvasado     = "ENVASADO"
	EventEsterilizado = "ESTERILIZADO"
	EventCalidad      = "CALIDAD"
	EventExpedicion   = "EXPEDICION"
)

// EventInput referencia un lote de entrada de un evento (relación uno-a-muchos,
// sin arrays serializados en columnas de texto).
type EventInput struct {
	EventID   string
	BatchID   string
	BatchCode string
	Position  int
}

// TraceabilityEvent es una entrada inmutable del registro de trazabilidad.
// Todo evento no-RECEPCION referencia al menos un lote de entrada que existe
// como salida de un evento anterior (orden temporal por PerformedAt).
type TraceabilityEvent struct {
	ID              string
	OrganizationID  string
	Type            string
	FromStage       *string
	ToStage         *string
	Inputs          []EventInput
	OutputBatchID   string
	OutputBatchCode string
	Quantity        decimal.Decimal
	Unit            string

	// Contexto según tipo de evento.
	SupplierID      *string
	ProductID       *string
	QualityApproved *bool
	QualityCheckID  *string
	ShipmentID      *string
	CustomerID      *string
	DeliveryNote    *string
	Temperature     *float64

	// Referencia opaca devuelta por el notario blockchain; null si no disponible.
	NotaryRef *string

	PerformedAt time.Time
	CreatedAt   time.Time
	CreatedBy   string
}

// InputCodes devuelve los códigos de lote de entrada en orden.
func (e *TraceabilityEvent) InputCodes() []string {
	codes := make([]string, 0, len(e.Inputs))
	for _, in := range e.Inputs {
		codes = append(codes, in.BatchCode)
	}
	return codes
}
