package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TraceEvent es un evento de trazabilidad dentro de una etapa de la cadena.
type TraceEvent struct {
	ID              string          `json:"id"`
	Type            string          `json:"type"`
	FromStage       *string         `json:"from_stage,omitempty"`
	ToStage         *string         `json:"to_stage,omitempty"`
	InputBatchCodes []string        `json:"input_batch_codes,omitempty"`
	OutputBatchCode string          `json:"output_batch_code"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	SupplierID      *string         `json:"supplier_id,omitempty"`
	ProductID       *string         `json:"product_id,omitempty"`
	QualityApproved *bool           `json:"quality_approved,omitempty"`
	CustomerID      *string         `json:"customer_id,omitempty"`
	DeliveryNote    *string         `json:"delivery_note,omitempty"`
	Temperature     *float64        `json:"temperature,omitempty"`
	NotaryRef       *string         `json:"notary_ref,omitempty"`
	PerformedAt     time.Time       `json:"performed_at"`
}

// TraceStage es una etapa de la cadena de trazabilidad reconstruida,
// con sus eventos ordenados por performed_at ascendente.
type TraceStage struct {
	Stage  string       `json:"stage"`
	Events []TraceEvent `json:"events"`
}
