package dto

import "github.com/shopspring/decimal"

// ProductionInputRequest una línea del manifiesto de entrada.
type ProductionInputRequest struct {
	BatchID  string          `json:"batch_id" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
}

// CreateProductionRequest body para POST /api/production.
// Para PELADO (re-etiquetado puro) OutputCode y OutputQuantity se ignoran.
type CreateProductionRequest struct {
	Stage          string                   `json:"stage" validate:"required"`
	OutputCode     string                   `json:"output_code,omitempty"`
	ProductID      string                   `json:"product_id,omitempty"` // vacío = producto del primer lote de entrada
	OutputQuantity decimal.Decimal          `json:"output_quantity"`
	Unit           string                   `json:"unit" validate:"required"`
	Inputs         []ProductionInputRequest `json:"inputs" validate:"required,min=1"`
	Notes          string                   `json:"notes,omitempty"`
}

// ProductionInputResponse línea del manifiesto en la respuesta.
type ProductionInputResponse struct {
	InputBatchID     string          `json:"input_batch_id"`
	InputBatchCode   string          `json:"input_batch_code"`
	QuantityConsumed decimal.Decimal `json:"quantity_consumed"`
}

// ProductionResponse salida de un registro de producción.
type ProductionResponse struct {
	ID              string                    `json:"id"`
	Stage           string                    `json:"stage"`
	OutputBatchID   string                    `json:"output_batch_id,omitempty"`
	OutputBatchCode string                    `json:"output_batch_code,omitempty"`
	InputQuantity   decimal.Decimal           `json:"input_quantity"`
	OutputQuantity  decimal.Decimal           `json:"output_quantity"`
	Unit            string                    `json:"unit"`
	Inputs          []ProductionInputResponse `json:"inputs"`
	// RelabeledBatchIDs solo para PELADO: lotes re-etiquetados in situ.
	RelabeledBatchIDs []string `json:"relabeled_batch_ids,omitempty"`
}
