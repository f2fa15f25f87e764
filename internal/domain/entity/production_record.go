package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Etapas de producción que consolidan lotes de entrada en un lote de salida.
const (
	StageAsado        = "ASADO"
	StagePelado       = "PELADO"
	StageEnvasado     = "ENVASADO"
	StageEsterilizado = "ESTERILIZADO"
)

// ProductionInput es una línea del manifiesto de entrada: cuánto se consumió de cada lote.
type ProductionInput struct {
	ID               string
	ProductionID     string
	InputBatchID     string
	InputBatchCode   string
	QuantityConsumed decimal.Decimal
}

// ProductionRecord registra una consolidación de producción: N lotes de entrada → 1 lote de salida.
// Inmutable una vez creado; las correcciones se hacen con registros compensatorios, nunca in situ.
// Invariante: sum(Inputs.QuantityConsumed) == InputQuantity.
type ProductionRecord struct {
	ID             string
	OrganizationID string
	Stage          string
	OutputBatchID  string
	OutputBatchCode string
	InputQuantity  decimal.Decimal
	OutputQuantity decimal.Decimal
	Unit           string
	Notes          string
	Inputs         []ProductionInput
	PerformedAt    time.Time
	CreatedAt      time.Time
	CreatedBy      string
}
