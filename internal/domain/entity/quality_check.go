package entity

import "time"

// Resultados posibles de un control de calidad.
const (
	QualityApproved = 1  // lote pasa a APROBADO
	QualityPending  = 0  // lote queda/vuelve a RETENIDO
	QualityRejected = -1 // lote pasa a BLOQUEADO
)

// QualityCheck registra la decisión de calidad sobre un lote esterilizado.
// Si Result == QualityApproved, ExpiresAt es obligatorio y se copia al lote
// (la vida útil del producto es solo informativa, no se calcula aquí).
type QualityCheck struct {
	ID             string
	OrganizationID string
	BatchID        string
	BatchCode      string
	Result         int
	Notes          string
	ExpiresAt      *time.Time
	DecidedAt      time.Time
	CreatedAt      time.Time
	CreatedBy      string
}
