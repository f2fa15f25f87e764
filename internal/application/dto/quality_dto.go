package dto

import "time"

// CreateQualityCheckRequest body para POST /api/quality.
// Approved: 1 = aprobado (ExpiresAt obligatorio), 0 = retenido, -1 = bloqueado.
type CreateQualityCheckRequest struct {
	BatchID   string     `json:"batch_id" validate:"required"`
	Approved  int        `json:"approved" validate:"oneof=-1 0 1"`
	Notes     string     `json:"notes,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// QualityCheckResponse salida de un control de calidad.
type QualityCheckResponse struct {
	ID        string     `json:"id"`
	BatchID   string     `json:"batch_id"`
	BatchCode string     `json:"batch_code"`
	Result    int        `json:"result"`
	NewStatus string     `json:"new_status"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	DecidedAt time.Time  `json:"decided_at"`
}
