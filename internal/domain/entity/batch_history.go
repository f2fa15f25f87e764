package entity

import "time"

// BatchHistory es una entrada de auditoría escrita cuando cambia el estado
// o la ubicación de un lote fuera del flujo de producción.
type BatchHistory struct {
	ID             string
	OrganizationID string
	BatchID        string
	FromStatus     string
	ToStatus       string
	FromLocationID *string
	ToLocationID   *string
	Notes          string
	ChangedAt      time.Time
	ChangedBy      string
}
