package entity

import "time"

// Location representa una ubicación física dentro de la planta (cámara, almacén, muelle).
type Location struct {
	ID             string
	OrganizationID string
	Name           string
	Description    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
