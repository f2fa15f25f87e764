package entity

import "time"

// Product representa un tipo de producto procesado o materia prima.
// ShelfLifeDays es informativo: la fecha de caducidad real la fija calidad al aprobar.
type Product struct {
	ID             string
	OrganizationID string
	Code           string // único por organización
	Name           string
	Variety        string
	Type           string // materia prima, semielaborado, terminado
	DefaultUnit    string
	ShelfLifeDays  int
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
