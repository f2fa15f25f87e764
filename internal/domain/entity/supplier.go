package entity

import "time"

// Supplier representa un proveedor de materia prima.
type Supplier struct {
	ID             string
	OrganizationID string
	Name           string
	TaxID          string
	Email          string
	Phone          string
	Address        string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
