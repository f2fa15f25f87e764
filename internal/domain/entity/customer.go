package entity

import "time"

// Customer representa un cliente destinatario de expediciones.
type Customer struct {
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
