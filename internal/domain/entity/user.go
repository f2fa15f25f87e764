package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleOperario = "operario"
	RoleCalidad  = "calidad"
)

// User representa un usuario del sistema (pertenece a una organización).
type User struct {
	ID             string
	OrganizationID string
	Email          string
	PasswordHash   string // bcrypt hash, nunca plano en dominio después de persistir
	Name           string
	Role           string // admin, operario, calidad
	Status         string // active, inactive
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
