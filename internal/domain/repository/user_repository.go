package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para usuarios (auth).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
