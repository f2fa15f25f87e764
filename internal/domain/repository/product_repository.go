package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(organizationID, code string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
