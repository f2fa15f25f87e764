package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// CustomerRepository define el puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Customer, error)
	Delete(id string) error
}
