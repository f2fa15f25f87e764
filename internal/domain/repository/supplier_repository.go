package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// SupplierRepository define el puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Supplier, error)
	Delete(id string) error
}
