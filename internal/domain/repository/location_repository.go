package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para ubicaciones de planta.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Location, error)
	Delete(id string) error
}
