package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// ShipmentRepository define el puerto para expediciones.
type ShipmentRepository interface {
	Create(shipment *entity.Shipment) error
	GetByID(id string) (*entity.Shipment, error)
	// GetByDeliveryNote detecta albaranes duplicados por organización.
	GetByDeliveryNote(organizationID, deliveryNote string) (*entity.Shipment, error)
	ListByOrganization(organizationID string, limit, offset int) ([]*entity.Shipment, error)
}
