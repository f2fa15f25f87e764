package repository

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// TraceabilityEventRepository define el puerto para el registro append-only de
// eventos de trazabilidad y sus referencias de entrada.
type TraceabilityEventRepository interface {
	Create(event *entity.TraceabilityEvent) error
	GetByID(id string) (*entity.TraceabilityEvent, error)
	// ListByTypeAndOutputCodes devuelve los eventos de un tipo cuyo lote de salida
	// está en el conjunto de códigos, ordenados por performed_at ascendente.
	// Es la consulta base del recorrido hacia atrás de la cadena.
	ListByTypeAndOutputCodes(organizationID, eventType string, outputCodes []string) ([]*entity.TraceabilityEvent, error)
	// FindByShipment localiza el evento EXPEDICION ancla de una expedición.
	FindByShipment(organizationID, shipmentID string) (*entity.TraceabilityEvent, error)
	// DeleteByOutputBatch elimina los eventos cuya salida es el lote indicado
	// (cascada del borrado administrativo de lotes).
	DeleteByOutputBatch(outputBatchID string) error
	// SetNotaryRef guarda la referencia opaca del notario; fuera de la
	// transacción de dominio, nunca la condiciona.
	SetNotaryRef(eventID, ref string) error
}
