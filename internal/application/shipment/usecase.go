package shipment

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/ports"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// UseCase procesa expediciones: valida la asignación FEFO elegida por el
// caller, divide o agota el lote, y escribe el evento EXPEDICION.
type UseCase struct {
	txRunner     TxRunner
	batchRepo    repository.BatchRepository
	shipmentRepo repository.ShipmentRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	notary       ports.NotarySink
	log          zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, batchRepo repository.BatchRepository, shipmentRepo repository.ShipmentRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository, notary ports.NotarySink, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, batchRepo: batchRepo, shipmentRepo: shipmentRepo, customerRepo: customerRepo, productRepo: productRepo, notary: notary, log: log}
}

// GetByID obtiene una expedición de la organización.
func (uc *UseCase) GetByID(ctx context.Context, organizationID, id string) (*entity.Shipment, error) {
	s, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return s, nil
}

// List lista las expediciones de la organización.
func (uc *UseCase) List(ctx context.Context, organizationID string, limit, offset int) ([]*entity.Shipment, error) {
	return uc.shipmentRepo.ListByOrganization(organizationID, limit, offset)
}

// ListApprovedForProduct devuelve los lotes candidatos a expedición
// (APROBADO, cantidad > 0, filtro opcional por producto) en orden FEFO.
func (uc *UseCase) ListApprovedForProduct(ctx context.Context, organizationID, productID string) ([]*entity.Batch, error) {
	batches, err := uc.batchRepo.ListApproved(organizationID, productID)
	if err != nil {
		return nil, err
	}
	return RankFEFO(batches, time.Now()), nil
}

// Create procesa una línea de expedición. remaining = cantidad del lote −
// cantidad expedida: si queda resto el lote sigue APROBADO con la cantidad
// reducida; si queda a cero pasa a EXPEDIDO; un resto negativo se rechaza.
// El stock de materia prima solo se decrementa si el lote expedido seguía en
// RECEPCION (los lotes aguas abajo no forman parte del agregado; asimetría
// intencional, no un bug).
func (uc *UseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateShipmentRequest) (*entity.Shipment, *entity.Batch, error) {
	if in.CustomerID == "" || in.BatchID == "" || in.Unit == "" {
		return nil, nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, nil, domain.ErrInvalidInput
	}

	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, nil, err
	}
	if customer == nil || customer.OrganizationID != organizationID {
		return nil, nil, domain.ErrNotFound
	}

	now := time.Now()
	processedAt := now
	if in.ProcessedAt != nil {
		processedAt = *in.ProcessedAt
	}

	var shp *entity.Shipment
	var batch *entity.Batch
	var eventID string

	err = uc.txRunner.RunShipment(ctx, func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		shipmentRepo repository.ShipmentRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		if in.DeliveryNote != nil && *in.DeliveryNote != "" {
			dup, err := shipmentRepo.GetByDeliveryNote(organizationID, *in.DeliveryNote)
			if err != nil {
				return err
			}
			if dup != nil {
				return fmt.Errorf("%w: albarán %s", domain.ErrDuplicate, *in.DeliveryNote)
			}
		}

		b, err := batchRepo.GetByIDForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if b == nil || b.OrganizationID != organizationID {
			return domain.ErrNotFound
		}
		// Solo se expide producto aprobado por calidad o materia prima
		// directa en RECEPCION; RETENIDO y BLOQUEADO nunca salen de planta.
		if b.Status != entity.StatusAprobado && b.Status != entity.StatusRecepcion {
			return fmt.Errorf("%w: lote %s en estado %s", domain.ErrInvalidTransition, b.Code, b.Status)
		}
		if in.Unit != b.Unit {
			return fmt.Errorf("%w: unidad %s no coincide con la del lote %s (%s)", domain.ErrInvalidInput, in.Unit, b.Code, b.Unit)
		}
		if err := ValidateAllocation(b, in.Quantity); err != nil {
			return fmt.Errorf("%w: lote %s", err, b.Code)
		}

		wasTracked := b.Status == entity.StatusRecepcion
		remaining := b.Quantity.Sub(in.Quantity)
		b.Quantity = remaining
		if remaining.IsZero() {
			b.Status = entity.StatusExpedido
			b.ProcessedAt = &processedAt
		}
		b.UpdatedAt = now
		if err := batchRepo.Update(b); err != nil {
			return err
		}
		if wasTracked {
			if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, in.Quantity.Neg()); err != nil {
				return err
			}
		}

		shp = &entity.Shipment{
			ID:             uuid.New().String(),
			OrganizationID: organizationID,
			CustomerID:     in.CustomerID,
			BatchID:        b.ID,
			BatchCode:      b.Code,
			Quantity:       in.Quantity,
			Unit:           in.Unit,
			TruckPlate:     in.TruckPlate,
			DeliveryNote:   in.DeliveryNote,
			ProcessedAt:    processedAt,
			CreatedAt:      now,
			CreatedBy:      userID,
		}
		if err := shipmentRepo.Create(shp); err != nil {
			return err
		}

		toStage := entity.StatusExpedido
		event := &entity.TraceabilityEvent{
			ID:              uuid.New().String(),
			OrganizationID:  organizationID,
			Type:            entity.EventExpedicion,
			ToStage:         &toStage,
			Inputs:          []entity.EventInput{{BatchID: b.ID, BatchCode: b.Code}},
			OutputBatchID:   b.ID,
			OutputBatchCode: b.Code,
			Quantity:        in.Quantity,
			Unit:            in.Unit,
			ProductID:       &b.ProductID,
			ShipmentID:      &shp.ID,
			CustomerID:      &in.CustomerID,
			DeliveryNote:    in.DeliveryNote,
			PerformedAt:     processedAt,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		event.Inputs[0].EventID = event.ID
		if err := eventRepo.Create(event); err != nil {
			return err
		}
		eventID = event.ID
		batch = b
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	uc.notarize(ctx, eventID, batch)
	return shp, batch, nil
}

// notarize registra el hito EXPEDICION en el notario; no condiciona la transacción.
func (uc *UseCase) notarize(ctx context.Context, eventID string, b *entity.Batch) {
	productType := ""
	if p, err := uc.productRepo.GetByID(b.ProductID); err == nil && p != nil {
		productType = p.Type
	}
	ref, err := uc.notary.Notarize(ctx, b.Code, productType, entity.EventExpedicion)
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_code", b.Code).Msg("notarización no disponible")
		return
	}
	if ref == "" {
		return
	}
	err = uc.txRunner.RunShipment(context.Background(), func(
		_ repository.BatchRepository,
		_ repository.ProductStockRepository,
		_ repository.ShipmentRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		return eventRepo.SetNotaryRef(eventID, ref)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("event_id", eventID).Msg("guardar referencia de notario")
	}
}
