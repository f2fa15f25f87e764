package batch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/ports"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
	"github.com/agroconserva/trazabilidad-api/internal/domain/trace"
	"github.com/agroconserva/trazabilidad-api/pkg/normalize"
)

// UseCase gestiona el ciclo de vida de lotes: alta con efecto en stock y
// evento de trazabilidad, edición con reconciliación condicional de stock,
// y borrado administrativo con cascada y reversión de stock.
type UseCase struct {
	txRunner    TxRunner
	batchRepo   repository.BatchRepository
	productRepo repository.ProductRepository
	notary      ports.NotarySink
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, batchRepo repository.BatchRepository, productRepo repository.ProductRepository, notary ports.NotarySink, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, batchRepo: batchRepo, productRepo: productRepo, notary: notary, log: log}
}

// Create da de alta un lote. Estado por defecto RECEPCION; un estado explícito
// solo se admite para salidas de etapa. Siempre escribe un evento de
// trazabilidad; si el estado resultante es RECEPCION incrementa el stock de
// materia prima (producto, unidad) en la misma transacción.
func (uc *UseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateBatchRequest) (*entity.Batch, error) {
	code := normalize.Code(in.Code)
	if code == "" || in.ProductID == "" || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.StatusRecepcion
	}
	eventType, ok := trace.EventForStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	arrivedAt := now
	if in.ArrivedAt != nil {
		arrivedAt = *in.ArrivedAt
	}
	b := &entity.Batch{
		ID:              uuid.New().String(),
		OrganizationID:  organizationID,
		Code:            code,
		ProductID:       in.ProductID,
		SupplierID:      in.SupplierID,
		InitialQuantity: in.Quantity,
		Quantity:        in.Quantity,
		Unit:            in.Unit,
		Temperature:     in.Temperature,
		TruckPlate:      in.TruckPlate,
		DeliveryNote:    in.DeliveryNote,
		LocationID:      in.LocationID,
		Status:          status,
		ManufacturedAt:  in.ManufacturedAt,
		ExpiresAt:       in.ExpiresAt,
		ArrivedAt:       arrivedAt,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	event := &entity.TraceabilityEvent{
		ID:              uuid.New().String(),
		OrganizationID:  organizationID,
		Type:            eventType,
		ToStage:         &status,
		OutputBatchID:   b.ID,
		OutputBatchCode: b.Code,
		Quantity:        b.Quantity,
		Unit:            b.Unit,
		SupplierID:      in.SupplierID,
		ProductID:       &b.ProductID,
		DeliveryNote:    in.DeliveryNote,
		Temperature:     in.Temperature,
		PerformedAt:     arrivedAt,
		CreatedAt:       now,
		CreatedBy:       userID,
	}

	err = uc.txRunner.RunBatch(ctx, func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		eventRepo repository.TraceabilityEventRepository,
		_ repository.BatchHistoryRepository,
		_ repository.ProductionRecordRepository,
		_ repository.QualityCheckRepository,
	) error {
		existing, err := batchRepo.GetByCode(organizationID, code)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := batchRepo.Create(b); err != nil {
			return err
		}
		if b.Status == entity.StatusRecepcion {
			if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, b.Quantity); err != nil {
				return err
			}
		}
		return eventRepo.Create(event)
	})
	if err != nil {
		return nil, err
	}

	uc.notarize(ctx, event.ID, b.Code, product.Type, b.Status)
	return b, nil
}

// Update edita un lote. Si el lote está en RECEPCION antes y después, aplica el
// delta de cantidad al stock; si cambió producto o unidad estando en RECEPCION,
// resta la contribución antigua y suma la nueva de forma atómica. Al salir de
// RECEPCION se retira íntegra la contribución antigua (la edición simultánea de
// cantidad solo afecta a la fila del lote). Cambios de estado o ubicación
// generan una entrada de historial.
func (uc *UseCase) Update(ctx context.Context, organizationID, userID, batchID string, in dto.UpdateBatchRequest) (*entity.Batch, error) {
	var updated *entity.Batch
	err := uc.txRunner.RunBatch(ctx, func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		_ repository.TraceabilityEventRepository,
		historyRepo repository.BatchHistoryRepository,
		_ repository.ProductionRecordRepository,
		_ repository.QualityCheckRepository,
	) error {
		b, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if b == nil || b.OrganizationID != organizationID {
			return domain.ErrNotFound
		}

		oldStatus, oldProduct, oldUnit, oldQty, oldLocation := b.Status, b.ProductID, b.Unit, b.Quantity, b.LocationID

		if in.Status != nil {
			if !entity.IsValidStatus(*in.Status) {
				return domain.ErrInvalidInput
			}
			if !trace.CanTransition(b.Status, *in.Status) {
				return domain.ErrInvalidTransition
			}
			b.Status = *in.Status
		}
		if in.ProductID != nil {
			b.ProductID = *in.ProductID
		}
		if in.Unit != nil {
			b.Unit = *in.Unit
		}
		if in.Quantity != nil {
			if in.Quantity.IsNegative() {
				return domain.ErrInvalidInput
			}
			b.Quantity = *in.Quantity
			if b.Quantity.GreaterThan(b.InitialQuantity) {
				// Correcciones al alza solo tienen sentido en recepción.
				if b.Status != entity.StatusRecepcion {
					return domain.ErrInvalidInput
				}
				b.InitialQuantity = b.Quantity
			}
		}
		if in.LocationID != nil {
			b.LocationID = in.LocationID
		}
		if in.Temperature != nil {
			b.Temperature = in.Temperature
		}
		if in.TruckPlate != nil {
			b.TruckPlate = in.TruckPlate
		}
		if in.DeliveryNote != nil {
			b.DeliveryNote = in.DeliveryNote
		}
		if in.ExpiresAt != nil {
			b.ExpiresAt = in.ExpiresAt
		}

		now := time.Now()
		b.UpdatedAt = now

		wasTracked := oldStatus == entity.StatusRecepcion
		isTracked := b.Status == entity.StatusRecepcion
		switch {
		case wasTracked && isTracked:
			if b.ProductID != oldProduct || b.Unit != oldUnit {
				// Cambió la identidad (producto, unidad): restar la contribución
				// antigua y sumar la nueva en la misma transacción.
				if err := stockRepo.ApplyDelta(organizationID, oldProduct, oldUnit, oldQty.Neg()); err != nil {
					return err
				}
				if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, b.Quantity); err != nil {
					return err
				}
			} else if !b.Quantity.Equal(oldQty) {
				if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, b.Quantity.Sub(oldQty)); err != nil {
					return err
				}
			}
		case wasTracked && !isTracked:
			if err := stockRepo.ApplyDelta(organizationID, oldProduct, oldUnit, oldQty.Neg()); err != nil {
				return err
			}
		case !wasTracked && isTracked:
			if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, b.Quantity); err != nil {
				return err
			}
		}

		statusChanged := b.Status != oldStatus
		locationChanged := !equalStrPtr(b.LocationID, oldLocation)
		if statusChanged || locationChanged {
			h := &entity.BatchHistory{
				ID:             uuid.New().String(),
				OrganizationID: organizationID,
				BatchID:        b.ID,
				FromStatus:     oldStatus,
				ToStatus:       b.Status,
				FromLocationID: oldLocation,
				ToLocationID:   b.LocationID,
				Notes:          in.Notes,
				ChangedAt:      now,
				ChangedBy:      userID,
			}
			if err := historyRepo.Create(h); err != nil {
				return err
			}
		}

		if err := batchRepo.Update(b); err != nil {
			return err
		}
		updated = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete elimina un lote administrativamente: borra en cascada sus registros de
// producción, controles de calidad, historial y eventos de salida, y revierte
// su contribución al stock si estaba en RECEPCION. Todo o nada.
func (uc *UseCase) Delete(ctx context.Context, organizationID, batchID string) error {
	return uc.txRunner.RunBatch(ctx, func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		eventRepo repository.TraceabilityEventRepository,
		historyRepo repository.BatchHistoryRepository,
		prodRepo repository.ProductionRecordRepository,
		qualityRepo repository.QualityCheckRepository,
	) error {
		b, err := batchRepo.GetByIDForUpdate(batchID)
		if err != nil {
			return err
		}
		if b == nil || b.OrganizationID != organizationID {
			return domain.ErrNotFound
		}
		if err := prodRepo.DeleteByOutputBatch(b.ID); err != nil {
			return err
		}
		if err := qualityRepo.DeleteByBatch(b.ID); err != nil {
			return err
		}
		if err := historyRepo.DeleteByBatch(b.ID); err != nil {
			return err
		}
		if err := eventRepo.DeleteByOutputBatch(b.ID); err != nil {
			return err
		}
		// No revertir el stock aquí dejaría fantasmas en el agregado de
		// materia prima: es la clase de bug que este borrado debe impedir.
		if b.Status == entity.StatusRecepcion {
			if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, b.Quantity.Neg()); err != nil {
				return err
			}
		}
		return batchRepo.Delete(b.ID)
	})
}

// GetByID devuelve un lote de la organización.
func (uc *UseCase) GetByID(ctx context.Context, organizationID, batchID string) (*entity.Batch, error) {
	b, err := uc.batchRepo.GetByID(batchID)
	if err != nil {
		return nil, err
	}
	if b == nil || b.OrganizationID != organizationID {
		return nil, domain.ErrNotFound
	}
	return b, nil
}

// ListByStatus lista los lotes de la organización en un estado dado.
func (uc *UseCase) ListByStatus(ctx context.Context, organizationID, status string, limit, offset int) ([]*entity.Batch, error) {
	if !entity.IsValidStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	return uc.batchRepo.ListByStatus(organizationID, status, limit, offset)
}

// notarize envía el hito al notario blockchain tras el commit. Un fallo o una
// referencia vacía se registra y se ignora: nunca afecta a la transacción.
func (uc *UseCase) notarize(ctx context.Context, eventID, batchCode, productType, stage string) {
	ref, err := uc.notary.Notarize(ctx, batchCode, productType, stage)
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_code", batchCode).Str("stage", stage).Msg("notarización no disponible")
		return
	}
	if ref == "" {
		return
	}
	if err := uc.eventNotaryRef(eventID, ref); err != nil {
		uc.log.Warn().Err(err).Str("event_id", eventID).Msg("guardar referencia de notario")
	}
}

// eventNotaryRef persiste la referencia fuera de la transacción de dominio.
func (uc *UseCase) eventNotaryRef(eventID, ref string) error {
	return uc.txRunner.RunBatch(context.Background(), func(
		_ repository.BatchRepository,
		_ repository.ProductStockRepository,
		eventRepo repository.TraceabilityEventRepository,
		_ repository.BatchHistoryRepository,
		_ repository.ProductionRecordRepository,
		_ repository.QualityCheckRepository,
	) error {
		return eventRepo.SetNotaryRef(eventID, ref)
	})
}

func equalStrPtr(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
