package quality

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/application/ports"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
)

// resultStatus mapea el valor de la decisión → estado resultante del lote.
var resultStatus = map[int]string{
	entity.QualityApproved: entity.StatusAprobado,
	entity.QualityPending:  entity.StatusRetenido,
	entity.QualityRejected: entity.StatusBloqueado,
}

// UseCase registra decisiones de calidad sobre lotes esterilizados.
// Aprobado fija la fecha de caducidad con el valor del decisor (la vida útil
// del producto es solo informativa, nunca se calcula aquí).
type UseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	notary      ports.NotarySink
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, productRepo repository.ProductRepository, notary ports.NotarySink, log zerolog.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, productRepo: productRepo, notary: notary, log: log}
}

// Create aplica una decisión de calidad: 1 → APROBADO (caducidad obligatoria),
// 0 → RETENIDO, -1 → BLOQUEADO. Escribe el control y el evento CALIDAD con el
// flag de aprobación y el enlace al control.
func (uc *UseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateQualityCheckRequest) (*entity.QualityCheck, error) {
	newStatus, ok := resultStatus[in.Approved]
	if !ok || in.BatchID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Approved == entity.QualityApproved && in.ExpiresAt == nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	var check *entity.QualityCheck
	var batch *entity.Batch
	var eventID string

	err := uc.txRunner.RunQuality(ctx, func(
		batchRepo repository.BatchRepository,
		qualityRepo repository.QualityCheckRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		b, err := batchRepo.GetByIDForUpdate(in.BatchID)
		if err != nil {
			return err
		}
		if b == nil || b.OrganizationID != organizationID {
			return domain.ErrNotFound
		}
		// Solo lotes esterilizados (o retenidos pendientes de re-decisión).
		if b.Status != entity.StatusEsterilizado && b.Status != entity.StatusRetenido {
			return domain.ErrInvalidTransition
		}

		fromStatus := b.Status
		b.Status = newStatus
		if in.Approved == entity.QualityApproved {
			b.ExpiresAt = in.ExpiresAt
		}
		b.UpdatedAt = now
		if err := batchRepo.Update(b); err != nil {
			return err
		}

		check = &entity.QualityCheck{
			ID:             uuid.New().String(),
			OrganizationID: organizationID,
			BatchID:        b.ID,
			BatchCode:      b.Code,
			Result:         in.Approved,
			Notes:          in.Notes,
			ExpiresAt:      in.ExpiresAt,
			DecidedAt:      now,
			CreatedAt:      now,
			CreatedBy:      userID,
		}
		if err := qualityRepo.Create(check); err != nil {
			return err
		}

		approved := in.Approved == entity.QualityApproved
		event := &entity.TraceabilityEvent{
			ID:              uuid.New().String(),
			OrganizationID:  organizationID,
			Type:            entity.EventCalidad,
			FromStage:       &fromStatus,
			ToStage:         &newStatus,
			Inputs:          []entity.EventInput{{BatchID: b.ID, BatchCode: b.Code}},
			OutputBatchID:   b.ID,
			OutputBatchCode: b.Code,
			Quantity:        b.Quantity,
			Unit:            b.Unit,
			ProductID:       &b.ProductID,
			QualityApproved: &approved,
			QualityCheckID:  &check.ID,
			PerformedAt:     now,
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
		return nil, err
	}

	uc.notarize(ctx, eventID, batch)
	return check, nil
}

// notarize registra el hito CALIDAD en el notario; no condiciona la transacción.
func (uc *UseCase) notarize(ctx context.Context, eventID string, b *entity.Batch) {
	productType := ""
	if p, err := uc.productRepo.GetByID(b.ProductID); err == nil && p != nil {
		productType = p.Type
	}
	ref, err := uc.notary.Notarize(ctx, b.Code, productType, entity.EventCalidad)
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_code", b.Code).Msg("notarización no disponible")
		return
	}
	if ref == "" {
		return
	}
	err = uc.txRunner.RunQuality(context.Background(), func(
		_ repository.BatchRepository,
		_ repository.QualityCheckRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		return eventRepo.SetNotaryRef(eventID, ref)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("event_id", eventID).Msg("guardar referencia de notario")
	}
}
