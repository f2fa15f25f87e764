package production

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
	"github.com/agroconserva/trazabilidad-api/internal/domain/trace"
	"github.com/agroconserva/trazabilidad-api/pkg/normalize"
)

// Result es la salida de una acción de producción. Record es nil para PELADO,
// que re-etiqueta lotes in situ sin consolidar.
type Result struct {
	Record    *entity.ProductionRecord
	Relabeled []*entity.Batch
}

// UseCase es el consolidador de producción: funde N lotes de entrada en un
// lote de salida, registra el manifiesto exacto de consumo y decrementa cada
// entrada bajo bloqueo de fila. PELADO es la excepción: re-etiquetado puro.
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

// Create ejecuta una acción de producción para la etapa indicada.
func (uc *UseCase) Create(ctx context.Context, organizationID, userID string, in dto.CreateProductionRequest) (*Result, error) {
	if !trace.IsValidStage(in.Stage) || len(in.Inputs) == 0 || in.Unit == "" {
		return nil, domain.ErrInvalidInput
	}
	// Un lote no puede aparecer dos veces: cada línea validaría contra la
	// cantidad original y el consumo registrado superaría lo realmente
	// descontado del lote.
	seen := make(map[string]bool, len(in.Inputs))
	for _, line := range in.Inputs {
		if seen[line.BatchID] {
			return nil, fmt.Errorf("%w: lote repetido en las entradas", domain.ErrInvalidInput)
		}
		seen[line.BatchID] = true
	}
	if in.Stage == entity.StagePelado {
		return uc.relabel(ctx, organizationID, userID, in)
	}
	return uc.consolidate(ctx, organizationID, userID, in)
}

// consolidate implementa las etapas que transforman: valida el manifiesto
// contra los lotes bloqueados, crea el lote de salida con el estado de la
// etapa, inserta registro + evento y decrementa cada entrada. Cualquier fallo
// revierte la transacción completa.
func (uc *UseCase) consolidate(ctx context.Context, organizationID, userID string, in dto.CreateProductionRequest) (*Result, error) {
	outputCode := normalize.Code(in.OutputCode)
	if outputCode == "" || !in.OutputQuantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Inputs {
		if line.BatchID == "" || !line.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}
	newStatus, _ := trace.StatusForStage(in.Stage)
	fromStage, _ := trace.PredecessorStage(in.Stage)

	now := time.Now()
	var record *entity.ProductionRecord
	var outputBatch *entity.Batch
	var eventID string

	err := uc.txRunner.RunProduction(ctx, func(
		batchRepo repository.BatchRepository,
		stockRepo repository.ProductStockRepository,
		prodRepo repository.ProductionRecordRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		existing, err := batchRepo.GetByCode(organizationID, outputCode)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: código de lote %s", domain.ErrDuplicate, outputCode)
		}

		// Bloquear y validar cada entrada antes de mutar nada.
		inputs := make([]*entity.Batch, 0, len(in.Inputs))
		total := decimal.Zero
		manifest := make([]entity.ProductionInput, 0, len(in.Inputs))
		recordID := uuid.New().String()
		for _, line := range in.Inputs {
			b, err := batchRepo.GetByIDForUpdate(line.BatchID)
			if err != nil {
				return err
			}
			if b == nil || b.OrganizationID != organizationID {
				return domain.ErrNotFound
			}
			if b.Status != fromStage {
				return fmt.Errorf("%w: lote %s en estado %s, se esperaba %s", domain.ErrInvalidTransition, b.Code, b.Status, fromStage)
			}
			if line.Quantity.GreaterThan(b.Quantity) {
				return fmt.Errorf("%w: lote %s", domain.ErrInsufficientQuantity, b.Code)
			}
			inputs = append(inputs, b)
			total = total.Add(line.Quantity)
			manifest = append(manifest, entity.ProductionInput{
				ID:               uuid.New().String(),
				ProductionID:     recordID,
				InputBatchID:     b.ID,
				InputBatchCode:   b.Code,
				QuantityConsumed: line.Quantity,
			})
		}

		productID := in.ProductID
		if productID == "" {
			productID = inputs[0].ProductID
		}

		outputBatch = &entity.Batch{
			ID:              uuid.New().String(),
			OrganizationID:  organizationID,
			Code:            outputCode,
			ProductID:       productID,
			InitialQuantity: in.OutputQuantity,
			Quantity:        in.OutputQuantity,
			Unit:            in.Unit,
			Status:          newStatus,
			ArrivedAt:       now,
			ProcessedAt:     &now,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := batchRepo.Create(outputBatch); err != nil {
			return err
		}

		record = &entity.ProductionRecord{
			ID:              recordID,
			OrganizationID:  organizationID,
			Stage:           in.Stage,
			OutputBatchID:   outputBatch.ID,
			OutputBatchCode: outputBatch.Code,
			InputQuantity:   total,
			OutputQuantity:  in.OutputQuantity,
			Unit:            in.Unit,
			Notes:           in.Notes,
			Inputs:          manifest,
			PerformedAt:     now,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		if err := prodRepo.Create(record); err != nil {
			return err
		}

		event := &entity.TraceabilityEvent{
			ID:              uuid.New().String(),
			OrganizationID:  organizationID,
			Type:            in.Stage,
			FromStage:       &fromStage,
			ToStage:         &newStatus,
			OutputBatchID:   outputBatch.ID,
			OutputBatchCode: outputBatch.Code,
			Quantity:        in.OutputQuantity,
			Unit:            in.Unit,
			ProductID:       &productID,
			PerformedAt:     now,
			CreatedAt:       now,
			CreatedBy:       userID,
		}
		for i, m := range manifest {
			event.Inputs = append(event.Inputs, entity.EventInput{
				EventID:   event.ID,
				BatchID:   m.InputBatchID,
				BatchCode: m.InputBatchCode,
				Position:  i,
			})
		}
		if err := eventRepo.Create(event); err != nil {
			return err
		}
		eventID = event.ID

		// Decrementar cada entrada; las entradas en RECEPCION arrastran el
		// decremento al stock de materia prima en la misma transacción.
		for i, b := range inputs {
			consumed := manifest[i].QuantityConsumed
			b.Quantity = b.Quantity.Sub(consumed)
			if b.Quantity.IsZero() {
				b.ProcessedAt = &now
			}
			b.UpdatedAt = now
			if err := batchRepo.Update(b); err != nil {
				return err
			}
			if b.Status == entity.StatusRecepcion {
				if err := stockRepo.ApplyDelta(organizationID, b.ProductID, b.Unit, consumed.Neg()); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notarize(ctx, eventID, outputBatch, in.Stage)
	return &Result{Record: record}, nil
}

// relabel implementa PELADO: no crea lote de salida ni consolida cantidades,
// solo cambia in situ el estado de cada lote seleccionado a PELADO. Esta
// asimetría es comportamiento de dominio intencional, no un atajo.
func (uc *UseCase) relabel(ctx context.Context, organizationID, userID string, in dto.CreateProductionRequest) (*Result, error) {
	fromStage, _ := trace.PredecessorStage(entity.StagePelado)
	now := time.Now()
	var relabeled []*entity.Batch
	var eventIDs []string

	err := uc.txRunner.RunProduction(ctx, func(
		batchRepo repository.BatchRepository,
		_ repository.ProductStockRepository,
		_ repository.ProductionRecordRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		relabeled = relabeled[:0]
		eventIDs = eventIDs[:0]
		for _, line := range in.Inputs {
			b, err := batchRepo.GetByIDForUpdate(line.BatchID)
			if err != nil {
				return err
			}
			if b == nil || b.OrganizationID != organizationID {
				return domain.ErrNotFound
			}
			if b.Status != fromStage {
				return fmt.Errorf("%w: lote %s en estado %s, se esperaba %s", domain.ErrInvalidTransition, b.Code, b.Status, fromStage)
			}
			b.Status = entity.StatusPelado
			b.ProcessedAt = &now
			b.UpdatedAt = now
			if err := batchRepo.Update(b); err != nil {
				return err
			}

			toStage := entity.StatusPelado
			event := &entity.TraceabilityEvent{
				ID:              uuid.New().String(),
				OrganizationID:  organizationID,
				Type:            entity.EventPelado,
				FromStage:       &fromStage,
				ToStage:         &toStage,
				Inputs:          []entity.EventInput{{BatchID: b.ID, BatchCode: b.Code}},
				OutputBatchID:   b.ID,
				OutputBatchCode: b.Code,
				Quantity:        b.Quantity,
				Unit:            b.Unit,
				ProductID:       &b.ProductID,
				PerformedAt:     now,
				CreatedAt:       now,
				CreatedBy:       userID,
			}
			event.Inputs[0].EventID = event.ID
			if err := eventRepo.Create(event); err != nil {
				return err
			}
			eventIDs = append(eventIDs, event.ID)
			relabeled = append(relabeled, b)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for i, b := range relabeled {
		uc.notarize(ctx, eventIDs[i], b, entity.StagePelado)
	}
	return &Result{Relabeled: relabeled}, nil
}

// notarize envía el hito al notario tras el commit y guarda la referencia
// opaca en el evento si la hay. Fallos se registran y se ignoran: nunca
// condicionan la transacción de dominio ya confirmada.
func (uc *UseCase) notarize(ctx context.Context, eventID string, b *entity.Batch, stage string) {
	productType := ""
	if p, err := uc.productRepo.GetByID(b.ProductID); err == nil && p != nil {
		productType = p.Type
	}
	ref, err := uc.notary.Notarize(ctx, b.Code, productType, stage)
	if err != nil {
		uc.log.Warn().Err(err).Str("batch_code", b.Code).Str("stage", stage).Msg("notarización no disponible")
		return
	}
	if ref == "" {
		return
	}
	err = uc.txRunner.RunProduction(context.Background(), func(
		_ repository.BatchRepository,
		_ repository.ProductStockRepository,
		_ repository.ProductionRecordRepository,
		eventRepo repository.TraceabilityEventRepository,
	) error {
		return eventRepo.SetNotaryRef(eventID, ref)
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("event_id", eventID).Msg("guardar referencia de notario")
	}
}
