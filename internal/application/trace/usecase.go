package trace

import (
	"context"

	"github.com/agroconserva/trazabilidad-api/internal/application/dto"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/repository"
	domtrace "github.com/agroconserva/trazabilidad-api/internal/domain/trace"
)

// UseCase reconstruye cadenas de trazabilidad recorriendo el registro de
// eventos hacia atrás por la topología fija de siete etapas. Solo lee.
type UseCase struct {
	eventRepo repository.TraceabilityEventRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(eventRepo repository.TraceabilityEventRepository) *UseCase {
	return &UseCase{eventRepo: eventRepo}
}

// GetChain reconstruye la cadena completa de una expedición: desde el evento
// EXPEDICION ancla, recorre CALIDAD → ESTERILIZADO → ENVASADO → PELADO →
// ASADO → RECEPCION. Cada etapa busca eventos cuyo lote de salida esté en el
// conjunto de códigos acumulado; las uniones de códigos de entrada alimentan
// la etapa siguiente. Una etapa obligatoria sin eventos detiene el recorrido y
// devuelve una cadena parcial (resultado válido para lotes anteriores a la
// instrumentación completa, nunca un error). CALIDAD y PELADO son opcionales
// y no alteran el conjunto de búsqueda.
func (uc *UseCase) GetChain(ctx context.Context, organizationID, shipmentID string) ([]dto.TraceStage, error) {
	anchor, err := uc.eventRepo.FindByShipment(organizationID, shipmentID)
	if err != nil {
		return nil, err
	}
	if anchor == nil {
		return []dto.TraceStage{}, nil
	}

	chain := []dto.TraceStage{{
		Stage:  entity.EventExpedicion,
		Events: []dto.TraceEvent{toTraceEvent(anchor)},
	}}

	// Acumulador del recorrido: el conjunto de códigos de búsqueda arranca
	// en el lote expedido.
	searchCodes := []string{anchor.OutputBatchCode}

	for _, step := range domtrace.ChainPlan() {
		events, err := uc.eventRepo.ListByTypeAndOutputCodes(organizationID, step.EventType, searchCodes)
		if err != nil {
			return nil, err
		}
		if len(events) == 0 {
			if step.Optional {
				continue
			}
			break
		}
		stage := dto.TraceStage{Stage: step.EventType}
		next := make([]string, 0, len(events))
		seen := make(map[string]bool)
		for _, ev := range events {
			stage.Events = append(stage.Events, toTraceEvent(ev))
			for _, code := range ev.InputCodes() {
				if !seen[code] {
					seen[code] = true
					next = append(next, code)
				}
			}
		}
		chain = append(chain, stage)
		if !step.Optional {
			searchCodes = next
			if len(searchCodes) == 0 {
				break
			}
		}
	}
	return chain, nil
}

func toTraceEvent(ev *entity.TraceabilityEvent) dto.TraceEvent {
	return dto.TraceEvent{
		ID:              ev.ID,
		Type:            ev.Type,
		FromStage:       ev.FromStage,
		ToStage:         ev.ToStage,
		InputBatchCodes: ev.InputCodes(),
		OutputBatchCode: ev.OutputBatchCode,
		Quantity:        ev.Quantity,
		Unit:            ev.Unit,
		SupplierID:      ev.SupplierID,
		ProductID:       ev.ProductID,
		QualityApproved: ev.QualityApproved,
		CustomerID:      ev.CustomerID,
		DeliveryNote:    ev.DeliveryNote,
		Temperature:     ev.Temperature,
		NotaryRef:       ev.NotaryRef,
		PerformedAt:     ev.PerformedAt,
	}
}
