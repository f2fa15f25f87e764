package trace_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconserva/trazabilidad-api/internal/application/apptest"
	"github.com/agroconserva/trazabilidad-api/internal/application/trace"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

const (
	testOrgID      = "org-1"
	testShipmentID = "ship-1"
)

// seedEvent añade un evento al registro con las entradas indicadas.
func seedEvent(t *testing.T, repo *apptest.MemEventRepo, id, eventType, outputCode string, inputCodes []string, at time.Time) {
	t.Helper()
	ev := &entity.TraceabilityEvent{
		ID:              id,
		OrganizationID:  testOrgID,
		Type:            eventType,
		OutputBatchID:   "batch-" + outputCode,
		OutputBatchCode: outputCode,
		Quantity:        decimal.NewFromInt(100),
		Unit:            "kg",
		PerformedAt:     at,
	}
	for i, code := range inputCodes {
		ev.Inputs = append(ev.Inputs, entity.EventInput{
			EventID: id, BatchID: "batch-" + code, BatchCode: code, Position: i,
		})
	}
	require.NoError(t, repo.Create(ev))
}

func seedAnchor(t *testing.T, repo *apptest.MemEventRepo, outputCode string, at time.Time) {
	t.Helper()
	shipID := testShipmentID
	ev := &entity.TraceabilityEvent{
		ID:              "ev-exp",
		OrganizationID:  testOrgID,
		Type:            entity.EventExpedicion,
		OutputBatchID:   "batch-" + outputCode,
		OutputBatchCode: outputCode,
		Inputs:          []entity.EventInput{{EventID: "ev-exp", BatchID: "batch-" + outputCode, BatchCode: outputCode}},
		Quantity:        decimal.NewFromInt(100),
		Unit:            "kg",
		ShipmentID:      &shipID,
		PerformedAt:     at,
	}
	require.NoError(t, repo.Create(ev))
}

func TestCadenaCompleta_SieteEtapas(t *testing.T) {
	events := apptest.NewMemEventRepo()
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	// Historia real de producción, de origen a expedición:
	// REC-1 + REC-2 → (ASADO) AS-1 → (PELADO in situ) AS-1 → (ENVASADO) ENV-1
	// → (ESTERILIZADO) CONS-1 → (CALIDAD) CONS-1 → (EXPEDICION) CONS-1.
	seedEvent(t, events, "ev-rec1", entity.EventRecepcion, "REC-1", nil, t0)
	seedEvent(t, events, "ev-rec2", entity.EventRecepcion, "REC-2", nil, t0.Add(time.Hour))
	seedEvent(t, events, "ev-asado", entity.EventAsado, "AS-1", []string{"REC-1", "REC-2"}, t0.Add(24*time.Hour))
	seedEvent(t, events, "ev-pelado", entity.EventPelado, "AS-1", []string{"AS-1"}, t0.Add(48*time.Hour))
	seedEvent(t, events, "ev-env", entity.EventEnvasado, "ENV-1", []string{"AS-1"}, t0.Add(72*time.Hour))
	seedEvent(t, events, "ev-est", entity.EventEsterilizado, "CONS-1", []string{"ENV-1"}, t0.Add(96*time.Hour))
	seedEvent(t, events, "ev-cal", entity.EventCalidad, "CONS-1", []string{"CONS-1"}, t0.Add(120*time.Hour))
	seedAnchor(t, events, "CONS-1", t0.Add(144*time.Hour))

	uc := trace.NewUseCase(events)
	chain, err := uc.GetChain(context.Background(), testOrgID, testShipmentID)
	require.NoError(t, err)

	require.Len(t, chain, 7)
	var types []string
	for _, stage := range chain {
		types = append(types, stage.Stage)
	}
	assert.Equal(t, []string{
		entity.EventExpedicion, entity.EventCalidad, entity.EventEsterilizado,
		entity.EventEnvasado, entity.EventPelado, entity.EventAsado, entity.EventRecepcion,
	}, types)

	// La etapa ASADO enlaza con sus dos lotes de origen.
	asado := chain[5]
	require.Len(t, asado.Events, 1)
	assert.Equal(t, []string{"REC-1", "REC-2"}, asado.Events[0].InputBatchCodes)

	// La etapa RECEPCION recoge ambos orígenes.
	recepcion := chain[6]
	assert.Len(t, recepcion.Events, 2)
}

func TestCadena_SinCalidadNiPeladoSigueCompleta(t *testing.T) {
	events := apptest.NewMemEventRepo()
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	// Lote sin decisión de calidad registrada y sin re-etiquetado PELADO:
	// los pasos opcionales se saltan sin romper el recorrido.
	seedEvent(t, events, "ev-rec", entity.EventRecepcion, "REC-1", nil, t0)
	seedEvent(t, events, "ev-asado", entity.EventAsado, "AS-1", []string{"REC-1"}, t0.Add(time.Hour))
	seedEvent(t, events, "ev-env", entity.EventEnvasado, "ENV-1", []string{"AS-1"}, t0.Add(2*time.Hour))
	seedEvent(t, events, "ev-est", entity.EventEsterilizado, "CONS-1", []string{"ENV-1"}, t0.Add(3*time.Hour))
	seedAnchor(t, events, "CONS-1", t0.Add(4*time.Hour))

	uc := trace.NewUseCase(events)
	chain, err := uc.GetChain(context.Background(), testOrgID, testShipmentID)
	require.NoError(t, err)

	var types []string
	for _, stage := range chain {
		types = append(types, stage.Stage)
	}
	assert.Equal(t, []string{
		entity.EventExpedicion, entity.EventEsterilizado,
		entity.EventEnvasado, entity.EventAsado, entity.EventRecepcion,
	}, types)
}

func TestCadena_ParcialCuandoFaltaUnaEtapaObligatoria(t *testing.T) {
	events := apptest.NewMemEventRepo()
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	// Lote anterior a la instrumentación completa: solo existe el ancla.
	seedAnchor(t, events, "CONS-1", t0)

	uc := trace.NewUseCase(events)
	chain, err := uc.GetChain(context.Background(), testOrgID, testShipmentID)
	require.NoError(t, err)

	// Cadena parcial válida, nunca un error.
	require.Len(t, chain, 1)
	assert.Equal(t, entity.EventExpedicion, chain[0].Stage)
}

func TestCadena_ParcialSeDetieneEnLaEtapaQueFalta(t *testing.T) {
	events := apptest.NewMemEventRepo()
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)

	// Hay ESTERILIZADO y ENVASADO pero no ASADO: el recorrido se detiene ahí
	// aunque exista un evento RECEPCION suelto.
	seedEvent(t, events, "ev-rec", entity.EventRecepcion, "REC-1", nil, t0)
	seedEvent(t, events, "ev-env", entity.EventEnvasado, "ENV-1", []string{"AS-1"}, t0.Add(time.Hour))
	seedEvent(t, events, "ev-est", entity.EventEsterilizado, "CONS-1", []string{"ENV-1"}, t0.Add(2*time.Hour))
	seedAnchor(t, events, "CONS-1", t0.Add(3*time.Hour))

	uc := trace.NewUseCase(events)
	chain, err := uc.GetChain(context.Background(), testOrgID, testShipmentID)
	require.NoError(t, err)

	var types []string
	for _, stage := range chain {
		types = append(types, stage.Stage)
	}
	assert.Equal(t, []string{
		entity.EventExpedicion, entity.EventEsterilizado, entity.EventEnvasado,
	}, types)
}

func TestCadena_SinAnclaDevuelveVacia(t *testing.T) {
	uc := trace.NewUseCase(apptest.NewMemEventRepo())
	chain, err := uc.GetChain(context.Background(), testOrgID, "ship-desconocido")
	require.NoError(t, err)
	assert.NotNil(t, chain)
	assert.Empty(t, chain)
}

func TestCadena_NoMezclaOrganizaciones(t *testing.T) {
	events := apptest.NewMemEventRepo()
	t0 := time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	seedAnchor(t, events, "CONS-1", t0)

	// El mismo código de lote en otra organización no contamina la cadena.
	other := &entity.TraceabilityEvent{
		ID: "ev-ajeno", OrganizationID: "org-ajena", Type: entity.EventEsterilizado,
		OutputBatchID: "x", OutputBatchCode: "CONS-1",
		Quantity: decimal.NewFromInt(1), Unit: "kg", PerformedAt: t0,
	}
	require.NoError(t, events.Create(other))

	uc := trace.NewUseCase(events)
	chain, err := uc.GetChain(context.Background(), testOrgID, testShipmentID)
	require.NoError(t, err)
	require.Len(t, chain, 1)
	assert.Equal(t, entity.EventExpedicion, chain[0].Stage)
}
