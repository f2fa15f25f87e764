package trace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
	"github.com/agroconserva/trazabilidad-api/internal/domain/trace"
)

func TestCanTransition_CaminoFeliz(t *testing.T) {
	// El pipeline completo, etapa a etapa.
	path := []string{
		entity.StatusRecepcion, entity.StatusAsado, entity.StatusPelado,
		entity.StatusEnvasado, entity.StatusEsterilizado, entity.StatusAprobado,
		entity.StatusExpedido,
	}
	for i := 0; i < len(path)-1; i++ {
		assert.True(t, trace.CanTransition(path[i], path[i+1]), "%s → %s", path[i], path[i+1])
	}
}

func TestCanTransition_DecisionesDeCalidad(t *testing.T) {
	assert.True(t, trace.CanTransition(entity.StatusEsterilizado, entity.StatusRetenido))
	assert.True(t, trace.CanTransition(entity.StatusEsterilizado, entity.StatusBloqueado))
	// RETENIDO admite re-decisión en cualquier sentido.
	assert.True(t, trace.CanTransition(entity.StatusRetenido, entity.StatusAprobado))
	assert.True(t, trace.CanTransition(entity.StatusRetenido, entity.StatusBloqueado))
	assert.True(t, trace.CanTransition(entity.StatusRetenido, entity.StatusRetenido))
}

func TestCanTransition_Prohibidas(t *testing.T) {
	// No se salta etapas ni se retrocede.
	assert.False(t, trace.CanTransition(entity.StatusRecepcion, entity.StatusPelado))
	assert.False(t, trace.CanTransition(entity.StatusAsado, entity.StatusRecepcion))
	assert.False(t, trace.CanTransition(entity.StatusRecepcion, entity.StatusExpedido))
	// BLOQUEADO y EXPEDIDO son terminales.
	assert.False(t, trace.CanTransition(entity.StatusBloqueado, entity.StatusAprobado))
	assert.False(t, trace.CanTransition(entity.StatusExpedido, entity.StatusAprobado))
}

func TestCanTransition_MismoEstadoSiempreValido(t *testing.T) {
	for _, s := range []string{entity.StatusRecepcion, entity.StatusBloqueado, entity.StatusExpedido} {
		assert.True(t, trace.CanTransition(s, s), s)
	}
}

func TestStatusForStage(t *testing.T) {
	got, ok := trace.StatusForStage(entity.StageEsterilizado)
	require.True(t, ok)
	assert.Equal(t, entity.StatusEsterilizado, got)

	_, ok = trace.StatusForStage("CALIDAD") // calidad no es etapa de producción
	assert.False(t, ok)
}

func TestPredecessorStage(t *testing.T) {
	tests := map[string]string{
		entity.StageAsado:        entity.StatusRecepcion,
		entity.StagePelado:       entity.StatusAsado,
		entity.StageEnvasado:     entity.StatusPelado,
		entity.StageEsterilizado: entity.StatusEnvasado,
	}
	for stage, want := range tests {
		got, ok := trace.PredecessorStage(stage)
		require.True(t, ok, stage)
		assert.Equal(t, want, got, stage)
	}
}

func TestEventForStatus(t *testing.T) {
	got, ok := trace.EventForStatus(entity.StatusRecepcion)
	require.True(t, ok)
	assert.Equal(t, entity.EventRecepcion, got)

	// Los estados de decisión de calidad no admiten alta directa de lotes.
	for _, s := range []string{entity.StatusAprobado, entity.StatusRetenido, entity.StatusBloqueado, entity.StatusExpedido} {
		_, ok := trace.EventForStatus(s)
		assert.False(t, ok, s)
	}
}

func TestChainPlan_TopologiaFija(t *testing.T) {
	plan := trace.ChainPlan()
	require.Len(t, plan, 6)

	types := make([]string, len(plan))
	for i, step := range plan {
		types[i] = step.EventType
	}
	assert.Equal(t, []string{
		entity.EventCalidad, entity.EventEsterilizado, entity.EventEnvasado,
		entity.EventPelado, entity.EventAsado, entity.EventRecepcion,
	}, types)

	// CALIDAD y PELADO son los únicos pasos opcionales.
	for _, step := range plan {
		optional := step.EventType == entity.EventCalidad || step.EventType == entity.EventPelado
		assert.Equal(t, optional, step.Optional, step.EventType)
	}
}
