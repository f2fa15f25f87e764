package trace

import "github.com/agroconserva/trazabilidad-api/internal/domain/entity"

// stageStatus mapea etapa de producción → estado resultante del lote de salida.
var stageStatus = map[string]string{
	entity.StageAsado:        entity.StatusAsado,
	entity.StagePelado:       entity.StatusPelado,
	entity.StageEnvasado:     entity.StatusEnvasado,
	entity.StageEsterilizado: entity.StatusEsterilizado,
}

// predecessor mapea etapa de producción → etapa de la que provienen sus entradas.
var predecessor = map[string]string{
	entity.StageAsado:        entity.StatusRecepcion,
	entity.StagePelado:       entity.StatusAsado,
	entity.StageEnvasado:     entity.StatusPelado,
	entity.StageEsterilizado: entity.StatusEnvasado,
}

// StatusForStage devuelve el estado que toma el lote de salida de una etapa.
func StatusForStage(stage string) (string, bool) {
	s, ok := stageStatus[stage]
	return s, ok
}

// PredecessorStage devuelve la etapa origen de las entradas de una etapa.
func PredecessorStage(stage string) (string, bool) {
	p, ok := predecessor[stage]
	return p, ok
}

// IsValidStage verifica que la etapa pertenece al pipeline de producción.
func IsValidStage(stage string) bool {
	_, ok := stageStatus[stage]
	return ok
}

// statusEvent mapea estado de creación de lote → tipo de evento de trazabilidad.
// Solo los estados del pipeline generan evento en el alta directa de lotes.
var statusEvent = map[string]string{
	entity.StatusRecepcion:    entity.EventRecepcion,
	entity.StatusAsado:        entity.EventAsado,
	entity.StatusPelado:       entity.EventPelado,
	entity.StatusEnvasado:     entity.EventEnvasado,
	entity.StatusEsterilizado: entity.EventEsterilizado,
}

// EventForStatus devuelve el tipo de evento que corresponde al alta de un lote
// en un estado dado. false para estados que no admiten alta directa.
func EventForStatus(status string) (string, bool) {
	e, ok := statusEvent[status]
	return e, ok
}

// transitions define las transiciones de estado permitidas del ciclo de vida.
var transitions = map[string][]string{
	entity.StatusRecepcion:    {entity.StatusAsado},
	entity.StatusAsado:        {entity.StatusPelado},
	entity.StatusPelado:       {entity.StatusEnvasado},
	entity.StatusEnvasado:     {entity.StatusEsterilizado},
	entity.StatusEsterilizado: {entity.StatusAprobado, entity.StatusRetenido, entity.StatusBloqueado},
	entity.StatusRetenido:     {entity.StatusAprobado, entity.StatusRetenido, entity.StatusBloqueado},
	entity.StatusAprobado:     {entity.StatusExpedido},
	entity.StatusBloqueado:    {},
	entity.StatusExpedido:     {},
}

// CanTransition indica si el cambio de estado from → to es válido.
// Quedarse en el mismo estado siempre es válido (ediciones sin cambio de etapa).
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ChainStep describe un paso del recorrido hacia atrás de la cadena de trazabilidad.
// Optional: si no hay eventos, el recorrido continúa sin modificar el conjunto de
// búsqueda (CALIDAD puede faltar; PELADO es un re-etiquetado que conserva códigos).
// Los pasos no opcionales detienen el recorrido cuando no encuentran eventos,
// produciendo una cadena parcial válida.
type ChainStep struct {
	EventType string
	Optional  bool
}

// ChainPlan es la topología fija de siete etapas que recorre el constructor de cadenas,
// desde la expedición hacia el origen de materia prima.
func ChainPlan() []ChainStep {
	return []ChainStep{
		{EventType: entity.EventCalidad, Optional: true},
		{EventType: entity.EventEsterilizado},
		{EventType: entity.EventEnvasado},
		{EventType: entity.EventPelado, Optional: true},
		{EventType: entity.EventAsado},
		{EventType: entity.EventRecepcion},
	}
}
