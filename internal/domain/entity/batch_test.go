package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

func TestDaysToExpiry_RedondeaHaciaArriba(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expires time.Time
		want    int
	}{
		{"media hora cuenta como un día", now.Add(30 * time.Minute), 1},
		{"23 horas cuenta como un día", now.Add(23 * time.Hour), 1},
		{"exactamente 24 horas es un día", now.Add(24 * time.Hour), 1},
		{"25 horas son dos días", now.Add(25 * time.Hour), 2},
		{"caducado hace dos días es negativo", now.Add(-48 * time.Hour), -2},
		{"caduca justo ahora es cero", now, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &entity.Batch{ExpiresAt: &tt.expires}
			assert.Equal(t, tt.want, b.DaysToExpiry(now))
		})
	}
}

func TestDaysToExpiry_SinCaducidadDevuelveCentinela(t *testing.T) {
	b := &entity.Batch{}
	assert.Equal(t, entity.NoExpirySentinel, b.DaysToExpiry(time.Now()))
}

func TestIsValidStatus(t *testing.T) {
	for _, s := range []string{
		entity.StatusRecepcion, entity.StatusAsado, entity.StatusPelado,
		entity.StatusEnvasado, entity.StatusEsterilizado, entity.StatusAprobado,
		entity.StatusRetenido, entity.StatusBloqueado, entity.StatusExpedido,
	} {
		assert.True(t, entity.IsValidStatus(s), s)
	}
	assert.False(t, entity.IsValidStatus("COCIDO"))
	assert.False(t, entity.IsValidStatus("recepcion")) // el enum es sensible a mayúsculas
	assert.False(t, entity.IsValidStatus(""))
}
