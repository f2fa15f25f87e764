package shipment_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agroconserva/trazabilidad-api/internal/application/shipment"
	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

func batchExpiring(code string, expires *time.Time) *entity.Batch {
	return &entity.Batch{
		Code:      code,
		Quantity:  decimal.NewFromInt(100),
		Status:    entity.StatusAprobado,
		ExpiresAt: expires,
	}
}

func TestRankFEFO_PrimeroLoQueAntesCaduca(t *testing.T) {
	now := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	in3 := now.Add(3 * 24 * time.Hour)
	in10 := now.Add(10 * 24 * time.Hour)
	in30 := now.Add(30 * 24 * time.Hour)

	ranked := shipment.RankFEFO([]*entity.Batch{
		batchExpiring("C-LARGO", &in30),
		batchExpiring("A-CORTO", &in3),
		batchExpiring("B-MEDIO", &in10),
	}, now)

	require.Len(t, ranked, 3)
	assert.Equal(t, "A-CORTO", ranked[0].Code)
	assert.Equal(t, "B-MEDIO", ranked[1].Code)
	assert.Equal(t, "C-LARGO", ranked[2].Code)
}

func TestRankFEFO_SinCaducidadOrdenaAlFinal(t *testing.T) {
	now := time.Now()
	soon := now.Add(48 * time.Hour)

	ranked := shipment.RankFEFO([]*entity.Batch{
		batchExpiring("SIN-FECHA", nil),
		batchExpiring("CON-FECHA", &soon),
	}, now)

	require.Len(t, ranked, 2)
	assert.Equal(t, "CON-FECHA", ranked[0].Code)
	assert.Equal(t, "SIN-FECHA", ranked[1].Code)
	assert.Equal(t, entity.NoExpirySentinel, ranked[1].DaysToExpiry(now))
}

func TestRankFEFO_EmpateDesempataporCodigo(t *testing.T) {
	now := time.Now()
	same := now.Add(5 * 24 * time.Hour)

	ranked := shipment.RankFEFO([]*entity.Batch{
		batchExpiring("LOTE-B", &same),
		batchExpiring("LOTE-A", &same),
	}, now)

	assert.Equal(t, "LOTE-A", ranked[0].Code)
	assert.Equal(t, "LOTE-B", ranked[1].Code)
}

func TestRankFEFO_NoMutaLaEntrada(t *testing.T) {
	now := time.Now()
	soon := now.Add(24 * time.Hour)
	later := now.Add(240 * time.Hour)

	original := []*entity.Batch{
		batchExpiring("Z", &later),
		batchExpiring("A", &soon),
	}
	_ = shipment.RankFEFO(original, now)
	assert.Equal(t, "Z", original[0].Code)
}

func TestValidateAllocation(t *testing.T) {
	b := &entity.Batch{Code: "L1", Quantity: decimal.NewFromInt(50)}

	assert.NoError(t, shipment.ValidateAllocation(b, decimal.NewFromInt(50)))
	assert.NoError(t, shipment.ValidateAllocation(b, decimal.NewFromFloat(0.001)))

	err := shipment.ValidateAllocation(b, decimal.Zero)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = shipment.ValidateAllocation(b, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = shipment.ValidateAllocation(b, decimal.NewFromFloat(50.001))
	assert.ErrorIs(t, err, domain.ErrInsufficientQuantity)
}
