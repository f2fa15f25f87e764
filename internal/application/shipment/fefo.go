package shipment

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/agroconserva/trazabilidad-api/internal/domain"
	"github.com/agroconserva/trazabilidad-api/internal/domain/entity"
)

// RankFEFO ordena lotes aprobados por días hasta caducidad ascendente
// (first-expired-first-out). Los lotes sin fecha de caducidad llevan el
// centinela y ordenan al final. El orden es un requisito duro para las
// pantallas de expedición y las auditorías: primero lo que antes caduca.
// El allocator no auto-selecciona; solo produce la lista clasificada.
func RankFEFO(batches []*entity.Batch, now time.Time) []*entity.Batch {
	ranked := make([]*entity.Batch, len(batches))
	copy(ranked, batches)
	sort.SliceStable(ranked, func(i, j int) bool {
		di, dj := ranked[i].DaysToExpiry(now), ranked[j].DaysToExpiry(now)
		if di != dj {
			return di < dj
		}
		return ranked[i].Code < ranked[j].Code
	})
	return ranked
}

// ValidateAllocation valida una cantidad elegida por el caller contra un lote
// candidato: 0 < elegida <= disponible.
func ValidateAllocation(b *entity.Batch, chosen decimal.Decimal) error {
	if !chosen.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if chosen.GreaterThan(b.Quantity) {
		return domain.ErrInsufficientQuantity
	}
	return nil
}
