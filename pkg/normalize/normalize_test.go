package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agroconserva/trazabilidad-api/pkg/normalize"
)

func TestCode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"lote-ñora 01 ", "LOTE-NORA 01"},
		{"  rec-2026-001", "REC-2026-001"},
		{"Pimentón-Asado", "PIMENTON-ASADO"},
		{"ABC", "ABC"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalize.Code(tt.in), tt.in)
	}
}

func TestSearch(t *testing.T) {
	assert.Equal(t, "pimenton asado", normalize.Search(" Pimentón Asado "))
	assert.Equal(t, "nora", normalize.Search("ÑORA"))
}
