package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// removeDiacritics descompone (NFD), elimina marcas combinantes y recompone (NFC).
var removeDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Code normaliza un código de lote o producto: recorta espacios, elimina
// diacríticos y pasa a mayúsculas. "lote-ñora 01 " → "LOTE-NORA 01".
func Code(s string) string {
	s = strings.TrimSpace(s)
	if out, _, err := transform.String(removeDiacritics, s); err == nil {
		s = out
	}
	return strings.ToUpper(s)
}

// Search normaliza un término de búsqueda: minúsculas y sin diacríticos,
// para comparaciones insensibles a acentos.
func Search(s string) string {
	s = strings.TrimSpace(s)
	if out, _, err := transform.String(removeDiacritics, s); err == nil {
		s = out
	}
	return strings.ToLower(s)
}
