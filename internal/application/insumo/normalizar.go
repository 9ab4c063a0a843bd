package insumo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// normalizador quita marcas diacríticas (NFD → sin Mn → NFC) para que
// "Anestésico" y "Anestesico" cuenten como el mismo nombre.
var normalizador = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizarNombre canonicaliza un nombre de insumo para el chequeo de
// unicidad: trim, sin acentos, minúsculas y espacios internos colapsados.
func NormalizarNombre(nombre string) string {
	s := strings.TrimSpace(nombre)
	if plano, _, err := transform.String(normalizador, s); err == nil {
		s = plano
	}
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}
