package csvfile

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

var quitaAcentos = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizarEtiqueta quita acentos y colapsa espacios, para comparar
// encabezados y etiquetas sin depender de la convención del archivo
// ("Actividad económica" y "Actividad Economica" conviven en la fuente).
// Toda variante de la etiqueta de actividad se reduce a la forma canónica
// del catálogo sin importar mayúsculas.
func NormalizarEtiqueta(s string) string {
	out, _, err := transform.String(quitaAcentos, strings.TrimSpace(s))
	if err != nil {
		out = s
	}
	out = strings.Join(strings.Fields(out), " ")
	if strings.EqualFold(out, entity.ColumnaActividad) {
		return entity.ColumnaActividad
	}
	return out
}

// EsColumnaActividad reconoce la columna de actividad económica con o sin
// acentos y sin distinguir mayúsculas.
func EsColumnaActividad(encabezado string) bool {
	return NormalizarEtiqueta(encabezado) == entity.ColumnaActividad
}
