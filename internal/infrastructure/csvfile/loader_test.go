package csvfile_test

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/infrastructure/csvfile"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func cargar(t *testing.T, csv string) (*entity.Tabulado, []entity.ErrorParseo) {
	t.Helper()
	c := csvfile.NuevoCargador(entity.CeldaConfidencial)
	tab, errores, err := c.Cargar(strings.NewReader(csv), "prueba.csv", "009 Ciudad Madero")
	require.NoError(t, err)
	return tab, errores
}

func col(variable string, anio int) entity.ColumnaVariable {
	return entity.ColumnaVariable{Variable: variable, Anio: anio}
}

// ──────────────────────────────────────────────────────────────────────────────
// Carga de tabulados anchos
// ──────────────────────────────────────────────────────────────────────────────

func TestCargar_TabuladoBasico(t *testing.T) {
	tab, errores := cargar(t, `Actividad Economica,A111A_2018,A111A_2023
Sector 21 Minería,C,N/A
Sector 31-33 Industrias manufactureras,19407.405,21000.5
Total 009 Ciudad Madero,"19,407.405",21000.5
`)
	assert.Empty(t, errores)
	assert.Equal(t, "009 Ciudad Madero", tab.Geografia)
	require.Len(t, tab.Columnas, 2)

	c, ok := tab.Celda("Sector 21 Minería", col("A111A", 2018))
	require.True(t, ok)
	assert.Equal(t, entity.CeldaConfidencial, c.Tipo)

	c, ok = tab.Celda("Sector 21 Minería", col("A111A", 2023))
	require.True(t, ok)
	assert.Equal(t, entity.CeldaNoAplica, c.Tipo)

	c, _ = tab.Celda("Sector 31-33 Industrias manufactureras", col("A111A", 2018))
	assert.True(t, c.Valor.Equal(decimal.RequireFromString("19407.405")))

	total, ok := tab.FilaTotal()
	require.True(t, ok)
	assert.True(t, total.Celdas[0].Valor.Equal(decimal.RequireFromString("19407.405")),
		"las comas de miles se toleran")
}

func TestCargar_EncabezadoConAcentos(t *testing.T) {
	tab, _ := cargar(t, `Actividad económica,A111A_2018
Sector 43 Comercio al por mayor,10
`)
	require.Len(t, tab.Columnas, 1, "\"Actividad económica\" es la misma columna con acento")
	assert.Equal(t, "A111A", tab.Columnas[0].Variable)
}

func TestCargar_EncabezadoPostizo(t *testing.T) {
	// Algunos archivos derivados anteponen una fila C1,C2,... al encabezado.
	tab, errores := cargar(t, `C1,C2
Actividad Economica,A111A_2018
Sector 72 Alojamiento,55.2
`)
	assert.Empty(t, errores)
	_, ok := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.True(t, ok)
}

func TestCargar_FilaChecksumSeIgnora(t *testing.T) {
	tab, _ := cargar(t, `Actividad Economica,A111A_2018
Sector 72 Alojamiento,55.2
checksum,55.2
`)
	_, ok := tab.Fila("checksum")
	assert.False(t, ok, "la fila checksum siempre se recalcula, nunca se carga")
}

func TestCargar_CeldaMalformadaSeAisla(t *testing.T) {
	tab, errores := cargar(t, `Actividad Economica,A111A_2018,A111A_2023
Sector 72 Alojamiento,??,55.2
Sector 81 Otros servicios,10,20
`)
	require.Len(t, errores, 1)
	assert.Equal(t, "prueba.csv", errores[0].Archivo)
	assert.Equal(t, "Sector 72 Alojamiento", errores[0].Actividad)
	assert.Equal(t, "A111A_2018", errores[0].Columna)
	assert.Equal(t, "??", errores[0].Contenido)

	// La celda malformada queda confidencial: hay rastro de cifra, solo que
	// ilegible; el resto de la tabla se carga normal.
	c, ok := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	require.True(t, ok)
	assert.Equal(t, entity.CeldaConfidencial, c.Tipo)
	c, _ = tab.Celda("Sector 81 Otros servicios", col("A111A", 2023))
	assert.True(t, c.Valor.Equal(decimal.NewFromInt(20)))
}

func TestCargar_ActividadDuplicada(t *testing.T) {
	tab, errores := cargar(t, `Actividad Economica,A111A_2018
Sector 72 Alojamiento,10
Sector 72 Alojamiento,20
`)
	require.Len(t, errores, 1, "la segunda aparición se reporta y se descarta")
	c, _ := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.True(t, c.Valor.Equal(decimal.NewFromInt(10)), "gana la primera aparición")
}

func TestCargar_SumaAnotada(t *testing.T) {
	tab, errores := cargar(t, `Actividad Economica,A111A_2018
Sector 72 Alojamiento,100.5 + 2C
`)
	assert.Empty(t, errores)
	c, _ := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.Equal(t, 2, c.Censurados)
	assert.False(t, c.EsCompleta())
}

func TestCargar_EncabezadoInvalido(t *testing.T) {
	c := csvfile.NuevoCargador(entity.CeldaConfidencial)

	_, _, err := c.Cargar(strings.NewReader("Cosa,A111A_2018\nSector 11 Agricultura,1\n"), "x.csv", "g")
	assert.ErrorIs(t, err, domain.ErrEncabezadoInvalido)

	_, _, err = c.Cargar(strings.NewReader("Actividad Economica,Z999X_2018\nSector 11 Agricultura,1\n"), "x.csv", "g")
	assert.ErrorIs(t, err, domain.ErrVariableDesconocida)

	_, _, err = c.Cargar(strings.NewReader("Actividad Economica,A111A_2019\nSector 11 Agricultura,1\n"), "x.csv", "g")
	assert.ErrorIs(t, err, domain.ErrAnioDesconocido)
}

func TestCargar_ColumnasEnOrdenCanonico(t *testing.T) {
	tab, _ := cargar(t, `Actividad Economica,H001A_2018,A111A_2023,A111A_2018
Sector 72 Alojamiento,7,23,18
`)
	require.Len(t, tab.Columnas, 3)
	assert.Equal(t, "A111A_2018", tab.Columnas[0].String())
	assert.Equal(t, "A111A_2023", tab.Columnas[1].String())
	assert.Equal(t, "H001A_2018", tab.Columnas[2].String())

	// Las celdas se reordenan junto con las columnas.
	c, _ := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.True(t, c.Valor.Equal(decimal.NewFromInt(18)))
	c, _ = tab.Celda("Sector 72 Alojamiento", col("H001A", 2018))
	assert.True(t, c.Valor.Equal(decimal.NewFromInt(7)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Celdas vacías: evidencia de la propia fila antes que la convención.
// ──────────────────────────────────────────────────────────────────────────────

func TestCargar_VaciaConCifraEnElMismoAnio(t *testing.T) {
	// La fila trae cifra para 2018 en otra variable: la actividad existió ese
	// año, el vacío es reserva.
	tab, _ := cargar(t, `Actividad Economica,A111A_2018,H001A_2018
Sector 72 Alojamiento,,120
`)
	c, _ := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.Equal(t, entity.CeldaConfidencial, c.Tipo)
}

func TestCargar_VaciaSinRastroDelAnio(t *testing.T) {
	// Hay cifras de otros años pero ninguna de 2003: la actividad no existía.
	tab, _ := cargar(t, `Actividad Economica,A111A_2003,A111A_2018
Sector 72 Alojamiento,,120
`)
	c, _ := tab.Celda("Sector 72 Alojamiento", col("A111A", 2003))
	assert.Equal(t, entity.CeldaNoAplica, c.Tipo)
}

func TestCargar_VaciaSinEvidenciaUsaConvencion(t *testing.T) {
	confidencial := csvfile.NuevoCargador(entity.CeldaConfidencial)
	noAplica := csvfile.NuevoCargador(entity.CeldaNoAplica)
	fuente := "Actividad Economica,A111A_2018\nSector 72 Alojamiento,\n"

	tab, _, err := confidencial.Cargar(strings.NewReader(fuente), "x.csv", "g")
	require.NoError(t, err)
	c, _ := tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.Equal(t, entity.CeldaConfidencial, c.Tipo)

	tab, _, err = noAplica.Cargar(strings.NewReader(fuente), "x.csv", "g")
	require.NoError(t, err)
	c, _ = tab.Celda("Sector 72 Alojamiento", col("A111A", 2018))
	assert.Equal(t, entity.CeldaNoAplica, c.Tipo)
}

func TestNormalizarEtiqueta(t *testing.T) {
	assert.Equal(t, "Actividad Economica", csvfile.NormalizarEtiqueta("  Actividad   económica "),
		"acentos fuera, espacios colapsados, forma canónica")
	assert.Equal(t, "Actividad Economica", csvfile.NormalizarEtiqueta("ACTIVIDAD ECONÓMICA"),
		"mayúsculas tampoco importan en la etiqueta de actividad")
	assert.Equal(t, "Sector 21 Mineria", csvfile.NormalizarEtiqueta("Sector 21 Minería"),
		"las demás etiquetas pierden acentos pero conservan sus mayúsculas")
	assert.True(t, csvfile.EsColumnaActividad("ACTIVIDAD ECONÓMICA"))
	assert.False(t, csvfile.EsColumnaActividad("Sector"))
}
