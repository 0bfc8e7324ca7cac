package censo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Proporcion celda a celda: la indefinición se propaga con causa, jamás se
// sustituye por cero (cero diría "no hay actividad"; confidencial dice "la
// hay, pero reservada").
// ──────────────────────────────────────────────────────────────────────────────

func TestProporcion_Definida(t *testing.T) {
	out := censo.Proporcion(celda("25"), celda("100"))
	require.True(t, out.Definida)
	assert.True(t, out.Valor.Equal(dec("0.25")))
	assert.False(t, out.FueraDeRango)
}

func TestProporcion_NumeradorConfidencial(t *testing.T) {
	out := censo.Proporcion(celda("C"), celda("100"))
	assert.False(t, out.Definida)
	assert.Equal(t, entity.CausaNumeradorConfidencial, out.Causa)
}

func TestProporcion_NumeradorParcial(t *testing.T) {
	out := censo.Proporcion(celda("25 + 2C"), celda("100"))
	assert.False(t, out.Definida,
		"una suma parcial como numerador subestimaría la participación")
	assert.Equal(t, entity.CausaNumeradorParcial, out.Causa)
}

func TestProporcion_DenominadorNoAplica(t *testing.T) {
	out := censo.Proporcion(celda("25"), celda("N/A"))
	assert.False(t, out.Definida)
	assert.Equal(t, entity.CausaDenominadorNoAplica, out.Causa)
}

func TestProporcion_DenominadorCero(t *testing.T) {
	out := censo.Proporcion(celda("0"), celda("0"))
	assert.False(t, out.Definida)
	assert.Equal(t, entity.CausaDenominadorCero, out.Causa)
}

// El numerador se examina antes que el denominador: con ambos confidenciales
// la causa reportada es la del numerador.
func TestProporcion_OrdenDeCausas(t *testing.T) {
	out := censo.Proporcion(celda("C"), celda("C"))
	assert.Equal(t, entity.CausaNumeradorConfidencial, out.Causa)
}

func TestProporcion_FueraDeRango(t *testing.T) {
	out := censo.Proporcion(celda("150"), celda("100"))
	require.True(t, out.Definida, "un cociente > 1 se reporta, no se rechaza")
	assert.True(t, out.FueraDeRango)
	assert.True(t, out.Valor.Equal(dec("1.5")))
}

// ──────────────────────────────────────────────────────────────────────────────
// MotorProporciones
// ──────────────────────────────────────────────────────────────────────────────

func motorDePrueba() *censo.MotorProporciones {
	return censo.NuevoMotorProporciones([]int{2018})
}

func TestMatriz_EstatalNacional(t *testing.T) {
	motor := motorDePrueba()
	estado := tabuladoDePrueba("28 Tamaulipas", "150.75", "100.5", "50.25")
	nacional := tabuladoDePrueba("00 Total Nacional", "1507.5", "1005", "502.5")

	res := motor.Matriz(entity.ProporcionEstatalNacional, entity.VarProduccionBruta, estado, nacional)

	assert.Equal(t, "28 Tamaulipas", res.Matriz.Numerador)
	assert.Equal(t, "00 Total Nacional", res.Matriz.Denominador)
	assert.Empty(t, res.Indefinidas)
	assert.Empty(t, res.Anomalias)

	c, ok := res.Matriz.Celda("Sector A", 2018)
	require.True(t, ok)
	require.True(t, c.Definida)
	assert.True(t, c.Valor.Equal(dec("0.1")))

	// La fila de total del numerador se divide entre la fila de total del
	// denominador aunque las etiquetas difieran.
	total, ok := res.Matriz.Celda("Total 28 Tamaulipas", 2018)
	require.True(t, ok)
	require.True(t, total.Definida)
	assert.True(t, total.Valor.Equal(dec("0.1")))
}

func TestMatriz_Determinista(t *testing.T) {
	motor := motorDePrueba()
	estado := tabuladoDePrueba("28 Tamaulipas", "150.75", "100.5", "C")
	nacional := tabuladoDePrueba("00 Total Nacional", "1507.5", "1005", "502.5")

	r1 := motor.Matriz(entity.ProporcionEstatalNacional, entity.VarProduccionBruta, estado, nacional)
	r2 := motor.Matriz(entity.ProporcionEstatalNacional, entity.VarProduccionBruta, estado, nacional)
	assert.Equal(t, r1.Matriz, r2.Matriz, "mismas observaciones, misma matriz")
	assert.Equal(t, r1.Indefinidas, r2.Indefinidas)
}

func TestMatriz_RegistraIndefinidaConGeografia(t *testing.T) {
	motor := motorDePrueba()
	estado := tabuladoDePrueba("28 Tamaulipas", "150.75", "C", "50.25")
	nacional := tabuladoDePrueba("00 Total Nacional", "1507.5", "1005", "502.5")

	res := motor.Matriz(entity.ProporcionEstatalNacional, entity.VarProduccionBruta, estado, nacional)
	require.Len(t, res.Indefinidas, 1)
	ind := res.Indefinidas[0]
	assert.Equal(t, entity.CausaNumeradorConfidencial, ind.Causa)
	assert.Equal(t, "28 Tamaulipas", ind.Geografia, "la causa está en el numerador")
	assert.Equal(t, "Sector A", ind.Actividad)
	assert.Equal(t, 2018, ind.Anio)
}

func TestMatrizRegional_MiembroConfidencialIndefine(t *testing.T) {
	motor := motorDePrueba()
	region := entity.Region{
		Nombre: "Sur", Estado: entity.ClaveTamaulipas,
		Miembros: []string{"009 Ciudad Madero", "038 Tampico"},
	}
	tabulados := map[string]*entity.Tabulado{
		"009 Ciudad Madero": tabuladoDePrueba("009 Ciudad Madero", "150.75", "100.5", "50.25"),
		"038 Tampico":       tabuladoDePrueba("038 Tampico", "30", "C", "30"),
	}
	estado := tabuladoDePrueba("28 Tamaulipas", "1000", "500", "500")

	res := motor.MatrizRegional(entity.ProporcionRegionEstatal, entity.VarProduccionBruta, region, tabulados, estado)

	// Sector A: Tampico es confidencial, la celda regional queda indefinida.
	c, ok := res.Matriz.Celda("Sector A", 2018)
	require.True(t, ok)
	assert.False(t, c.Definida)
	assert.Equal(t, entity.CausaMiembroRegionIncompleto, c.Causa)
	require.NotEmpty(t, res.Indefinidas)
	assert.Equal(t, "038 Tampico", res.Indefinidas[0].Geografia,
		"el hallazgo debe nombrar al miembro causante")

	// Sector B: ambos completos, la proporción sí se calcula.
	c, ok = res.Matriz.Celda("Sector B", 2018)
	require.True(t, ok)
	require.True(t, c.Definida)
	assert.True(t, c.Valor.Equal(dec("0.1605")), "(50.25+30)/500")
}

func TestMatrizRegional_FilaTotal(t *testing.T) {
	motor := motorDePrueba()
	region := entity.Region{
		Nombre: "Frontera", Estado: entity.ClaveTamaulipas,
		Miembros: []string{"027 Nuevo Laredo"},
	}
	tabulados := map[string]*entity.Tabulado{
		"027 Nuevo Laredo": tabuladoDePrueba("027 Nuevo Laredo", "100", "60", "40"),
	}
	estado := tabuladoDePrueba("28 Tamaulipas", "1000", "600", "400")

	res := motor.MatrizRegional(entity.ProporcionRegionEstatal, entity.VarProduccionBruta, region, tabulados, estado)

	total, ok := res.Matriz.Celda("Total Frontera", 2018)
	require.True(t, ok, "la fila de total regional lleva el nombre de la región")
	require.True(t, total.Definida)
	assert.True(t, total.Valor.Equal(dec("0.1")))
}

func TestMatriz_AnomaliaFueraDeRango(t *testing.T) {
	motor := motorDePrueba()
	// El estado reporta más que el nacional: inconsistencia de la fuente.
	estado := tabuladoDePrueba("28 Tamaulipas", "200", "200")
	nacional := tabuladoDePrueba("00 Total Nacional", "100", "100")

	res := motor.Matriz(entity.ProporcionEstatalNacional, entity.VarProduccionBruta, estado, nacional)
	require.NotEmpty(t, res.Anomalias)
	assert.True(t, res.Anomalias[0].Valor.Equal(dec("2")))
}
