package censo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
)

func TestEstructuraPorcentual_SectoresSobreTotal(t *testing.T) {
	tab := tabuladoDePrueba("28 Tamaulipas", "200", "150", "50")

	out := censo.EstructuraPorcentual(tab)
	col := entity.ColumnaVariable{Variable: entity.VarProduccionBruta, Anio: 2018}

	a, ok := out.Celda("Sector A", col)
	require.True(t, ok)
	assert.True(t, a.Valor.Equal(dec("75")))

	b, ok := out.Celda("Sector B", col)
	require.True(t, ok)
	assert.True(t, b.Valor.Equal(dec("25")))

	total, ok := out.FilaTotal()
	require.True(t, ok)
	assert.True(t, total.Celdas[0].Valor.Equal(dec("100")),
		"la fila de total se fuerza a 100, no se recalcula")
}

func TestEstructuraPorcentual_RedondeoADosDecimales(t *testing.T) {
	tab := tabuladoDePrueba("041 Victoria", "3", "1", "2")

	out := censo.EstructuraPorcentual(tab)
	col := entity.ColumnaVariable{Variable: entity.VarProduccionBruta, Anio: 2018}
	a, _ := out.Celda("Sector A", col)
	assert.Equal(t, "33.33", a.Valor.String())
}

func TestEstructuraPorcentual_PropagaConfidencial(t *testing.T) {
	tab := tabuladoDePrueba("038 Tampico", "100", "C", "N/A", "100")

	out := censo.EstructuraPorcentual(tab)
	col := entity.ColumnaVariable{Variable: entity.VarProduccionBruta, Anio: 2018}

	a, _ := out.Celda("Sector A", col)
	assert.Equal(t, entity.CeldaConfidencial, a.Tipo, "C sigue siendo C en porcentaje")
	b, _ := out.Celda("Sector B", col)
	assert.Equal(t, entity.CeldaNoAplica, b.Tipo)
}

func TestEstructuraPorcentual_TotalSinCifra(t *testing.T) {
	tab := tabuladoDePrueba("010 Cruillas", "C", "60", "40")

	out := censo.EstructuraPorcentual(tab)
	col := entity.ColumnaVariable{Variable: entity.VarProduccionBruta, Anio: 2018}

	a, _ := out.Celda("Sector A", col)
	assert.Equal(t, entity.CeldaConfidencial, a.Tipo,
		"sin total numérico no hay base para el porcentaje")
	total, ok := out.FilaTotal()
	require.True(t, ok)
	assert.Equal(t, entity.CeldaConfidencial, total.Celdas[0].Tipo)
}
