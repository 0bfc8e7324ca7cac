package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los puertos de archivo.
// ──────────────────────────────────────────────────────────────────────────────

type cargadorFalso struct {
	tabulados map[string]*entity.Tabulado
	errores   []entity.ErrorParseo
}

func (c *cargadorFalso) CargarDirectorio(string) (map[string]*entity.Tabulado, []entity.ErrorParseo, error) {
	return c.tabulados, c.errores, nil
}

type escritorFalso struct {
	tabulados []string
	matrices  []string
	reportes  []string
}

func (e *escritorFalso) EscribirTabulado(t *entity.Tabulado, conChecksum bool, subdir, nombre string) (string, error) {
	e.tabulados = append(e.tabulados, subdir+"/"+nombre)
	return subdir + "/" + nombre, nil
}

func (e *escritorFalso) EscribirMatriz(m *entity.MatrizProporcion, subdir, nombre string) (string, error) {
	e.matrices = append(e.matrices, subdir+"/"+nombre)
	return subdir + "/" + nombre, nil
}

func (e *escritorFalso) EscribirReporte(r *entity.ReporteHallazgos, nombre string) (string, error) {
	e.reportes = append(e.reportes, nombre)
	return nombre, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func celda(t *testing.T, s string) entity.Celda {
	t.Helper()
	c, err := entity.ParseCelda(s)
	require.NoError(t, err)
	return c
}

// tabulado arma una tabla con una columna por variable de proporción para
// 2018, dos sectores y una fila de total.
func tabulado(t *testing.T, geografia string, sectorA, sectorB, total string) *entity.Tabulado {
	t.Helper()
	tab := &entity.Tabulado{Geografia: geografia}
	for _, v := range entity.VariablesProporcion() {
		tab.Columnas = append(tab.Columnas, entity.ColumnaVariable{Variable: v, Anio: 2018})
	}
	filas := []struct {
		etiqueta string
		valor    string
	}{
		{"Sector 21 Minería", sectorA},
		{"Sector 72 Alojamiento", sectorB},
		{entity.PrefijoFilaTotal + " " + geografia, total},
	}
	for _, f := range filas {
		fila := entity.FilaTabulado{Actividad: f.etiqueta}
		for range tab.Columnas {
			fila.Celdas = append(fila.Celdas, celda(t, f.valor))
		}
		tab.Filas = append(tab.Filas, fila)
	}
	return tab
}

func pipelineDePrueba(t *testing.T, cargador *cargadorFalso, escritor *escritorFalso) *usecase.PipelineUseCase {
	t.Helper()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	regiones := []entity.Region{{
		Nombre: "Sur", Estado: entity.ClaveTamaulipas,
		Miembros: []string{"009 Ciudad Madero", "038 Tampico"},
	}}
	motor := censo.NuevoMotorProporciones([]int{2018})
	return usecase.NewPipelineUseCase(
		usecase.NewCargarTabuladosUseCase(cargador, nil, log),
		usecase.NewValidacionUseCase(censo.NuevoValidador(decimal.Zero), nil),
		usecase.NewProporcionesUseCase(motor, regiones, entity.ClaveNacional, entity.ClaveTamaulipas, nil),
		usecase.NewPorcentajesUseCase(nil),
		escritor,
		nil,
		log,
	)
}

// ──────────────────────────────────────────────────────────────────────────────
// Corrida completa en memoria
// ──────────────────────────────────────────────────────────────────────────────

func TestPipeline_CorridaCompleta(t *testing.T) {
	cargador := &cargadorFalso{tabulados: map[string]*entity.Tabulado{
		entity.ClaveNacional:   tabulado(t, entity.ClaveNacional, "1000", "2000", "3000"),
		entity.ClaveTamaulipas: tabulado(t, entity.ClaveTamaulipas, "100", "200", "300"),
		"009 Ciudad Madero":    tabulado(t, "009 Ciudad Madero", "40", "80", "120"),
		"038 Tampico":          tabulado(t, "038 Tampico", "60", "120", "180"),
	}}
	escritor := &escritorFalso{}

	reporte, err := pipelineDePrueba(t, cargador, escritor).Ejecutar(context.Background(), "entrada")
	require.NoError(t, err)
	require.NotNil(t, reporte)
	assert.NotEmpty(t, reporte.ID)

	// Todo cuadra: sin discrepancias ni indefinidas.
	assert.Empty(t, reporte.Discrepancias)
	assert.Empty(t, reporte.NoVerificables)
	assert.Empty(t, reporte.Indefinidas)
	assert.Empty(t, reporte.Anomalias)

	// Tabulado regional emitido, más la estructura porcentual de las cinco
	// geografías (las cuatro cargadas y la región).
	assert.Contains(t, escritor.tabulados, "regiones/Sur.csv")
	assert.Contains(t, escritor.tabulados, "porcentajes/28_Tamaulipas.csv")
	assert.Contains(t, escritor.tabulados, "porcentajes/Sur.csv")
	assert.Len(t, escritor.tabulados, 1+5)

	// Para cada variable de proporción: 1 matriz estatal-nacional + 1 región
	// por cada tipo regional.
	esperadas := len(entity.VariablesProporcion()) * 3
	assert.Len(t, escritor.matrices, esperadas)
	assert.Contains(t, escritor.matrices, "proporciones/estatal-nacional_A111A_28_Tamaulipas.csv")
	assert.Contains(t, escritor.matrices, "proporciones/region-estatal_A111A_Sur.csv")
	assert.Contains(t, escritor.matrices, "proporciones/region-nacional_A111A_Sur.csv")

	assert.Equal(t, []string{"hallazgos.json"}, escritor.reportes)
}

func TestPipeline_AcumulaHallazgos(t *testing.T) {
	// Tampico trae un sector confidencial: discrepancia de checksum en sus
	// columnas e indefinidas en las matrices regionales.
	cargador := &cargadorFalso{
		tabulados: map[string]*entity.Tabulado{
			entity.ClaveNacional:   tabulado(t, entity.ClaveNacional, "1000", "2000", "3000"),
			entity.ClaveTamaulipas: tabulado(t, entity.ClaveTamaulipas, "100", "200", "300"),
			"009 Ciudad Madero":    tabulado(t, "009 Ciudad Madero", "40", "80", "120"),
			"038 Tampico":          tabulado(t, "038 Tampico", "C", "120", "180"),
		},
		errores: []entity.ErrorParseo{{Archivo: "038 Tampico.csv", Fila: 3, Motivo: "celda inválida"}},
	}
	escritor := &escritorFalso{}

	reporte, err := pipelineDePrueba(t, cargador, escritor).Ejecutar(context.Background(), "entrada")
	require.NoError(t, err)

	assert.Len(t, reporte.ErroresParseo, 1, "los errores de carga pasan íntegros al reporte")
	assert.NotEmpty(t, reporte.Discrepancias, "la columna de Tampico ya no suma su total")
	assert.NotEmpty(t, reporte.Indefinidas, "el sector confidencial indefine la región Sur")

	for _, ind := range reporte.Indefinidas {
		assert.Equal(t, entity.CausaMiembroRegionIncompleto, ind.Causa)
		assert.Equal(t, "038 Tampico", ind.Geografia)
	}
	assert.Positive(t, reporte.Total())
}

func TestPipeline_ReporteDeterminista(t *testing.T) {
	construir := func() *cargadorFalso {
		return &cargadorFalso{tabulados: map[string]*entity.Tabulado{
			entity.ClaveNacional:   tabulado(t, entity.ClaveNacional, "1000", "2000", "3000"),
			entity.ClaveTamaulipas: tabulado(t, entity.ClaveTamaulipas, "100", "C", "300"),
			"009 Ciudad Madero":    tabulado(t, "009 Ciudad Madero", "40", "C", "120"),
			"038 Tampico":          tabulado(t, "038 Tampico", "60", "120", "180"),
		}}
	}

	r1, err := pipelineDePrueba(t, construir(), &escritorFalso{}).Ejecutar(context.Background(), "entrada")
	require.NoError(t, err)
	r2, err := pipelineDePrueba(t, construir(), &escritorFalso{}).Ejecutar(context.Background(), "entrada")
	require.NoError(t, err)

	assert.Equal(t, r1.Indefinidas, r2.Indefinidas,
		"el paralelismo por variable no debe cambiar el orden del reporte")
	assert.Equal(t, r1.Discrepancias, r2.Discrepancias)
}
