package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
	"github.com/rmedina/censo-saic/pkg/logger"
)

// PipelineUseCase orquesta la corrida completa del estudio: carga, validación
// de checksums, tabulados regionales, matrices de proporción, estructuras
// porcentuales y reporte de hallazgos. Ningún hallazgo detiene la corrida;
// todos quedan en el reporte.
type PipelineUseCase struct {
	carga        *CargarTabuladosUseCase
	validacion   *ValidacionUseCase
	proporciones *ProporcionesUseCase
	porcentajes  *PorcentajesUseCase
	escritor     EscritorSalidas
	hallazgoRepo repository.HallazgoRepository // nil = no persistir el reporte
	log          *logger.Logger
}

// NewPipelineUseCase construye el orquestador; hallazgoRepo puede ser nil.
func NewPipelineUseCase(
	carga *CargarTabuladosUseCase,
	validacion *ValidacionUseCase,
	proporciones *ProporcionesUseCase,
	porcentajes *PorcentajesUseCase,
	escritor EscritorSalidas,
	hallazgoRepo repository.HallazgoRepository,
	log *logger.Logger,
) *PipelineUseCase {
	return &PipelineUseCase{
		carga:        carga,
		validacion:   validacion,
		proporciones: proporciones,
		porcentajes:  porcentajes,
		escritor:     escritor,
		hallazgoRepo: hallazgoRepo,
		log:          log,
	}
}

// Ejecutar corre el pipeline de punta a punta sobre un directorio de entrada
// y devuelve el reporte de hallazgos de la corrida.
func (uc *PipelineUseCase) Ejecutar(ctx context.Context, dirEntrada string) (*entity.ReporteHallazgos, error) {
	inicio := time.Now()

	// ── 1. Carga ──────────────────────────────────────────────────────────────
	carga, err := uc.carga.Ejecutar(ctx, dirEntrada)
	if err != nil {
		return nil, err
	}
	reporte := &entity.ReporteHallazgos{
		ID:            carga.CargaID,
		GeneradoEn:    inicio,
		ErroresParseo: carga.Errores,
	}

	// ── 2. Checksums ──────────────────────────────────────────────────────────
	for _, res := range uc.validacion.ValidarTabulados(carga.Tabulados) {
		reporte.AgregarChecksum(res)
	}
	uc.log.Info().
		Int("discrepancias", len(reporte.Discrepancias)).
		Int("no_verificables", len(reporte.NoVerificables)).
		Msg("checksums validados")

	// ── 3. Tabulados regionales ───────────────────────────────────────────────
	// Se emiten con suma parcial anotada ("suma + kC") y con su fila de
	// checksum recalculada, igual que los tabulados fuente.
	for _, region := range uc.proporciones.Regiones() {
		regional := censo.TabuladoRegional(region, carga.Tabulados)
		if regional == nil {
			uc.log.Warn().Str("region", region.Nombre).Msg("región sin tabulados de miembros")
			continue
		}
		carga.Tabulados[regional.Geografia] = regional
		if _, err := uc.escritor.EscribirTabulado(regional, true, "regiones", nombreArchivo(regional.Geografia)+".csv"); err != nil {
			return nil, fmt.Errorf("escribir tabulado %s: %w", regional.Geografia, err)
		}
	}

	// ── 4. Matrices de proporción, en paralelo por variable ───────────────────
	type matricesResult struct {
		variable   string
		resultados []censo.ResultadoMatriz
		err        error
	}
	variables := entity.VariablesProporcion()
	canales := make([]chan matricesResult, len(variables))
	for i, variable := range variables {
		canales[i] = make(chan matricesResult, 1)
		go func(ch chan matricesResult, variable string) {
			var todos []censo.ResultadoMatriz
			for _, tipo := range entity.TiposProporcion() {
				resultados, err := uc.proporciones.Matrices(tipo, variable, carga.Tabulados)
				if err != nil {
					ch <- matricesResult{variable: variable, err: err}
					return
				}
				todos = append(todos, resultados...)
			}
			ch <- matricesResult{variable: variable, resultados: todos}
		}(canales[i], variable)
	}
	for _, ch := range canales {
		res := <-ch
		if res.err != nil {
			return nil, fmt.Errorf("matrices de %s: %w", res.variable, res.err)
		}
		for _, rm := range res.resultados {
			reporte.Indefinidas = append(reporte.Indefinidas, rm.Indefinidas...)
			reporte.Anomalias = append(reporte.Anomalias, rm.Anomalias...)
			nombre := fmt.Sprintf("%s_%s_%s.csv", rm.Matriz.Tipo, rm.Matriz.Variable, nombreArchivo(rm.Matriz.Numerador))
			if _, err := uc.escritor.EscribirMatriz(rm.Matriz, "proporciones", nombre); err != nil {
				return nil, fmt.Errorf("escribir matriz %s: %w", nombre, err)
			}
		}
	}
	ordenarIndefinidas(reporte.Indefinidas)

	// ── 5. Estructura porcentual ──────────────────────────────────────────────
	claves := make([]string, 0, len(carga.Tabulados))
	for k := range carga.Tabulados {
		claves = append(claves, k)
	}
	sort.Strings(claves)
	for _, clave := range claves {
		pct := uc.porcentajes.Estructura(carga.Tabulados[clave])
		if _, err := uc.escritor.EscribirTabulado(pct, false, "porcentajes", nombreArchivo(clave)+".csv"); err != nil {
			return nil, fmt.Errorf("escribir porcentajes %s: %w", clave, err)
		}
	}

	// ── 6. Reporte de hallazgos ───────────────────────────────────────────────
	ruta, err := uc.escritor.EscribirReporte(reporte, "hallazgos.json")
	if err != nil {
		return nil, fmt.Errorf("escribir reporte: %w", err)
	}
	if uc.hallazgoRepo != nil {
		if err := uc.hallazgoRepo.GuardarReporte(ctx, reporte); err != nil {
			return nil, fmt.Errorf("persistir reporte: %w", err)
		}
	}
	uc.log.Info().
		Str("carga_id", reporte.ID).
		Str("reporte", ruta).
		Int("hallazgos", reporte.Total()).
		Dur("duracion", time.Since(inicio)).
		Msg("pipeline terminado")
	return reporte, nil
}

// ordenarIndefinidas deja el reporte en orden estable: el paralelismo por
// variable no debe cambiar la salida de una corrida a otra.
func ordenarIndefinidas(ind []entity.ProporcionIndefinida) {
	sort.SliceStable(ind, func(i, j int) bool {
		a, b := ind[i], ind[j]
		if a.Tipo != b.Tipo {
			return a.Tipo < b.Tipo
		}
		if a.Variable != b.Variable {
			return a.Variable < b.Variable
		}
		if a.Geografia != b.Geografia {
			return a.Geografia < b.Geografia
		}
		if a.Anio != b.Anio {
			return a.Anio < b.Anio
		}
		return a.Actividad < b.Actividad
	})
}

// nombreArchivo vuelve una clave de geografía usable como nombre de archivo.
func nombreArchivo(clave string) string {
	return strings.ReplaceAll(strings.TrimSpace(clave), " ", "_")
}
