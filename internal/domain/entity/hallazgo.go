package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Resultados posibles de la validación de checksum de una columna.
const (
	ValidacionConsistente   = "consistente"
	ValidacionDiscrepancia  = "discrepancia"
	ValidacionNoVerificable = "no_verificable"
)

// ResultadoChecksum es el veredicto de una columna (geografía, variable, año):
// la suma de los sectores numéricos contra el total reportado. Una
// discrepancia es un hallazgo esperado del secreto estadístico, no un error.
type ResultadoChecksum struct {
	Geografia      string
	Variable       string
	Anio           int
	Resultado      string
	Checksum       decimal.Decimal // suma de sectores numéricos (C y N/A aportan cero)
	TotalReportado decimal.Decimal // solo válido si el total es numérico
	Delta          decimal.Decimal // Checksum - TotalReportado
	Censurados     int             // sectores confidenciales en la columna
}

// ErrorParseo aísla una celda malformada: contenido no vacío que no es cifra
// ni marcador reservado. No aborta la carga del resto de la tabla.
type ErrorParseo struct {
	Archivo   string
	Fila      int // índice de renglón en el archivo (1 = encabezado)
	Columna   string
	Actividad string
	Contenido string
	Motivo    string
}

// Causas de proporción indefinida.
const (
	CausaNumeradorConfidencial   = "numerador confidencial"
	CausaNumeradorNoAplica       = "numerador no aplica"
	CausaNumeradorParcial        = "numerador con sumandos censurados"
	CausaDenominadorConfidencial = "denominador confidencial"
	CausaDenominadorNoAplica     = "denominador no aplica"
	CausaDenominadorParcial      = "denominador con sumandos censurados"
	CausaDenominadorCero         = "denominador cero"
	CausaMiembroRegionIncompleto = "miembro de región sin cifra"
)

// ProporcionIndefinida registra una celda de matriz que no pudo calcularse,
// con la causa y la geografía/actividad que la provocó. Propagar la
// indefinición es obligatorio: sustituirla por cero presentaría actividad
// confidencial como inexistente.
type ProporcionIndefinida struct {
	Tipo      string // tipo de proporción (ver matriz.go)
	Variable  string
	Anio      int
	Actividad string
	Geografia string // geografía causante (miembro de región, numerador o denominador)
	Causa     string
}

// AnomaliaProporcion marca una proporción definida fuera del rango [0, 1]:
// se reporta, no se rechaza, porque delata una inconsistencia en la fuente.
type AnomaliaProporcion struct {
	Tipo      string
	Variable  string
	Anio      int
	Actividad string
	Valor     decimal.Decimal
}

// ReporteHallazgos reúne todo lo que el pipeline debe hacer visible: el
// propósito documentado del estudio es exhibir los patrones de reserva, así
// que ningún hallazgo se suprime.
type ReporteHallazgos struct {
	ID             string // uuid de la corrida
	GeneradoEn     time.Time
	ErroresParseo  []ErrorParseo
	Discrepancias  []ResultadoChecksum
	NoVerificables []ResultadoChecksum
	Indefinidas    []ProporcionIndefinida
	Anomalias      []AnomaliaProporcion
}

// AgregarChecksum clasifica un resultado de validación dentro del reporte.
// Los consistentes no se acumulan: el reporte enumera hallazgos.
func (r *ReporteHallazgos) AgregarChecksum(res ResultadoChecksum) {
	switch res.Resultado {
	case ValidacionDiscrepancia:
		r.Discrepancias = append(r.Discrepancias, res)
	case ValidacionNoVerificable:
		r.NoVerificables = append(r.NoVerificables, res)
	}
}

// Total devuelve el número de hallazgos acumulados.
func (r *ReporteHallazgos) Total() int {
	return len(r.ErroresParseo) + len(r.Discrepancias) + len(r.NoVerificables) +
		len(r.Indefinidas) + len(r.Anomalias)
}
