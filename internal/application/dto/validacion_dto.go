package dto

import (
	"time"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// ChecksumDTO veredicto de una columna (geografía, variable, año).
type ChecksumDTO struct {
	Geografia      string `json:"geografia"`
	Variable       string `json:"variable"`
	Anio           int    `json:"anio"`
	Resultado      string `json:"resultado"`
	Checksum       string `json:"checksum"`
	TotalReportado string `json:"total_reportado,omitempty"`
	Delta          string `json:"delta,omitempty"`
	Censurados     int    `json:"censurados,omitempty"`
}

// ValidacionDTO reporte de validación de checksums de una corrida.
type ValidacionDTO struct {
	Consistentes   int           `json:"consistentes"`
	Discrepancias  []ChecksumDTO `json:"discrepancias"`
	NoVerificables []ChecksumDTO `json:"no_verificables"`
}

// IndefinidaDTO celda de proporción sin valor, con su causa.
type IndefinidaDTO struct {
	Tipo      string `json:"tipo"`
	Variable  string `json:"variable"`
	Anio      int    `json:"anio"`
	Actividad string `json:"actividad"`
	Geografia string `json:"geografia"`
	Causa     string `json:"causa"`
}

// AnomaliaDTO proporción definida fuera de [0, 1].
type AnomaliaDTO struct {
	Tipo      string `json:"tipo"`
	Variable  string `json:"variable"`
	Anio      int    `json:"anio"`
	Actividad string `json:"actividad"`
	Valor     string `json:"valor"`
}

// ReporteHallazgosDTO reporte completo de una corrida del pipeline.
type ReporteHallazgosDTO struct {
	ID             string           `json:"id"`
	GeneradoEn     time.Time        `json:"generado_en"`
	ErroresParseo  []ErrorParseoDTO `json:"errores_parseo"`
	Discrepancias  []ChecksumDTO    `json:"discrepancias"`
	NoVerificables []ChecksumDTO    `json:"no_verificables"`
	Indefinidas    []IndefinidaDTO  `json:"indefinidas"`
	Anomalias      []AnomaliaDTO    `json:"anomalias"`
}

// CeldaProporcionDTO celda de matriz: valor o causa de indefinición.
type CeldaProporcionDTO struct {
	Valor        string `json:"valor,omitempty"`
	FueraDeRango bool   `json:"fuera_de_rango,omitempty"`
	Causa        string `json:"causa,omitempty"`
}

// FilaProporcionDTO fila de actividad de una matriz.
type FilaProporcionDTO struct {
	Actividad string               `json:"actividad"`
	Celdas    []CeldaProporcionDTO `json:"celdas"`
}

// MatrizProporcionDTO matriz derivada para una variable y par de geografías.
type MatrizProporcionDTO struct {
	Tipo        string              `json:"tipo"`
	Variable    string              `json:"variable"`
	Numerador   string              `json:"numerador"`
	Denominador string              `json:"denominador"`
	Anios       []int               `json:"anios"`
	Filas       []FilaProporcionDTO `json:"filas"`
}

// NuevoChecksumDTO convierte un resultado de validación de dominio.
func NuevoChecksumDTO(r entity.ResultadoChecksum) ChecksumDTO {
	d := ChecksumDTO{
		Geografia:  r.Geografia,
		Variable:   r.Variable,
		Anio:       r.Anio,
		Resultado:  r.Resultado,
		Checksum:   r.Checksum.String(),
		Censurados: r.Censurados,
	}
	if r.Resultado != entity.ValidacionNoVerificable {
		d.TotalReportado = r.TotalReportado.String()
		d.Delta = r.Delta.String()
	}
	return d
}

// NuevaMatrizDTO convierte una matriz de dominio.
func NuevaMatrizDTO(m *entity.MatrizProporcion) MatrizProporcionDTO {
	d := MatrizProporcionDTO{
		Tipo:        m.Tipo,
		Variable:    m.Variable,
		Numerador:   m.Numerador,
		Denominador: m.Denominador,
		Anios:       m.Anios,
	}
	for _, f := range m.Filas {
		fila := FilaProporcionDTO{Actividad: f.Actividad}
		for _, c := range f.Celdas {
			cd := CeldaProporcionDTO{FueraDeRango: c.FueraDeRango, Causa: c.Causa}
			if c.Definida {
				cd.Valor = c.Valor.Round(6).String()
			}
			fila.Celdas = append(fila.Celdas, cd)
		}
		d.Filas = append(d.Filas, fila)
	}
	return d
}

// NuevoReporteDTO convierte el reporte de hallazgos de dominio.
func NuevoReporteDTO(r *entity.ReporteHallazgos) ReporteHallazgosDTO {
	d := ReporteHallazgosDTO{ID: r.ID, GeneradoEn: r.GeneradoEn}
	for _, e := range r.ErroresParseo {
		d.ErroresParseo = append(d.ErroresParseo, NuevoErrorParseoDTO(e))
	}
	for _, c := range r.Discrepancias {
		d.Discrepancias = append(d.Discrepancias, NuevoChecksumDTO(c))
	}
	for _, c := range r.NoVerificables {
		d.NoVerificables = append(d.NoVerificables, NuevoChecksumDTO(c))
	}
	for _, i := range r.Indefinidas {
		d.Indefinidas = append(d.Indefinidas, IndefinidaDTO{
			Tipo: i.Tipo, Variable: i.Variable, Anio: i.Anio,
			Actividad: i.Actividad, Geografia: i.Geografia, Causa: i.Causa,
		})
	}
	for _, a := range r.Anomalias {
		d.Anomalias = append(d.Anomalias, AnomaliaDTO{
			Tipo: a.Tipo, Variable: a.Variable, Anio: a.Anio,
			Actividad: a.Actividad, Valor: a.Valor.Round(6).String(),
		})
	}
	return d
}
