package dto

import "github.com/rmedina/censo-saic/internal/domain/entity"

// FilaTabuladoDTO fila de actividad con sus celdas alineadas a Columnas.
type FilaTabuladoDTO struct {
	Actividad string     `json:"actividad"`
	Celdas    []CeldaDTO `json:"celdas"`
}

// TabuladoDTO tabla ancha de una geografía (columnas Codigo_Año).
type TabuladoDTO struct {
	Geografia string            `json:"geografia"`
	Columnas  []string          `json:"columnas"`
	Filas     []FilaTabuladoDTO `json:"filas"`
}

// CargaResultDTO resultado de una corrida de carga.
type CargaResultDTO struct {
	CargaID       string           `json:"carga_id"`
	Geografias    []string         `json:"geografias"`
	ErroresParseo []ErrorParseoDTO `json:"errores_parseo"`
}

// ErrorParseoDTO celda malformada aislada durante la carga.
type ErrorParseoDTO struct {
	Archivo   string `json:"archivo"`
	Fila      int    `json:"fila"`
	Columna   string `json:"columna,omitempty"`
	Actividad string `json:"actividad"`
	Contenido string `json:"contenido,omitempty"`
	Motivo    string `json:"motivo"`
}

// NuevaCeldaDTO convierte una celda de dominio.
func NuevaCeldaDTO(c entity.Celda) CeldaDTO {
	d := CeldaDTO{Tipo: c.Tipo, Censurados: c.Censurados, Texto: c.String()}
	if c.EsNumerica() {
		d.Valor = c.Valor.String()
	}
	return d
}

// NuevoTabuladoDTO convierte un tabulado de dominio.
func NuevoTabuladoDTO(t *entity.Tabulado) TabuladoDTO {
	d := TabuladoDTO{Geografia: t.Geografia}
	for _, col := range t.Columnas {
		d.Columnas = append(d.Columnas, col.String())
	}
	for _, f := range t.Filas {
		fila := FilaTabuladoDTO{Actividad: f.Actividad}
		for _, c := range f.Celdas {
			fila.Celdas = append(fila.Celdas, NuevaCeldaDTO(c))
		}
		d.Filas = append(d.Filas, fila)
	}
	return d
}

// NuevoErrorParseoDTO convierte un error de parseo de dominio.
func NuevoErrorParseoDTO(e entity.ErrorParseo) ErrorParseoDTO {
	return ErrorParseoDTO{
		Archivo:   e.Archivo,
		Fila:      e.Fila,
		Columna:   e.Columna,
		Actividad: e.Actividad,
		Contenido: e.Contenido,
		Motivo:    e.Motivo,
	}
}
