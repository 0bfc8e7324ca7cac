package entity

import (
	"fmt"
	"sort"
)

// Observacion es una celda normalizada del censo: el valor de una variable
// para una actividad, geografía y año. Invariante: a lo más una observación
// por (geografía, actividad, variable, año); inmutable una vez cargada.
type Observacion struct {
	Geografia string
	Actividad string // etiqueta de la fila ("Sector 21 Minería", ...)
	Variable  string
	Anio      int
	Celda     Celda
}

// TotalSectorial es el total reportado por el instituto para una columna
// (geografía, variable, año), independiente de la suma de sus sectores. Es la
// referencia contra la que se valida el checksum.
type TotalSectorial struct {
	Geografia string
	Variable  string
	Anio      int
	Celda     Celda
}

// ClaveColumna identifica una columna de tabulado: todos los sectores de una
// geografía para una variable y un año.
type ClaveColumna struct {
	Geografia string
	Variable  string
	Anio      int
}

func (k ClaveColumna) String() string {
	return fmt.Sprintf("%s/%s_%d", k.Geografia, k.Variable, k.Anio)
}

// ColumnaVariable es el encabezado "Codigo_Año" de una columna de tabulado
// ancho (A111A_2018, H001A_2023, ...).
type ColumnaVariable struct {
	Variable string
	Anio     int
}

func (c ColumnaVariable) String() string {
	return fmt.Sprintf("%s_%d", c.Variable, c.Anio)
}

// FilaTabulado es una fila de actividad de un tabulado ancho, alineada con
// las columnas del tabulado.
type FilaTabulado struct {
	Actividad string
	Celdas    []Celda
}

// Tabulado es la tabla ancha de una geografía: actividades por renglón,
// columnas Codigo_Año. Las filas de sector van primero, la fila de total al
// final (la fila checksum nunca se carga: siempre se recalcula).
type Tabulado struct {
	Geografia string
	Columnas  []ColumnaVariable
	Filas     []FilaTabulado
}

// OrdenarColumnas deja las columnas por código y año ascendente, y reordena
// las celdas de cada fila en consecuencia. Es el orden canónico de los
// archivos publicados.
func (t *Tabulado) OrdenarColumnas() {
	idx := make([]int, len(t.Columnas))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ca, cb := t.Columnas[idx[a]], t.Columnas[idx[b]]
		if ca.Variable != cb.Variable {
			return ca.Variable < cb.Variable
		}
		return ca.Anio < cb.Anio
	})
	cols := make([]ColumnaVariable, len(idx))
	for i, j := range idx {
		cols[i] = t.Columnas[j]
	}
	t.Columnas = cols
	for f := range t.Filas {
		celdas := make([]Celda, len(idx))
		for i, j := range idx {
			if j < len(t.Filas[f].Celdas) {
				celdas[i] = t.Filas[f].Celdas[j]
			}
		}
		t.Filas[f].Celdas = celdas
	}
}

// Fila busca una fila por etiqueta de actividad.
func (t *Tabulado) Fila(actividad string) (FilaTabulado, bool) {
	for _, f := range t.Filas {
		if f.Actividad == actividad {
			return f, true
		}
	}
	return FilaTabulado{}, false
}

// FilaTotal devuelve la fila de total reportado, si existe.
func (t *Tabulado) FilaTotal() (FilaTabulado, bool) {
	for _, f := range t.Filas {
		if EsFilaTotal(f.Actividad) {
			return f, true
		}
	}
	return FilaTabulado{}, false
}

// Celda devuelve la celda de una actividad en una columna dada.
func (t *Tabulado) Celda(actividad string, col ColumnaVariable) (Celda, bool) {
	ci := -1
	for i, c := range t.Columnas {
		if c == col {
			ci = i
			break
		}
	}
	if ci < 0 {
		return Celda{}, false
	}
	f, ok := t.Fila(actividad)
	if !ok || ci >= len(f.Celdas) {
		return Celda{}, false
	}
	return f.Celdas[ci], true
}

// Observaciones aplana el tabulado a observaciones por sector (excluye la
// fila de total, que se modela aparte como TotalSectorial).
func (t *Tabulado) Observaciones() []Observacion {
	var obs []Observacion
	for _, f := range t.Filas {
		if !EsFilaSector(f.Actividad) {
			continue
		}
		for i, col := range t.Columnas {
			if i >= len(f.Celdas) {
				break
			}
			obs = append(obs, Observacion{
				Geografia: t.Geografia,
				Actividad: f.Actividad,
				Variable:  col.Variable,
				Anio:      col.Anio,
				Celda:     f.Celdas[i],
			})
		}
	}
	return obs
}

// Totales extrae los totales reportados del tabulado, uno por columna.
func (t *Tabulado) Totales() []TotalSectorial {
	fila, ok := t.FilaTotal()
	if !ok {
		return nil
	}
	tot := make([]TotalSectorial, 0, len(t.Columnas))
	for i, col := range t.Columnas {
		if i >= len(fila.Celdas) {
			break
		}
		tot = append(tot, TotalSectorial{
			Geografia: t.Geografia,
			Variable:  col.Variable,
			Anio:      col.Anio,
			Celda:     fila.Celdas[i],
		})
	}
	return tot
}
