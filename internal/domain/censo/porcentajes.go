package censo

import (
	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

var cien = decimal.NewFromInt(100)

// EstructuraPorcentual convierte un tabulado a estructura porcentual: cada
// celda de sector se divide entre el total reportado de su columna y se
// expresa en por ciento con 2 decimales; la fila de total se fuerza a 100.
// Las celdas confidenciales o no aplicables se propagan tal cual, y si el
// total de la columna no es una cifra completa toda la columna queda
// confidencial (no hay base válida para el porcentaje).
func EstructuraPorcentual(t *entity.Tabulado) *entity.Tabulado {
	filaTotal, hayTotal := t.FilaTotal()

	out := &entity.Tabulado{Geografia: t.Geografia, Columnas: t.Columnas}
	for _, fila := range t.Filas {
		if fila.Actividad == entity.FilaChecksum {
			continue
		}
		nueva := entity.FilaTabulado{Actividad: fila.Actividad, Celdas: make([]entity.Celda, len(t.Columnas))}
		for i := range t.Columnas {
			var celda entity.Celda
			if i < len(fila.Celdas) {
				celda = fila.Celdas[i]
			} else {
				celda = entity.Celda{Tipo: entity.CeldaNoAplica}
			}

			if entity.EsFilaTotal(fila.Actividad) {
				if celda.EsCompleta() {
					nueva.Celdas[i] = entity.CeldaDeValor(cien)
				} else {
					nueva.Celdas[i] = celda
				}
				continue
			}

			var total entity.Celda
			if hayTotal && i < len(filaTotal.Celdas) {
				total = filaTotal.Celdas[i]
			} else {
				total = entity.Celda{Tipo: entity.CeldaNoAplica}
			}
			switch {
			case !celda.EsCompleta():
				nueva.Celdas[i] = celda
			case !total.EsCompleta() || total.Valor.IsZero():
				nueva.Celdas[i] = entity.CeldaConfidencialN(1)
			default:
				pct := celda.Valor.Mul(cien).Div(total.Valor).Round(2)
				nueva.Celdas[i] = entity.CeldaDeValor(pct)
			}
		}
		out.Filas = append(out.Filas, nueva)
	}
	return out
}
