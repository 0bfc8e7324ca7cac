package censo

import (
	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// AgregarParcial suma celdas al estilo de los tabulados publicados: las bases
// numéricas se suman y los sumandos confidenciales se acumulan como anotación
// ("<suma> + kC"). Si ningún miembro trae cifra ni anotación, el resultado es
// no aplica. Es la agregación con la que se emiten los tabulados regionales.
func AgregarParcial(celdas []entity.Celda) entity.Celda {
	suma := decimal.Zero
	censurados := 0
	hayDato := false
	for _, c := range celdas {
		switch c.Tipo {
		case entity.CeldaNumerica:
			suma = suma.Add(c.Valor)
			hayDato = true
		case entity.CeldaConfidencial:
			hayDato = true
		}
		censurados += c.Censurados
	}
	if !hayDato {
		return entity.Celda{Tipo: entity.CeldaNoAplica}
	}
	if suma.IsZero() && censurados > 0 {
		return entity.CeldaConfidencialN(censurados)
	}
	return entity.Celda{Tipo: entity.CeldaNumerica, Valor: suma, Censurados: censurados}
}

// AgregarConservadora suma celdas para usarlas como operando de proporción:
// basta un miembro sin cifra completa para que el agregado no sea numérico
// (una suma parcial presentaría de menos a la región). Devuelve además la
// geografía causante cuando el agregado queda incompleto.
func AgregarConservadora(miembros []entity.Geografia, celdas []entity.Celda) (entity.Celda, string) {
	suma := decimal.Zero
	todasNoAplica := true
	for i, c := range celdas {
		if !c.EsCompleta() {
			if c.Tipo == entity.CeldaNoAplica {
				continue
			}
			causante := ""
			if i < len(miembros) {
				causante = miembros[i].Clave
			}
			return entity.CeldaConfidencialN(max(c.Censurados, 1)), causante
		}
		todasNoAplica = false
		suma = suma.Add(c.Valor)
	}
	if todasNoAplica {
		return entity.Celda{Tipo: entity.CeldaNoAplica}, ""
	}
	return entity.CeldaDeValor(suma), ""
}

// TabuladoRegional construye el tabulado ancho de una región sumando los
// tabulados de sus miembros con AgregarParcial, fila por fila de sector. La
// fila "Total <Región>" se arma sumando las filas de total de los miembros.
// Los miembros sin tabulado aportan como no aplica.
func TabuladoRegional(region entity.Region, tabulados map[string]*entity.Tabulado) *entity.Tabulado {
	// Plantilla de columnas y actividades: el primer miembro con tabulado.
	var plantilla *entity.Tabulado
	for _, m := range region.Miembros {
		if t, ok := tabulados[m]; ok {
			plantilla = t
			break
		}
	}
	if plantilla == nil {
		return nil
	}

	out := &entity.Tabulado{Geografia: region.Nombre, Columnas: plantilla.Columnas}
	for _, fila := range plantilla.Filas {
		if !entity.EsFilaSector(fila.Actividad) && !entity.EsFilaTotal(fila.Actividad) {
			continue
		}
		etiqueta := fila.Actividad
		if entity.EsFilaTotal(fila.Actividad) {
			etiqueta = entity.PrefijoFilaTotal + " " + region.Nombre
		}
		nueva := entity.FilaTabulado{Actividad: etiqueta, Celdas: make([]entity.Celda, len(out.Columnas))}
		for ci, col := range out.Columnas {
			var celdas []entity.Celda
			for _, m := range region.Miembros {
				t, ok := tabulados[m]
				if !ok {
					celdas = append(celdas, entity.Celda{Tipo: entity.CeldaNoAplica})
					continue
				}
				var c entity.Celda
				var hay bool
				if entity.EsFilaTotal(fila.Actividad) {
					if ft, okTot := t.FilaTotal(); okTot && ci < len(ft.Celdas) {
						c, hay = ft.Celdas[ci], true
					}
				} else {
					c, hay = t.Celda(fila.Actividad, col)
				}
				if !hay {
					c = entity.Celda{Tipo: entity.CeldaNoAplica}
				}
				celdas = append(celdas, c)
			}
			nueva.Celdas[ci] = AgregarParcial(celdas)
		}
		out.Filas = append(out.Filas, nueva)
	}
	return out
}
