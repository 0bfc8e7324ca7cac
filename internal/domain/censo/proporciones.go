package censo

import (
	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// Proporcion calcula numerador/denominador como celda de matriz. La
// indefinición se propaga con su causa: primero se examina el numerador,
// luego el denominador, por último el cero. Un cociente fuera de [0, 1] se
// marca, nunca se rechaza.
func Proporcion(num, den entity.Celda) entity.CeldaProporcion {
	if causa := causaOperando(num, true); causa != "" {
		return entity.CeldaProporcion{Causa: causa}
	}
	if causa := causaOperando(den, false); causa != "" {
		return entity.CeldaProporcion{Causa: causa}
	}
	if den.Valor.IsZero() {
		return entity.CeldaProporcion{Causa: entity.CausaDenominadorCero}
	}
	valor := num.Valor.Div(den.Valor)
	return entity.CeldaProporcion{
		Definida:     true,
		Valor:        valor,
		FueraDeRango: valor.IsNegative() || valor.GreaterThan(decimal.NewFromInt(1)),
	}
}

func causaOperando(c entity.Celda, esNumerador bool) string {
	switch {
	case c.Tipo == entity.CeldaConfidencial && esNumerador:
		return entity.CausaNumeradorConfidencial
	case c.Tipo == entity.CeldaConfidencial:
		return entity.CausaDenominadorConfidencial
	case c.Tipo == entity.CeldaNoAplica && esNumerador:
		return entity.CausaNumeradorNoAplica
	case c.Tipo == entity.CeldaNoAplica:
		return entity.CausaDenominadorNoAplica
	case c.Censurados > 0 && esNumerador:
		return entity.CausaNumeradorParcial
	case c.Censurados > 0:
		return entity.CausaDenominadorParcial
	}
	return ""
}

// MotorProporciones arma matrices de proporción a partir de tabulados
// normalizados. Es determinista: recalcular sobre las mismas observaciones
// produce matrices idénticas.
type MotorProporciones struct {
	anios []int
}

// NuevoMotorProporciones construye el motor para un conjunto de años.
func NuevoMotorProporciones(anios []int) *MotorProporciones {
	if len(anios) == 0 {
		anios = entity.AniosCensales()
	}
	return &MotorProporciones{anios: anios}
}

// ResultadoMatriz agrupa una matriz con los hallazgos que produjo su cálculo.
type ResultadoMatriz struct {
	Matriz      *entity.MatrizProporcion
	Indefinidas []entity.ProporcionIndefinida
	Anomalias   []entity.AnomaliaProporcion
}

// Matriz calcula la matriz de un tipo y variable entre dos tabulados
// (numerador inferior, denominador superior), alineando filas de sector por
// etiqueta y las filas de total entre sí.
func (m *MotorProporciones) Matriz(tipo, variable string, num, den *entity.Tabulado) ResultadoMatriz {
	res := ResultadoMatriz{Matriz: &entity.MatrizProporcion{
		Tipo:        tipo,
		Variable:    variable,
		Numerador:   num.Geografia,
		Denominador: den.Geografia,
		Anios:       m.anios,
	}}
	filaTotalDen, hayTotalDen := den.FilaTotal()

	for _, filaNum := range num.Filas {
		esTotal := entity.EsFilaTotal(filaNum.Actividad)
		if !entity.EsFilaSector(filaNum.Actividad) && !esTotal {
			continue
		}
		fila := entity.FilaProporcion{
			Actividad: filaNum.Actividad,
			Celdas:    make([]entity.CeldaProporcion, len(m.anios)),
		}
		for ai, anio := range m.anios {
			col := entity.ColumnaVariable{Variable: variable, Anio: anio}
			cNum, hayNum := num.Celda(filaNum.Actividad, col)
			if !hayNum {
				cNum = entity.Celda{Tipo: entity.CeldaNoAplica}
			}
			var cDen entity.Celda
			hayDen := false
			if esTotal {
				if hayTotalDen {
					cDen, hayDen = den.Celda(filaTotalDen.Actividad, col)
				}
			} else {
				cDen, hayDen = den.Celda(filaNum.Actividad, col)
			}
			if !hayDen {
				cDen = entity.Celda{Tipo: entity.CeldaNoAplica}
			}

			celda := Proporcion(cNum, cDen)
			fila.Celdas[ai] = celda
			m.registrar(&res, tipo, variable, anio, filaNum.Actividad, num.Geografia, den.Geografia, celda)
		}
		res.Matriz.Filas = append(res.Matriz.Filas, fila)
	}
	return res
}

// MatrizRegional calcula la matriz de una región contra un denominador
// (estatal o nacional). El numerador de cada celda es la suma conservadora de
// los miembros: basta un miembro sin cifra completa para que la celda quede
// indefinida, con el miembro causante en el hallazgo.
func (m *MotorProporciones) MatrizRegional(tipo, variable string, region entity.Region, tabulados map[string]*entity.Tabulado, den *entity.Tabulado) ResultadoMatriz {
	res := ResultadoMatriz{Matriz: &entity.MatrizProporcion{
		Tipo:        tipo,
		Variable:    variable,
		Numerador:   region.Nombre,
		Denominador: den.Geografia,
		Anios:       m.anios,
	}}

	// Actividades de la plantilla: primer miembro con tabulado.
	var plantilla *entity.Tabulado
	miembros := make([]entity.Geografia, 0, len(region.Miembros))
	for _, clave := range region.Miembros {
		miembros = append(miembros, entity.Geografia{Clave: clave, Nivel: entity.NivelMunicipal, Padre: region.Estado})
		if plantilla == nil {
			if t, ok := tabulados[clave]; ok {
				plantilla = t
			}
		}
	}
	if plantilla == nil {
		return res
	}
	filaTotalDen, hayTotalDen := den.FilaTotal()

	for _, filaBase := range plantilla.Filas {
		esTotal := entity.EsFilaTotal(filaBase.Actividad)
		if !entity.EsFilaSector(filaBase.Actividad) && !esTotal {
			continue
		}
		etiqueta := filaBase.Actividad
		if esTotal {
			etiqueta = entity.PrefijoFilaTotal + " " + region.Nombre
		}
		fila := entity.FilaProporcion{
			Actividad: etiqueta,
			Celdas:    make([]entity.CeldaProporcion, len(m.anios)),
		}
		for ai, anio := range m.anios {
			col := entity.ColumnaVariable{Variable: variable, Anio: anio}

			celdasMiembro := make([]entity.Celda, 0, len(region.Miembros))
			for _, clave := range region.Miembros {
				t, ok := tabulados[clave]
				if !ok {
					celdasMiembro = append(celdasMiembro, entity.Celda{Tipo: entity.CeldaNoAplica})
					continue
				}
				var c entity.Celda
				var hay bool
				if esTotal {
					if ft, okTot := t.FilaTotal(); okTot {
						c, hay = t.Celda(ft.Actividad, col)
					}
				} else {
					c, hay = t.Celda(filaBase.Actividad, col)
				}
				if !hay {
					c = entity.Celda{Tipo: entity.CeldaNoAplica}
				}
				celdasMiembro = append(celdasMiembro, c)
			}
			cNum, causante := AgregarConservadora(miembros, celdasMiembro)

			var celda entity.CeldaProporcion
			if causante != "" {
				celda = entity.CeldaProporcion{Causa: entity.CausaMiembroRegionIncompleto}
				res.Indefinidas = append(res.Indefinidas, entity.ProporcionIndefinida{
					Tipo: tipo, Variable: variable, Anio: anio,
					Actividad: etiqueta, Geografia: causante,
					Causa: entity.CausaMiembroRegionIncompleto,
				})
			} else {
				var cDen entity.Celda
				hayDen := false
				if esTotal {
					if hayTotalDen {
						cDen, hayDen = den.Celda(filaTotalDen.Actividad, col)
					}
				} else {
					cDen, hayDen = den.Celda(filaBase.Actividad, col)
				}
				if !hayDen {
					cDen = entity.Celda{Tipo: entity.CeldaNoAplica}
				}
				celda = Proporcion(cNum, cDen)
				m.registrar(&res, tipo, variable, anio, etiqueta, region.Nombre, den.Geografia, celda)
			}
			fila.Celdas[ai] = celda
		}
		res.Matriz.Filas = append(res.Matriz.Filas, fila)
	}
	return res
}

// registrar acumula los hallazgos de una celda ya calculada.
func (m *MotorProporciones) registrar(res *ResultadoMatriz, tipo, variable string, anio int, actividad, geoNum, geoDen string, celda entity.CeldaProporcion) {
	if !celda.Definida {
		geo := geoNum
		switch celda.Causa {
		case entity.CausaDenominadorConfidencial, entity.CausaDenominadorNoAplica,
			entity.CausaDenominadorParcial, entity.CausaDenominadorCero:
			geo = geoDen
		}
		res.Indefinidas = append(res.Indefinidas, entity.ProporcionIndefinida{
			Tipo: tipo, Variable: variable, Anio: anio,
			Actividad: actividad, Geografia: geo, Causa: celda.Causa,
		})
		return
	}
	if celda.FueraDeRango {
		res.Anomalias = append(res.Anomalias, entity.AnomaliaProporcion{
			Tipo: tipo, Variable: variable, Anio: anio,
			Actividad: actividad, Valor: celda.Valor,
		})
	}
}
