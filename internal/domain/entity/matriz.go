package entity

import "github.com/shopspring/decimal"

// Tipos de matriz de proporción: la participación de una geografía inferior
// en el total de la superior.
const (
	ProporcionEstatalNacional = "estatal-nacional"
	ProporcionRegionEstatal   = "region-estatal"
	ProporcionRegionNacional  = "region-nacional"
)

// TiposProporcion enumera los tres tipos en orden de presentación.
func TiposProporcion() []string {
	return []string{ProporcionEstatalNacional, ProporcionRegionEstatal, ProporcionRegionNacional}
}

// EsTipoProporcion valida un tipo de matriz.
func EsTipoProporcion(tipo string) bool {
	switch tipo {
	case ProporcionEstatalNacional, ProporcionRegionEstatal, ProporcionRegionNacional:
		return true
	}
	return false
}

// CeldaProporcion es una celda de matriz: un cociente definido (con bandera
// de fuera de rango) o una indefinición con causa.
type CeldaProporcion struct {
	Definida     bool
	Valor        decimal.Decimal // solo si Definida
	FueraDeRango bool            // valor fuera de [0, 1]; se reporta, no se rechaza
	Causa        string          // solo si !Definida (ver hallazgo.go)
}

// FilaProporcion es la fila de una actividad: una celda por año.
type FilaProporcion struct {
	Actividad string
	Celdas    []CeldaProporcion
}

// MatrizProporcion es la tabla derivada para una variable y un par de
// geografías (numerador/denominador), con la misma forma actividad × año de
// los tabulados de entrada. Se recalcula siempre a partir de las
// observaciones; nunca se edita ni se considera autoritativa.
type MatrizProporcion struct {
	Tipo        string
	Variable    string
	Numerador   string // clave de la geografía inferior ("28 Tamaulipas", "Sur", ...)
	Denominador string // clave de la geografía superior
	Anios       []int
	Filas       []FilaProporcion
}

// Celda devuelve la celda de una actividad y un año.
func (m *MatrizProporcion) Celda(actividad string, anio int) (CeldaProporcion, bool) {
	ai := -1
	for i, a := range m.Anios {
		if a == anio {
			ai = i
			break
		}
	}
	if ai < 0 {
		return CeldaProporcion{}, false
	}
	for _, f := range m.Filas {
		if f.Actividad == actividad && ai < len(f.Celdas) {
			return f.Celdas[ai], true
		}
	}
	return CeldaProporcion{}, false
}
