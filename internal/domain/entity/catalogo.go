package entity

import "strings"

// Códigos de variable del SAIC (ver glosario del instituto).
const (
	VarProduccionBruta    = "A111A" // Producción bruta total
	VarConsumoIntermedio  = "A121A" // Consumo intermedio
	VarValorAgregado      = "A131A" // Valor agregado censal bruto
	VarInversionTotal     = "A211A" // Inversión total
	VarFormacionCapital   = "A221A" // Formación bruta de capital fijo
	VarPersonalOcupado    = "H001A" // Personal ocupado total
	VarUnidadesEconomicas = "Q000A" // Unidades económicas
)

// Unidades de medida de las variables.
const (
	UnidadMillonesPesos = "millones de pesos"
	UnidadPersonas      = "personas"
	UnidadUnidades      = "unidades económicas"
)

// Variable describe un código de variable censal.
type Variable struct {
	Codigo string
	Nombre string
	Unidad string
}

// CatalogoVariables devuelve las siete variables del estudio en orden de código.
func CatalogoVariables() []Variable {
	return []Variable{
		{Codigo: VarProduccionBruta, Nombre: "Producción bruta total", Unidad: UnidadMillonesPesos},
		{Codigo: VarConsumoIntermedio, Nombre: "Consumo intermedio", Unidad: UnidadMillonesPesos},
		{Codigo: VarValorAgregado, Nombre: "Valor agregado censal bruto", Unidad: UnidadMillonesPesos},
		{Codigo: VarInversionTotal, Nombre: "Inversión total", Unidad: UnidadMillonesPesos},
		{Codigo: VarFormacionCapital, Nombre: "Formación bruta de capital fijo", Unidad: UnidadMillonesPesos},
		{Codigo: VarPersonalOcupado, Nombre: "Personal ocupado total", Unidad: UnidadPersonas},
		{Codigo: VarUnidadesEconomicas, Nombre: "Unidades económicas", Unidad: UnidadUnidades},
	}
}

// EsVariableConocida valida un código contra el catálogo.
func EsVariableConocida(codigo string) bool {
	for _, v := range CatalogoVariables() {
		if v.Codigo == codigo {
			return true
		}
	}
	return false
}

// VariablesProporcion son las cuatro variables de flujo para las que se
// calculan las matrices de proporción.
func VariablesProporcion() []string {
	return []string{VarProduccionBruta, VarConsumoIntermedio, VarValorAgregado, VarFormacionCapital}
}

// AniosCensales son los años de levantamiento cubiertos por el estudio.
func AniosCensales() []int {
	return []int{2003, 2008, 2013, 2018, 2023}
}

// EsAnioCensal valida un año contra el catálogo.
func EsAnioCensal(anio int) bool {
	for _, a := range AniosCensales() {
		if a == anio {
			return true
		}
	}
	return false
}

// Sector es una clase de actividad económica del clasificador (SCIAN a dos
// dígitos, como lo publican los tabulados).
type Sector struct {
	Codigo string
	Nombre string
}

// CatalogoSectores devuelve los sectores estándar de los tabulados censales.
func CatalogoSectores() []Sector {
	return []Sector{
		{Codigo: "11", Nombre: "Sector 11 Pesca y acuicultura"},
		{Codigo: "21", Nombre: "Sector 21 Minería"},
		{Codigo: "22", Nombre: "Sector 22 Electricidad, agua y gas"},
		{Codigo: "23", Nombre: "Sector 23 Construcción"},
		{Codigo: "31-33", Nombre: "Sector 31-33 Industrias manufactureras"},
		{Codigo: "43", Nombre: "Sector 43 Comercio al por mayor"},
		{Codigo: "46", Nombre: "Sector 46 Comercio al por menor"},
		{Codigo: "48-49", Nombre: "Sector 48-49 Transportes, correos y almacenamiento"},
		{Codigo: "51", Nombre: "Sector 51 Información en medios masivos"},
		{Codigo: "52", Nombre: "Sector 52 Servicios financieros y de seguros"},
		{Codigo: "53", Nombre: "Sector 53 Servicios inmobiliarios y de alquiler"},
		{Codigo: "54", Nombre: "Sector 54 Servicios profesionales, científicos y técnicos"},
		{Codigo: "55", Nombre: "Sector 55 Corporativos"},
		{Codigo: "56", Nombre: "Sector 56 Servicios de apoyo a los negocios"},
		{Codigo: "61", Nombre: "Sector 61 Servicios educativos"},
		{Codigo: "62", Nombre: "Sector 62 Servicios de salud y asistencia social"},
		{Codigo: "71", Nombre: "Sector 71 Servicios de esparcimiento"},
		{Codigo: "72", Nombre: "Sector 72 Alojamiento temporal y preparación de alimentos"},
		{Codigo: "81", Nombre: "Sector 81 Otros servicios excepto actividades gubernamentales"},
		{Codigo: "93", Nombre: "Sector 93 Actividades gubernamentales"},
	}
}

// Etiquetas de filas sintéticas en los tabulados.
const (
	PrefijoFilaSector = "Sector "
	FilaChecksum      = "checksum"
	PrefijoFilaTotal  = "Total"
	ColumnaActividad  = "Actividad Economica"
)

// EsFilaSector indica si la etiqueta de actividad corresponde a un sector
// (solo estas filas participan en el checksum).
func EsFilaSector(actividad string) bool {
	return strings.HasPrefix(actividad, PrefijoFilaSector)
}

// EsFilaTotal indica si la etiqueta corresponde a la fila de total reportado
// ("Total Nacional", "Total Tamaulipas", "Total 041 Victoria", ...).
func EsFilaTotal(actividad string) bool {
	return strings.HasPrefix(actividad, PrefijoFilaTotal)
}
