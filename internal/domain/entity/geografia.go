package entity

// Niveles de la jerarquía geográfica del censo: Nacional ⊃ Estatal ⊃ Municipal,
// más las regiones (agrupaciones fijas configuradas, nunca derivadas).
const (
	NivelNacional  = "nacional"
	NivelEstatal   = "estatal"
	NivelMunicipal = "municipal"
	NivelRegional  = "regional"
)

// Claves estándar del catálogo geográfico.
const (
	ClaveNacional   = "00 Total Nacional"
	ClaveTamaulipas = "28 Tamaulipas"
)

// Geografia es un nodo de la jerarquía geográfica. Padre es la clave del
// nivel inmediato superior (municipio -> estado, estado -> nacional); vacío
// para el nodo nacional.
type Geografia struct {
	Clave  string // "00 Total Nacional", "28 Tamaulipas", "009 Ciudad Madero", "Sur"
	Nombre string
	Nivel  string
	Padre  string
}

// Region es una agrupación fija de geografías miembro, elegida por
// configuración. Invariante: los miembros se enumeran explícitamente; una
// región jamás se deriva de los datos.
type Region struct {
	Nombre   string   `mapstructure:"nombre"`
	Estado   string   `mapstructure:"estado"`   // clave del estado que contiene a los miembros
	Miembros []string `mapstructure:"miembros"` // claves de las geografías miembro
}

// RegionesTamaulipas es la regionalización por defecto del estado 28,
// heredada del estudio original. Puede sustituirse por configuración.
func RegionesTamaulipas() []Region {
	return []Region{
		{Nombre: "Frontera", Estado: ClaveTamaulipas, Miembros: []string{"027 Nuevo Laredo"}},
		{Nombre: "Ribereña", Estado: ClaveTamaulipas, Miembros: []string{
			"007 Camargo", "014 Guerrero", "015 Gustavo Díaz Ordaz", "024 Mier", "025 Miguel Alemán"}},
		{Nombre: "Reynosa", Estado: ClaveTamaulipas, Miembros: []string{
			"005 Burgos", "032 Reynosa", "033 Río Bravo", "023 Méndez"}},
		{Nombre: "Matamoros", Estado: ClaveTamaulipas, Miembros: []string{
			"010 Cruillas", "035 San Fernando", "022 Matamoros", "040 Valle Hermoso"}},
		{Nombre: "Centro", Estado: ClaveTamaulipas, Miembros: []string{
			"001 Abasolo", "008 Casas", "013 Güémez", "016 Hidalgo", "018 Jiménez", "019 Llera",
			"020 Mainero", "030 Padilla", "034 San Carlos", "036 San Nicolás", "037 Soto la Marina",
			"041 Victoria", "042 Villagrán"}},
		{Nombre: "Mante", Estado: ClaveTamaulipas, Miembros: []string{
			"004 Antiguo Morelos", "006 Bustamante", "017 Jaumave", "026 Miquihuana", "031 Palmillas",
			"039 Tula", "021 El Mante", "011 Gómez Farías", "012 González", "028 Nuevo Morelos",
			"029 Ocampo", "043 Xicoténcatl"}},
		{Nombre: "Sur", Estado: ClaveTamaulipas, Miembros: []string{
			"002 Aldama", "003 Altamira", "009 Ciudad Madero", "038 Tampico"}},
	}
}
