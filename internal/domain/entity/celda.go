package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Tipos de celda del dominio de valores SAIC. Los marcadores textuales de los
// CSV ("C", "N/A", celda vacía) se normalizan a estos tipos en la frontera de
// carga y nunca circulan como texto crudo por el resto del pipeline.
const (
	CeldaNumerica     = "numerica"
	CeldaConfidencial = "confidencial"
	CeldaNoAplica     = "no_aplica"
)

// Marcadores reservados en los tabulados publicados por el INEGI.
const (
	MarcadorConfidencial = "C"
	MarcadorNoAplica     = "N/A"
)

// Celda representa el valor de una celda censal: una cifra en millones de
// pesos (o personal ocupado para H001A), un valor confidencial (la cifra
// existe pero el instituto la reserva) o no aplica (la actividad no existe en
// esa geografía/año).
//
// Censurados registra cuántos sumandos confidenciales participaron en una
// suma parcial anotada ("123.45 + 2C"). Una celda numérica con Censurados > 0
// es una suma incompleta: sirve para el checksum, pero no para proporciones.
type Celda struct {
	Tipo       string
	Valor      decimal.Decimal // solo válido si Tipo == CeldaNumerica
	Censurados int
}

// CeldaDeValor construye una celda numérica completa.
func CeldaDeValor(v decimal.Decimal) Celda {
	return Celda{Tipo: CeldaNumerica, Valor: v}
}

// CeldaConfidencialN construye una celda confidencial con n sumandos censurados.
func CeldaConfidencialN(n int) Celda {
	if n < 1 {
		n = 1
	}
	return Celda{Tipo: CeldaConfidencial, Censurados: n}
}

// EsNumerica indica si la celda tiene una cifra (aunque sea suma parcial).
func (c Celda) EsNumerica() bool { return c.Tipo == CeldaNumerica }

// EsCompleta indica si la celda es numérica y sin sumandos censurados; solo
// las celdas completas pueden participar como operandos de una proporción.
func (c Celda) EsCompleta() bool { return c.Tipo == CeldaNumerica && c.Censurados == 0 }

// ParseCelda interpreta el contenido textual no vacío de una celda de
// tabulado. Formas aceptadas:
//
//	"19407.405"      cifra (se admiten separadores de miles con coma)
//	"C"              confidencial
//	"N/A"            no aplica
//	"123.45 + 2C"    suma parcial con 2 sumandos confidenciales
//	"2C"             suma de puros confidenciales
//	"... + n" / "2n" formas legadas equivalentes a C
//
// Cualquier otro contenido es un error de parseo; la celda malformada se
// aísla y se reporta, nunca se descarta en silencio.
func ParseCelda(s string) (Celda, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Celda{}, fmt.Errorf("celda vacía: usar la convención del cargador")
	}
	// Normalizar el marcador de confidencialidad en minúscula
	t = strings.ReplaceAll(t, "c", "C")

	if t == MarcadorConfidencial {
		return CeldaConfidencialN(1), nil
	}
	if strings.EqualFold(t, MarcadorNoAplica) {
		return Celda{Tipo: CeldaNoAplica}, nil
	}

	// Cifra directa (los tabulados crudos traen comas de miles)
	if v, err := decimal.NewFromString(strings.ReplaceAll(t, ",", "")); err == nil {
		return CeldaDeValor(v), nil
	}

	// Suma parcial anotada: "<base> + kC"
	if antes, despues, ok := strings.Cut(t, "+"); ok {
		base, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(antes), ",", ""))
		if err != nil {
			return Celda{}, fmt.Errorf("base no numérica en %q", s)
		}
		k, err := parseConteoCensurado(strings.ReplaceAll(despues, " ", ""))
		if err != nil {
			return Celda{}, fmt.Errorf("anotación desconocida en %q", s)
		}
		return Celda{Tipo: CeldaNumerica, Valor: base, Censurados: k}, nil
	}

	// "2C" / "2n": k sumandos censurados sin base
	if k, err := parseConteoCensurado(strings.ReplaceAll(t, " ", "")); err == nil {
		return CeldaConfidencialN(k), nil
	}

	return Celda{}, fmt.Errorf("contenido no reconocido %q", s)
}

// parseConteoCensurado interpreta "C", "2C" y las formas legadas "n", "2n".
func parseConteoCensurado(s string) (int, error) {
	var coef string
	switch {
	case strings.HasSuffix(s, "C"):
		coef = strings.TrimSuffix(s, "C")
	case strings.HasSuffix(s, "n"):
		coef = strings.TrimSuffix(s, "n")
	default:
		return 0, fmt.Errorf("sin sufijo C/n")
	}
	if coef == "" {
		return 1, nil
	}
	k, err := strconv.Atoi(coef)
	if err != nil || k < 1 {
		return 0, fmt.Errorf("coeficiente inválido %q", coef)
	}
	return k, nil
}

// String serializa la celda con la misma convención de los archivos fuente:
// base redondeada a 3 decimales sin ceros finales y sufijo "+ kC" si hay
// sumandos censurados.
func (c Celda) String() string {
	switch c.Tipo {
	case CeldaNoAplica:
		return MarcadorNoAplica
	case CeldaConfidencial:
		if c.Censurados > 1 {
			return fmt.Sprintf("%dC", c.Censurados)
		}
		return MarcadorConfidencial
	}
	base := Formato3(c.Valor)
	switch {
	case c.Censurados == 1:
		return base + " + C"
	case c.Censurados > 1:
		return fmt.Sprintf("%s + %dC", base, c.Censurados)
	}
	return base
}

// Formato3 redondea a 3 decimales y recorta ceros finales, como los CSV
// publicados (19407.4050 -> "19407.405", 100.000 -> "100").
func Formato3(v decimal.Decimal) string {
	return v.Round(3).String()
}
