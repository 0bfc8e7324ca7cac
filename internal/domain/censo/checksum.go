// Package censo contiene los servicios puros del dominio censal: checksum de
// columnas, agregación regional, proporciones y estructura porcentual. Sin
// dependencias de infraestructura; toda la aritmética es decimal.
package censo

import (
	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// ToleranciaPorDefecto para comparar checksum contra total reportado. Las
// cifras fuente vienen redondeadas a 3 decimales, así que una columna de
// hasta ~25 sectores acumula cuando mucho 0.0125 de error de redondeo.
var ToleranciaPorDefecto = decimal.RequireFromString("0.01")

// Validador compara la suma de los sectores de una columna contra el total
// reportado por el instituto, dentro de una tolerancia fija.
type Validador struct {
	tolerancia decimal.Decimal
}

// NuevoValidador construye el validador. Una tolerancia no positiva cae al
// valor por defecto.
func NuevoValidador(tolerancia decimal.Decimal) *Validador {
	if tolerancia.LessThanOrEqual(decimal.Zero) {
		tolerancia = ToleranciaPorDefecto
	}
	return &Validador{tolerancia: tolerancia}
}

// Checksum suma las celdas numéricas de los sectores de una columna. Las
// celdas confidenciales y no aplicables aportan cero a la base; los sumandos
// censurados se acumulan aparte para el reporte.
func Checksum(sectores []entity.Celda) (suma decimal.Decimal, censurados int) {
	suma = decimal.Zero
	for _, c := range sectores {
		if c.EsNumerica() {
			suma = suma.Add(c.Valor)
		}
		censurados += c.Censurados
	}
	return suma, censurados
}

// ValidarColumna emite el veredicto de una columna. Si el propio total es
// confidencial o no aplica, la columna es no verificable; una discrepancia es
// un hallazgo esperado del secreto estadístico y jamás un error fatal.
func (v *Validador) ValidarColumna(clave entity.ClaveColumna, sectores []entity.Celda, total entity.Celda) entity.ResultadoChecksum {
	suma, censurados := Checksum(sectores)
	res := entity.ResultadoChecksum{
		Geografia:  clave.Geografia,
		Variable:   clave.Variable,
		Anio:       clave.Anio,
		Checksum:   suma,
		Censurados: censurados,
	}
	if !total.EsCompleta() {
		res.Resultado = entity.ValidacionNoVerificable
		return res
	}
	res.TotalReportado = total.Valor
	res.Delta = suma.Sub(total.Valor)
	if res.Delta.Abs().LessThanOrEqual(v.tolerancia) {
		res.Resultado = entity.ValidacionConsistente
	} else {
		res.Resultado = entity.ValidacionDiscrepancia
	}
	return res
}

// ValidarTabulado valida todas las columnas de un tabulado. Sin fila de
// total, todas las columnas son no verificables.
func (v *Validador) ValidarTabulado(t *entity.Tabulado) []entity.ResultadoChecksum {
	total, hayTotal := t.FilaTotal()
	resultados := make([]entity.ResultadoChecksum, 0, len(t.Columnas))
	for i, col := range t.Columnas {
		var sectores []entity.Celda
		for _, f := range t.Filas {
			if entity.EsFilaSector(f.Actividad) && i < len(f.Celdas) {
				sectores = append(sectores, f.Celdas[i])
			}
		}
		celdaTotal := entity.Celda{Tipo: entity.CeldaNoAplica}
		if hayTotal && i < len(total.Celdas) {
			celdaTotal = total.Celdas[i]
		}
		clave := entity.ClaveColumna{Geografia: t.Geografia, Variable: col.Variable, Anio: col.Anio}
		resultados = append(resultados, v.ValidarColumna(clave, sectores, celdaTotal))
	}
	return resultados
}

// FilaChecksum calcula la fila sintética "checksum" de un tabulado: por
// columna, la suma anotada de las filas de sector ("<suma> + kC" si hubo k
// sumandos censurados). Es la fila que los archivos publicados llevan al
// fondo y siempre se recalcula, nunca se carga.
func FilaChecksum(t *entity.Tabulado) entity.FilaTabulado {
	fila := entity.FilaTabulado{
		Actividad: entity.FilaChecksum,
		Celdas:    make([]entity.Celda, len(t.Columnas)),
	}
	for i := range t.Columnas {
		var sectores []entity.Celda
		for _, f := range t.Filas {
			if entity.EsFilaSector(f.Actividad) && i < len(f.Celdas) {
				sectores = append(sectores, f.Celdas[i])
			}
		}
		suma, censurados := Checksum(sectores)
		fila.Celdas[i] = entity.Celda{Tipo: entity.CeldaNumerica, Valor: suma, Censurados: censurados}
	}
	return fila
}
