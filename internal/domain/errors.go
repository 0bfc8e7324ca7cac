package domain

import "errors"

// Errores de dominio (sin dependencias externas). Los hallazgos de validación
// (discrepancias, no verificables, proporciones indefinidas) no son errores:
// son valores del dominio y viajan en el reporte.
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrCeldaInvalida        = errors.New("contenido de celda no reconocido")
	ErrEncabezadoInvalido   = errors.New("encabezado de tabulado inválido")
	ErrObservacionDuplicada = errors.New("observación duplicada para la misma clave")
	ErrVariableDesconocida  = errors.New("código de variable fuera del catálogo")
	ErrAnioDesconocido      = errors.New("año fuera de los levantamientos censales")
	ErrGeografiaDesconocida = errors.New("geografía fuera del catálogo")
	ErrTipoProporcion       = errors.New("tipo de proporción no soportado")
	ErrEntradaInvalida      = errors.New("entrada inválida")
	ErrDuplicado            = errors.New("recurso duplicado")
)
