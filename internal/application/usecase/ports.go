package usecase

import "github.com/rmedina/censo-saic/internal/domain/entity"

// CargadorTabulados puerto del adaptador de carga de tabulados fuente.
type CargadorTabulados interface {
	// CargarDirectorio carga todos los tabulados de un directorio, indexados
	// por geografía; los errores de celda vienen aparte y no abortan la carga.
	CargarDirectorio(dir string) (map[string]*entity.Tabulado, []entity.ErrorParseo, error)
}

// EscritorSalidas puerto del escritor de archivos derivados (tabulados
// regionales, matrices, estructura porcentual y reporte de hallazgos).
type EscritorSalidas interface {
	EscribirTabulado(t *entity.Tabulado, conChecksum bool, subdir, nombre string) (string, error)
	EscribirMatriz(m *entity.MatrizProporcion, subdir, nombre string) (string, error)
	EscribirReporte(r *entity.ReporteHallazgos, nombre string) (string, error)
}
