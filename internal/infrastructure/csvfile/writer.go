package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// EscritorCSV escribe tabulados, matrices de proporción y reportes de
// hallazgos bajo un directorio de salida, con el mismo formato de los
// archivos publicados (3 decimales sin ceros finales, anotaciones "+ kC").
type EscritorCSV struct {
	dir string
}

// NuevoEscritor construye el escritor sobre un directorio base.
func NuevoEscritor(dir string) *EscritorCSV {
	return &EscritorCSV{dir: dir}
}

// EscribirTabulado escribe la tabla ancha de una geografía. Si conChecksum es
// verdadero, agrega al fondo la fila sintética de checksum recalculada.
func (e *EscritorCSV) EscribirTabulado(t *entity.Tabulado, conChecksum bool, subdir, nombre string) (string, error) {
	encabezado := make([]string, 0, len(t.Columnas)+1)
	encabezado = append(encabezado, entity.ColumnaActividad)
	for _, col := range t.Columnas {
		encabezado = append(encabezado, col.String())
	}

	filas := [][]string{encabezado}
	for _, f := range t.Filas {
		filas = append(filas, filaTexto(f, len(t.Columnas)))
	}
	if conChecksum {
		filas = append(filas, filaTexto(censo.FilaChecksum(t), len(t.Columnas)))
	}
	return e.escribir(subdir, nombre, filas)
}

// EscribirMatriz escribe una matriz de proporción: filas de actividad,
// columnas Codigo_Año, cocientes a 6 decimales y celdas indefinidas vacías.
func (e *EscritorCSV) EscribirMatriz(m *entity.MatrizProporcion, subdir, nombre string) (string, error) {
	encabezado := make([]string, 0, len(m.Anios)+1)
	encabezado = append(encabezado, entity.ColumnaActividad)
	for _, anio := range m.Anios {
		encabezado = append(encabezado, fmt.Sprintf("%s_%d", m.Variable, anio))
	}

	filas := [][]string{encabezado}
	for _, f := range m.Filas {
		fila := make([]string, 0, len(m.Anios)+1)
		fila = append(fila, f.Actividad)
		for _, c := range f.Celdas {
			if !c.Definida {
				fila = append(fila, "")
				continue
			}
			fila = append(fila, c.Valor.Round(6).String())
		}
		filas = append(filas, fila)
	}
	return e.escribir(subdir, nombre, filas)
}

// EscribirReporte serializa el reporte de hallazgos como JSON indentado.
func (e *EscritorCSV) EscribirReporte(r *entity.ReporteHallazgos, nombre string) (string, error) {
	if err := os.MkdirAll(e.dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de salida: %w", err)
	}
	path := filepath.Join(e.dir, nombre)
	datos, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializar reporte: %w", err)
	}
	if err := os.WriteFile(path, datos, 0o644); err != nil {
		return "", fmt.Errorf("escribir reporte: %w", err)
	}
	return path, nil
}

func (e *EscritorCSV) escribir(subdir, nombre string, filas [][]string) (string, error) {
	dir := filepath.Join(e.dir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("crear directorio de salida: %w", err)
	}
	path := filepath.Join(dir, nombre)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("crear archivo: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(filas); err != nil {
		return "", fmt.Errorf("escribir CSV: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("vaciar CSV: %w", err)
	}
	return path, nil
}

func filaTexto(f entity.FilaTabulado, columnas int) []string {
	fila := make([]string, 0, columnas+1)
	fila = append(fila, f.Actividad)
	for i := 0; i < columnas; i++ {
		if i >= len(f.Celdas) {
			fila = append(fila, "")
			continue
		}
		fila = append(fila, f.Celdas[i].String())
	}
	return fila
}
