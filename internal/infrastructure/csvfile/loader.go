package csvfile

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// CargadorCSV lee tabulados anchos (Actividad Economica + columnas
// Codigo_Año) y los normaliza al dominio de valores del censo. Las celdas
// malformadas se aíslan como ErrorParseo sin abortar el resto de la tabla.
type CargadorCSV struct {
	celdaVacia string // tipo por defecto para celda vacía sin evidencia: confidencial o no_aplica
}

// NuevoCargador construye el cargador. celdaVacia es la convención para las
// celdas estrictamente vacías cuando la tabla no da evidencia de si la
// actividad existió ese año ("confidencial" por defecto: la fuente usa el
// vacío como marcador alterno de reserva).
func NuevoCargador(celdaVacia string) *CargadorCSV {
	if celdaVacia != entity.CeldaNoAplica {
		celdaVacia = entity.CeldaConfidencial
	}
	return &CargadorCSV{celdaVacia: celdaVacia}
}

// CargarArchivo carga el tabulado de un archivo; la geografía es el nombre
// del archivo sin extensión, con guiones bajos como espacios
// ("28_Tamaulipas.csv" y "28 Tamaulipas.csv" producen "28 Tamaulipas").
func (c *CargadorCSV) CargarArchivo(path string) (*entity.Tabulado, []entity.ErrorParseo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("abrir tabulado: %w", err)
	}
	defer f.Close()

	geografia := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	geografia = strings.ReplaceAll(geografia, "_", " ")
	return c.Cargar(f, filepath.Base(path), geografia)
}

// CargarDirectorio carga todos los tabulados *.csv de un directorio y sus
// subdirectorios, indexados por geografía.
func (c *CargadorCSV) CargarDirectorio(dir string) (map[string]*entity.Tabulado, []entity.ErrorParseo, error) {
	tabulados := make(map[string]*entity.Tabulado)
	var errores []entity.ErrorParseo

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".csv") {
			return nil
		}
		t, errs, err := c.CargarArchivo(path)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		errores = append(errores, errs...)
		if _, existe := tabulados[t.Geografia]; existe {
			return fmt.Errorf("%s: %w", t.Geografia, domain.ErrObservacionDuplicada)
		}
		tabulados[t.Geografia] = t
		return nil
	})
	if err != nil {
		return nil, errores, err
	}
	return tabulados, errores, nil
}

// Cargar lee un tabulado ancho desde r. Reglas de frontera:
//
//   - encabezado: primera columna de actividad (con o sin acentos), resto
//     columnas Codigo_Año contra el catálogo;
//   - algunos archivos derivados traen una primera fila postiza "C1,C2,...";
//     se detecta y se salta;
//   - la fila checksum nunca se carga (siempre se recalcula);
//   - "N/A" -> no aplica, "C" -> confidencial, cifra -> numérica, sumas
//     anotadas "base + kC" -> numérica parcial;
//   - celda vacía en fila de sector: confidencial si la misma fila trae
//     cifra para ese año en otra variable (la actividad existió), no aplica
//     si no hay rastro del año, y la convención configurada en ausencia de
//     evidencia.
func (c *CargadorCSV) Cargar(r io.Reader, archivo, geografia string) (*entity.Tabulado, []entity.ErrorParseo, error) {
	lector := csv.NewReader(r)
	lector.FieldsPerRecord = -1
	lector.TrimLeadingSpace = true

	registros, err := lector.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(registros) < 2 {
		return nil, nil, fmt.Errorf("%s: %w: tabla sin datos", archivo, domain.ErrEncabezadoInvalido)
	}

	filaEncabezado := 0
	if esEncabezadoPostizo(registros[0]) {
		filaEncabezado = 1
	}
	encabezado := registros[filaEncabezado]
	if len(encabezado) < 2 || !EsColumnaActividad(encabezado[0]) {
		return nil, nil, fmt.Errorf("%s: %w: se esperaba %q en la primera columna",
			archivo, domain.ErrEncabezadoInvalido, entity.ColumnaActividad)
	}

	columnas := make([]entity.ColumnaVariable, 0, len(encabezado)-1)
	for _, col := range encabezado[1:] {
		cv, err := parseEncabezadoColumna(col)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: columna %q: %w", archivo, col, err)
		}
		columnas = append(columnas, cv)
	}

	t := &entity.Tabulado{Geografia: geografia, Columnas: columnas}
	var errores []entity.ErrorParseo
	vistas := make(map[string]bool)

	for fi, registro := range registros[filaEncabezado+1:] {
		numFila := filaEncabezado + 2 + fi // 1-based, contando el encabezado
		if len(registro) == 0 || registro[0] == "" {
			continue
		}
		actividad := strings.TrimSpace(registro[0])
		if actividad == entity.FilaChecksum {
			continue
		}
		if vistas[actividad] {
			errores = append(errores, entity.ErrorParseo{
				Archivo: archivo, Fila: numFila, Actividad: actividad,
				Motivo: domain.ErrObservacionDuplicada.Error(),
			})
			continue
		}
		vistas[actividad] = true

		fila := entity.FilaTabulado{Actividad: actividad, Celdas: make([]entity.Celda, len(columnas))}
		vacias := make([]int, 0)
		aniosConCifra := make(map[int]bool)

		for ci := range columnas {
			crudo := ""
			if ci+1 < len(registro) {
				crudo = strings.TrimSpace(registro[ci+1])
			}
			if crudo == "" {
				vacias = append(vacias, ci)
				continue
			}
			celda, err := entity.ParseCelda(crudo)
			if err != nil {
				errores = append(errores, entity.ErrorParseo{
					Archivo: archivo, Fila: numFila, Columna: columnas[ci].String(),
					Actividad: actividad, Contenido: crudo,
					Motivo: fmt.Sprintf("%v: %v", domain.ErrCeldaInvalida, err),
				})
				// La celda malformada queda como confidencial para no
				// presentar actividad con cifra desconocida como inexistente.
				celda = entity.CeldaConfidencialN(1)
			}
			fila.Celdas[ci] = celda
			if celda.Tipo != entity.CeldaNoAplica {
				aniosConCifra[columnas[ci].Anio] = true
			}
		}

		// Celdas vacías: mismo tratamiento que un marcador explícito, con la
		// evidencia de la propia fila para decidir entre C y N/A.
		for _, ci := range vacias {
			fila.Celdas[ci] = c.celdaVaciaPara(aniosConCifra, columnas[ci].Anio)
		}
		t.Filas = append(t.Filas, fila)
	}

	t.OrdenarColumnas()
	return t, errores, nil
}

func (c *CargadorCSV) celdaVaciaPara(aniosConCifra map[int]bool, anio int) entity.Celda {
	if aniosConCifra[anio] {
		return entity.CeldaConfidencialN(1)
	}
	if len(aniosConCifra) > 0 {
		// La actividad existe en otros años pero no dejó rastro en éste.
		return entity.Celda{Tipo: entity.CeldaNoAplica}
	}
	if c.celdaVacia == entity.CeldaNoAplica {
		return entity.Celda{Tipo: entity.CeldaNoAplica}
	}
	return entity.CeldaConfidencialN(1)
}

// parseEncabezadoColumna interpreta "A111A_2018" contra los catálogos de
// variables y años.
func parseEncabezadoColumna(s string) (entity.ColumnaVariable, error) {
	codigo, anioTxt, ok := strings.Cut(strings.TrimSpace(s), "_")
	if !ok {
		return entity.ColumnaVariable{}, domain.ErrEncabezadoInvalido
	}
	if !entity.EsVariableConocida(codigo) {
		return entity.ColumnaVariable{}, domain.ErrVariableDesconocida
	}
	anio, err := strconv.Atoi(anioTxt)
	if err != nil || !entity.EsAnioCensal(anio) {
		return entity.ColumnaVariable{}, domain.ErrAnioDesconocido
	}
	return entity.ColumnaVariable{Variable: codigo, Anio: anio}, nil
}

// esEncabezadoPostizo detecta la primera fila "C1,C2,..." que algunos
// archivos derivados anteponen al encabezado real.
func esEncabezadoPostizo(fila []string) bool {
	if len(fila) == 0 {
		return false
	}
	for _, celda := range fila {
		if len(celda) < 2 || celda[0] != 'C' {
			return false
		}
		if _, err := strconv.Atoi(celda[1:]); err != nil {
			return false
		}
	}
	return true
}
