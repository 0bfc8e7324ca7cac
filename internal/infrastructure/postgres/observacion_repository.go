package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

var _ repository.ObservacionRepository = (*ObservacionRepo)(nil)

// ObservacionRepo implementación del puerto ObservacionRepository sobre
// PostgreSQL. Las escrituras de un tabulado son atómicas: se reemplaza el
// lote completo de la geografía dentro de una transacción.
type ObservacionRepo struct {
	pool *pgxpool.Pool
}

// NewObservacionRepository construye el adaptador de persistencia.
func NewObservacionRepository(pool *pgxpool.Pool) *ObservacionRepo {
	return &ObservacionRepo{pool: pool}
}

// GuardarTabulado reemplaza las observaciones y totales de la geografía del
// tabulado bajo el lote indicado.
func (r *ObservacionRepo) GuardarTabulado(ctx context.Context, cargaID string, t *entity.Tabulado) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM observaciones WHERE geografia = $1`, t.Geografia); err != nil {
		return fmt.Errorf("limpiar observaciones: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM totales WHERE geografia = $1`, t.Geografia); err != nil {
		return fmt.Errorf("limpiar totales: %w", err)
	}

	const insObs = `
		INSERT INTO observaciones (geografia, actividad, variable, anio, tipo, valor, censurados, carga_id, cargado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	for _, o := range t.Observaciones() {
		if _, err := tx.Exec(ctx, insObs,
			o.Geografia, o.Actividad, o.Variable, o.Anio,
			o.Celda.Tipo, valorONulo(o.Celda), o.Celda.Censurados, cargaID,
		); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("%s/%s: %w", o.Geografia, o.Actividad, domain.ErrObservacionDuplicada)
			}
			return fmt.Errorf("insert observacion: %w", err)
		}
	}

	const insTotal = `
		INSERT INTO totales (geografia, variable, anio, tipo, valor, censurados, carga_id, cargado_en)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())`
	for _, tot := range t.Totales() {
		if _, err := tx.Exec(ctx, insTotal,
			tot.Geografia, tot.Variable, tot.Anio,
			tot.Celda.Tipo, valorONulo(tot.Celda), tot.Celda.Censurados, cargaID,
		); err != nil {
			return fmt.Errorf("insert total: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Tabulado reconstruye la tabla ancha de una geografía desde las
// observaciones y totales persistidos.
func (r *ObservacionRepo) Tabulado(ctx context.Context, geografia string) (*entity.Tabulado, error) {
	const qObs = `
		SELECT actividad, variable, anio, tipo, valor, censurados
		FROM observaciones WHERE geografia = $1
		ORDER BY actividad, variable, anio`
	rows, err := r.pool.Query(ctx, qObs, geografia)
	if err != nil {
		return nil, fmt.Errorf("consultar observaciones: %w", err)
	}
	defer rows.Close()

	t := &entity.Tabulado{Geografia: geografia}
	indiceCol := make(map[entity.ColumnaVariable]int)
	indiceFila := make(map[string]int)

	agregar := func(actividad, variable string, anio int, celda entity.Celda) {
		col := entity.ColumnaVariable{Variable: variable, Anio: anio}
		ci, ok := indiceCol[col]
		if !ok {
			ci = len(t.Columnas)
			indiceCol[col] = ci
			t.Columnas = append(t.Columnas, col)
		}
		fi, ok := indiceFila[actividad]
		if !ok {
			fi = len(t.Filas)
			indiceFila[actividad] = fi
			t.Filas = append(t.Filas, entity.FilaTabulado{Actividad: actividad})
		}
		for len(t.Filas[fi].Celdas) <= ci {
			t.Filas[fi].Celdas = append(t.Filas[fi].Celdas, entity.Celda{Tipo: entity.CeldaNoAplica})
		}
		t.Filas[fi].Celdas[ci] = celda
	}

	n := 0
	for rows.Next() {
		var (
			actividad, variable, tipo string
			anio, censurados          int
			valor                     *decimal.Decimal
		)
		if err := rows.Scan(&actividad, &variable, &anio, &tipo, &valor, &censurados); err != nil {
			return nil, fmt.Errorf("scan observacion: %w", err)
		}
		agregar(actividad, variable, anio, celdaDe(tipo, valor, censurados))
		n++
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar observaciones: %w", err)
	}
	if n == 0 {
		return nil, domain.ErrNotFound
	}

	const qTot = `
		SELECT variable, anio, tipo, valor, censurados
		FROM totales WHERE geografia = $1
		ORDER BY variable, anio`
	totRows, err := r.pool.Query(ctx, qTot, geografia)
	if err != nil {
		return nil, fmt.Errorf("consultar totales: %w", err)
	}
	defer totRows.Close()

	etiquetaTotal := entity.PrefijoFilaTotal + " " + geografia
	for totRows.Next() {
		var (
			variable, tipo   string
			anio, censurados int
			valor            *decimal.Decimal
		)
		if err := totRows.Scan(&variable, &anio, &tipo, &valor, &censurados); err != nil {
			return nil, fmt.Errorf("scan total: %w", err)
		}
		agregar(etiquetaTotal, variable, anio, celdaDe(tipo, valor, censurados))
	}
	if err := totRows.Err(); err != nil {
		return nil, fmt.Errorf("iterar totales: %w", err)
	}

	// Normalizar largos de fila y dejar la fila de total al fondo.
	for fi := range t.Filas {
		for len(t.Filas[fi].Celdas) < len(t.Columnas) {
			t.Filas[fi].Celdas = append(t.Filas[fi].Celdas, entity.Celda{Tipo: entity.CeldaNoAplica})
		}
	}
	for fi, f := range t.Filas {
		if entity.EsFilaTotal(f.Actividad) && fi != len(t.Filas)-1 {
			t.Filas = append(append(t.Filas[:fi], t.Filas[fi+1:]...), f)
			break
		}
	}
	t.OrdenarColumnas()
	return t, nil
}

// ListarGeografias enumera las geografías con observaciones cargadas.
func (r *ObservacionRepo) ListarGeografias(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT geografia FROM observaciones ORDER BY geografia`)
	if err != nil {
		return nil, fmt.Errorf("listar geografias: %w", err)
	}
	defer rows.Close()

	var claves []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("scan geografia: %w", err)
		}
		claves = append(claves, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar geografias: %w", err)
	}
	return claves, nil
}

// valorONulo devuelve el valor decimal o NULL para celdas sin cifra.
func valorONulo(c entity.Celda) *decimal.Decimal {
	if !c.EsNumerica() {
		return nil
	}
	v := c.Valor
	return &v
}

func celdaDe(tipo string, valor *decimal.Decimal, censurados int) entity.Celda {
	c := entity.Celda{Tipo: tipo, Censurados: censurados}
	if valor != nil {
		c.Valor = *valor
	}
	return c
}
