package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

var _ repository.HallazgoRepository = (*HallazgoRepo)(nil)

// HallazgoRepo persiste los reportes de hallazgos como JSONB: el reporte es
// un documento derivado que siempre puede recalcularse, así que no amerita
// esquema relacional propio.
type HallazgoRepo struct {
	q Querier
}

// NewHallazgoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHallazgoRepository(q Querier) *HallazgoRepo {
	return &HallazgoRepo{q: q}
}

// GuardarReporte persiste un reporte completo; asigna ID y fecha si faltan.
func (r *HallazgoRepo) GuardarReporte(ctx context.Context, rep *entity.ReporteHallazgos) error {
	if rep.ID == "" {
		rep.ID = uuid.New().String()
	}
	if rep.GeneradoEn.IsZero() {
		rep.GeneradoEn = time.Now().UTC()
	}
	datos, err := json.Marshal(rep)
	if err != nil {
		return fmt.Errorf("serializar reporte: %w", err)
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO reportes_hallazgos (id, generado_en, datos) VALUES ($1, $2, $3)`,
		rep.ID, rep.GeneradoEn, datos,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicado
		}
		return fmt.Errorf("insert reporte: %w", err)
	}
	return nil
}

// UltimoReporte devuelve el reporte más reciente.
func (r *HallazgoRepo) UltimoReporte(ctx context.Context) (*entity.ReporteHallazgos, error) {
	var datos []byte
	err := r.q.QueryRow(ctx,
		`SELECT datos FROM reportes_hallazgos ORDER BY generado_en DESC LIMIT 1`,
	).Scan(&datos)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("consultar reporte: %w", err)
	}
	var rep entity.ReporteHallazgos
	if err := json.Unmarshal(datos, &rep); err != nil {
		return nil, fmt.Errorf("deserializar reporte: %w", err)
	}
	return &rep, nil
}
