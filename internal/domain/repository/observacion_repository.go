package repository

import (
	"context"

	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// ObservacionRepository define el puerto de persistencia para observaciones y
// totales reportados (DIP). Las observaciones son inmutables una vez
// cargadas; una recarga reemplaza el lote completo de la geografía.
type ObservacionRepository interface {
	// GuardarTabulado persiste las observaciones y totales de una geografía
	// bajo un lote de carga, reemplazando lo que hubiera.
	GuardarTabulado(ctx context.Context, cargaID string, t *entity.Tabulado) error

	// Tabulado reconstruye la tabla ancha de una geografía desde las
	// observaciones persistidas. Devuelve domain.ErrNotFound si no hay datos.
	Tabulado(ctx context.Context, geografia string) (*entity.Tabulado, error)

	// ListarGeografias enumera las geografías con observaciones cargadas.
	ListarGeografias(ctx context.Context) ([]string, error)
}

// HallazgoRepository define el puerto de persistencia del reporte de
// hallazgos de una corrida de validación.
type HallazgoRepository interface {
	GuardarReporte(ctx context.Context, r *entity.ReporteHallazgos) error

	// UltimoReporte devuelve el reporte más reciente; domain.ErrNotFound si
	// nunca se ha corrido la validación.
	UltimoReporte(ctx context.Context) (*entity.ReporteHallazgos, error)
}
