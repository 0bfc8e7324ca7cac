package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
	"github.com/rmedina/censo-saic/pkg/logger"
)

// ResultadoCarga agrupa lo producido por una corrida de carga.
type ResultadoCarga struct {
	CargaID   string
	Tabulados map[string]*entity.Tabulado
	Errores   []entity.ErrorParseo
}

// CargarTabuladosUseCase carga los tabulados fuente y, si hay base de datos
// configurada, los persiste bajo un lote nuevo.
type CargarTabuladosUseCase struct {
	cargador CargadorTabulados
	repo     repository.ObservacionRepository // nil = corrida solo en memoria
	log      *logger.Logger
}

// NewCargarTabuladosUseCase construye el caso de uso; repo puede ser nil.
func NewCargarTabuladosUseCase(cargador CargadorTabulados, repo repository.ObservacionRepository, log *logger.Logger) *CargarTabuladosUseCase {
	return &CargarTabuladosUseCase{cargador: cargador, repo: repo, log: log}
}

// Ejecutar carga el directorio de entrada completo. Los errores de celda se
// devuelven como hallazgos; solo los problemas estructurales (encabezado
// inválido, geografía duplicada) abortan.
func (uc *CargarTabuladosUseCase) Ejecutar(ctx context.Context, dir string) (*ResultadoCarga, error) {
	if dir == "" {
		return nil, fmt.Errorf("directorio de entrada vacío: %w", domain.ErrEntradaInvalida)
	}
	tabulados, errores, err := uc.cargador.CargarDirectorio(dir)
	if err != nil {
		return nil, fmt.Errorf("cargar tabulados: %w", err)
	}

	res := &ResultadoCarga{
		CargaID:   uuid.New().String(),
		Tabulados: tabulados,
		Errores:   errores,
	}
	uc.log.Info().
		Str("carga_id", res.CargaID).
		Int("geografias", len(tabulados)).
		Int("errores_parseo", len(errores)).
		Msg("tabulados cargados")

	if uc.repo == nil {
		return res, nil
	}
	for _, t := range tabulados {
		if err := uc.repo.GuardarTabulado(ctx, res.CargaID, t); err != nil {
			return nil, fmt.Errorf("persistir %s: %w", t.Geografia, err)
		}
	}
	uc.log.Info().Str("carga_id", res.CargaID).Msg("observaciones persistidas")
	return res, nil
}
