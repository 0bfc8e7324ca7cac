package usecase

import (
	"context"
	"fmt"

	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

// PorcentajesUseCase deriva la estructura porcentual de un tabulado: cada
// columna de sectores expresada como por ciento de su total reportado.
type PorcentajesUseCase struct {
	repo repository.ObservacionRepository // nil = solo en memoria
}

// NewPorcentajesUseCase construye el caso de uso; repo puede ser nil.
func NewPorcentajesUseCase(repo repository.ObservacionRepository) *PorcentajesUseCase {
	return &PorcentajesUseCase{repo: repo}
}

// Estructura deriva la estructura porcentual de un tabulado en memoria.
func (uc *PorcentajesUseCase) Estructura(t *entity.Tabulado) *entity.Tabulado {
	return censo.EstructuraPorcentual(t)
}

// EstructuraPersistida deriva la estructura porcentual de una geografía
// leyendo sus observaciones de la base de datos.
func (uc *PorcentajesUseCase) EstructuraPersistida(ctx context.Context, geografia string) (*entity.Tabulado, error) {
	if uc.repo == nil {
		return nil, fmt.Errorf("porcentajes: sin base de datos configurada")
	}
	t, err := uc.repo.Tabulado(ctx, geografia)
	if err != nil {
		return nil, fmt.Errorf("porcentajes %s: %w", geografia, err)
	}
	return censo.EstructuraPorcentual(t), nil
}
