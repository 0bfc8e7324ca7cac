package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

// ValidacionUseCase corre el checksum de columnas sobre tabulados en memoria
// o sobre lo persistido en la base.
type ValidacionUseCase struct {
	validador *censo.Validador
	repo      repository.ObservacionRepository // nil = solo en memoria
}

// NewValidacionUseCase construye el caso de uso; repo puede ser nil.
func NewValidacionUseCase(validador *censo.Validador, repo repository.ObservacionRepository) *ValidacionUseCase {
	return &ValidacionUseCase{validador: validador, repo: repo}
}

// ValidarTabulados valida todas las columnas de un conjunto de tabulados, en
// orden estable por geografía.
func (uc *ValidacionUseCase) ValidarTabulados(tabulados map[string]*entity.Tabulado) []entity.ResultadoChecksum {
	claves := make([]string, 0, len(tabulados))
	for k := range tabulados {
		claves = append(claves, k)
	}
	sort.Strings(claves)

	var resultados []entity.ResultadoChecksum
	for _, k := range claves {
		resultados = append(resultados, uc.validador.ValidarTabulado(tabulados[k])...)
	}
	return resultados
}

// ValidarPersistidos valida lo cargado en la base de datos, con filtros
// opcionales por variable y año (cero = sin filtro).
func (uc *ValidacionUseCase) ValidarPersistidos(ctx context.Context, variable string, anio int) ([]entity.ResultadoChecksum, error) {
	if uc.repo == nil {
		return nil, fmt.Errorf("validar: sin base de datos configurada")
	}
	claves, err := uc.repo.ListarGeografias(ctx)
	if err != nil {
		return nil, fmt.Errorf("validar: %w", err)
	}

	var resultados []entity.ResultadoChecksum
	for _, clave := range claves {
		t, err := uc.repo.Tabulado(ctx, clave)
		if err != nil {
			return nil, fmt.Errorf("validar %s: %w", clave, err)
		}
		for _, res := range uc.validador.ValidarTabulado(t) {
			if variable != "" && res.Variable != variable {
				continue
			}
			if anio != 0 && res.Anio != anio {
				continue
			}
			resultados = append(resultados, res)
		}
	}
	return resultados, nil
}
