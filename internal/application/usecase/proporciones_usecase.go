package usecase

import (
	"context"
	"fmt"

	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

// ProporcionesUseCase calcula las matrices de proporción de un estudio:
// estatal/nacional, región/estatal y región/nacional, con la regionalización
// fija recibida en la construcción.
type ProporcionesUseCase struct {
	motor    *censo.MotorProporciones
	regiones []entity.Region
	nacional string // clave del tabulado nacional
	estado   string // clave del tabulado estatal de estudio

	// repo puede ser nil: el caso de uso también opera solo en memoria.
	repo repository.ObservacionRepository
}

// NewProporcionesUseCase construye el caso de uso; repo puede ser nil.
func NewProporcionesUseCase(motor *censo.MotorProporciones, regiones []entity.Region, nacional, estado string, repo repository.ObservacionRepository) *ProporcionesUseCase {
	return &ProporcionesUseCase{
		motor:    motor,
		regiones: regiones,
		nacional: nacional,
		estado:   estado,
		repo:     repo,
	}
}

// Regiones expone la regionalización configurada.
func (uc *ProporcionesUseCase) Regiones() []entity.Region { return uc.regiones }

// Matrices calcula todas las matrices de un tipo y variable sobre tabulados
// en memoria: una matriz para estatal/nacional, una por región para los
// tipos regionales. Determinista: mismas observaciones, mismas matrices.
func (uc *ProporcionesUseCase) Matrices(tipo, variable string, tabulados map[string]*entity.Tabulado) ([]censo.ResultadoMatriz, error) {
	if !entity.EsTipoProporcion(tipo) {
		return nil, fmt.Errorf("%q: %w", tipo, domain.ErrTipoProporcion)
	}
	nacional, hayNacional := tabulados[uc.nacional]
	estado, hayEstado := tabulados[uc.estado]

	switch tipo {
	case entity.ProporcionEstatalNacional:
		if !hayNacional || !hayEstado {
			return nil, fmt.Errorf("estatal/nacional: %w", domain.ErrGeografiaDesconocida)
		}
		return []censo.ResultadoMatriz{uc.motor.Matriz(tipo, variable, estado, nacional)}, nil

	case entity.ProporcionRegionEstatal:
		if !hayEstado {
			return nil, fmt.Errorf("región/estatal: %w", domain.ErrGeografiaDesconocida)
		}
		return uc.matricesRegionales(tipo, variable, tabulados, estado), nil

	default: // entity.ProporcionRegionNacional
		if !hayNacional {
			return nil, fmt.Errorf("región/nacional: %w", domain.ErrGeografiaDesconocida)
		}
		return uc.matricesRegionales(tipo, variable, tabulados, nacional), nil
	}
}

func (uc *ProporcionesUseCase) matricesRegionales(tipo, variable string, tabulados map[string]*entity.Tabulado, den *entity.Tabulado) []censo.ResultadoMatriz {
	resultados := make([]censo.ResultadoMatriz, 0, len(uc.regiones))
	for _, region := range uc.regiones {
		resultados = append(resultados, uc.motor.MatrizRegional(tipo, variable, region, tabulados, den))
	}
	return resultados
}

// MatricesPersistidas calcula las matrices de un tipo y variable leyendo los
// tabulados necesarios de la base de datos.
func (uc *ProporcionesUseCase) MatricesPersistidas(ctx context.Context, tipo, variable string) ([]censo.ResultadoMatriz, error) {
	if uc.repo == nil {
		return nil, fmt.Errorf("proporciones: sin base de datos configurada")
	}
	tabulados := make(map[string]*entity.Tabulado)

	cargar := func(clave string) error {
		if _, ya := tabulados[clave]; ya {
			return nil
		}
		t, err := uc.repo.Tabulado(ctx, clave)
		if err != nil {
			return fmt.Errorf("tabulado %s: %w", clave, err)
		}
		tabulados[clave] = t
		return nil
	}

	if err := cargar(uc.nacional); err != nil {
		return nil, err
	}
	if err := cargar(uc.estado); err != nil {
		return nil, err
	}
	if tipo != entity.ProporcionEstatalNacional {
		for _, region := range uc.regiones {
			for _, miembro := range region.Miembros {
				// Miembros sin datos aportan como no aplica; no es fatal.
				if err := cargar(miembro); err != nil {
					continue
				}
			}
		}
	}
	return uc.Matrices(tipo, variable, tabulados)
}
