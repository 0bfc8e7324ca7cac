package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/pkg/logger"
)

func TestCargarTabulados_DirectorioVacio(t *testing.T) {
	uc := usecase.NewCargarTabuladosUseCase(&cargadorFalso{}, nil, logger.New(logger.Config{Level: "error"}))

	_, err := uc.Ejecutar(context.Background(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntradaInvalida)
}
