// pipeline corre el estudio completo en lote: carga los tabulados CSV,
// valida los checksums de columna, deriva tabulados regionales, matrices de
// proporción y estructuras porcentuales, y escribe el reporte de hallazgos.
//
// Uso: go run ./cmd/pipeline [dir_entrada] [--persistir]
// Por defecto usa CENSO_DIR_ENTRADA y corre solo en memoria; con --persistir
// además guarda observaciones y reporte en PostgreSQL.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/domain/repository"
	"github.com/rmedina/censo-saic/internal/infrastructure/csvfile"
	"github.com/rmedina/censo-saic/internal/infrastructure/postgres"
	"github.com/rmedina/censo-saic/pkg/config"
	"github.com/rmedina/censo-saic/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}

	dirEntrada := cfg.Censo.DirEntrada
	persistir := false
	for _, arg := range os.Args[1:] {
		if arg == "--persistir" {
			persistir = true
			continue
		}
		dirEntrada = arg
	}
	if dirEntrada == "" {
		fmt.Fprintln(os.Stderr, "Uso: pipeline [dir_entrada] [--persistir]")
		os.Exit(2)
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	ctx := context.Background()

	var observacionRepo repository.ObservacionRepository
	var hallazgoRepo repository.HallazgoRepository
	if persistir {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		observacionRepo = postgres.NewObservacionRepository(pool)
		hallazgoRepo = postgres.NewHallazgoRepository(pool)
	}

	regiones, err := regiones(cfg.Censo)
	if err != nil {
		log.Fatal().Err(err).Msg("regionalización")
	}
	tolerancia, err := decimal.NewFromString(cfg.Censo.Tolerancia)
	if err != nil {
		log.Fatal().Err(err).Str("tolerancia", cfg.Censo.Tolerancia).Msg("tolerancia inválida")
	}

	cargador := csvfile.NuevoCargador(cfg.Censo.CeldaVacia)
	escritor := csvfile.NuevoEscritor(cfg.Censo.DirSalida)
	validador := censo.NuevoValidador(tolerancia)
	motor := censo.NuevoMotorProporciones(entity.AniosCensales())

	pipeline := usecase.NewPipelineUseCase(
		usecase.NewCargarTabuladosUseCase(cargador, observacionRepo, log),
		usecase.NewValidacionUseCase(validador, observacionRepo),
		usecase.NewProporcionesUseCase(motor, regiones, entity.ClaveNacional, cfg.Censo.Estado, observacionRepo),
		usecase.NewPorcentajesUseCase(observacionRepo),
		escritor,
		hallazgoRepo,
		log,
	)

	reporte, err := pipeline.Ejecutar(ctx, dirEntrada)
	if err != nil {
		log.Fatal().Err(err).Msg("pipeline")
	}
	fmt.Printf("Corrida %s: %d hallazgos (%d errores de parseo, %d discrepancias, %d no verificables, %d indefinidas, %d anomalías)\n",
		reporte.ID, reporte.Total(), len(reporte.ErroresParseo), len(reporte.Discrepancias),
		len(reporte.NoVerificables), len(reporte.Indefinidas), len(reporte.Anomalias))
}

// regiones resuelve la regionalización: el archivo YAML configurado o, en su
// ausencia, la regionalización por defecto de Tamaulipas.
func regiones(cfg config.CensoConfig) ([]entity.Region, error) {
	if cfg.ArchivoRegiones == "" {
		return entity.RegionesTamaulipas(), nil
	}
	filas, err := config.CargarRegiones(cfg.ArchivoRegiones)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Region, 0, len(filas))
	for _, f := range filas {
		out = append(out, entity.Region{Nombre: f.Nombre, Estado: f.Estado, Miembros: f.Miembros})
	}
	return out, nil
}
