package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/shopspring/decimal"

	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain/censo"
	"github.com/rmedina/censo-saic/internal/domain/entity"
	"github.com/rmedina/censo-saic/internal/infrastructure/csvfile"
	"github.com/rmedina/censo-saic/internal/infrastructure/postgres"
	httpRouter "github.com/rmedina/censo-saic/internal/interfaces/http"
	"github.com/rmedina/censo-saic/pkg/config"
	"github.com/rmedina/censo-saic/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	observacionRepo := postgres.NewObservacionRepository(pool)
	hallazgoRepo := postgres.NewHallazgoRepository(pool)

	regiones, err := regiones(cfg.Censo)
	if err != nil {
		log.Fatal().Err(err).Msg("regionalización")
	}
	tolerancia, err := decimal.NewFromString(cfg.Censo.Tolerancia)
	if err != nil {
		log.Fatal().Err(err).Str("tolerancia", cfg.Censo.Tolerancia).Msg("tolerancia inválida")
	}

	cargador := csvfile.NuevoCargador(cfg.Censo.CeldaVacia)
	validador := censo.NuevoValidador(tolerancia)
	motor := censo.NuevoMotorProporciones(entity.AniosCensales())

	cargaUC := usecase.NewCargarTabuladosUseCase(cargador, observacionRepo, log)
	validacionUC := usecase.NewValidacionUseCase(validador, observacionRepo)
	proporcionesUC := usecase.NewProporcionesUseCase(motor, regiones, entity.ClaveNacional, cfg.Censo.Estado, observacionRepo)
	porcentajesUC := usecase.NewPorcentajesUseCase(observacionRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Censo SAIC API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ObservacionRepo: observacionRepo,
		HallazgoRepo:    hallazgoRepo,
		CargaUC:         cargaUC,
		ValidacionUC:    validacionUC,
		ProporcionesUC:  proporcionesUC,
		PorcentajesUC:   porcentajesUC,
		DirEntrada:      cfg.Censo.DirEntrada,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
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
