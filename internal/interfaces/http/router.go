package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ObservacionRepo repository.ObservacionRepository
	HallazgoRepo    repository.HallazgoRepository
	CargaUC         *usecase.CargarTabuladosUseCase
	ValidacionUC    *usecase.ValidacionUseCase
	ProporcionesUC  *usecase.ProporcionesUseCase
	PorcentajesUC   *usecase.PorcentajesUseCase
	DirEntrada      string
}

// Router registra las rutas de la API. La API es de consulta pública: los
// tabulados provienen de cifras ya publicadas, no hay nada que proteger.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Tabulados y estructura porcentual
	tabuladoHandler := NewTabuladoHandler(deps.ObservacionRepo, deps.PorcentajesUC)
	tabulados := api.Group("/tabulados")
	tabulados.Get("/", tabuladoHandler.List)
	tabulados.Get("/:geografia", tabuladoHandler.GetByGeografia)
	api.Get("/porcentajes/:geografia", tabuladoHandler.Porcentajes)

	// Validación de checksums
	validacionHandler := NewValidacionHandler(deps.ValidacionUC)
	api.Get("/validacion", validacionHandler.Validar)

	// Matrices de proporción
	proporcionHandler := NewProporcionHandler(deps.ProporcionesUC)
	api.Get("/proporciones/:tipo", proporcionHandler.Matrices)

	// Hallazgos de la última corrida
	hallazgoHandler := NewHallazgoHandler(deps.HallazgoRepo)
	api.Get("/hallazgos", hallazgoHandler.Ultimo)

	// Cargas
	cargaHandler := NewCargaHandler(deps.CargaUC, deps.DirEntrada)
	api.Post("/cargas", cargaHandler.Create)

	// Catálogos
	catalogoHandler := NewCatalogoHandler()
	api.Get("/catalogos", catalogoHandler.List)
}
