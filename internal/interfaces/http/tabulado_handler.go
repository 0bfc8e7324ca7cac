package http

import (
	"errors"
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/dto"
	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

// TabuladoHandler maneja las peticiones HTTP para los tabulados cargados.
type TabuladoHandler struct {
	repo        repository.ObservacionRepository
	porcentajes *usecase.PorcentajesUseCase
}

// NewTabuladoHandler construye el handler.
func NewTabuladoHandler(repo repository.ObservacionRepository, porcentajes *usecase.PorcentajesUseCase) *TabuladoHandler {
	return &TabuladoHandler{repo: repo, porcentajes: porcentajes}
}

// claveGeografia normaliza el parámetro de ruta: acepta "28%20Tamaulipas" y
// "28_Tamaulipas" como "28 Tamaulipas".
func claveGeografia(c *fiber.Ctx) string {
	clave := c.Params("geografia")
	if dec, err := url.PathUnescape(clave); err == nil {
		clave = dec
	}
	return strings.ReplaceAll(clave, "_", " ")
}

// List godoc
// @Summary      Listar geografías cargadas
// @Tags         tabulados
// @Produce      json
// @Success      200  {array}   string
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/tabulados [get]
func (h *TabuladoHandler) List(c *fiber.Ctx) error {
	claves, err := h.repo.ListarGeografias(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(claves)
}

// GetByGeografia godoc
// @Summary      Obtener el tabulado de una geografía
// @Tags         tabulados
// @Produce      json
// @Param        geografia  path  string  true  "Clave de geografía, ej. 28_Tamaulipas"
// @Success      200  {object}  dto.TabuladoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/tabulados/{geografia} [get]
func (h *TabuladoHandler) GetByGeografia(c *fiber.Ctx) error {
	clave := claveGeografia(c)
	if clave == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_GEOGRAFIA", Message: "geografía es requerida"})
	}
	t, err := h.repo.Tabulado(c.Context(), clave)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "geografía no cargada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NuevoTabuladoDTO(t))
}

// Porcentajes godoc
// @Summary      Estructura porcentual de una geografía
// @Description  Cada columna expresada como por ciento de su total; el total vale 100.
// @Tags         tabulados
// @Produce      json
// @Param        geografia  path  string  true  "Clave de geografía, ej. 28_Tamaulipas"
// @Success      200  {object}  dto.TabuladoDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/porcentajes/{geografia} [get]
func (h *TabuladoHandler) Porcentajes(c *fiber.Ctx) error {
	clave := claveGeografia(c)
	if clave == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_GEOGRAFIA", Message: "geografía es requerida"})
	}
	t, err := h.porcentajes.EstructuraPersistida(c.Context(), clave)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "geografía no cargada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NuevoTabuladoDTO(t))
}
