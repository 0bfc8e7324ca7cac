package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/dto"
	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/repository"
)

// HallazgoHandler expone el reporte de hallazgos de la última corrida.
type HallazgoHandler struct {
	repo repository.HallazgoRepository
}

// NewHallazgoHandler construye el handler.
func NewHallazgoHandler(repo repository.HallazgoRepository) *HallazgoHandler {
	return &HallazgoHandler{repo: repo}
}

// Ultimo godoc
// @Summary      Reporte de hallazgos de la última corrida
// @Tags         hallazgos
// @Produce      json
// @Success      200  {object}  dto.ReporteHallazgosDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/hallazgos [get]
func (h *HallazgoHandler) Ultimo(c *fiber.Ctx) error {
	reporte, err := h.repo.UltimoReporte(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "ninguna corrida registrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.NuevoReporteDTO(reporte))
}
