package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/dto"
	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// ValidacionHandler maneja la validación de checksums sobre lo persistido.
type ValidacionHandler struct {
	uc *usecase.ValidacionUseCase
}

// NewValidacionHandler construye el handler.
func NewValidacionHandler(uc *usecase.ValidacionUseCase) *ValidacionHandler {
	return &ValidacionHandler{uc: uc}
}

// Validar godoc
// @Summary      Validar checksums de columnas
// @Description  Suma los sectores de cada columna contra el total reportado. Una discrepancia es un hallazgo del secreto estadístico, no un error de la corrida.
// @Tags         validacion
// @Produce      json
// @Param        variable  query  string  false  "Filtrar por variable, ej. A111A"
// @Param        anio      query  int     false  "Filtrar por año censal"
// @Success      200  {object}  dto.ValidacionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/validacion [get]
func (h *ValidacionHandler) Validar(c *fiber.Ctx) error {
	variable := c.Query("variable")
	if variable != "" && !entity.EsVariableConocida(variable) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "variable desconocida: " + variable})
	}
	anio := c.QueryInt("anio", 0)
	if anio != 0 && !entity.EsAnioCensal(anio) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "año fuera de los levantamientos censales"})
	}

	resultados, err := h.uc.ValidarPersistidos(c.Context(), variable, anio)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := dto.ValidacionDTO{
		Discrepancias:  []dto.ChecksumDTO{},
		NoVerificables: []dto.ChecksumDTO{},
	}
	for _, res := range resultados {
		switch res.Resultado {
		case entity.ValidacionConsistente:
			out.Consistentes++
		case entity.ValidacionDiscrepancia:
			out.Discrepancias = append(out.Discrepancias, dto.NuevoChecksumDTO(res))
		case entity.ValidacionNoVerificable:
			out.NoVerificables = append(out.NoVerificables, dto.NuevoChecksumDTO(res))
		}
	}
	return c.JSON(out)
}
