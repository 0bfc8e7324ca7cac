package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/dto"
	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain"
	"github.com/rmedina/censo-saic/internal/domain/entity"
)

// ProporcionHandler maneja el cálculo de matrices de proporción.
type ProporcionHandler struct {
	uc *usecase.ProporcionesUseCase
}

// NewProporcionHandler construye el handler.
func NewProporcionHandler(uc *usecase.ProporcionesUseCase) *ProporcionHandler {
	return &ProporcionHandler{uc: uc}
}

// Matrices godoc
// @Summary      Matrices de proporción de un tipo
// @Description  Calcula las matrices numerador/denominador de una variable: una matriz para estatal-nacional, una por región para los tipos regionales. Las celdas sin valor llevan su causa.
// @Tags         proporciones
// @Produce      json
// @Param        tipo      path   string  true   "estatal-nacional | region-estatal | region-nacional"
// @Param        variable  query  string  false  "Variable censal"  default(A111A)
// @Param        anio      query  int     false  "Limitar a un año censal"
// @Success      200  {array}   dto.MatrizProporcionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proporciones/{tipo} [get]
func (h *ProporcionHandler) Matrices(c *fiber.Ctx) error {
	tipo := c.Params("tipo")
	if !entity.EsTipoProporcion(tipo) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "tipo de proporción desconocido: " + tipo})
	}
	variable := c.Query("variable", entity.VarProduccionBruta)
	if !entity.EsVariableConocida(variable) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "variable desconocida: " + variable})
	}
	anio := c.QueryInt("anio", 0)
	if anio != 0 && !entity.EsAnioCensal(anio) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "año fuera de los levantamientos censales"})
	}

	resultados, err := h.uc.MatricesPersistidas(c.Context(), tipo, variable)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "faltan tabulados para el cálculo: " + err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	out := make([]dto.MatrizProporcionDTO, 0, len(resultados))
	for _, rm := range resultados {
		m := rm.Matriz
		if anio != 0 {
			m = soloAnio(m, anio)
		}
		out = append(out, dto.NuevaMatrizDTO(m))
	}
	return c.JSON(out)
}

// soloAnio recorta una matriz a la columna de un año.
func soloAnio(m *entity.MatrizProporcion, anio int) *entity.MatrizProporcion {
	out := &entity.MatrizProporcion{
		Tipo:        m.Tipo,
		Variable:    m.Variable,
		Numerador:   m.Numerador,
		Denominador: m.Denominador,
		Anios:       []int{anio},
	}
	ai := -1
	for i, a := range m.Anios {
		if a == anio {
			ai = i
			break
		}
	}
	for _, f := range m.Filas {
		fila := entity.FilaProporcion{Actividad: f.Actividad, Celdas: make([]entity.CeldaProporcion, 1)}
		if ai >= 0 && ai < len(f.Celdas) {
			fila.Celdas[0] = f.Celdas[ai]
		}
		out.Filas = append(out.Filas, fila)
	}
	return out
}
