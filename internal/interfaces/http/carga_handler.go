package http

import (
	"errors"
	"sort"

	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/dto"
	"github.com/rmedina/censo-saic/internal/application/usecase"
	"github.com/rmedina/censo-saic/internal/domain"
)

// CargaHandler dispara la carga de tabulados fuente hacia la base de datos.
type CargaHandler struct {
	uc         *usecase.CargarTabuladosUseCase
	dirEntrada string // directorio por defecto cuando la petición no trae uno
}

// NewCargaHandler construye el handler.
func NewCargaHandler(uc *usecase.CargarTabuladosUseCase, dirEntrada string) *CargaHandler {
	return &CargaHandler{uc: uc, dirEntrada: dirEntrada}
}

// CargaRequest cuerpo de la petición de carga.
type CargaRequest struct {
	Directorio string `json:"directorio"`
}

// Create godoc
// @Summary      Cargar tabulados fuente
// @Description  Lee los CSV del directorio, normaliza celdas y persiste las observaciones bajo un lote nuevo. Los errores de celda se devuelven, no abortan.
// @Tags         cargas
// @Accept       json
// @Produce      json
// @Param        body  body  CargaRequest  false  "Directorio de entrada; vacío usa el configurado"
// @Success      201   {object}  dto.CargaResultDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cargas [post]
func (h *CargaHandler) Create(c *fiber.Ctx) error {
	var in CargaRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
		}
	}
	dir := in.Directorio
	if dir == "" {
		dir = h.dirEntrada
	}

	res, err := h.uc.Ejecutar(c.Context(), dir)
	if errors.Is(err, domain.ErrEntradaInvalida) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "ENTRADA_INVALIDA", Message: err.Error()})
	}
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "CARGA", Message: err.Error()})
	}

	out := dto.CargaResultDTO{CargaID: res.CargaID, ErroresParseo: []dto.ErrorParseoDTO{}}
	for clave := range res.Tabulados {
		out.Geografias = append(out.Geografias, clave)
	}
	sort.Strings(out.Geografias)
	for _, e := range res.Errores {
		out.ErroresParseo = append(out.ErroresParseo, dto.NuevoErrorParseoDTO(e))
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
