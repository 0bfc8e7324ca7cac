package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/rmedina/censo-saic/internal/application/dto"
)

// CatalogoHandler expone los catálogos fijos del estudio, para que los
// clientes no codifiquen a mano los códigos de variable ni los sectores.
type CatalogoHandler struct{}

// NewCatalogoHandler construye el handler.
func NewCatalogoHandler() *CatalogoHandler {
	return &CatalogoHandler{}
}

// List godoc
// @Summary      Catálogos del estudio
// @Description  Variables censales, sectores de actividad y años de levantamiento.
// @Tags         catalogos
// @Produce      json
// @Success      200  {object}  dto.CatalogoDTO
// @Router       /api/catalogos [get]
func (h *CatalogoHandler) List(c *fiber.Ctx) error {
	return c.JSON(dto.NuevoCatalogoDTO())
}
