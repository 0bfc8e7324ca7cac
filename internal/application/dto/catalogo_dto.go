package dto

import "github.com/rmedina/censo-saic/internal/domain/entity"

// VariableDTO variable censal del catálogo.
type VariableDTO struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
	Unidad string `json:"unidad"`
}

// SectorDTO sector de actividad económica del clasificador.
type SectorDTO struct {
	Codigo string `json:"codigo"`
	Nombre string `json:"nombre"`
}

// CatalogoDTO catálogos fijos del estudio.
type CatalogoDTO struct {
	Variables []VariableDTO `json:"variables"`
	Sectores  []SectorDTO   `json:"sectores"`
	Anios     []int         `json:"anios"`
}

// NuevoCatalogoDTO arma el catálogo completo a partir de las entidades.
func NuevoCatalogoDTO() CatalogoDTO {
	out := CatalogoDTO{Anios: entity.AniosCensales()}
	for _, v := range entity.CatalogoVariables() {
		out.Variables = append(out.Variables, VariableDTO{Codigo: v.Codigo, Nombre: v.Nombre, Unidad: v.Unidad})
	}
	for _, s := range entity.CatalogoSectores() {
		out.Sectores = append(out.Sectores, SectorDTO{Codigo: s.Codigo, Nombre: s.Nombre})
	}
	return out
}
