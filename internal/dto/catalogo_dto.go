package dto

import "github.com/shopspring/decimal"

// ─── Rate types ──────────────────────────────────────────────────────────────

type CrearRateTypeRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,min=2,max=60"`
	Codigo        string          `json:"codigo"         validate:"required,min=2,max=20"`
	DuracionHoras int             `json:"duracion_horas" validate:"required,min=1,max=168"`
	PrecioUnidad  decimal.Decimal `json:"precio_unidad"  validate:"required"`
}

type RateTypeResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Codigo        string          `json:"codigo"`
	DuracionHoras int             `json:"duracion_horas"`
	PrecioUnidad  decimal.Decimal `json:"precio_unidad"`
	PrecioHora    decimal.Decimal `json:"precio_hora"`
	Activo        bool            `json:"activo"`
}

// ─── Payment methods ─────────────────────────────────────────────────────────

type CrearMetodoPagoRequest struct {
	Nombre            string `json:"nombre" validate:"required,min=2,max=60"`
	Codigo            string `json:"codigo" validate:"required,min=2,max=20"`
	RequiresReference bool   `json:"requires_reference"`
	SortOrder         int    `json:"sort_order"`
}

type MetodoPagoResponse struct {
	ID                string `json:"id"`
	Nombre            string `json:"nombre"`
	Codigo            string `json:"codigo"`
	RequiresReference bool   `json:"requires_reference"`
	Activo            bool   `json:"activo"`
	SortOrder         int    `json:"sort_order"`
}
