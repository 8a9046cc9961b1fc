package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearProductoRequest struct {
	CodigoBarras string          `json:"codigo_barras" validate:"required,min=4,max=18"`
	Nombre       string          `json:"nombre"        validate:"required,min=2,max=120"`
	Descripcion  *string         `json:"descripcion"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"  validate:"required"`
}

type ActualizarProductoRequest struct {
	Nombre      *string          `json:"nombre"       validate:"omitempty,min=2,max=120"`
	Descripcion *string          `json:"descripcion"`
	PrecioVenta *decimal.Decimal `json:"precio_venta"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// ProductoFilter is bound from query string of GET /v1/productos.
type ProductoFilter struct {
	Activo  string `form:"activo,default=true"` // true | false | all
	Barcode string `form:"barcode"`
	Nombre  string `form:"nombre"`
	Page    int    `form:"page,default=1"   validate:"min=1"`
	Limit   int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ProductoResponse struct {
	ID           string          `json:"id"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Descripcion  *string         `json:"descripcion,omitempty"`
	PrecioVenta  decimal.Decimal `json:"precio_venta"`
	Activo       bool            `json:"activo"`
}

type ProductoListResponse struct {
	Data  []ProductoResponse `json:"data"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Limit int                `json:"limit"`
}

// PrecioResponse is the cached price lookup used by the consumption flow.
type PrecioResponse struct {
	ProductoID   string          `json:"producto_id"`
	CodigoBarras string          `json:"codigo_barras"`
	Nombre       string          `json:"nombre"`
	Precio       decimal.Decimal `json:"precio"`
	// Source: "cache" | "db"
	Source string `json:"source"`
}
