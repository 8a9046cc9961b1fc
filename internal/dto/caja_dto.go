package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearCajasRequest creates N registers at once, named "Caja 1..N"
// continuing from the highest existing number.
type CrearCajasRequest struct {
	Cantidad int `json:"cantidad" validate:"required,min=1,max=20"`
}

type AbrirCajaRequest struct {
	OpeningAmount decimal.Decimal `json:"opening_amount" validate:"min=0"`
}

// ConteoMetodo is one counted amount declared by the cashier on close.
type ConteoMetodo struct {
	MethodID string          `json:"method_id" validate:"required,uuid"`
	Monto    decimal.Decimal `json:"monto"     validate:"min=0"`
}

type CerrarCajaRequest struct {
	Conteos       []ConteoMetodo `json:"conteos" validate:"required,dive"`
	Observaciones *string        `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type CajaResponse struct {
	ID               string  `json:"id"`
	Nombre           string  `json:"nombre"`
	Activo           bool    `json:"activo"`
	CurrentSessionID *string `json:"current_session_id,omitempty"`
	Abierta          bool    `json:"abierta"`
}

type SesionResponse struct {
	ID             string          `json:"id"`
	CashRegisterID string          `json:"cash_register_id"`
	Caja           string          `json:"caja,omitempty"`
	Estado         string          `json:"estado"`
	OpeningAmount  decimal.Decimal `json:"opening_amount"`
	SystemTotal    *decimal.Decimal `json:"system_total,omitempty"`
	CountedTotal   *decimal.Decimal `json:"counted_total,omitempty"`
	Difference     *decimal.Decimal `json:"difference,omitempty"`
	Clasificacion  *string          `json:"clasificacion,omitempty"` // CUADRA | SOBRANTE | FALTANTE
	OpenedBy       string           `json:"opened_by"`
	OpenedAt       string           `json:"opened_at"`
	ClosedBy       *string          `json:"closed_by,omitempty"`
	ClosedAt       *string          `json:"closed_at,omitempty"`
	Observaciones  *string          `json:"observaciones,omitempty"`
}

// MetodoCierreRow is one reconciliation row of the close response:
// system vs counted per payment method.
type MetodoCierreRow struct {
	MethodID   string          `json:"method_id"`
	Metodo     string          `json:"metodo"`
	Sistema    decimal.Decimal `json:"sistema"`
	Contado    decimal.Decimal `json:"contado"`
	Diferencia decimal.Decimal `json:"diferencia"`
}

type CierreResponse struct {
	SesionID      string            `json:"sesion_id"`
	Caja          string            `json:"caja"`
	Metodos       []MetodoCierreRow `json:"metodos"`
	SystemTotal   decimal.Decimal   `json:"system_total"`
	CountedTotal  decimal.Decimal   `json:"counted_total"`
	Diferencia    decimal.Decimal   `json:"diferencia"`
	Clasificacion string            `json:"clasificacion"` // CUADRA | SOBRANTE | FALTANTE
	ClosedAt      string            `json:"closed_at"`
}

// ResumenSesionResponse is the pre-close snapshot: system totals so far,
// nothing persisted.
type ResumenSesionResponse struct {
	SesionID      string            `json:"sesion_id"`
	Caja          string            `json:"caja"`
	OpeningAmount decimal.Decimal   `json:"opening_amount"`
	Metodos       []MethodTotalRow  `json:"metodos"`
	SystemTotal   decimal.Decimal   `json:"system_total"`
	OpenedAt      string            `json:"opened_at"`
	PuedeCerrar   bool              `json:"puede_cerrar"`
	MotivoBloqueo *string           `json:"motivo_bloqueo,omitempty"`
}

type SesionListResponse struct {
	Data  []SesionResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// SesionFilter is bound from query string of GET /v1/cajas/historial.
type SesionFilter struct {
	CashRegisterID string `form:"cash_register_id" validate:"omitempty,uuid"`
	Estado         string `form:"estado,default=cerrada"` // abierta | cerrada | all
	Desde          string `form:"desde"`                  // YYYY-MM-DD
	Hasta          string `form:"hasta"`                  // YYYY-MM-DD
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=50" validate:"min=1,max=200"`
}
