package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type RecordPaymentRequest struct {
	BookingID       string          `json:"booking_id"       validate:"required,uuid"`
	MethodID        string          `json:"method_id"        validate:"required,uuid"`
	CashRegisterID  string          `json:"cash_register_id" validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"           validate:"required"`
	Moneda          string          `json:"moneda"           validate:"omitempty,len=3"`
	OperationNumber *string         `json:"operation_number"`
	Notas           *string         `json:"notas"`
}

type RefundPaymentRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Filter / List ──────────────────────────────────────────────────────────

// PaymentFilter is bound from query string of GET /v1/payments.
type PaymentFilter struct {
	BookingID      string `form:"booking_id"       validate:"omitempty,uuid"`
	CashRegisterID string `form:"cash_register_id" validate:"omitempty,uuid"`
	MethodID       string `form:"method_id"        validate:"omitempty,uuid"`
	Estado         string `form:"estado,default=completed"` // pending|completed|refunded|all
	Desde          string `form:"desde"`                    // YYYY-MM-DD
	Hasta          string `form:"hasta"`                    // YYYY-MM-DD
	Page           int    `form:"page,default=1"   validate:"min=1"`
	Limit          int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PaymentResponse struct {
	ID              string          `json:"id"`
	PaymentCode     string          `json:"payment_code"`
	BookingID       string          `json:"booking_id"`
	Metodo          string          `json:"metodo"`
	CashRegisterID  string          `json:"cash_register_id"`
	Moneda          string          `json:"moneda"`
	Amount          decimal.Decimal `json:"amount"`
	ExchangeRate    decimal.Decimal `json:"exchange_rate"`
	AmountBase      decimal.Decimal `json:"amount_base"`
	OperationNumber *string         `json:"operation_number,omitempty"`
	Estado          string          `json:"estado"`
	PaymentDate     string          `json:"payment_date"`
	Notas           *string         `json:"notas,omitempty"`
}

type MethodTotalRow struct {
	Metodo string          `json:"metodo"`
	Total  decimal.Decimal `json:"total"`
}

type PaymentListResponse struct {
	Data  []PaymentResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	// TotalesPorMetodo aggregates amount_base of the filtered set by method.
	TotalesPorMetodo []MethodTotalRow `json:"totales_por_metodo"`
}
