package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// BookingFilter is bound from query string of GET /v1/bookings.
type BookingFilter struct {
	Estado     string `form:"estado,default=all"` // pending|confirmed|checked_in|checked_out|cancelled|all
	RoomID     string `form:"room_id"     validate:"omitempty,uuid"`
	CustomerID string `form:"customer_id" validate:"omitempty,uuid"`
	Fecha      string `form:"fecha"` // YYYY-MM-DD over check_in; empty = no date filter
	Page       int    `form:"page,default=1"   validate:"min=1"`
	Limit      int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type BookingListResponse struct {
	Data  []BookingResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
	// Aggregates over the filtered set, not just the current page.
	Totales BookingTotals `json:"totales"`
}

type BookingTotals struct {
	TotalAmount decimal.Decimal `json:"total_amount"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Balance     decimal.Decimal `json:"balance"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type ConsumptionRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Cantidad  int    `json:"cantidad"   validate:"required,min=1"`
}

// PaymentInput is a payment taken at booking creation or checkout time.
type PaymentInput struct {
	MethodID        string          `json:"method_id"        validate:"required,uuid"`
	Amount          decimal.Decimal `json:"amount"           validate:"required"`
	Moneda          string          `json:"moneda"           validate:"omitempty,len=3"`
	OperationNumber *string         `json:"operation_number"`
}

type CreateBookingRequest struct {
	RoomID         string `json:"room_id"          validate:"required,uuid"`
	CustomerID     string `json:"customer_id"      validate:"required,uuid"`
	RateTypeID     string `json:"rate_type_id"     validate:"required,uuid"`
	CashRegisterID string `json:"cash_register_id" validate:"required,uuid"`
	// Cantidad is the number of contracted units of the rate type.
	Cantidad     int                  `json:"cantidad"     validate:"required,min=1"`
	VoucherType  string               `json:"voucher_type" validate:"omitempty,oneof=ticket boleta factura"`
	Notas        *string              `json:"notas"`
	Consumptions []ConsumptionRequest `json:"consumptions" validate:"omitempty,dive"`
	Payments     []PaymentInput       `json:"payments"     validate:"omitempty,dive"`
}

type FinishBookingRequest struct {
	CashRegisterID string         `json:"cash_register_id" validate:"omitempty,uuid"`
	Payments       []PaymentInput `json:"payments"         validate:"omitempty,dive"`
	// ForceCheckout releases the room even with outstanding balance.
	ForceCheckout bool    `json:"force_checkout"`
	Notas         *string `json:"notas"`
}

type ExtendTimeRequest struct {
	Horas int `json:"horas" validate:"required,min=1,max=24"`
}

type AddConsumptionRequest struct {
	Items []ConsumptionRequest `json:"items" validate:"required,min=1,dive"`
}

type CancelBookingRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type ConsumptionResponse struct {
	ID          string          `json:"id"`
	Producto    string          `json:"producto"`
	Cantidad    int             `json:"cantidad"`
	PrecioUnit  decimal.Decimal `json:"precio_unitario"`
	TotalLinea  decimal.Decimal `json:"total_linea"`
	Estado      string          `json:"estado"`
	CreatedAt   string          `json:"created_at"`
}

type BookingResponse struct {
	ID          string `json:"id"`
	BookingCode string `json:"booking_code"`
	RoomID      string `json:"room_id"`
	RoomNumber  string `json:"room_number,omitempty"`
	CustomerID  string `json:"customer_id"`
	Customer    string `json:"customer,omitempty"`
	RateType    string `json:"rate_type,omitempty"`

	CheckIn        string  `json:"check_in"`
	CheckOut       string  `json:"check_out"`
	ActualCheckOut *string `json:"actual_check_out,omitempty"`

	Cantidad    decimal.Decimal  `json:"cantidad"`
	TotalHoras  decimal.Decimal  `json:"total_horas"`
	ActualHoras *decimal.Decimal `json:"actual_horas,omitempty"`

	RoomSubtotal     decimal.Decimal `json:"room_subtotal"`
	ProductsSubtotal decimal.Decimal `json:"products_subtotal"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	PaidAmount       decimal.Decimal `json:"paid_amount"`
	Balance          decimal.Decimal `json:"balance"`

	Estado       string                `json:"estado"`
	FinishType   *string               `json:"finish_type,omitempty"`
	Notas        *string               `json:"notas,omitempty"`
	Consumptions []ConsumptionResponse `json:"consumptions,omitempty"`
	Payments     []PaymentResponse     `json:"payments,omitempty"`
	CreatedAt    string                `json:"created_at"`
}

// BalanceBreakdown is returned with the 422 conflict when finish is
// rejected for outstanding balance.
type BalanceBreakdown struct {
	Balance         decimal.Decimal `json:"balance"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	ExtraHours      decimal.Decimal `json:"extra_hours"`
	ExtraAmount     decimal.Decimal `json:"extra_amount"`
	HoursContracted decimal.Decimal `json:"hours_contracted"`
	HoursUsed       decimal.Decimal `json:"hours_used"`
}

// CheckoutDetailsResponse previews what FinishService would charge.
// Read-only: nothing is persisted when building it.
type CheckoutDetailsResponse struct {
	BookingID       string          `json:"booking_id"`
	BookingCode     string          `json:"booking_code"`
	RoomNumber      string          `json:"room_number"`
	HoursContracted decimal.Decimal `json:"hours_contracted"`
	HoursUsed       decimal.Decimal `json:"hours_used"`
	ExtraHours      decimal.Decimal `json:"extra_hours"`
	ExtraAmount     decimal.Decimal `json:"extra_amount"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	PaidAmount      decimal.Decimal `json:"paid_amount"`
	Balance         decimal.Decimal `json:"balance"`
}

// ExtraTimeResponse is the overstay quote of GET /v1/rooms/:id/extra-time.
type ExtraTimeResponse struct {
	BookingID   string          `json:"booking_id"`
	CheckOut    string          `json:"check_out"`
	ExtraHours  decimal.Decimal `json:"extra_hours"`
	HorasCobro  int64           `json:"horas_cobro"` // billed whole hours (ceil)
	ExtraAmount decimal.Decimal `json:"extra_amount"`
}

// TicketResponse carries the printable voucher data of a booking.
type TicketResponse struct {
	BookingCode  string                `json:"booking_code"`
	RoomNumber   string                `json:"room_number"`
	Customer     string                `json:"customer"`
	CheckIn      string                `json:"check_in"`
	CheckOut     string                `json:"check_out"`
	RateType     string                `json:"rate_type"`
	RoomSubtotal decimal.Decimal       `json:"room_subtotal"`
	Consumptions []ConsumptionResponse `json:"consumptions"`
	TotalAmount  decimal.Decimal       `json:"total_amount"`
	PaidAmount   decimal.Decimal       `json:"paid_amount"`
	Balance      decimal.Decimal       `json:"balance"`
	Payments     []PaymentResponse     `json:"payments"`
}
