package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Booking status values. pending/confirmed can still be cancelled;
// checked_in can only finish; checked_out and cancelled are terminal.
const (
	BookingPending    = "pending"
	BookingConfirmed  = "confirmed"
	BookingCheckedIn  = "checked_in"
	BookingCheckedOut = "checked_out"
	BookingCancelled  = "cancelled"
)

// FinishType values.
const (
	FinishManual    = "manual"
	FinishAutomatic = "automatic"
)

// Booking is a short-stay room rental. It carries the whole bill:
// room charges, consumptions, taxes, discounts and the paid aggregate.
//
// PaidAmount is always recomputed from the set of completed non-refunded
// payments inside the same transaction that touches it; it is never
// incremented in place. Balance is derived, never stored.
type Booking struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingCode string    `gorm:"uniqueIndex;not null"`
	RoomID      uuid.UUID `gorm:"type:uuid;not null;index:idx_bookings_room_status"`
	CustomerID  uuid.UUID `gorm:"type:uuid;index;not null"`
	RateTypeID  uuid.UUID `gorm:"type:uuid;not null"`

	CheckIn        time.Time `gorm:"not null"`
	CheckOut       time.Time `gorm:"not null;index"`
	ActualCheckOut *time.Time

	// Cantidad is the number of contracted units (hours, days, nights).
	Cantidad decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	// TotalHoras grows when overstay or extensions are billed.
	TotalHoras   decimal.Decimal `gorm:"type:decimal(8,2);not null"`
	ActualHoras  *decimal.Decimal `gorm:"type:decimal(8,2)"`
	PrecioUnidad decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	PrecioHora   decimal.Decimal `gorm:"type:decimal(12,4);not null"`

	RoomSubtotal     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ProductsSubtotal decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Subtotal         decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount        decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	DiscountAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TotalAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount       decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	Estado string `gorm:"type:varchar(20);not null;default:'pending';index:idx_bookings_room_status"`
	// FinishType: "manual" | "automatic"
	FinishType  *string `gorm:"type:varchar(20)"`
	VoucherType string  `gorm:"type:varchar(20);not null;default:'ticket'"`
	Notas       *string

	CancelledAt        *time.Time
	CancellationReason *string

	CreatedBy *uuid.UUID `gorm:"type:uuid"`
	UpdatedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`

	Room         *Room                `gorm:"foreignKey:RoomID"`
	Customer     *Customer            `gorm:"foreignKey:CustomerID"`
	RateType     *RateType            `gorm:"foreignKey:RateTypeID"`
	Consumptions []BookingConsumption `gorm:"foreignKey:BookingID"`
	Payments     []Payment            `gorm:"foreignKey:BookingID"`
	Events       []BookingEvent       `gorm:"foreignKey:BookingID"`
}

// Balance is what the customer still owes. Negative means overpaid.
func (b *Booking) Balance() decimal.Decimal {
	return b.TotalAmount.Sub(b.PaidAmount)
}

// Activa reports whether the booking blocks its room.
func (b *Booking) Activa() bool {
	return b.Estado == BookingConfirmed || b.Estado == BookingCheckedIn
}

// PuedeCancelar: cancellation is only valid before occupancy starts.
func (b *Booking) PuedeCancelar() bool {
	return b.Estado == BookingPending || b.Estado == BookingConfirmed
}

// Consumption status values.
const (
	ConsumptionPending = "pending"
	ConsumptionPaid    = "paid"
)

// BookingConsumption is a product line charged to the room bill.
// Totals on the parent booking are maintained in the same transaction.
type BookingConsumption struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingID    uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null"`
	Descripcion  string          `gorm:"not null"`
	Cantidad     int             `gorm:"not null"`
	PrecioUnit   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	TotalLinea   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Estado       string          `gorm:"type:varchar(20);not null;default:'pending'"`
	RegisteredBy *uuid.UUID      `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Product *Producto `gorm:"foreignKey:ProductID"`
}

// BookingEvent types.
const (
	EventOverstayCharge = "overstay_charge"
	EventExtension      = "extension"
	EventConsumption    = "consumption"
	EventCheckoutNote   = "checkout_note"
)

// BookingEvent is the structured billing trail of a booking. Every charge
// that mutates totals after creation writes one row here. Rows are
// append-only.
type BookingEvent struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingID uuid.UUID        `gorm:"type:uuid;index;not null"`
	Tipo      string           `gorm:"type:varchar(30);not null"`
	Horas     *decimal.Decimal `gorm:"type:decimal(8,2)"`
	Monto     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Detalle   string           `gorm:"not null"`
	Actor     *uuid.UUID       `gorm:"type:uuid"`
	CreatedAt time.Time
}
