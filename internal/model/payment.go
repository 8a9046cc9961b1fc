package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Payment status values. Payments are created completed; pending only
// exists for deferred capture flows and blocks session close.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentRefunded  = "refunded"
)

// PaymentMethod is catalog data. RequiresReference forces an
// OperationNumber on every payment taken with the method.
type PaymentMethod struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre            string    `gorm:"not null"`
	Codigo            string    `gorm:"uniqueIndex;not null"`
	RequiresReference bool      `gorm:"not null;default:false"`
	Activo            bool      `gorm:"not null;default:true"`
	SortOrder         int       `gorm:"not null;default:0"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Payment is one entry in a booking's payment ledger. AmountBase is the
// amount converted to base currency at the rate captured on creation;
// it is the figure paid_amount aggregates over.
type Payment struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PaymentCode string    `gorm:"uniqueIndex;not null"`
	BookingID   uuid.UUID `gorm:"type:uuid;index;not null"`
	MethodID    uuid.UUID `gorm:"type:uuid;not null"`
	// CashRegisterID ties the payment to the register whose session was
	// open when it was taken; session close aggregates by this column.
	CashRegisterID uuid.UUID `gorm:"type:uuid;not null;index:idx_payments_register_date"`

	Moneda       string          `gorm:"type:varchar(3);not null;default:'PEN'"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ExchangeRate decimal.Decimal `gorm:"type:decimal(10,4);not null;default:1"`
	AmountBase   decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	OperationNumber *string `gorm:"type:varchar(50)"`
	Estado          string  `gorm:"type:varchar(20);not null;default:'completed';index"`
	PaymentDate     time.Time `gorm:"not null;index:idx_payments_register_date"`
	Notas           *string

	ReceivedBy *uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
	DeletedAt  gorm.DeletedAt `gorm:"index"`

	Method  *PaymentMethod `gorm:"foreignKey:MethodID"`
	Booking *Booking       `gorm:"foreignKey:BookingID"`
}

// CuentaParaSaldo reports whether the payment counts toward paid_amount.
func (p *Payment) CuentaParaSaldo() bool {
	return p.Estado == PaymentCompleted
}
