package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Receipt estado values.
const (
	ReceiptPendiente = "pendiente"
	ReceiptEmitido   = "emitido"
	ReceiptError     = "error"
)

// Receipt is the printable voucher generated after checkout.
// Tipo: "ticket" | "boleta" | "factura"
// Generation happens asynchronously; retry fields drive the retry cron.
type Receipt struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null"`
	Tipo      string    `gorm:"type:varchar(20);not null;default:'ticket'"`
	Numero    *int64

	MontoNeto  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MontoTotal decimal.Decimal `gorm:"type:decimal(12,2);not null"`

	Estado string `gorm:"type:varchar(20);not null;default:'pendiente'"`
	// PDFPath is relative to PDF_STORAGE_PATH
	PDFPath       *string `gorm:"column:pdf_path"`
	Observaciones *string

	RetryCount  int        `gorm:"not null;default:0"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at"`
	LastError   *string

	CreatedAt time.Time
	UpdatedAt time.Time

	Booking *Booking `gorm:"foreignKey:BookingID"`
}
