package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session status values (Spanish, as printed on reports).
const (
	SesionAbierta   = "abierta"
	SesionCerrada   = "cerrada"
	SesionBloqueada = "bloqueada"
)

// Difference classification on close.
const (
	DiferenciaCuadra   = "CUADRA"
	DiferenciaSobrante = "SOBRANTE"
	DiferenciaFaltante = "FALTANTE"
)

// CashRegister is a physical till. CurrentSessionID is the single source
// of truth for "in use": non-nil means some session holds the register.
type CashRegister struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string     `gorm:"uniqueIndex;not null"`
	Activo           bool       `gorm:"not null;default:true"`
	CurrentSessionID *uuid.UUID `gorm:"type:uuid"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Abierta reports whether the register currently holds an open session.
func (c *CashRegister) Abierta() bool {
	return c.Activo && c.CurrentSessionID != nil
}

// CashRegisterSession is one open-to-close working period on a register.
// System, counted and difference totals are written exactly once, on close.
type CashRegisterSession struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CashRegisterID uuid.UUID `gorm:"type:uuid;index;not null"`
	Estado         string    `gorm:"type:varchar(20);not null;default:'abierta';index"`

	OpeningAmount decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	// SystemTotal is the sum of completed payments taken on the register
	// during the session window, in base currency.
	SystemTotal      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	CountedTotal     *decimal.Decimal `gorm:"type:decimal(12,2)"`
	DifferenceAmount *decimal.Decimal `gorm:"type:decimal(12,2)"`

	OpenedBy uuid.UUID  `gorm:"type:uuid;not null;index"`
	ClosedBy *uuid.UUID `gorm:"type:uuid"`
	OpenedAt time.Time  `gorm:"not null"`
	ClosedAt *time.Time

	Observaciones *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	CashRegister   *CashRegister                     `gorm:"foreignKey:CashRegisterID"`
	PaymentMethods []CashRegisterSessionPaymentMethod `gorm:"foreignKey:SessionID"`
}

// Cerrada reports whether the session already went through close.
func (s *CashRegisterSession) Cerrada() bool {
	return s.Estado == SesionCerrada
}

// CashRegisterSessionPaymentMethod is one reconciliation row of a closed
// session: system vs counted amount for a payment method. Unique per
// (session, method).
type CashRegisterSessionPaymentMethod struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_method"`
	MethodID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_session_method"`

	SystemAmount  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	CountedAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	// Difference = counted - system. Positive SOBRANTE, negative FALTANTE.
	Difference decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Method *PaymentMethod `gorm:"foreignKey:MethodID"`
}

// ClasificarDiferencia maps a signed difference to its report label.
func ClasificarDiferencia(d decimal.Decimal) string {
	switch {
	case d.IsPositive():
		return DiferenciaSobrante
	case d.IsNegative():
		return DiferenciaFaltante
	default:
		return DiferenciaCuadra
	}
}
