package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Producto is the minibar/kiosk catalog entry consumptions charge against.
// Stock and kardex live in the inventory system; here the row only
// supplies the unit price and description.
type Producto struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CodigoBarras string    `gorm:"uniqueIndex;not null"`
	Nombre       string    `gorm:"index;not null"`
	Descripcion  *string
	PrecioVenta  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Activo       bool            `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
