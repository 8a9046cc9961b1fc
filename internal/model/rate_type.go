package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Well-known rate codes. The duration of each unit comes from the row's
// DuracionHoras; these codes only exist so seeds and tests can reference them.
const (
	RateCodeHour   = "HOUR"
	RateCodeDay    = "DAY"
	RateCodeNight  = "NIGHT"
	RateCode8Hours = "8HOURS"
)

// RateType defines how many hours one billed unit covers and what it costs.
// units = contracted_hours / DuracionHoras, room_subtotal = PrecioUnidad * units.
type RateType struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre string    `gorm:"not null"`
	Codigo string    `gorm:"uniqueIndex;not null"`
	// DuracionHoras is the length of one unit. HOUR=1, NIGHT=12, DAY=24, 8HOURS=8.
	DuracionHoras int             `gorm:"not null"`
	PrecioUnidad  decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Activo        bool            `gorm:"not null;default:true"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// PrecioPorHora derives the hourly rate used for overstay billing.
func (rt *RateType) PrecioPorHora() decimal.Decimal {
	if rt.DuracionHoras <= 0 {
		return decimal.Zero
	}
	return rt.PrecioUnidad.Div(decimal.NewFromInt(int64(rt.DuracionHoras)))
}
