package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the person a booking is registered to. Kept minimal: the
// billing flows only need identity and an optional email for receipts.
type Customer struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre          string    `gorm:"index;not null"`
	TipoDocumento   string    `gorm:"type:varchar(20);not null;default:'dni'"`
	NumeroDocumento string    `gorm:"uniqueIndex;not null"`
	Telefono        *string
	Email           *string
	Activo          bool `gorm:"not null;default:true"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
