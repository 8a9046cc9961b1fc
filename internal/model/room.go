package model

import (
	"time"

	"github.com/google/uuid"
)

// Room status values.
const (
	RoomAvailable   = "available"
	RoomOccupied    = "occupied"
	RoomCleaning    = "cleaning"
	RoomMaintenance = "maintenance"
)

// Room is a rentable unit. Status reflects physical availability, not the
// booking lifecycle: a room goes occupied on check-in and cleaning on checkout.
type Room struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomNumber      string    `gorm:"uniqueIndex;not null"`
	Nombre          string    `gorm:"not null"`
	Piso            *int
	Estado          string `gorm:"type:varchar(20);not null;default:'available';index"`
	Activo          bool   `gorm:"not null;default:true"`
	StatusChangedAt *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time

	StatusLogs []RoomStatusLog `gorm:"foreignKey:RoomID"`
}

// RoomStatusLog is an append-only trail of room status transitions.
// Rows are never updated or deleted.
type RoomStatusLog struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RoomID         uuid.UUID `gorm:"type:uuid;index;not null"`
	EstadoAnterior string    `gorm:"type:varchar(20);not null"`
	EstadoNuevo    string    `gorm:"type:varchar(20);not null"`
	Motivo         *string
	BookingID      *uuid.UUID `gorm:"type:uuid"`
	ChangedBy      *uuid.UUID `gorm:"type:uuid"`
	ChangedAt      time.Time  `gorm:"not null"`
}

// Disponible reports whether the room can take a new booking.
func (r *Room) Disponible() bool {
	return r.Activo && r.Estado == RoomAvailable
}
