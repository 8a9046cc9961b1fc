package dto

// RoomFilter is bound from query string of GET /v1/rooms.
type RoomFilter struct {
	Estado string `form:"estado,default=all"` // available|occupied|cleaning|maintenance|all
	Activo string `form:"activo,default=true"`
}

type RoomResponse struct {
	ID              string  `json:"id"`
	RoomNumber      string  `json:"room_number"`
	Nombre          string  `json:"nombre"`
	Piso            *int    `json:"piso,omitempty"`
	Estado          string  `json:"estado"`
	Activo          bool    `json:"activo"`
	StatusChangedAt *string `json:"status_changed_at,omitempty"`
	// CurrentBookingID is set when a confirmed/checked_in booking holds the room.
	CurrentBookingID *string `json:"current_booking_id,omitempty"`
}

type CreateRoomRequest struct {
	RoomNumber string `json:"room_number" validate:"required"`
	Nombre     string `json:"nombre"      validate:"required"`
	Piso       *int   `json:"piso"`
}

type ChangeRoomStatusRequest struct {
	Estado string  `json:"estado" validate:"required,oneof=available occupied cleaning maintenance"`
	Motivo *string `json:"motivo"`
}
