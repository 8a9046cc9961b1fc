package service

import (
	"context"
	"errors"

	"hostalpos/internal/clock"
	"hostalpos/internal/dto"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RoomService interface {
	Crear(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error)
	List(ctx context.Context, filter dto.RoomFilter) ([]dto.RoomResponse, error)
	ChangeStatus(ctx context.Context, usuarioID, roomID uuid.UUID, req dto.ChangeRoomStatusRequest) error

	// CambiarEstadoTx changes room status inside a caller-owned transaction
	// and appends the status log row. No-op when the status is unchanged.
	CambiarEstadoTx(ctx context.Context, tx *gorm.DB, room *model.Room, nuevo string, motivo string, bookingID, actor *uuid.UUID) error
}

type roomService struct {
	repo     repository.RoomRepository
	bookings repository.BookingRepository
	clk      clock.Clock
}

func NewRoomService(repo repository.RoomRepository, bookings repository.BookingRepository, clk clock.Clock) RoomService {
	return &roomService{repo: repo, bookings: bookings, clk: clk}
}

func (s *roomService) Crear(ctx context.Context, req dto.CreateRoomRequest) (*dto.RoomResponse, error) {
	room := &model.Room{
		RoomNumber: req.RoomNumber,
		Nombre:     req.Nombre,
		Piso:       req.Piso,
		Estado:     model.RoomAvailable,
		Activo:     true,
	}
	if err := s.repo.Create(ctx, room); err != nil {
		return nil, err
	}
	return roomToResponse(room, nil), nil
}

// List returns the room board. Occupied rooms carry the active booking id.
func (s *roomService) List(ctx context.Context, filter dto.RoomFilter) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		var bookingID *string
		if rooms[i].Estado == model.RoomOccupied && s.bookings != nil {
			if b, err := s.bookings.FindActiveByRoom(ctx, s.bookings.DB(), rooms[i].ID); err == nil {
				id := b.ID.String()
				bookingID = &id
			}
		}
		out = append(out, *roomToResponse(&rooms[i], bookingID))
	}
	return out, nil
}

func (s *roomService) ChangeStatus(ctx context.Context, usuarioID, roomID uuid.UUID, req dto.ChangeRoomStatusRequest) error {
	return runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		room, err := s.repo.FindByIDForUpdate(ctx, tx, roomID)
		if err != nil {
			return errors.New("habitación no encontrada")
		}
		// Manual transitions never release an occupied room: checkout owns that.
		if room.Estado == model.RoomOccupied && req.Estado != model.RoomOccupied {
			return errors.New("la habitación está ocupada; finalice la estadía primero")
		}
		motivo := ""
		if req.Motivo != nil {
			motivo = *req.Motivo
		}
		return s.CambiarEstadoTx(ctx, tx, room, req.Estado, motivo, nil, &usuarioID)
	})
}

func (s *roomService) CambiarEstadoTx(ctx context.Context, tx *gorm.DB, room *model.Room, nuevo string, motivo string, bookingID, actor *uuid.UUID) error {
	if room.Estado == nuevo {
		return nil
	}
	if err := s.repo.UpdateEstado(ctx, tx, room.ID, nuevo); err != nil {
		return err
	}
	logRow := &model.RoomStatusLog{
		RoomID:         room.ID,
		EstadoAnterior: room.Estado,
		EstadoNuevo:    nuevo,
		BookingID:      bookingID,
		ChangedBy:      actor,
		ChangedAt:      s.clk.Now(),
	}
	if motivo != "" {
		logRow.Motivo = &motivo
	}
	if err := s.repo.CreateStatusLog(ctx, tx, logRow); err != nil {
		return err
	}
	room.Estado = nuevo
	return nil
}

func roomToResponse(r *model.Room, currentBookingID *string) *dto.RoomResponse {
	resp := &dto.RoomResponse{
		ID:               r.ID.String(),
		RoomNumber:       r.RoomNumber,
		Nombre:           r.Nombre,
		Piso:             r.Piso,
		Estado:           r.Estado,
		Activo:           r.Activo,
		CurrentBookingID: currentBookingID,
	}
	if r.StatusChangedAt != nil {
		t := r.StatusChangedAt.Format("2006-01-02T15:04:05Z")
		resp.StatusChangedAt = &t
	}
	return resp
}
