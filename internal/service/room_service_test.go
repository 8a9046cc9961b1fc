package service

import (
	"context"
	"testing"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangeStatus_OcupadaNoSeLiberaManualmente(t *testing.T) {
	f := newFixture(t)
	f.crearBooking(t, 2)

	err := f.roomSvc.ChangeStatus(context.Background(), f.userID, f.room.ID, dto.ChangeRoomStatusRequest{
		Estado: model.RoomAvailable,
	})
	require.Error(t, err)
	assert.Equal(t, model.RoomOccupied, f.rooms.estadoDe(f.room.ID))
}

func TestChangeStatus_LimpiezaADisponible(t *testing.T) {
	f := newFixture(t)
	f.rooms.setEstado(f.room.ID, model.RoomCleaning)

	motivo := "limpieza terminada"
	err := f.roomSvc.ChangeStatus(context.Background(), f.userID, f.room.ID, dto.ChangeRoomStatusRequest{
		Estado: model.RoomAvailable,
		Motivo: &motivo,
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoomAvailable, f.rooms.estadoDe(f.room.ID))

	require.Len(t, f.rooms.logs, 1)
	assert.Equal(t, model.RoomCleaning, f.rooms.logs[0].EstadoAnterior)
	assert.Equal(t, model.RoomAvailable, f.rooms.logs[0].EstadoNuevo)
	require.NotNil(t, f.rooms.logs[0].Motivo)
	assert.Equal(t, motivo, *f.rooms.logs[0].Motivo)
}

func TestChangeStatus_MismoEstadoNoRegistraNada(t *testing.T) {
	f := newFixture(t)

	err := f.roomSvc.ChangeStatus(context.Background(), f.userID, f.room.ID, dto.ChangeRoomStatusRequest{
		Estado: model.RoomAvailable,
	})
	require.NoError(t, err)
	assert.Empty(t, f.rooms.logs)
}

func TestListRooms_OcupadaExponeLaEstadia(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)

	rooms, err := f.roomSvc.List(context.Background(), dto.RoomFilter{Estado: "all"})
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	assert.Equal(t, model.RoomOccupied, rooms[0].Estado)
	require.NotNil(t, rooms[0].CurrentBookingID)
	assert.Equal(t, resp.ID, *rooms[0].CurrentBookingID)
}
