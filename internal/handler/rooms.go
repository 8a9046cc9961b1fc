package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RoomHandler serves the room board and the room-scoped overstay
// operations reception works from.
type RoomHandler struct {
	rooms    service.RoomService
	bookings service.BookingService
}

func NewRoomHandler(rooms service.RoomService, bookings service.BookingService) *RoomHandler {
	return &RoomHandler{rooms: rooms, bookings: bookings}
}

// Crear godoc
// @Summary Registra una habitación
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateRoomRequest true "Datos de la habitación"
// @Success 201 {object} dto.RoomResponse
// @Router /v1/rooms [post]
func (h *RoomHandler) Crear(c *gin.Context) {
	var req dto.CreateRoomRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.rooms.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Tablero de habitaciones con estadía activa
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RoomResponse
// @Router /v1/rooms [get]
func (h *RoomHandler) List(c *gin.Context) {
	var filter dto.RoomFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.rooms.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangeStatus godoc
// @Summary Cambia el estado de una habitación (limpieza, mantenimiento)
// @Tags rooms
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de habitación"
// @Param body body dto.ChangeRoomStatusRequest true "Nuevo estado"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/rooms/{id}/status [put]
func (h *RoomHandler) ChangeStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ChangeRoomStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.rooms.ChangeStatus(c.Request.Context(), actorID(c), id, req); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CheckoutDetails godoc
// @Summary Previsualiza el cobro de check-out de la habitación
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de habitación"
// @Success 200 {object} dto.CheckoutDetailsResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/rooms/{id}/checkout-details [get]
func (h *RoomHandler) CheckoutDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.bookings.CheckoutDetails(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExtraTime godoc
// @Summary Cotiza el tiempo extra vencido de la habitación
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de habitación"
// @Success 200 {object} dto.ExtraTimeResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/rooms/{id}/extra-time [get]
func (h *RoomHandler) ExtraTime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.bookings.CalculateExtraTime(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChargeExtraTime godoc
// @Summary Cobra el tiempo extra vencido y reprograma la salida
// @Tags rooms
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de habitación"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/rooms/{id}/charge-extra-time [post]
func (h *RoomHandler) ChargeExtraTime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.bookings.ChargeExtraTime(c.Request.Context(), actorID(c), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
