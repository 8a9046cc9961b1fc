package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/middleware"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct{ svc service.BookingService }

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func actorID(c *gin.Context) uuid.UUID {
	claims := middleware.GetClaims(c)
	id, _ := uuid.Parse(claims.UserID)
	return id
}

// Create godoc
// @Summary Registra una estadía con check-in inmediato
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateBookingRequest true "Datos de la estadía"
// @Success 201 {object} dto.BookingResponse
// @Failure 400 {object} apierror.APIError
// @Failure 409 {object} apierror.APIError
// @Router /v1/bookings [post]
func (h *BookingHandler) Create(c *gin.Context) {
	var req dto.CreateBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Create(c.Request.Context(), actorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary Lista estadías con filtros y totales agregados
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.BookingListResponse
// @Router /v1/bookings [get]
func (h *BookingHandler) List(c *gin.Context) {
	var filter dto.BookingFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene una estadía por ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estadía"
// @Success 200 {object} dto.BookingResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/bookings/{id} [get]
func (h *BookingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Finish godoc
// @Summary Finaliza la estadía (check-out con cobro de tiempo extra)
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estadía"
// @Param body body dto.FinishBookingRequest true "Pagos y opciones de cierre"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} apierror.APIError
// @Failure 422 {object} apierror.APIError
// @Router /v1/bookings/{id}/finish [post]
func (h *BookingHandler) Finish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.FinishBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Finish(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ExtendTime godoc
// @Summary Extiende la estadía cobrando las horas de inmediato
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estadía"
// @Param body body dto.ExtendTimeRequest true "Horas a extender (1-24)"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/bookings/{id}/extend [post]
func (h *BookingHandler) ExtendTime(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ExtendTimeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ExtendTime(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddConsumption godoc
// @Summary Agrega consumos pendientes a la cuenta de la estadía
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estadía"
// @Param body body dto.AddConsumptionRequest true "Lineas de consumo"
// @Success 200 {object} dto.BookingResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/bookings/{id}/consumptions [post]
func (h *BookingHandler) AddConsumption(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AddConsumptionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.AddConsumption(c.Request.Context(), actorID(c), id, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Cancel godoc
// @Summary Cancela una estadía sin check-in realizado
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estadía"
// @Param body body dto.CancelBookingRequest true "Motivo de cancelación"
// @Success 204
// @Failure 409 {object} apierror.APIError
// @Router /v1/bookings/{id}/cancel [post]
func (h *BookingHandler) Cancel(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.CancelBookingRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), actorID(c), id, req.Motivo); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Ticket godoc
// @Summary Devuelve los datos imprimibles del ticket de la estadía
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de estadía"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/bookings/{id}/ticket [get]
func (h *BookingHandler) Ticket(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Ticket(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
