package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PaymentHandler struct{ svc service.PaymentService }

func NewPaymentHandler(svc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// Record godoc
// @Summary Registra un pago sobre la cuenta de una estadía
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.RecordPaymentRequest true "Datos del pago"
// @Success 201 {object} dto.PaymentResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/payments [post]
func (h *PaymentHandler) Record(c *gin.Context) {
	var req dto.RecordPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RecordPayment(c.Request.Context(), actorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Refund godoc
// @Summary Reembolsa un pago completado
// @Tags payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de pago"
// @Param body body dto.RefundPaymentRequest true "Motivo del reembolso"
// @Success 200 {object} dto.PaymentResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/payments/{id}/refund [post]
func (h *PaymentHandler) Refund(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.RefundPaymentRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refund(c.Request.Context(), actorID(c), id, req.Motivo)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// List godoc
// @Summary Lista pagos con filtros y totales por método
// @Tags payments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.PaymentListResponse
// @Router /v1/payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	var filter dto.PaymentFilter
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
