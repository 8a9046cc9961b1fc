package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogoHandler serves the billing catalogs: rate types and payment methods.
type CatalogoHandler struct{ svc service.CatalogoService }

func NewCatalogoHandler(svc service.CatalogoService) *CatalogoHandler {
	return &CatalogoHandler{svc: svc}
}

// CrearRateType godoc
// @Summary Crea un tipo de tarifa
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearRateTypeRequest true "Datos de la tarifa"
// @Success 201 {object} dto.RateTypeResponse
// @Router /v1/rate-types [post]
func (h *CatalogoHandler) CrearRateType(c *gin.Context) {
	var req dto.CrearRateTypeRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearRateType(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListRateTypes godoc
// @Summary Lista los tipos de tarifa activos
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.RateTypeResponse
// @Router /v1/rate-types [get]
func (h *CatalogoHandler) ListRateTypes(c *gin.Context) {
	resp, err := h.svc.ListRateTypes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CrearMetodoPago godoc
// @Summary Crea un método de pago
// @Tags catalogo
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearMetodoPagoRequest true "Datos del método"
// @Success 201 {object} dto.MetodoPagoResponse
// @Router /v1/payment-methods [post]
func (h *CatalogoHandler) CrearMetodoPago(c *gin.Context) {
	var req dto.CrearMetodoPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearMetodoPago(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListMetodosPago godoc
// @Summary Lista los métodos de pago
// @Tags catalogo
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.MetodoPagoResponse
// @Router /v1/payment-methods [get]
func (h *CatalogoHandler) ListMetodosPago(c *gin.Context) {
	resp, err := h.svc.ListMetodosPago(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
