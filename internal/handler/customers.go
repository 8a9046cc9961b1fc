package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CustomerHandler struct{ svc service.CustomerService }

func NewCustomerHandler(svc service.CustomerService) *CustomerHandler {
	return &CustomerHandler{svc: svc}
}

// Crear godoc
// @Summary Registra un cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCustomerRequest true "Datos del cliente"
// @Success 201 {object} dto.CustomerResponse
// @Router /v1/customers [post]
func (h *CustomerHandler) Crear(c *gin.Context) {
	var req dto.CrearCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Buscar searches customers by name or document fragment (?q=).
func (h *CustomerHandler) Buscar(c *gin.Context) {
	term := c.Query("q")
	if term == "" {
		c.JSON(http.StatusOK, []dto.CustomerResponse{})
		return
	}
	resp, err := h.svc.Buscar(c.Request.Context(), term)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Obtiene un cliente por ID
// @Tags customers
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// PorDocumento resolves a customer by document number, the reception
// fast path when the guest hands over an ID.
func (h *CustomerHandler) PorDocumento(c *gin.Context) {
	doc := c.Param("documento")
	resp, err := h.svc.BuscarPorDocumento(c.Request.Context(), doc)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Actualizar godoc
// @Summary Actualiza datos de contacto de un cliente
// @Tags customers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de cliente"
// @Param body body dto.ActualizarCustomerRequest true "Campos a actualizar"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/customers/{id} [put]
func (h *CustomerHandler) Actualizar(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.ActualizarCustomerRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}
