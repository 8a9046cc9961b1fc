package handler

import (
	"net/http"

	"hostalpos/internal/apierror"
	"hostalpos/internal/dto"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CajaHandler struct{ svc service.CajaService }

func NewCajaHandler(svc service.CajaService) *CajaHandler { return &CajaHandler{svc: svc} }

// CrearCajas godoc
// @Summary Crea N cajas registradoras numeradas
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CrearCajasRequest true "Cantidad de cajas"
// @Success 201 {array} dto.CajaResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cajas [post]
func (h *CajaHandler) CrearCajas(c *gin.Context) {
	var req dto.CrearCajasRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearCajas(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListCajas godoc
// @Summary Lista las cajas registradoras y su ocupación
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Success 200 {array} dto.CajaResponse
// @Router /v1/cajas [get]
func (h *CajaHandler) ListCajas(c *gin.Context) {
	resp, err := h.svc.ListCajas(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Abrir godoc
// @Summary Abre una sesión sobre una caja libre
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Param body body dto.AbrirCajaRequest true "Monto de apertura"
// @Success 201 {object} dto.SesionResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/{id}/abrir [post]
func (h *CajaHandler) Abrir(c *gin.Context) {
	registerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var req dto.AbrirCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Abrir(c.Request.Context(), actorID(c), registerID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Cerrar godoc
// @Summary Cierra la sesión activa del usuario con arqueo por método
// @Tags caja
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CerrarCajaRequest true "Conteos declarados"
// @Success 200 {object} dto.CierreResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/cajas/cerrar [post]
func (h *CajaHandler) Cerrar(c *gin.Context) {
	var req dto.CerrarCajaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Cerrar(c.Request.Context(), actorID(c), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetActiva returns the currently open cash session for the authenticated user.
func (h *CajaHandler) GetActiva(c *gin.Context) {
	resp, err := h.svc.GetActiva(c.Request.Context(), actorID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	if resp == nil {
		c.JSON(http.StatusNotFound, apierror.New("Sin sesión activa"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns a paginated list of cash sessions.
func (h *CajaHandler) Historial(c *gin.Context) {
	var filter dto.SesionFilter
	if !bindQuery(c, &filter) {
		return
	}
	resp, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SesionesPorCaja godoc
// @Summary Lista las sesiones de una caja registradora
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de caja"
// @Success 200 {object} dto.SesionListResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/cajas/{id}/sesiones [get]
func (h *CajaHandler) SesionesPorCaja(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	var filter dto.SesionFilter
	if !bindQuery(c, &filter) {
		return
	}
	filter.CashRegisterID = id.String()
	resp, err := h.svc.Historial(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resumen godoc
// @Summary Snapshot pre-cierre de una sesión (no persiste nada)
// @Tags caja
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de sesión"
// @Success 200 {object} dto.ResumenSesionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/sesiones/{id}/resumen [get]
func (h *CajaHandler) Resumen(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID inválido"))
		return
	}
	resp, err := h.svc.Resumen(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
