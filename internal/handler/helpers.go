package handler

import (
	"errors"
	"net/http"
	"reflect"

	"hostalpos/internal/apierror"
	"hostalpos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails, so
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQuery binds query-string filters and runs validator tags on them.
func bindQuery(c *gin.Context, filter interface{}) bool {
	if err := c.ShouldBindQuery(filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Query invalida: "+err.Error()))
		return false
	}
	if err := validate.Struct(filter); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// writeServiceError maps service errors to HTTP statuses:
//   - BalancePendingError: 422 with the balance breakdown payload
//   - not-found sentinels: 404
//   - state/conflict sentinels: 409
//   - everything else: 400 with the message (business validation text)
func writeServiceError(c *gin.Context, err error) {
	var balanceErr *service.BalancePendingError
	if errors.As(err, &balanceErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"detail":    balanceErr.Error(),
			"breakdown": balanceErr.Breakdown,
		})
		return
	}

	switch {
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPagoNoEncontrado),
		errors.Is(err, service.ErrSesionNoEncontrada),
		errors.Is(err, service.ErrBookingNotActive):
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
	case errors.Is(err, service.ErrRoomNotAvailable),
		errors.Is(err, service.ErrRoomOccupied),
		errors.Is(err, service.ErrBookingNotCheckedIn),
		errors.Is(err, service.ErrCancelAfterCheckIn),
		errors.Is(err, service.ErrBookingTerminal),
		errors.Is(err, service.ErrNoVencida),
		errors.Is(err, service.ErrCajaCerrada),
		errors.Is(err, service.ErrPagoNoReembolsable),
		errors.Is(err, service.ErrCajaOcupada),
		errors.Is(err, service.ErrUsuarioConSesion),
		errors.Is(err, service.ErrSesionCerrada),
		errors.Is(err, service.ErrPagosPendientes),
		errors.Is(err, service.ErrSinSesionActiva):
		c.JSON(http.StatusConflict, apierror.New(err.Error()))
	default:
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
	}
}
