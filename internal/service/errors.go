package service

import (
	"errors"
	"fmt"

	"hostalpos/internal/dto"
)

// Business conflict sentinels. Handlers map these to 409/422; anything
// else that is not a validation error surfaces as 500 with the detail
// logged, never leaked.
var (
	ErrRoomNotAvailable    = errors.New("la habitación no está disponible")
	ErrRoomOccupied        = errors.New("la habitación ya tiene una estadía activa")
	ErrBookingNotFound     = errors.New("estadía no encontrada")
	ErrBookingNotCheckedIn = errors.New("la estadía no está en curso")
	ErrBookingNotActive    = errors.New("la habitación no tiene una estadía en curso")
	ErrCancelAfterCheckIn  = errors.New("no se puede cancelar una estadía con check-in realizado")
	ErrBookingTerminal     = errors.New("la estadía ya fue finalizada o cancelada")
	ErrRateInvalida        = errors.New("tipo de tarifa inválido o sin duración configurada")
	ErrNoVencida           = errors.New("la estadía aún no venció su hora de salida")

	ErrMontoInvalido       = errors.New("el monto del pago debe ser mayor a cero")
	ErrReferenciaRequerida = errors.New("el método de pago requiere número de operación")
	ErrCajaCerrada         = errors.New("la caja no tiene una sesión abierta")
	ErrPagoNoReembolsable  = errors.New("solo se pueden reembolsar pagos completados")
	ErrPagoNoEncontrado    = errors.New("pago no encontrado")

	ErrCajaOcupada         = errors.New("la caja ya tiene una sesión abierta")
	ErrUsuarioConSesion    = errors.New("el usuario ya tiene una sesión de caja abierta")
	ErrSesionCerrada       = errors.New("la sesión ya está cerrada")
	ErrSesionNoEncontrada  = errors.New("sesión de caja no encontrada")
	ErrPagosPendientes     = errors.New("existen pagos pendientes en la ventana de la sesión")
	ErrSinSesionActiva     = errors.New("el usuario no tiene una sesión de caja abierta")
)

// BalancePendingError rejects a checkout with outstanding balance and
// carries the breakdown the client renders on the confirmation screen.
type BalancePendingError struct {
	Breakdown dto.BalanceBreakdown
}

func (e *BalancePendingError) Error() string {
	return fmt.Sprintf("la estadía tiene un saldo pendiente de %s", e.Breakdown.Balance.StringFixed(2))
}
