package service

import (
	"context"
	"testing"
	"time"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateBooking_CheckInInmediato(t *testing.T) {
	f := newFixture(t)

	resp := f.crearBooking(t, 5)

	assert.Equal(t, model.BookingCheckedIn, resp.Estado)
	assert.Equal(t, "50.00", resp.RoomSubtotal.StringFixed(2))
	assert.Equal(t, "50.00", resp.TotalAmount.StringFixed(2))
	assert.Equal(t, "5.00", resp.TotalHoras.StringFixed(2))
	assert.Equal(t, baseTime.Add(5*time.Hour).Format("2006-01-02T15:04:05Z"), resp.CheckOut)
	assert.Contains(t, resp.BookingCode, "BK-20260314-")

	// La habitación pasa a occupied y queda el rastro del cambio.
	assert.Equal(t, model.RoomOccupied, f.rooms.estadoDe(f.room.ID))
	require.Len(t, f.rooms.logs, 1)
	assert.Equal(t, model.RoomAvailable, f.rooms.logs[0].EstadoAnterior)
	assert.Equal(t, model.RoomOccupied, f.rooms.logs[0].EstadoNuevo)
}

func TestCreateBooking_HabitacionNoDisponible(t *testing.T) {
	f := newFixture(t)
	f.crearBooking(t, 2)

	_, err := f.bookingSvc.Create(context.Background(), f.userID, dto.CreateBookingRequest{
		RoomID:         f.room.ID.String(),
		CustomerID:     f.customer.ID.String(),
		RateTypeID:     f.rateHour.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Cantidad:       1,
	})
	assert.ErrorIs(t, err, ErrRoomNotAvailable)
}

func TestCreateBooking_EstadiaActivaBloqueaAunqueElTableroDigaLibre(t *testing.T) {
	f := newFixture(t)
	f.crearBooking(t, 2)

	// Estado del tablero desincronizado: la reserva activa sigue mandando.
	f.rooms.setEstado(f.room.ID, model.RoomAvailable)

	_, err := f.bookingSvc.Create(context.Background(), f.userID, dto.CreateBookingRequest{
		RoomID:         f.room.ID.String(),
		CustomerID:     f.customer.ID.String(),
		RateTypeID:     f.rateHour.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Cantidad:       1,
	})
	assert.ErrorIs(t, err, ErrRoomOccupied)
}

func TestCreateBooking_ConConsumosYPagoInicial(t *testing.T) {
	f := newFixture(t)

	resp, err := f.bookingSvc.Create(context.Background(), f.userID, dto.CreateBookingRequest{
		RoomID:         f.room.ID.String(),
		CustomerID:     f.customer.ID.String(),
		RateTypeID:     f.rateHour.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Cantidad:       5,
		Consumptions:   []dto.ConsumptionRequest{{ProductID: f.agua.ID.String(), Cantidad: 2}},
		Payments:       []dto.PaymentInput{f.pagoCash("57.00")},
	})
	require.NoError(t, err)

	assert.Equal(t, "7.00", resp.ProductsSubtotal.StringFixed(2))
	assert.Equal(t, "57.00", resp.TotalAmount.StringFixed(2))
	assert.Equal(t, "57.00", resp.PaidAmount.StringFixed(2))
	assert.Equal(t, "0.00", resp.Balance.StringFixed(2))

	// Consumos de apertura entran pagados: son parte de la cuenta que el
	// cliente está liquidando en ese momento.
	require.Len(t, f.bookings.consumptions, 1)
	assert.Equal(t, model.ConsumptionPaid, f.bookings.consumptions[0].Estado)
}

func TestFinish_SinExceso(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 5, f.pagoCash("50.00"))
	id := mustUUID(t, resp.ID)

	f.clk.Add(4*time.Hour + 30*time.Minute)

	out, err := f.bookingSvc.Finish(context.Background(), f.userID, id, dto.FinishBookingRequest{})
	require.NoError(t, err)

	assert.Equal(t, model.BookingCheckedOut, out.Estado)
	assert.Equal(t, "50.00", out.TotalAmount.StringFixed(2))
	require.NotNil(t, out.ActualHoras)
	assert.Equal(t, "5.00", out.ActualHoras.StringFixed(2))
	assert.Empty(t, f.bookings.eventosDe(id, model.EventOverstayCharge))
	assert.Equal(t, model.RoomCleaning, f.rooms.estadoDe(f.room.ID))
}

func TestFinish_ExcesoRechazaConSaldoPendiente(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 5, f.pagoCash("50.00"))
	id := mustUUID(t, resp.ID)

	// 5h contratadas, se va a las 5h40m: los 40 minutos cobran 1 hora entera.
	f.clk.Add(5*time.Hour + 40*time.Minute)

	_, err := f.bookingSvc.Finish(context.Background(), f.userID, id, dto.FinishBookingRequest{})
	var balanceErr *BalancePendingError
	require.ErrorAs(t, err, &balanceErr)

	bd := balanceErr.Breakdown
	assert.Equal(t, "10.00", bd.Balance.StringFixed(2))
	assert.Equal(t, "60.00", bd.TotalAmount.StringFixed(2))
	assert.Equal(t, "50.00", bd.PaidAmount.StringFixed(2))
	assert.Equal(t, "1.00", bd.ExtraHours.StringFixed(2))
	assert.Equal(t, "10.00", bd.ExtraAmount.StringFixed(2))

	// La estadía sigue en curso y la habitación ocupada.
	stored, err := f.bookings.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCheckedIn, stored.Estado)
	assert.Equal(t, model.RoomOccupied, f.rooms.estadoDe(f.room.ID))

	// Pagando el saldo, el mismo checkout procede y el total queda en 60.00.
	out, err := f.bookingSvc.Finish(context.Background(), f.userID, id, dto.FinishBookingRequest{
		CashRegisterID: f.register.ID.String(),
		Payments:       []dto.PaymentInput{f.pagoCash("10.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, model.BookingCheckedOut, out.Estado)
	assert.Equal(t, "60.00", out.TotalAmount.StringFixed(2))
	assert.Equal(t, "60.00", out.PaidAmount.StringFixed(2))
	assert.Equal(t, "0.00", out.Balance.StringFixed(2))
}

func TestFinish_ForzadoDejaDeudaCobrable(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 5, f.pagoCash("50.00"))
	id := mustUUID(t, resp.ID)

	f.clk.Add(5*time.Hour + 40*time.Minute)

	out, err := f.bookingSvc.Finish(context.Background(), f.userID, id, dto.FinishBookingRequest{ForceCheckout: true})
	require.NoError(t, err)
	assert.Equal(t, model.BookingCheckedOut, out.Estado)
	assert.Equal(t, "10.00", out.Balance.StringFixed(2))

	// La deuda residual se puede cobrar después del checkout.
	pago, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("10.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "10.00", pago.AmountBase.StringFixed(2))

	saldado, err := f.bookingSvc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "0.00", saldado.Balance.StringFixed(2))

	// Con la deuda saldada, la estadía queda terminal para pagos.
	_, err = f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("1.00"),
	})
	assert.ErrorIs(t, err, ErrBookingTerminal)
}

func TestExtendTime_CobraYExtiendeSalida(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 3)
	id := mustUUID(t, resp.ID)

	out, err := f.bookingSvc.ExtendTime(context.Background(), f.userID, id, dto.ExtendTimeRequest{Horas: 2})
	require.NoError(t, err)

	assert.Equal(t, "50.00", out.TotalAmount.StringFixed(2))
	assert.Equal(t, "5.00", out.TotalHoras.StringFixed(2))
	assert.Equal(t, baseTime.Add(5*time.Hour).Format("2006-01-02T15:04:05Z"), out.CheckOut)
	require.Len(t, f.bookings.eventosDe(id, model.EventExtension), 1)
}

func TestAddConsumption_SoloEnEstadiaActiva(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 3, f.pagoCash("30.00"))
	id := mustUUID(t, resp.ID)

	out, err := f.bookingSvc.AddConsumption(context.Background(), f.userID, id, dto.AddConsumptionRequest{
		Items: []dto.ConsumptionRequest{{ProductID: f.agua.ID.String(), Cantidad: 3}},
	})
	require.NoError(t, err)
	assert.Equal(t, "10.50", out.ProductsSubtotal.StringFixed(2))
	assert.Equal(t, "40.50", out.TotalAmount.StringFixed(2))
	assert.Equal(t, "10.50", out.Balance.StringFixed(2))

	f.clk.Add(time.Hour)
	_, err = f.bookingSvc.Finish(context.Background(), f.userID, id, dto.FinishBookingRequest{
		CashRegisterID: f.register.ID.String(),
		Payments:       []dto.PaymentInput{f.pagoCash("10.50")},
	})
	require.NoError(t, err)

	_, err = f.bookingSvc.AddConsumption(context.Background(), f.userID, id, dto.AddConsumptionRequest{
		Items: []dto.ConsumptionRequest{{ProductID: f.agua.ID.String(), Cantidad: 1}},
	})
	assert.ErrorIs(t, err, ErrBookingNotCheckedIn)
}

func TestCancel_DespuesDelCheckInRechaza(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)
	id := mustUUID(t, resp.ID)

	err := f.bookingSvc.Cancel(context.Background(), f.userID, id, "cliente se arrepintió")
	assert.ErrorIs(t, err, ErrCancelAfterCheckIn)
}

func TestCancel_ReservaConfirmada(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)
	id := mustUUID(t, resp.ID)

	// Reserva aún sin ocupar (el flujo normal la chequea de inmediato,
	// este estado queda de cargas históricas).
	stored := f.bookings.bookings[id]
	stored.Estado = model.BookingConfirmed

	err := f.bookingSvc.Cancel(context.Background(), f.userID, id, "no llegó el cliente")
	require.NoError(t, err)

	after, err := f.bookings.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.BookingCancelled, after.Estado)
	require.NotNil(t, after.CancellationReason)
	assert.Equal(t, "no llegó el cliente", *after.CancellationReason)

	// Cancelar dos veces no es válido.
	err = f.bookingSvc.Cancel(context.Background(), f.userID, id, "otra vez")
	assert.ErrorIs(t, err, ErrBookingTerminal)
}

func TestCheckoutDetails_PreviewSinPersistir(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 5, f.pagoCash("50.00"))
	id := mustUUID(t, resp.ID)

	f.clk.Add(5*time.Hour + 40*time.Minute)

	det, err := f.bookingSvc.CheckoutDetails(context.Background(), f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "60.00", det.TotalAmount.StringFixed(2))
	assert.Equal(t, "10.00", det.ExtraAmount.StringFixed(2))
	assert.Equal(t, "10.00", det.Balance.StringFixed(2))

	// El preview no toca la estadía.
	stored, err := f.bookings.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "50.00", stored.TotalAmount.StringFixed(2))
}

func TestExtraTime_CotizaYCobraVencido(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)
	id := mustUUID(t, resp.ID)

	// Antes del vencimiento no hay nada que cobrar.
	_, err := f.bookingSvc.CalculateExtraTime(context.Background(), f.room.ID)
	assert.ErrorIs(t, err, ErrNoVencida)

	f.clk.Add(3*time.Hour + 30*time.Minute) // 1h30m pasada la salida

	quote, err := f.bookingSvc.CalculateExtraTime(context.Background(), f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), quote.HorasCobro)
	assert.Equal(t, "20.00", quote.ExtraAmount.StringFixed(2))

	out, err := f.bookingSvc.ChargeExtraTime(context.Background(), f.userID, f.room.ID)
	require.NoError(t, err)
	assert.Equal(t, "40.00", out.TotalAmount.StringFixed(2))
	assert.Equal(t, "4.00", out.TotalHoras.StringFixed(2))
	// La nueva salida cubre las horas cobradas desde ahora.
	assert.Equal(t, f.clk.Now().Add(2*time.Hour).Format("2006-01-02T15:04:05Z"), out.CheckOut)
	require.Len(t, f.bookings.eventosDe(id, model.EventOverstayCharge), 1)
}

func mustUUID(t *testing.T, s string) uuid.UUID {
	t.Helper()
	id, err := uuid.Parse(s)
	require.NoError(t, err)
	return id
}
