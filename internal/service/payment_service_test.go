package service

import (
	"context"
	"testing"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordPayment_MonedaExtranjeraCapturaTipoDeCambio(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 5) // 50.00 PEN

	pago, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("10.00"),
		Moneda:         "USD",
	})
	require.NoError(t, err)

	assert.Equal(t, "USD", pago.Moneda)
	assert.Equal(t, "3.7500", pago.ExchangeRate.StringFixed(4))
	assert.Equal(t, "37.50", pago.AmountBase.StringFixed(2))
	assert.Contains(t, pago.PaymentCode, "PAY-")

	// paid_amount agrega amount_base, no el monto original.
	after, err := f.bookingSvc.Get(context.Background(), mustUUID(t, resp.ID))
	require.NoError(t, err)
	assert.Equal(t, "37.50", after.PaidAmount.StringFixed(2))
	assert.Equal(t, "12.50", after.Balance.StringFixed(2))
}

func TestRecordPayment_MonedaSinTipoDeCambio(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)

	_, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("10.00"),
		Moneda:         "EUR",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tipo de cambio")
}

func TestRecordPayment_MontoInvalido(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)

	_, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("0"),
	})
	assert.ErrorIs(t, err, ErrMontoInvalido)
}

func TestRecordPayment_ReferenciaRequerida(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)

	_, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.card.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("20.00"),
	})
	assert.ErrorIs(t, err, ErrReferenciaRequerida)

	op := "OP-778899"
	pago, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:       resp.ID,
		MethodID:        f.card.ID.String(),
		CashRegisterID:  f.register.ID.String(),
		Amount:          dec("20.00"),
		OperationNumber: &op,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tarjeta", pago.Metodo)
}

func TestRecordPayment_CajaSinSesionAbierta(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)

	cerrada := &model.CashRegister{Nombre: "Caja 2", Activo: true}
	require.NoError(t, f.cajas.CreateRegister(context.Background(), cerrada))

	_, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: cerrada.ID.String(),
		Amount:         dec("10.00"),
	})
	assert.ErrorIs(t, err, ErrCajaCerrada)
}

func TestRefund_RecalculaPagado(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 5, f.pagoCash("50.00"))
	id := mustUUID(t, resp.ID)

	pagos, err := f.payments.ListByBooking(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, pagos, 1)

	out, err := f.paySvc.Refund(context.Background(), f.userID, pagos[0].ID, "cobro duplicado")
	require.NoError(t, err)
	assert.Equal(t, model.PaymentRefunded, out.Estado)
	require.NotNil(t, out.Notas)
	assert.Contains(t, *out.Notas, "cobro duplicado")

	// El reembolso sale del agregado y el saldo vuelve a abrirse.
	after, err := f.bookingSvc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "0.00", after.PaidAmount.StringFixed(2))
	assert.Equal(t, "50.00", after.Balance.StringFixed(2))

	// Un pago reembolsado no se reembolsa dos veces.
	_, err = f.paySvc.Refund(context.Background(), f.userID, pagos[0].ID, "de nuevo")
	assert.ErrorIs(t, err, ErrPagoNoReembolsable)
}

func TestRecordPayment_EstadiaCancelada(t *testing.T) {
	f := newFixture(t)
	resp := f.crearBooking(t, 2)
	id := mustUUID(t, resp.ID)

	stored := f.bookings.bookings[id]
	stored.Estado = model.BookingCancelled

	_, err := f.paySvc.RecordPayment(context.Background(), f.userID, dto.RecordPaymentRequest{
		BookingID:      resp.ID,
		MethodID:       f.cash.ID.String(),
		CashRegisterID: f.register.ID.String(),
		Amount:         dec("10.00"),
	})
	assert.ErrorIs(t, err, ErrBookingTerminal)
}
