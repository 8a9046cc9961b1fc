package service

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHorasUsadas(t *testing.T) {
	checkIn := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"sin tiempo transcurrido", 0, "0"},
		{"media hora", 30 * time.Minute, "0.5"},
		{"exactamente cinco horas", 5 * time.Hour, "5"},
		{"cinco horas cuarenta", 5*time.Hour + 40*time.Minute, "5.6666666666666667"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := horasUsadas(checkIn, checkIn.Add(tt.elapsed))
			assert.True(t, dec(tt.want).Sub(got).Abs().LessThan(dec("0.0001")),
				"horasUsadas=%s, esperado %s", got, tt.want)
		})
	}

	// A clock before check-in never produces negative usage.
	got := horasUsadas(checkIn, checkIn.Add(-time.Hour))
	assert.True(t, got.IsZero())
}

func TestHorasACobrar_RedondeaHaciaArriba(t *testing.T) {
	tests := []struct {
		extra string
		want  int64
	}{
		{"0", 0},
		{"-0.5", 0},
		{"0.01", 1},
		{"0.6667", 1},
		{"1", 1},
		{"1.01", 2},
		{"2.5", 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, horasACobrar(dec(tt.extra)), "extra=%s", tt.extra)
	}
}

func TestHorasExtra(t *testing.T) {
	assert.True(t, horasExtra(dec("4.5"), dec("5")).IsZero(), "uso menor al contratado no genera extra")
	assert.True(t, horasExtra(dec("5"), dec("5")).IsZero())
	assert.Equal(t, "0.67", horasExtra(dec("5.67"), dec("5")).StringFixed(2))
}

func TestMontoExtra(t *testing.T) {
	assert.Equal(t, "10.00", montoExtra(dec("10"), 1).StringFixed(2))
	assert.Equal(t, "0.00", montoExtra(dec("10"), 0).StringFixed(2))
	// 12.3333/h por 3 horas redondea a centavos
	assert.Equal(t, "37.00", montoExtra(dec("12.3333"), 3).StringFixed(2))
}

// Contract at $10/h for 5 hours, leaving at 5h40m: the 40 minutes bill
// as one full extra hour and the stay totals 60.00.
func TestTarifaHoraria_CasoCompleto(t *testing.T) {
	precioHora := dec("10.00")
	contratadas := decimal.NewFromInt(5)
	checkIn := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	salida := checkIn.Add(5*time.Hour + 40*time.Minute)

	usadas := horasUsadas(checkIn, salida)
	extra := horasExtra(usadas, contratadas)
	horas := horasACobrar(extra)
	monto := montoExtra(precioHora, horas)

	assert.Equal(t, int64(1), horas)
	assert.Equal(t, "10.00", monto.StringFixed(2))

	subtotal := subtotalHabitacion(precioHora, contratadas)
	assert.Equal(t, "60.00", subtotal.Add(monto).StringFixed(2))
}

func TestSubtotalHabitacion(t *testing.T) {
	// 2 noches de 80.00
	assert.Equal(t, "160.00", subtotalHabitacion(dec("80.00"), decimal.NewFromInt(2)).StringFixed(2))
}
