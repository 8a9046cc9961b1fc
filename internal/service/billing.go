package service

// billing.go
// Pure time-based pricing functions. No I/O, no side effects: the same
// inputs always produce the same charge.

import (
	"time"

	"github.com/shopspring/decimal"
)

var sixty = decimal.NewFromInt(60)

// horasUsadas is the fractional elapsed time between check-in and now,
// measured in minutes for stability and divided by 60.
func horasUsadas(checkIn, now time.Time) decimal.Decimal {
	if !now.After(checkIn) {
		return decimal.Zero
	}
	mins := decimal.NewFromInt(int64(now.Sub(checkIn) / time.Minute))
	return mins.Div(sixty)
}

// horasExtra = max(0, usadas - contratadas). Fractional.
func horasExtra(usadas, contratadas decimal.Decimal) decimal.Decimal {
	extra := usadas.Sub(contratadas)
	if extra.IsNegative() {
		return decimal.Zero
	}
	return extra
}

// horasACobrar rounds a fractional overstay UP to whole hours.
// Any fraction within (0, 1] bills as one full hour; zero bills nothing.
func horasACobrar(extra decimal.Decimal) int64 {
	if !extra.IsPositive() {
		return 0
	}
	return extra.Ceil().IntPart()
}

// montoExtra = horas * precioHora, rounded to cents.
func montoExtra(precioHora decimal.Decimal, horas int64) decimal.Decimal {
	return precioHora.Mul(decimal.NewFromInt(horas)).Round(2)
}

// subtotalHabitacion = precioUnidad * unidades. Exact decimal arithmetic.
func subtotalHabitacion(precioUnidad decimal.Decimal, unidades decimal.Decimal) decimal.Decimal {
	return precioUnidad.Mul(unidades).Round(2)
}
