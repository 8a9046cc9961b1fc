package service

import (
	"math/rand"
	"time"
)

const codeCharset = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

func randomCode(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = codeCharset[rand.Intn(len(codeCharset))]
	}
	return string(b)
}

// generarBookingCode: BK-YYYYMMDD-XXXXXX. Uniqueness is enforced by the
// column index; collisions on the same day are statistically negligible.
func generarBookingCode(now time.Time) string {
	return "BK-" + now.Format("20060102") + "-" + randomCode(6)
}

// generarPaymentCode: PAY-YYYYMMDDHHMMSS-XXXX.
func generarPaymentCode(now time.Time) string {
	return "PAY-" + now.Format("20060102150405") + "-" + randomCode(4)
}
