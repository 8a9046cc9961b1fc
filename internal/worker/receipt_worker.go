package worker

// receipt_worker.go
// Processes receipt jobs from QueueRecibos: renders the stay PDF for a
// finished booking, records the Receipt row, and optionally enqueues an
// email with the attachment. Rendering uses exponential backoff (max 3
// attempts) before handing the row to the retry cron.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"hostalpos/internal/infra"
	"hostalpos/internal/model"
	"hostalpos/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// MaxReceiptRetries bounds cron re-attempts before the receipt is
// marked error and sent to the DLQ.
const MaxReceiptRetries = 5

// ReceiptJobPayload is the job envelope sent to QueueRecibos.
type ReceiptJobPayload struct {
	BookingID    string  `json:"booking_id"`
	ClienteEmail *string `json:"cliente_email,omitempty"`
}

// ReceiptWorker renders stay receipts for checked-out bookings.
type ReceiptWorker struct {
	receiptRepo    repository.ReceiptRepository
	bookingRepo    repository.BookingRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
	hotelName      string
}

func NewReceiptWorker(
	receiptRepo repository.ReceiptRepository,
	bookingRepo repository.BookingRepository,
	dispatcher *Dispatcher,
	pdfStoragePath string,
	hotelName string,
) *ReceiptWorker {
	return &ReceiptWorker{
		receiptRepo:    receiptRepo,
		bookingRepo:    bookingRepo,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
		hotelName:      hotelName,
	}
}

// Process handles a single receipt job:
//  1. Parse ReceiptJobPayload from the job envelope
//  2. Fetch the booking (with room, customer, consumptions, payments)
//  3. Create the Receipt record with estado="pendiente"
//  4. Render the PDF with exponential backoff (max 3 attempts)
//  5. Update the Receipt (estado / pdf_path / retry schedule)
//  6. Optionally enqueue an email job with the attachment
func (w *ReceiptWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ReceiptJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("receipt_worker: invalid payload")
		return
	}

	bookingID, err := uuid.Parse(payload.BookingID)
	if err != nil {
		log.Error().Str("booking_id", payload.BookingID).Msg("receipt_worker: invalid booking_id")
		return
	}

	booking, err := w.bookingRepo.FindByID(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Str("booking_id", payload.BookingID).Msg("receipt_worker: booking not found")
		return
	}

	rec := &model.Receipt{
		BookingID:  bookingID,
		Tipo:       booking.VoucherType,
		MontoNeto:  booking.TotalAmount,
		MontoTotal: booking.TotalAmount,
		Estado:     model.ReceiptPendiente,
	}
	if err := w.receiptRepo.Create(ctx, rec); err != nil {
		log.Error().Err(err).Str("booking_id", payload.BookingID).Msg("receipt_worker: failed to create receipt")
		return
	}

	var pdfPath string
	renderErr := withRetry(ctx, 3, func(attempt int) error {
		path, err := infra.GenerateReceiptPDF(booking, w.hotelName, w.pdfStoragePath)
		if err != nil {
			log.Warn().
				Err(err).
				Int("attempt", attempt+1).
				Str("booking_id", payload.BookingID).
				Msg("receipt_worker: render attempt failed, retrying")
			return err
		}
		pdfPath = path
		return nil
	})

	if renderErr != nil {
		// Stays pendiente; the retry cron picks it up from next_retry_at.
		rec.RetryCount++
		errMsg := renderErr.Error()
		rec.LastError = &errMsg
		nextRetry := time.Now().Add(computeRetryBackoff(rec.RetryCount))
		rec.NextRetryAt = &nextRetry
		_ = w.receiptRepo.Update(ctx, rec)
		log.Error().Err(renderErr).Str("booking_id", payload.BookingID).Msg("receipt_worker: render failed after all retries")
		return
	}

	rec.Estado = model.ReceiptEmitido
	rec.PDFPath = &pdfPath
	rec.NextRetryAt = nil
	rec.LastError = nil
	if err := w.receiptRepo.Update(ctx, rec); err != nil {
		log.Error().Err(err).Str("booking_id", payload.BookingID).Msg("receipt_worker: failed to update receipt")
		return
	}
	log.Info().Str("pdf", pdfPath).Str("booking_id", payload.BookingID).Msg("receipt_worker: receipt generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("Recibo de estadia %s", booking.BookingCode),
			Body:    fmt.Sprintf("Adjunto encontrara el recibo de su estadia.\nTotal: %s", booking.TotalAmount.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("receipt_worker: failed to enqueue email")
		} else {
			log.Info().Str("email", *payload.ClienteEmail).Msg("receipt_worker: email job enqueued")
		}
	}
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}

// computeRetryBackoff spaces cron re-attempts: 1m, 2m, 4m, capped at 15m.
// The cap is applied before shifting so large retry counts cannot overflow
// the duration into a negative value.
func computeRetryBackoff(retryCount int) time.Duration {
	if retryCount < 1 {
		retryCount = 1
	}
	if retryCount >= 5 {
		return 15 * time.Minute
	}
	return time.Duration(1<<uint(retryCount-1)) * time.Minute
}
