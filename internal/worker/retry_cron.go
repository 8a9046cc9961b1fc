package worker

// retry_cron.go
// Background goroutine that periodically re-attempts PDF rendering for
// receipts stuck in estado='pendiente' with a next_retry_at in the past.

import (
	"context"
	"fmt"
	"time"

	"hostalpos/internal/infra"
	"hostalpos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	retryTickInterval = 30 * time.Second
	retryBatchSize    = 10
)

// RetryCronConfig holds all dependencies for the retry goroutine.
type RetryCronConfig struct {
	ReceiptRepo    repository.ReceiptRepository
	BookingRepo    repository.BookingRepository
	RDB            *redis.Client
	PDFStoragePath string
	HotelName      string
}

// StartRetryCron launches a background goroutine that ticks every 30s,
// queries retryable receipts, and re-attempts PDF rendering.
// It respects the context for graceful shutdown.
func StartRetryCron(ctx context.Context, cfg RetryCronConfig) {
	go func() {
		ticker := time.NewTicker(retryTickInterval)
		defer ticker.Stop()

		log.Info().Msg("retry_cron: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("retry_cron: shutting down")
				return
			case <-ticker.C:
				processRetries(ctx, cfg)
			}
		}
	}()
}

func processRetries(ctx context.Context, cfg RetryCronConfig) {
	now := time.Now()
	receipts, err := cfg.ReceiptRepo.ListRetryable(ctx, now, retryBatchSize)
	if err != nil {
		log.Error().Err(err).Msg("retry_cron: failed to query retryable receipts")
		return
	}

	if len(receipts) == 0 {
		return
	}

	log.Info().Int("count", len(receipts)).Msg("retry_cron: processing pending receipts")

	for i := range receipts {
		rec := &receipts[i]

		booking, err := cfg.BookingRepo.FindByID(ctx, rec.BookingID)
		if err != nil {
			log.Error().Err(err).Str("receipt_id", rec.ID.String()).Msg("retry_cron: booking not found")
			continue
		}

		pdfPath, renderErr := infra.GenerateReceiptPDF(booking, cfg.HotelName, cfg.PDFStoragePath)
		if renderErr != nil {
			rec.RetryCount++
			errMsg := renderErr.Error()
			rec.LastError = &errMsg
			nextRetry := time.Now().Add(computeRetryBackoff(rec.RetryCount))
			rec.NextRetryAt = &nextRetry

			if rec.RetryCount >= MaxReceiptRetries {
				rec.Estado = "error"
				rec.NextRetryAt = nil
				log.Error().
					Str("receipt_id", rec.ID.String()).
					Str("booking_id", rec.BookingID.String()).
					Int("retries", rec.RetryCount).
					Msg("retry_cron: max retries exceeded, moving to error/DLQ")

				payload := fmt.Sprintf(`{"booking_id":"%s","receipt_id":"%s"}`, rec.BookingID, rec.ID)
				SendToDLQ(ctx, cfg.RDB, QueueRecibos, "recibo", []byte(payload),
					fmt.Sprintf("max retries (%d) exceeded: %s", MaxReceiptRetries, errMsg),
					rec.RetryCount)
			} else {
				log.Warn().
					Str("receipt_id", rec.ID.String()).
					Int("retry_count", rec.RetryCount).
					Time("next_retry_at", *rec.NextRetryAt).
					Msg("retry_cron: render retry failed, scheduled next attempt")
			}

			_ = cfg.ReceiptRepo.Update(ctx, rec)
			continue
		}

		rec.Estado = "emitido"
		rec.PDFPath = &pdfPath
		rec.NextRetryAt = nil
		rec.LastError = nil
		_ = cfg.ReceiptRepo.Update(ctx, rec)

		log.Info().
			Str("receipt_id", rec.ID.String()).
			Str("pdf", pdfPath).
			Int("total_retries", rec.RetryCount).
			Msg("retry_cron: receipt generated after retry")
	}
}
