package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hostalpos/internal/config"
	"hostalpos/internal/infra"
	"hostalpos/internal/repository"
	"hostalpos/internal/router"
	"hostalpos/internal/worker"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}

	rdb, err := infra.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	// Background workers: receipt PDF rendering and email delivery.
	// Wired here (composition root) so the pool shares infrastructure
	// with the HTTP layer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mailer := infra.NewMailer(cfg)
	dispatcher := worker.NewDispatcher(rdb)
	receiptRepo := repository.NewReceiptRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	receiptWorker := worker.NewReceiptWorker(receiptRepo, bookingRepo, dispatcher, cfg.PDFStoragePath, cfg.HotelName)
	emailWorker := worker.NewEmailWorker(mailer)
	worker.NewPool(rdb, receiptWorker, emailWorker).Start(ctx, cfg.WorkerPoolSize)

	// Re-issues receipts stuck in pendiente after transient PDF failures.
	worker.StartRetryCron(ctx, worker.RetryCronConfig{
		ReceiptRepo:    receiptRepo,
		BookingRepo:    bookingRepo,
		RDB:            rdb,
		PDFStoragePath: cfg.PDFStoragePath,
		HotelName:      cfg.HotelName,
	})

	r := router.New(cfg, db, rdb, dispatcher)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM
	go func() {
		log.Info().Msgf("HostalPOS backend listening on :%d", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server…")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("forced shutdown")
	}
	log.Info().Msg("server exited")
}
