package repository

import (
	"context"
	"time"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReceiptRepository interface {
	Create(ctx context.Context, r *model.Receipt) error
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Receipt, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error)
	Update(ctx context.Context, r *model.Receipt) error
	// ListRetryable returns pendiente receipts whose next_retry_at elapsed.
	ListRetryable(ctx context.Context, now time.Time, limit int) ([]model.Receipt, error)
}

type receiptRepo struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) ReceiptRepository {
	return &receiptRepo{db: db}
}

func (r *receiptRepo) Create(ctx context.Context, rec *model.Receipt) error {
	return r.db.WithContext(ctx).Create(rec).Error
}

func (r *receiptRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rec).Error
	return &rec, err
}

func (r *receiptRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Receipt, error) {
	var rec model.Receipt
	err := r.db.WithContext(ctx).First(&rec, id).Error
	return &rec, err
}

func (r *receiptRepo) Update(ctx context.Context, rec *model.Receipt) error {
	return r.db.WithContext(ctx).Save(rec).Error
}

func (r *receiptRepo) ListRetryable(ctx context.Context, now time.Time, limit int) ([]model.Receipt, error) {
	var recs []model.Receipt
	err := r.db.WithContext(ctx).
		Where("estado = ? AND next_retry_at IS NOT NULL AND next_retry_at <= ?", model.ReceiptPendiente, now).
		Order("next_retry_at ASC").Limit(limit).
		Find(&recs).Error
	return recs, err
}
