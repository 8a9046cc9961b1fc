package repository

import (
	"context"
	"time"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingRepository interface {
	Create(ctx context.Context, tx *gorm.DB, b *model.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	// FindByIDForUpdate locks the booking row for the rest of the transaction.
	// Serializes concurrent payments and checkout against the same booking.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Booking, error)
	// FindActiveByRoom returns the confirmed/checked_in booking holding the room.
	// gorm.ErrRecordNotFound when the room is free.
	FindActiveByRoom(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (*model.Booking, error)
	Save(ctx context.Context, tx *gorm.DB, b *model.Booking) error
	List(ctx context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error)
	SumTotals(ctx context.Context, filter dto.BookingFilter) (total, paid decimal.Decimal, err error)

	CreateConsumption(ctx context.Context, tx *gorm.DB, c *model.BookingConsumption) error
	CreateEvent(ctx context.Context, tx *gorm.DB, e *model.BookingEvent) error

	DB() *gorm.DB
}

type bookingRepo struct{ db *gorm.DB }

func NewBookingRepository(db *gorm.DB) BookingRepository { return &bookingRepo{db: db} }

func (r *bookingRepo) DB() *gorm.DB { return r.db }

func (r *bookingRepo) Create(ctx context.Context, tx *gorm.DB, b *model.Booking) error {
	return tx.WithContext(ctx).Create(b).Error
}

func (r *bookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := r.db.WithContext(ctx).
		Preload("Room").Preload("Customer").Preload("RateType").
		Preload("Consumptions.Product").Preload("Payments.Method").
		First(&b, id).Error
	return &b, err
}

func (r *bookingRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&b, id).Error
	return &b, err
}

func (r *bookingRepo) FindActiveByRoom(ctx context.Context, tx *gorm.DB, roomID uuid.UUID) (*model.Booking, error) {
	var b model.Booking
	err := tx.WithContext(ctx).
		Where("room_id = ? AND estado IN ?", roomID, []string{model.BookingConfirmed, model.BookingCheckedIn}).
		First(&b).Error
	return &b, err
}

func (r *bookingRepo) Save(ctx context.Context, tx *gorm.DB, b *model.Booking) error {
	return tx.WithContext(ctx).Save(b).Error
}

func (r *bookingRepo) applyFilter(ctx context.Context, filter dto.BookingFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Booking{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.RoomID != "" {
		q = q.Where("room_id = ?", filter.RoomID)
	}
	if filter.CustomerID != "" {
		q = q.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.Fecha != "" {
		q = q.Where("DATE(check_in) = ?", filter.Fecha)
	}
	return q
}

func (r *bookingRepo) List(ctx context.Context, filter dto.BookingFilter) ([]model.Booking, int64, error) {
	var bookings []model.Booking
	var total int64

	q := r.applyFilter(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Room").Preload("Customer").Preload("RateType").
		Order("created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *bookingRepo) SumTotals(ctx context.Context, filter dto.BookingFilter) (decimal.Decimal, decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
		Paid  decimal.Decimal
	}
	err := r.applyFilter(ctx, filter).
		Select("COALESCE(SUM(total_amount),0) AS total, COALESCE(SUM(paid_amount),0) AS paid").
		Scan(&row).Error
	return row.Total, row.Paid, err
}

func (r *bookingRepo) CreateConsumption(ctx context.Context, tx *gorm.DB, c *model.BookingConsumption) error {
	return tx.WithContext(ctx).Create(c).Error
}

func (r *bookingRepo) CreateEvent(ctx context.Context, tx *gorm.DB, e *model.BookingEvent) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}
	return tx.WithContext(ctx).Create(e).Error
}
