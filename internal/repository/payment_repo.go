package repository

import (
	"context"
	"time"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MethodSum is one GROUP BY row of a payment aggregation.
type MethodSum struct {
	MethodID uuid.UUID
	Metodo   string
	Total    decimal.Decimal
}

type PaymentRepository interface {
	Create(ctx context.Context, tx *gorm.DB, p *model.Payment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error)
	Save(ctx context.Context, tx *gorm.DB, p *model.Payment) error
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error)
	List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error)

	// SumCompletedByBooking is the source of truth for paid_amount:
	// SUM(amount_base) over completed payments of the booking.
	SumCompletedByBooking(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (decimal.Decimal, error)
	// SumCompletedByRegisterWindow groups completed payments taken on the
	// register inside [desde, hasta] by payment method. Session close and
	// the pre-close summary are built on this.
	SumCompletedByRegisterWindow(ctx context.Context, tx *gorm.DB, registerID uuid.UUID, desde, hasta time.Time) ([]MethodSum, error)
	// CountPendingByRegisterWindow backs the CanClose precondition. It
	// accepts the close transaction so the check and the close commit
	// observe the same snapshot.
	CountPendingByRegisterWindow(ctx context.Context, tx *gorm.DB, registerID uuid.UUID, desde, hasta time.Time) (int64, error)
	SumByMethod(ctx context.Context, filter dto.PaymentFilter) ([]MethodSum, error)

	DB() *gorm.DB
}

type paymentRepo struct{ db *gorm.DB }

func NewPaymentRepository(db *gorm.DB) PaymentRepository { return &paymentRepo{db: db} }

func (r *paymentRepo) DB() *gorm.DB { return r.db }

func (r *paymentRepo) Create(ctx context.Context, tx *gorm.DB, p *model.Payment) error {
	return tx.WithContext(ctx).Create(p).Error
}

func (r *paymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Preload("Method").First(&p, id).Error
	return &p, err
}

func (r *paymentRepo) Save(ctx context.Context, tx *gorm.DB, p *model.Payment) error {
	return tx.WithContext(ctx).Save(p).Error
}

func (r *paymentRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]model.Payment, error) {
	var pagos []model.Payment
	err := r.db.WithContext(ctx).Preload("Method").
		Where("booking_id = ?", bookingID).
		Order("payment_date ASC").Find(&pagos).Error
	return pagos, err
}

func (r *paymentRepo) applyFilter(ctx context.Context, filter dto.PaymentFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.Payment{})
	if filter.BookingID != "" {
		q = q.Where("booking_id = ?", filter.BookingID)
	}
	if filter.CashRegisterID != "" {
		q = q.Where("cash_register_id = ?", filter.CashRegisterID)
	}
	if filter.MethodID != "" {
		q = q.Where("method_id = ?", filter.MethodID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(payment_date) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(payment_date) <= ?", filter.Hasta)
	}
	return q
}

func (r *paymentRepo) List(ctx context.Context, filter dto.PaymentFilter) ([]model.Payment, int64, error) {
	var pagos []model.Payment
	var total int64

	q := r.applyFilter(ctx, filter)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Method").
		Order("payment_date DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pagos).Error
	return pagos, total, err
}

func (r *paymentRepo) SumCompletedByBooking(ctx context.Context, tx *gorm.DB, bookingID uuid.UUID) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := tx.WithContext(ctx).Model(&model.Payment{}).
		Where("booking_id = ? AND estado = ?", bookingID, model.PaymentCompleted).
		Select("COALESCE(SUM(amount_base), 0)").
		Scan(&sum).Error
	return sum, err
}

func (r *paymentRepo) SumCompletedByRegisterWindow(ctx context.Context, tx *gorm.DB, registerID uuid.UUID, desde, hasta time.Time) ([]MethodSum, error) {
	var rows []MethodSum
	err := tx.WithContext(ctx).Model(&model.Payment{}).
		Select("payments.method_id AS method_id, payment_methods.nombre AS metodo, COALESCE(SUM(payments.amount_base),0) AS total").
		Joins("JOIN payment_methods ON payment_methods.id = payments.method_id").
		Where("payments.cash_register_id = ? AND payments.estado = ? AND payments.payment_date BETWEEN ? AND ?",
			registerID, model.PaymentCompleted, desde, hasta).
		Group("payments.method_id, payment_methods.nombre").
		Scan(&rows).Error
	return rows, err
}

func (r *paymentRepo) CountPendingByRegisterWindow(ctx context.Context, tx *gorm.DB, registerID uuid.UUID, desde, hasta time.Time) (int64, error) {
	db := tx
	if db == nil {
		db = r.db
	}
	var n int64
	err := db.WithContext(ctx).Model(&model.Payment{}).
		Where("cash_register_id = ? AND estado = ? AND payment_date BETWEEN ? AND ?",
			registerID, model.PaymentPending, desde, hasta).
		Count(&n).Error
	return n, err
}

func (r *paymentRepo) SumByMethod(ctx context.Context, filter dto.PaymentFilter) ([]MethodSum, error) {
	var rows []MethodSum
	err := r.applyFilter(ctx, filter).
		Select("payments.method_id AS method_id, payment_methods.nombre AS metodo, COALESCE(SUM(payments.amount_base),0) AS total").
		Joins("JOIN payment_methods ON payment_methods.id = payments.method_id").
		Group("payments.method_id, payment_methods.nombre").
		Scan(&rows).Error
	return rows, err
}
