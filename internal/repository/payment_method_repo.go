package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PaymentMethodRepository interface {
	Create(ctx context.Context, m *model.PaymentMethod) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error)
	FindByCode(ctx context.Context, code string) (*model.PaymentMethod, error)
	List(ctx context.Context) ([]model.PaymentMethod, error)
}

type paymentMethodRepo struct{ db *gorm.DB }

func NewPaymentMethodRepository(db *gorm.DB) PaymentMethodRepository {
	return &paymentMethodRepo{db: db}
}

func (r *paymentMethodRepo) Create(ctx context.Context, m *model.PaymentMethod) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *paymentMethodRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PaymentMethod, error) {
	var m model.PaymentMethod
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *paymentMethodRepo) FindByCode(ctx context.Context, code string) (*model.PaymentMethod, error) {
	var m model.PaymentMethod
	err := r.db.WithContext(ctx).Where("codigo = ? AND activo = true", code).First(&m).Error
	return &m, err
}

func (r *paymentMethodRepo) List(ctx context.Context) ([]model.PaymentMethod, error) {
	var metodos []model.PaymentMethod
	err := r.db.WithContext(ctx).Where("activo = true").Order("sort_order ASC").Find(&metodos).Error
	return metodos, err
}
