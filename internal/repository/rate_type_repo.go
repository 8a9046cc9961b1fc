package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RateTypeRepository interface {
	Create(ctx context.Context, rt *model.RateType) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RateType, error)
	FindByCode(ctx context.Context, code string) (*model.RateType, error)
	List(ctx context.Context) ([]model.RateType, error)
}

type rateTypeRepo struct{ db *gorm.DB }

func NewRateTypeRepository(db *gorm.DB) RateTypeRepository { return &rateTypeRepo{db: db} }

func (r *rateTypeRepo) Create(ctx context.Context, rt *model.RateType) error {
	return r.db.WithContext(ctx).Create(rt).Error
}

func (r *rateTypeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RateType, error) {
	var rt model.RateType
	err := r.db.WithContext(ctx).First(&rt, id).Error
	return &rt, err
}

func (r *rateTypeRepo) FindByCode(ctx context.Context, code string) (*model.RateType, error) {
	var rt model.RateType
	err := r.db.WithContext(ctx).Where("codigo = ? AND activo = true", code).First(&rt).Error
	return &rt, err
}

func (r *rateTypeRepo) List(ctx context.Context) ([]model.RateType, error) {
	var rates []model.RateType
	err := r.db.WithContext(ctx).Where("activo = true").Order("duracion_horas ASC").Find(&rates).Error
	return rates, err
}
