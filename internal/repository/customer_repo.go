package repository

import (
	"context"

	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerRepository interface {
	Create(ctx context.Context, c *model.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	FindByDocumento(ctx context.Context, documento string) (*model.Customer, error)
	Search(ctx context.Context, term string, limit int) ([]model.Customer, error)
	Update(ctx context.Context, c *model.Customer) error
}

type customerRepo struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

func (r *customerRepo) Create(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *customerRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *customerRepo) FindByDocumento(ctx context.Context, documento string) (*model.Customer, error) {
	var c model.Customer
	err := r.db.WithContext(ctx).Where("numero_documento = ? AND activo = true", documento).First(&c).Error
	return &c, err
}

func (r *customerRepo) Search(ctx context.Context, term string, limit int) ([]model.Customer, error) {
	var customers []model.Customer
	err := r.db.WithContext(ctx).
		Where("activo = true AND (nombre ILIKE ? OR numero_documento LIKE ?)", "%"+term+"%", term+"%").
		Limit(limit).Find(&customers).Error
	return customers, err
}

func (r *customerRepo) Update(ctx context.Context, c *model.Customer) error {
	return r.db.WithContext(ctx).Save(c).Error
}
