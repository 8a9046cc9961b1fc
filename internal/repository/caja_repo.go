package repository

import (
	"context"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CajaRepository interface {
	CreateRegister(ctx context.Context, c *model.CashRegister) error
	FindRegisterByID(ctx context.Context, id uuid.UUID) (*model.CashRegister, error)
	ListRegisters(ctx context.Context) ([]model.CashRegister, error)
	CountRegisters(ctx context.Context) (int64, error)

	// ClaimRegister is the atomic test-and-set that binds a session to a
	// register. Returns false when another session already holds it.
	ClaimRegister(ctx context.Context, tx *gorm.DB, registerID, sessionID uuid.UUID) (bool, error)
	ReleaseRegister(ctx context.Context, tx *gorm.DB, registerID uuid.UUID) error

	CreateSesion(ctx context.Context, tx *gorm.DB, s *model.CashRegisterSession) error
	FindSesionByID(ctx context.Context, id uuid.UUID) (*model.CashRegisterSession, error)
	// FindSesionAbiertaByUser enforces one open session per user across all
	// registers. gorm.ErrRecordNotFound when the user has none.
	FindSesionAbiertaByUser(ctx context.Context, userID uuid.UUID) (*model.CashRegisterSession, error)
	FindSesionAbiertaByRegister(ctx context.Context, registerID uuid.UUID) (*model.CashRegisterSession, error)
	UpdateSesion(ctx context.Context, tx *gorm.DB, s *model.CashRegisterSession) error
	CreateSesionMetodo(ctx context.Context, tx *gorm.DB, m *model.CashRegisterSessionPaymentMethod) error
	ListSesiones(ctx context.Context, filter dto.SesionFilter) ([]model.CashRegisterSession, int64, error)

	DB() *gorm.DB
}

type cajaRepo struct{ db *gorm.DB }

func NewCajaRepository(db *gorm.DB) CajaRepository { return &cajaRepo{db: db} }

func (r *cajaRepo) DB() *gorm.DB { return r.db }

func (r *cajaRepo) CreateRegister(ctx context.Context, c *model.CashRegister) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *cajaRepo) FindRegisterByID(ctx context.Context, id uuid.UUID) (*model.CashRegister, error) {
	var c model.CashRegister
	err := r.db.WithContext(ctx).First(&c, id).Error
	return &c, err
}

func (r *cajaRepo) ListRegisters(ctx context.Context) ([]model.CashRegister, error) {
	var cajas []model.CashRegister
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&cajas).Error
	return cajas, err
}

func (r *cajaRepo) CountRegisters(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.CashRegister{}).Count(&n).Error
	return n, err
}

func (r *cajaRepo) ClaimRegister(ctx context.Context, tx *gorm.DB, registerID, sessionID uuid.UUID) (bool, error) {
	res := tx.WithContext(ctx).Model(&model.CashRegister{}).
		Where("id = ? AND activo = true AND current_session_id IS NULL", registerID).
		Update("current_session_id", sessionID)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *cajaRepo) ReleaseRegister(ctx context.Context, tx *gorm.DB, registerID uuid.UUID) error {
	return tx.WithContext(ctx).Model(&model.CashRegister{}).
		Where("id = ?", registerID).
		Update("current_session_id", nil).Error
}

func (r *cajaRepo) CreateSesion(ctx context.Context, tx *gorm.DB, s *model.CashRegisterSession) error {
	return tx.WithContext(ctx).Create(s).Error
}

func (r *cajaRepo) FindSesionByID(ctx context.Context, id uuid.UUID) (*model.CashRegisterSession, error) {
	var s model.CashRegisterSession
	err := r.db.WithContext(ctx).
		Preload("CashRegister").Preload("PaymentMethods.Method").
		First(&s, id).Error
	return &s, err
}

func (r *cajaRepo) FindSesionAbiertaByUser(ctx context.Context, userID uuid.UUID) (*model.CashRegisterSession, error) {
	var s model.CashRegisterSession
	err := r.db.WithContext(ctx).Preload("CashRegister").
		Where("opened_by = ? AND estado = ?", userID, model.SesionAbierta).
		First(&s).Error
	return &s, err
}

func (r *cajaRepo) FindSesionAbiertaByRegister(ctx context.Context, registerID uuid.UUID) (*model.CashRegisterSession, error) {
	var s model.CashRegisterSession
	err := r.db.WithContext(ctx).Preload("CashRegister").
		Where("cash_register_id = ? AND estado = ?", registerID, model.SesionAbierta).
		First(&s).Error
	return &s, err
}

func (r *cajaRepo) UpdateSesion(ctx context.Context, tx *gorm.DB, s *model.CashRegisterSession) error {
	return tx.WithContext(ctx).Save(s).Error
}

func (r *cajaRepo) CreateSesionMetodo(ctx context.Context, tx *gorm.DB, m *model.CashRegisterSessionPaymentMethod) error {
	return tx.WithContext(ctx).Create(m).Error
}

func (r *cajaRepo) ListSesiones(ctx context.Context, filter dto.SesionFilter) ([]model.CashRegisterSession, int64, error) {
	var sesiones []model.CashRegisterSession
	var total int64

	q := r.db.WithContext(ctx).Model(&model.CashRegisterSession{})
	if filter.CashRegisterID != "" {
		q = q.Where("cash_register_id = ?", filter.CashRegisterID)
	}
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.Desde != "" {
		q = q.Where("DATE(opened_at) >= ?", filter.Desde)
	}
	if filter.Hasta != "" {
		q = q.Where("DATE(opened_at) <= ?", filter.Hasta)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("CashRegister").Preload("PaymentMethods.Method").
		Order("opened_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&sesiones).Error
	return sesiones, total, err
}
