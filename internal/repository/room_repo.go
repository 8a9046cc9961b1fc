package repository

import (
	"context"

	"hostalpos/internal/dto"
	"hostalpos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository interface {
	Create(ctx context.Context, r *model.Room) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error)
	// FindByIDForUpdate locks the room row. The lock spans the availability
	// check and the booking insert so two concurrent bookings on the same
	// room serialize.
	FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Room, error)
	List(ctx context.Context, filter dto.RoomFilter) ([]model.Room, error)
	UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error
	CreateStatusLog(ctx context.Context, tx *gorm.DB, l *model.RoomStatusLog) error
	DB() *gorm.DB
}

type roomRepo struct{ db *gorm.DB }

func NewRoomRepository(db *gorm.DB) RoomRepository { return &roomRepo{db: db} }

func (r *roomRepo) DB() *gorm.DB { return r.db }

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).First(&room, id).Error
	return &room, err
}

func (r *roomRepo) FindByIDForUpdate(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Room, error) {
	var room model.Room
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	return &room, err
}

func (r *roomRepo) List(ctx context.Context, filter dto.RoomFilter) ([]model.Room, error) {
	var rooms []model.Room
	q := r.db.WithContext(ctx).Model(&model.Room{})
	if filter.Estado != "" && filter.Estado != "all" {
		q = q.Where("estado = ?", filter.Estado)
	}
	switch filter.Activo {
	case "false":
		q = q.Where("activo = false")
	case "all":
	default:
		q = q.Where("activo = true")
	}
	err := q.Order("room_number ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) UpdateEstado(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return tx.WithContext(ctx).Model(&model.Room{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":            estado,
			"status_changed_at": gorm.Expr("NOW()"),
		}).Error
}

func (r *roomRepo) CreateStatusLog(ctx context.Context, tx *gorm.DB, l *model.RoomStatusLog) error {
	return tx.WithContext(ctx).Create(l).Error
}
